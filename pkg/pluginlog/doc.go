// Package pluginlog 提供插件输出到构建日志的辅助类型。
//
// [Logger] 为每一行添加工具名前缀（如 "[checkstyle] "），写入任意 io.Writer，
// 通常是构建控制台。
//
// [FilteredLog] 收集一次处理过程中的信息与错误，错误条数超过上限后只计数不保存，
// 避免在构建日志中输出成千上万条相同问题。它可以通过 CBOR 序列化，
// 从远程节点随结果一起返回，见 remote 包。
//
// # 快速开始
//
//	logger := pluginlog.New(os.Stdout, "checkstyle")
//	logger.Log("Parsing %d files", 12)
//	// [checkstyle] Parsing 12 files
//
//	log := pluginlog.NewFilteredLog("Errors while parsing:")
//	log.LogError("Can't read %s", "a.xml")
//	logger.LogErrorMessages(log)
package pluginlog
