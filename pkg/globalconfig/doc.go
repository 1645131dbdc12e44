// Package globalconfig 提供可测试的全局配置项。
//
// 全局配置项在整个进程内只有一份，由存储负责持久化。[Item] 通过构造时注入的
// [Store] 读写配置，所有 Load / Save / Update / Configure 共用同一把锁，
// 测试中可以用 [MemoryStore] 替换真实存储。
//
// # 存储
//
//   - [FileStore] - YAML/JSON 文件，内容原样读写，写入时持有跨进程文件锁并原子替换
//   - [MemoryStore] - 内存存储，记录读写次数，用于测试
//
// # 快速开始
//
//	type Settings struct {
//	    URL      string   `json:"url"`
//	    Patterns []string `json:"patterns"`
//	}
//
//	item := globalconfig.NewItem[Settings](
//	    globalconfig.NewFileStore[Settings]("settings.yaml"),
//	    Settings{URL: "http://localhost:8080/"},
//	)
//	if err := item.Load(); err != nil { ... }
//
// 表单提交（Configure）前会先调用 [WithClearRepeatable] 注册的钩子，
// 确保全部删除重复项时旧值不会残留。
//
// 文件被外部修改后可通过 [Watch] 自动重新加载。
package globalconfig
