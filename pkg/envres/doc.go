// Package envres 解析字符串中的环境变量引用。
//
// 变量值中可以再次引用其他变量（如 A=${B}、B=value），单层替换无法一次解析完。
// [Resolver] 会重复执行单层替换，直到结果不再变化（不动点）或达到解析深度上限。
//
// # 语义说明
//
//  1. 环境为 nil 或空时原样返回，不执行任何替换
//  2. 模板为空或仅含空白字符时原样返回
//  3. 每轮替换后与上一轮比较，相同则立即返回
//  4. 达到深度上限时返回最后一轮的结果（允许部分展开，不视为错误）
//  5. 找不到的变量保持原样；循环引用（A=${B}、B=${A}）在深度上限内终止
//
// 任何输入都不会返回错误。调用方如需判断是否完全展开，可检查结果中是否还有引用，
// 见 [macro.References]。
//
// # 快速开始
//
//	env := map[string]string{"HOME_DIR": "/home/${USER}", "USER": "jenkins"}
//	s := envres.Expand(env, "${HOME_DIR}/workspace")
//	// s == "/home/jenkins/workspace"
//
// 自定义解析深度：
//
//	r := envres.New(envres.WithDepth(3))
//	s := r.Expand(env, template)
package envres
