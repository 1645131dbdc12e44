// Package macro 提供单层宏替换。
//
// 语法与 Jenkins 构建参数保持一致：
//
//   - $NAME    - 名称由字母、数字、下划线组成
//   - ${NAME}  - 名称额外允许 "." 和 "-"
//   - $$       - 字面量 "$"
//
// # 语义说明
//
//  1. 每次调用只做一层替换，替换结果不会在同一次调用中再次扫描
//  2. 找不到值的引用保持原样
//  3. 不完整或非法的引用（如 "${"、"${a b}"）按字面量输出
//  4. 不会返回错误
//
// 多层嵌套（变量值中再引用变量）由调用方重复调用解决，见 envres 包。
//
// # 快速开始
//
//	vars := map[string]string{"JOB": "core"}
//	s := macro.Replace(vars, "build ${JOB} #$BUILD_NUMBER")
//	// s == "build core #$BUILD_NUMBER"
package macro
