// Package jenkins 提供访问 Jenkins 的门面。
//
// [Facade] 汇总插件常用的几类能力：权限检查、按全名或构建 ID 查找作业与构建、
// 列出全部作业、检查插件是否安装，以及拼接绝对 URL 与静态资源路径。
//
// [Client] 通过 Jenkins JSON API（api/json）实现 [Facade]：
//
//	client, err := jenkins.New("https://ci.example.com/",
//	    jenkins.WithBasicAuth("admin", token),
//	    jenkins.WithTimeout(10*time.Second),
//	)
//	job, err := client.Job(ctx, "folder/app")
//	if errors.Is(err, jenkins.ErrNotFound) {
//	    // 不存在或没有权限
//	}
//
// 测试时可使用 jenkinstest 包中的内存实现。
package jenkins
