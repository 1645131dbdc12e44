package envres

import (
	"maps"
	"os"
	"strings"
)

// Environ 返回当前进程环境变量的快照。
//
// 每次调用返回新的 map，修改它不会影响进程环境。
func Environ() map[string]string {
	return FromList(os.Environ())
}

// FromList 解析 KEY=VALUE 形式的列表，忽略不含 "=" 或 key 为空的项。
//
// 重复的 key 以后出现的为准。
func FromList(entries []string) map[string]string {
	vars := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, val, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = val
	}

	return vars
}

// Merge 按顺序合并多个环境，后者覆盖前者。
//
// 结果总是新的 map；所有输入均为空时返回空 map 而不是 nil。
func Merge(layers ...map[string]string) map[string]string {
	size := 0
	for _, layer := range layers {
		size += len(layer)
	}

	out := make(map[string]string, size)
	for _, layer := range layers {
		maps.Copy(out, layer)
	}

	return out
}
