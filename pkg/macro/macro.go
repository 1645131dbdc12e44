package macro

import "strings"

// LookupFunc 根据名称返回变量值；ok 为 false 表示变量不存在。
type LookupFunc func(name string) (value string, ok bool)

func isNameChar(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_'
}

func isBracedNameChar(ch byte) bool {
	return isNameChar(ch) || ch == '.' || ch == '-'
}

// parseReference 解析 text[i] 处的 '$' 开头的引用。
//
// 返回引用的名称与引用结束位置（不含）；escaped 表示 "$$"。
// ok 为 false 表示不是合法引用。
func parseReference(text string, i int) (name string, end int, escaped, ok bool) {
	if i+1 >= len(text) {
		return "", 0, false, false
	}

	next := text[i+1]
	switch {
	case next == '$':
		return "", i + 2, true, true
	case next == '{':
		j := i + 2
		for j < len(text) && isBracedNameChar(text[j]) {
			j++
		}
		if j == i+2 || j >= len(text) || text[j] != '}' {
			return "", 0, false, false
		}

		return text[i+2 : j], j + 1, false, true
	case isNameChar(next):
		j := i + 1
		for j < len(text) && isNameChar(text[j]) {
			j++
		}

		return text[i+1 : j], j, false, true
	}

	return "", 0, false, false
}

// ReplaceFunc 对 text 做一层宏替换，变量值由 lookup 提供。
func ReplaceFunc(text string, lookup LookupFunc) string {
	if !strings.Contains(text, "$") {
		return text
	}

	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		ch := text[i]
		if ch != '$' {
			buf.WriteByte(ch)
			i++
			continue
		}

		name, end, escaped, ok := parseReference(text, i)
		if !ok {
			buf.WriteByte(ch)
			i++
			continue
		}

		switch {
		case escaped:
			buf.WriteByte('$')
		default:
			if val, found := lookup(name); found {
				buf.WriteString(val)
			} else {
				buf.WriteString(text[i:end])
			}
		}

		i = end
	}

	return buf.String()
}

// Replace 使用 vars 对 text 做一层宏替换。
//
// vars 为 nil 时仍会处理 "$$" 转义。
func Replace(vars map[string]string, text string) string {
	return ReplaceFunc(text, func(name string) (string, bool) {
		val, ok := vars[name]
		return val, ok
	})
}

// References 返回 text 中引用的变量名，按首次出现顺序去重。
func References(text string) []string {
	var names []string
	seen := make(map[string]bool)

	for i := 0; i < len(text); {
		if text[i] != '$' {
			i++
			continue
		}

		name, end, escaped, ok := parseReference(text, i)
		if !ok {
			i++
			continue
		}
		if !escaped && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}

		i = end
	}

	return names
}
