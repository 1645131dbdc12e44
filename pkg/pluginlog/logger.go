package pluginlog

import (
	"io"
	"strings"
	"sync"
)

// Logger 带工具名前缀的行日志。
type Logger struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// New 创建 Logger。
//
// name 已经以 "[" 开头时原样作为前缀，否则包装为 "[name]"。
func New(w io.Writer, name string) *Logger {
	prefix := name
	if !strings.HasPrefix(name, "[") {
		prefix = "[" + name + "]"
	}

	return &Logger{w: w, prefix: prefix + " "}
}

// Prefix 返回每行的前缀（含结尾空格）。
func (l *Logger) Prefix() string {
	return l.prefix
}

// Log 输出一行。没有 args 时 format 原样输出，不做格式化。
func (l *Logger) Log(format string, args ...any) {
	message := formatMessage(format, args)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.println(message)
}

// LogEachLine 每个元素输出一行；空列表不输出任何内容。
func (l *Logger) LogEachLine(lines []string) {
	if len(lines) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range lines {
		l.println(line)
	}
}

// LogInfoMessages 输出 log 中的信息。
func (l *Logger) LogInfoMessages(log *FilteredLog) {
	l.LogEachLine(log.InfoMessages())
}

// LogErrorMessages 输出 log 中的错误。
func (l *Logger) LogErrorMessages(log *FilteredLog) {
	l.LogEachLine(log.ErrorMessages())
}

func (l *Logger) println(message string) {
	// 构建日志写失败时无处可报，忽略
	_, _ = io.WriteString(l.w, l.prefix+message+"\n")
}
