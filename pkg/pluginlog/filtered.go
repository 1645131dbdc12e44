package pluginlog

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// DefaultMaxLines 默认保留的最大错误条数。
const DefaultMaxLines = 20

// FilteredLog 收集信息与错误，错误数量超过上限后只计数。
//
// 零值不可用，使用 [NewFilteredLog] 创建。
type FilteredLog struct {
	mu       sync.Mutex
	title    string
	maxLines int
	lines    int
	info     []string
	errs     []string
}

// NewFilteredLog 创建错误上限为 [DefaultMaxLines] 的日志。
//
// title 会在第一条错误之前写入错误列表。
func NewFilteredLog(title string) *FilteredLog {
	return NewFilteredLogWithLimit(title, DefaultMaxLines)
}

// NewFilteredLogWithLimit 创建指定错误上限的日志。
func NewFilteredLogWithLimit(title string, maxLines int) *FilteredLog {
	return &FilteredLog{title: title, maxLines: maxLines}
}

// Title 返回错误标题。
func (l *FilteredLog) Title() string {
	return l.title
}

// LogInfo 记录一条信息。
func (l *FilteredLog) LogInfo(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.info = append(l.info, formatMessage(format, args))
}

// LogError 记录一条错误；超过上限的错误只计数。
func (l *FilteredLog) LogError(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logError(formatMessage(format, args))
}

// LogException 记录错误及其原因链，每层原因单独占一行。
func (l *FilteredLog) LogException(err error, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logError(formatMessage(format, args))
	for e := err; e != nil; e = errors.Unwrap(e) {
		l.logError(fmt.Sprintf("%T: %s", e, e.Error()))
	}
}

func (l *FilteredLog) logError(message string) {
	if l.lines == 0 && l.title != "" {
		l.errs = append(l.errs, l.title)
	}
	if l.lines < l.maxLines {
		l.errs = append(l.errs, message)
	}
	l.lines++
}

// LogSummary 在错误超过上限时追加一条被省略数量的说明。
func (l *FilteredLog) LogSummary() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lines > l.maxLines {
		l.errs = append(l.errs, fmt.Sprintf("  ... skipped logging of %d lines ...", l.lines-l.maxLines))
	}
}

// Size 返回已记录的错误总数（含被省略的）。
func (l *FilteredLog) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.lines
}

// HasErrors 是否记录过错误。
func (l *FilteredLog) HasErrors() bool {
	return l.Size() > 0
}

// InfoMessages 返回信息的副本。
func (l *FilteredLog) InfoMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.info)
}

// ErrorMessages 返回错误的副本（含标题）。
func (l *FilteredLog) ErrorMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.errs)
}

// Merge 追加 other 的信息与错误。错误按原文追加，不再受本日志的上限约束。
func (l *FilteredLog) Merge(other *FilteredLog) {
	if other == nil || other == l {
		return
	}

	info := other.InfoMessages()
	errs := other.ErrorMessages()
	size := other.Size()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.info = append(l.info, info...)
	l.errs = append(l.errs, errs...)
	l.lines += size
}

// Equal 比较两个日志的内容。
func (l *FilteredLog) Equal(other *FilteredLog) bool {
	if l == other {
		return true
	}
	if l == nil || other == nil {
		return false
	}

	a, b := l.snapshot(), other.snapshot()

	return a.Title == b.Title && a.MaxLines == b.MaxLines && a.Lines == b.Lines &&
		slices.Equal(a.Info, b.Info) && slices.Equal(a.Errors, b.Errors)
}

// filteredLogWire 是 FilteredLog 的序列化形式。
type filteredLogWire struct {
	Title    string   `cbor:"title"`
	MaxLines int      `cbor:"max_lines"`
	Lines    int      `cbor:"lines"`
	Info     []string `cbor:"info,omitempty"`
	Errors   []string `cbor:"errors,omitempty"`
}

func (l *FilteredLog) snapshot() filteredLogWire {
	l.mu.Lock()
	defer l.mu.Unlock()

	return filteredLogWire{
		Title:    l.title,
		MaxLines: l.maxLines,
		Lines:    l.lines,
		Info:     slices.Clone(l.info),
		Errors:   slices.Clone(l.errs),
	}
}

// MarshalCBOR 实现 cbor.Marshaler。
func (l *FilteredLog) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(l.snapshot())
}

// UnmarshalCBOR 实现 cbor.Unmarshaler。
func (l *FilteredLog) UnmarshalCBOR(data []byte) error {
	var wire filteredLogWire
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode filtered log: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.title = wire.Title
	l.maxLines = wire.MaxLines
	l.lines = wire.Lines
	l.info = wire.Info
	l.errs = wire.Errors

	return nil
}

func formatMessage(format string, args []any) string {
	if len(args) == 0 {
		return format
	}

	return fmt.Sprintf(format, args...)
}
