package result

import (
	"log/slog"
	"sync"
)

// Handler 发布插件计算出的结果。
type Handler interface {
	PublishResult(r Result, message string)
	PublishStatus(s QualityGateStatus, message string)
}

// Run 可以设置结果的构建。
type Run interface {
	SetResult(r Result)
}

// RunHandler 把结果写入整个构建。
//
// 只有 [Unstable] 与 [Failure] 会影响构建，其他结果不改变构建状态。
type RunHandler struct {
	run Run
}

// NewRunHandler 创建 RunHandler。
func NewRunHandler(run Run) *RunHandler {
	return &RunHandler{run: run}
}

// PublishResult 实现 [Handler]。
func (h *RunHandler) PublishResult(r Result, message string) {
	if r == Unstable || r == Failure {
		slog.Debug("Setting build result", "result", r, "message", message)
		h.run.SetResult(r)
	}
}

// PublishStatus 实现 [Handler]。
func (h *RunHandler) PublishStatus(s QualityGateStatus, message string) {
	h.PublishResult(s.Result(), message)
}

// Recorder 内存中的构建，结果只会变得更差。
//
// 零值可用，初始结果为 [Success]。
type Recorder struct {
	mu       sync.Mutex
	result   Result
	messages []string
}

// SetResult 实现 [Run]；比当前结果好的值被忽略。
func (r *Recorder) SetResult(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.result = Combine(r.result, res)
}

// Result 返回当前结果。
func (r *Recorder) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.result
}

// PublishResult 实现 [Handler]，记录消息并按 [RunHandler] 的规则更新结果。
func (r *Recorder) PublishResult(res Result, message string) {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()

	NewRunHandler(r).PublishResult(res, message)
}

// PublishStatus 实现 [Handler]。
func (r *Recorder) PublishStatus(s QualityGateStatus, message string) {
	r.PublishResult(s.Result(), message)
}

// Messages 返回已发布的消息。
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.messages...)
}
