// Package remote 提供在远程调用中随结果一起返回日志的包装类型。
//
// 在代理节点上执行的任务通常既要返回结果，也要把过程中的信息和错误带回控制端
// 输出到构建日志。[ResultWrapper] 本身就是一个 [pluginlog.FilteredLog]，
// 并附带结果，整体以确定性 CBOR 编码传输。
package remote

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/pluginlog"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Core Deterministic Encoding：相同数据总是得到相同字节
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("remote: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("remote: CBOR decoder initialization failed: " + err.Error())
	}
}

// ResultWrapper 结果与日志的组合。
type ResultWrapper[T any] struct {
	*pluginlog.FilteredLog

	result T
}

// NewResultWrapper 创建包装，title 为日志的错误标题。
func NewResultWrapper[T any](result T, title string) *ResultWrapper[T] {
	return &ResultWrapper[T]{
		FilteredLog: pluginlog.NewFilteredLog(title),
		result:      result,
	}
}

// Result 返回被包装的结果。
func (w *ResultWrapper[T]) Result() T {
	return w.result
}

// Equal 结果与日志都相同时返回 true。
func (w *ResultWrapper[T]) Equal(other *ResultWrapper[T]) bool {
	if w == other {
		return true
	}
	if w == nil || other == nil {
		return false
	}

	return reflect.DeepEqual(w.result, other.result) && w.FilteredLog.Equal(other.FilteredLog)
}

type wrapperWire[T any] struct {
	Result T                      `cbor:"result"`
	Log    *pluginlog.FilteredLog `cbor:"log"`
}

// MarshalCBOR 实现 cbor.Marshaler。
func (w *ResultWrapper[T]) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(wrapperWire[T]{Result: w.result, Log: w.FilteredLog})
}

// UnmarshalCBOR 实现 cbor.Unmarshaler。
func (w *ResultWrapper[T]) UnmarshalCBOR(data []byte) error {
	var wire wrapperWire[T]
	if err := decMode.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode result wrapper: %w", err)
	}
	// log 缺失或为 null 时使用空日志
	if wire.Log == nil {
		wire.Log = pluginlog.NewFilteredLog("")
	}

	w.result = wire.Result
	w.FilteredLog = wire.Log

	return nil
}

// Marshal 编码包装，用于跨进程传输。
func (w *ResultWrapper[T]) Marshal() ([]byte, error) {
	data, err := w.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("encode result wrapper: %w", err)
	}

	return data, nil
}

// Unmarshal 解码由 [ResultWrapper.Marshal] 生成的数据。
func Unmarshal[T any](data []byte) (*ResultWrapper[T], error) {
	w := &ResultWrapper[T]{}
	if err := w.UnmarshalCBOR(data); err != nil {
		return nil, err
	}

	return w, nil
}
