// Package result 描述构建结果、质量门状态以及发布结果的方式。
package result

import (
	"fmt"
	"strings"
)

// Result 构建结果，按严重程度递增排列。
type Result int

const (
	Success Result = iota
	Unstable
	Failure
	NotBuilt
	Aborted
)

var resultNames = [...]string{
	Success:  "SUCCESS",
	Unstable: "UNSTABLE",
	Failure:  "FAILURE",
	NotBuilt: "NOT_BUILT",
	Aborted:  "ABORTED",
}

func (r Result) String() string {
	if r < Success || r > Aborted {
		return fmt.Sprintf("Result(%d)", int(r))
	}

	return resultNames[r]
}

// Parse 解析结果名称（大小写不敏感）。
func Parse(name string) (Result, error) {
	for r, n := range resultNames {
		if strings.EqualFold(n, name) {
			return Result(r), nil
		}
	}

	return 0, fmt.Errorf("unknown build result %q", name)
}

// IsWorseThan r 是否比 other 更严重。
func (r Result) IsWorseThan(other Result) bool {
	return r > other
}

// IsBetterOrEqualTo r 是否不比 other 严重。
func (r Result) IsBetterOrEqualTo(other Result) bool {
	return r <= other
}

// Combine 返回两者中更严重的结果。
func Combine(a, b Result) Result {
	return max(a, b)
}

// MarshalText 实现 encoding.TextMarshaler。
func (r Result) MarshalText() ([]byte, error) {
	if r < Success || r > Aborted {
		return nil, fmt.Errorf("invalid build result %d", int(r))
	}

	return []byte(r.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler。
func (r *Result) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed

	return nil
}
