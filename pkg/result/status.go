package result

import (
	"fmt"
	"strings"
)

// QualityGateStatus 质量门评估结果。
type QualityGateStatus int

const (
	Inactive QualityGateStatus = iota
	Passed
	Note
	Warning
	Failed
	Error
)

var statusNames = [...]string{
	Inactive: "INACTIVE",
	Passed:   "PASSED",
	Note:     "NOTE",
	Warning:  "WARNING",
	Failed:   "FAILED",
	Error:    "ERROR",
}

var statusResults = [...]Result{
	Inactive: NotBuilt,
	Passed:   Success,
	Note:     Success,
	Warning:  Unstable,
	Failed:   Failure,
	Error:    Failure,
}

func (s QualityGateStatus) String() string {
	if s < Inactive || s > Error {
		return fmt.Sprintf("QualityGateStatus(%d)", int(s))
	}

	return statusNames[s]
}

// Result 返回状态对应的构建结果。未知状态视为 [Failure]。
func (s QualityGateStatus) Result() Result {
	if s < Inactive || s > Error {
		return Failure
	}

	return statusResults[s]
}

// IsSuccessful 状态是否不影响构建结果。
func (s QualityGateStatus) IsSuccessful() bool {
	return s == Inactive || s == Passed || s == Note
}

// IsWorseThan s 是否比 other 更严重。
func (s QualityGateStatus) IsWorseThan(other QualityGateStatus) bool {
	return s > other
}

// ParseStatus 解析状态名称（大小写不敏感）。
func ParseStatus(name string) (QualityGateStatus, error) {
	for s, n := range statusNames {
		if strings.EqualFold(n, name) {
			return QualityGateStatus(s), nil
		}
	}

	return 0, fmt.Errorf("unknown quality gate status %q", name)
}

// MarshalText 实现 encoding.TextMarshaler。
func (s QualityGateStatus) MarshalText() ([]byte, error) {
	if s < Inactive || s > Error {
		return nil, fmt.Errorf("invalid quality gate status %d", int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler。
func (s *QualityGateStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed

	return nil
}
