package settings

import (
	"time"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/result"
)

// Settings 插件全局设置，保存在设置文件中。
//
//nolint:tagliatelle
type Settings struct {
	Enabled           bool                     `json:"enabled"`
	Encoding          string                   `json:"encoding"`
	SourceDirectories []string                 `json:"source-directories"`
	QualityGate       result.QualityGateStatus `json:"quality-gate"`
	Timeout           time.Duration            `json:"timeout"`
}

// DefaultSettings 返回默认设置。
func DefaultSettings() Settings {
	return Settings{
		Enabled:     true,
		Encoding:    "UTF-8",
		QualityGate: result.Warning,
		Timeout:     time.Minute,
	}
}

// clearRepeatable 清空重复项，表单中只会提交保留下来的条目。
func clearRepeatable(s *Settings) {
	s.SourceDirectories = nil
}
