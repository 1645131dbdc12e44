package cfgm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/envres"
)

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// appName 可选，提供后会追加应用专属路径。返回顺序即查找顺序，先命中的文件生效：
//  1. ./.appname.yaml - 当前目录应用配置
//  2. ~/.appname.yaml - 用户主目录配置
//  3. /etc/appname/config.yaml - 系统级配置
//  4. config.yaml - 当前目录通用配置
//  5. config/config.yaml - 子目录通用配置
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	return append(paths, "config.yaml", "config/config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths(o.appName)
	}

	configMap := structToMap(defaultConfig)

	// 配置文件：按顺序搜索，找到第一个即停止
	path, fileMap, err := loadFirstFile(o)
	if err != nil {
		return nil, err
	}
	if fileMap != nil {
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path, "templateExpansion", !o.noTemplateExpansion)
	} else {
		slog.Debug("No config file found, using defaults")
	}

	// 环境变量：绑定由结构体 key 自动生成
	if o.envPrefix != "" {
		bindings := generateEnvBindings(o.envPrefix, collectConfigKeys(defaultConfig))
		slog.Debug("Generated auto env bindings", "prefix", o.envPrefix, "count", len(bindings))
		for envKey, configPath := range bindings {
			if val := os.Getenv(envKey); val != "" {
				SetPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	// CLI flags：仅当用户明确指定时覆盖
	if o.cmd != nil {
		applyCLIFlags(o.cmd, configMap, reflect.TypeOf(defaultConfig), "")
	}

	var cfg T
	if err := Decode(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// loadFirstFile 读取并解析第一个存在的配置文件；都不存在时返回 nil map。
func loadFirstFile(o *options) (string, map[string]any, error) {
	for _, p := range o.configPaths {
		if o.baseDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(o.baseDir, p)
		}

		content, err := os.ReadFile(p) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		fileMap, err := parseConfigBytes(p, content)
		if err != nil {
			return "", nil, fmt.Errorf("parse config file %s: %w", p, err)
		}
		if !o.noTemplateExpansion {
			expandStrings(fileMap, expander(o))
		}

		return p, fileMap, nil
	}

	return "", nil, nil
}

// expander 返回展开函数，使用进程环境（叠加 [WithVariables]）展开 ${...} 引用。
//
// 找不到的变量保持原样，循环引用在解析深度内终止。
func expander(o *options) func(string) string {
	r := o.resolver
	if r == nil {
		r = envres.New()
	}
	env := envres.Merge(envres.Environ(), o.variables)

	return func(s string) string {
		return r.Expand(env, s)
	}
}

// expandStrings 原地展开解析结果中的字符串值。
//
// 展开发生在解析之后，变量值中的引号、换行或 "key: value" 不会改变文档结构；key 不展开。
func expandStrings(val any, expand func(string) string) any {
	switch typed := val.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = expandStrings(value, expand)
		}

		return typed
	case []any:
		for i := range typed {
			typed[i] = expandStrings(typed[i], expand)
		}

		return typed
	case string:
		return expand(typed)
	default:
		return val
	}
}

// LoadCmd 是 [Load] 的便捷版本，注入 [WithCommand]，appName 非空时额外注入 [WithAppName]。
//
//	cfg, err := cfgm.LoadCmd(cmd, DefaultConfig(), "plugutil",
//	    cfgm.WithEnvPrefix("PLUGUTIL_"),
//	)
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	baseOpts := []Option{WithCommand(cmd)}
	if appName != "" {
		baseOpts = append(baseOpts, WithAppName(appName))
	}

	return Load(defaultConfig, append(baseOpts, opts...)...)
}

// MustLoad 调用 [Load] 并在失败时 panic，适合启动阶段。
func MustLoad[T any](defaultConfig T, opts ...Option) *T {
	cfg, err := Load(defaultConfig, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// MustLoadCmd 调用 [LoadCmd] 并在失败时 panic，适合启动阶段。
func MustLoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) *T {
	cfg, err := LoadCmd(cmd, defaultConfig, appName, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// collectConfigKeys 以 json tag 为准收集叶子 key（如 jenkins.context-path）。
func collectConfigKeys[T any](defaultConfig T) []string {
	var keys []string
	walkFields(reflect.TypeOf(defaultConfig), "", func(fullKey string, _ reflect.Type) {
		keys = append(keys, fullKey)
	})

	return keys
}

// walkFields 递归遍历结构体叶子字段，fn 收到完整 key 与字段类型。
func walkFields(typ reflect.Type, prefix string, fn func(fullKey string, fieldType reflect.Type)) {
	if typ == nil {
		return
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)

		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if isStructType(field.Type) {
			walkFields(field.Type, fullKey, fn)

			continue
		}

		fn(fullKey, field.Type)
	}
}

// generateEnvBindings 根据配置 key 生成环境变量映射。
//
// 示例 (前缀 "APP_")：jenkins.context-path → APP_JENKINS_CONTEXT_PATH
func generateEnvBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// applyCLIFlags 将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由完整 key 将 "." 替换为 "-" 得到，如 jenkins.url → --jenkins-url。
func applyCLIFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	walkFields(typ, prefix, func(fullKey string, fieldType reflect.Type) {
		flag := strings.ReplaceAll(fullKey, ".", "-")
		if !cmd.IsSet(flag) {
			return
		}
		if val, ok := cliFlagValue(cmd, flag, fieldType); ok {
			SetPath(config, fullKey, val)
		}
	})
}

// cliFlagValue 按字段类型读取 flag 值；不支持的类型返回 false。
func cliFlagValue(cmd *cli.Command, flag string, fieldType reflect.Type) (any, bool) {
	if fieldType == durationType {
		return cmd.Duration(flag), true
	}

	switch fieldType.Kind() {
	case reflect.String:
		return cmd.String(flag), true
	case reflect.Bool:
		return cmd.Bool(flag), true
	case reflect.Int:
		return cmd.Int(flag), true
	case reflect.Int8:
		return cmd.Int8(flag), true
	case reflect.Int16:
		return cmd.Int16(flag), true
	case reflect.Int32:
		return cmd.Int32(flag), true
	case reflect.Int64:
		return cmd.Int64(flag), true
	case reflect.Uint:
		return cmd.Uint(flag), true
	case reflect.Uint16:
		return cmd.Uint16(flag), true
	case reflect.Uint32:
		return cmd.Uint32(flag), true
	case reflect.Uint64:
		return cmd.Uint64(flag), true
	case reflect.Float32:
		return cmd.Float32(flag), true
	case reflect.Float64:
		return cmd.Float64(flag), true
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.String {
			return cmd.StringSlice(flag), true
		}
	case reflect.Map:
		if fieldType.Key().Kind() == reflect.String && fieldType.Elem().Kind() == reflect.String {
			return cmd.StringMap(flag), true
		}
	}

	return nil, false
}
