package logger

import (
	"context"
	"runtime/debug"
)

// BuildInfo logs the module and VCS settings the binary was built with.
func (log *Logger) BuildInfo(ctx context.Context) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	var values []any
	for _, s := range info.Settings {
		key := s.Key
		if quoteKey(key) {
			key = "\"" + key + "\""
		}
		values = append(values, key, s.Value)
	}

	values = append(values, "goversion", info.GoVersion)
	values = append(values, "modversion", info.Main.Version)

	log.Info(ctx, "build info", values...)
}

func quoteKey(key string) bool {
	for _, r := range key {
		if r == '=' || r == ' ' || r == '"' {
			return true
		}
	}
	return false
}
