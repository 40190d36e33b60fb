package config

import (
	"os"
	"strings"
)

// envLoader reads RICHDOC_* variables into a nested settings map.
type envLoader struct {
	mapping map[string]string // env var -> setting path
	lookup  func(string) (string, bool)
}

func newEnvLoader() *envLoader {
	return &envLoader{
		mapping: defaultEnvMapping(),
		lookup:  os.LookupEnv,
	}
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"RICHDOC_LOG_LEVEL":        "logging.level",
		"RICHDOC_LOG_FILE":         "logging.file",
		"RICHDOC_WIKI_LINKS":       "markdown.wiki_links",
		"RICHDOC_SCRIPT_TIMEOUT":   "script.timeout",
		"RICHDOC_WATCH":            "viewer.watch",
		"RICHDOC_SYSTEM_CLIPBOARD": "clipboard.system",
	}
}

// load returns the mapped variables that are set.
// Note: empty values are treated as set, not as absent.
func (l *envLoader) load() map[string]any {
	values := make(map[string]any)
	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			setByPath(values, path, parseValue(path, val))
		}
	}
	return values
}

// boolPaths are the settings whose values are parsed as booleans.
var boolPaths = map[string]bool{
	"markdown.wiki_links": true,
	"viewer.watch":        true,
	"clipboard.system":    true,
}

// parseValue turns boolean words into bools for boolean settings. Every
// other value stays a string.
func parseValue(path, s string) any {
	if !boolPaths[path] {
		return s
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
