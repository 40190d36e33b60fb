// Package config provides richdoc's configuration.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command line flags      │  ← applied by the caller
//	├─────────────────────────────┤
//	│  3. Environment variables   │  ← RICHDOC_*
//	├─────────────────────────────┤
//	│  2. Config file             │  ← ~/.config/richdoc/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │
//	└─────────────────────────────┘
//
// A missing config file is not an error. The file is TOML:
//
//	[logging]
//	level = "debug"
//	file = "/tmp/richdoc.log"
//
//	[markdown]
//	wiki_links = true
//
//	[script]
//	timeout = "5s"
//
//	[viewer]
//	watch = true
//	watch_debounce = "100ms"
//	status_line = true
//
//	[clipboard]
//	system = true
//
// Environment variables are mapped onto setting paths:
//
//	RICHDOC_LOG_LEVEL        logging.level
//	RICHDOC_LOG_FILE         logging.file
//	RICHDOC_WIKI_LINKS       markdown.wiki_links
//	RICHDOC_SCRIPT_TIMEOUT   script.timeout
//	RICHDOC_WATCH            viewer.watch
//	RICHDOC_SYSTEM_CLIPBOARD clipboard.system
//
// Durations are written as Go duration strings and checked by Validate.
package config
