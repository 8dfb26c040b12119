// Package config loads the editor settings.
//
// Settings come in layers, later layers overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  3. MODAL_* environment     │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config file             │  ← ~/.config/modal/config.{toml,yaml,lua}
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command line flags are applied by the caller on top of the result.
//
// # Sub-packages
//
//   - loader: TOML, YAML, Lua and environment loaders
//   - watcher: file watching for live reload
//
// # File formats
//
// TOML:
//
//	key_timeout = 500
//	shift_width = 2
//
//	[[mappings]]
//	mode = "n"
//	keys = "<Space>w"
//	command = "edit.deleteChar"
//
// Lua:
//
//	modal.set("shift_width", 2)
//	modal.map("n", "<Space>w", "edit.deleteChar")
//
// # Live reload
//
// Watch reloads the file when it changes and sends each new Config on a
// channel. A file that fails to load is reported and the old settings stay.
package config
