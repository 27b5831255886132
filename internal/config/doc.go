// Package config provides the configuration system for nep.
//
// # Architecture
//
// Configuration is resolved in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by cmd/nep)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← NEP_TAB_WIDTH, NEP_LOG_LEVEL, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/nep/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load(config.LoadOptions{Path: flagPath})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.TabWidth)
//
// # Config File
//
// The file is TOML unless its name ends in .yaml or .yml:
//
//	tab_width = 4
//	resize_interval = "50ms"
//	log_level = "info"
//	log_file = "/tmp/nep.log"
//	show_splash = true
package config
