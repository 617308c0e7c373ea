package config

// Overrides carries command-line values that take priority over the config
// file. The CLI binds its persistent flags directly to the fields.
type Overrides struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	Format     string
	MaxRows    int
}

// ApplyOverrides applies CLI flag overrides to the config. Zero values leave
// the config untouched.
func ApplyOverrides(cfg *Config, o Overrides) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
	if o.MaxRows > 0 {
		cfg.Output.MaxRows = o.MaxRows
	}
}
