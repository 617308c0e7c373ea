// Package config handles meshtool configuration loading and management.
package config

// Config holds all meshtool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	Import  ImportConfig  `yaml:"import"`
	Viewer  ViewerConfig  `yaml:"viewer"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// OutputConfig controls how meshes are printed.
type OutputConfig struct {
	Format  string `yaml:"format"`   // "text" or "yaml"
	MaxRows int    `yaml:"max_rows"` // Vertices printed per attribute by dump, 0 for all
}

// ImportConfig controls how layout descriptors are resolved.
type ImportConfig struct {
	SearchPaths []string `yaml:"search_paths"` // Directories searched for blobs named by descriptors
	ZstdLevel   int      `yaml:"zstd_level"`   // Encoder level used by pack, 1 (fastest) to 4 (best)
}

// ViewerConfig holds meshview window settings.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Output: OutputConfig{
			Format:  "text",
			MaxRows: 16,
		},
		Import: ImportConfig{
			SearchPaths: []string{"."},
			ZstdLevel:   2,
		},
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
	}
}
