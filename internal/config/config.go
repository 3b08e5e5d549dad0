package config

type Config struct {
	BaseDir string `yaml:"-"`

	Root          string `yaml:"root"`
	ProjectRoot   string `yaml:"project_root"`
	ComponentsDir string `yaml:"components_dir"`
	OutDir        string `yaml:"out_dir"`
	PublicDir     string `yaml:"public_dir"`
	MaxDepth      int    `yaml:"max_depth"`

	Inline InlineConfig `yaml:"inline"`
	Build  BuildConfig  `yaml:"build"`
	Dev    DevConfig    `yaml:"dev"`
}

type InlineConfig struct {
	CSS               bool     `yaml:"css"`
	JS                bool     `yaml:"js"`
	DevClientPatterns []string `yaml:"dev_client_patterns"`
}

type BuildConfig struct {
	Gzip bool `yaml:"gzip"`
}

type DevConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Compression bool   `yaml:"compression"`
}

func Defaults() *Config {
	return &Config{
		Root:          "src",
		ComponentsDir: "components",
		OutDir:        "dist",
		PublicDir:     "public",
		MaxDepth:      64,
		Inline: InlineConfig{
			CSS:               true,
			JS:                true,
			DevClientPatterns: []string{"/@vite/client", "/__stitch/"},
		},
		Dev: DevConfig{
			Host:        "localhost",
			Port:        3000,
			Compression: true,
		},
	}
}

// Project returns the project root, falling back to the directory holding
// the config file.
func (c *Config) Project() string {
	if c.ProjectRoot != "" {
		return c.ProjectRoot
	}
	return c.BaseDir
}
