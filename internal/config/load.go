package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FileName = "stitch.yaml"
	EnvVar   = "STITCH_CONFIG"
)

// Load reads configuration from a file with ENV interpolation.
// If configPath is empty, it tries STITCH_CONFIG and then ./stitch.yaml. With
// no file at all the defaults are used, rooted at the working directory.
func Load(configPath string, getenv func(string) string) (*Config, error) {
	path, err := resolveConfigPath(configPath, getenv)
	if errors.Is(err, errNoConfig) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg := Defaults()
		resolvePaths(cfg, wd)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	resolvePaths(cfg, filepath.Dir(absPath))

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

var errNoConfig = errors.New("no config file found")

func resolveConfigPath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if envPath := getenv(EnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s file not found: %s", EnvVar, envPath)
		}
		return envPath, nil
	}

	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	}

	return "", errNoConfig
}

func resolvePaths(cfg *Config, baseDir string) {
	cfg.BaseDir = baseDir
	cfg.Root = resolve(baseDir, cfg.Root)
	cfg.OutDir = resolve(baseDir, cfg.OutDir)
	if cfg.ProjectRoot != "" {
		cfg.ProjectRoot = resolve(baseDir, cfg.ProjectRoot)
	}
	if cfg.PublicDir != "" {
		cfg.PublicDir = resolve(cfg.Project(), cfg.PublicDir)
	}
}

func resolve(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		value := getenv(string(parts[1]))
		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}

		return []byte(value)
	})
}

func Validate(cfg *Config) error {
	var errs []string

	if cfg.Root == "" {
		errs = append(errs, "root is required")
	}
	if cfg.OutDir == "" {
		errs = append(errs, "out_dir is required")
	}
	if cfg.OutDir != "" && filepath.Clean(cfg.OutDir) == filepath.Clean(cfg.Root) {
		errs = append(errs, "out_dir must differ from root")
	}
	if cfg.ComponentsDir == "" {
		errs = append(errs, "components_dir is required")
	}
	if filepath.IsAbs(cfg.ComponentsDir) || strings.HasPrefix(filepath.Clean(cfg.ComponentsDir), "..") {
		errs = append(errs, fmt.Sprintf("components_dir must be relative to root: %s", cfg.ComponentsDir))
	}
	if cfg.MaxDepth < 1 {
		errs = append(errs, fmt.Sprintf("invalid max_depth: %d (must be at least 1)", cfg.MaxDepth))
	}
	if cfg.Dev.Port < 1 || cfg.Dev.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid dev.port: %d (must be 1-65535)", cfg.Dev.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
