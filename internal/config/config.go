package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the attrdoctor configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Logging LoggingConfig `mapstructure:"logging"`
	Linux   LinuxConfig   `mapstructure:"linux"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Report  ReportConfig  `mapstructure:"report"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
}

type LoggingConfig struct {
	File     string            `mapstructure:"file"`
	Rotation LogRotationConfig `mapstructure:"rotation"`
	Levels   LogLevelsConfig   `mapstructure:"levels"`
}

type LogRotationConfig struct {
	MaxSizeMB int  `mapstructure:"max_size_mb"`
	MaxFiles  int  `mapstructure:"max_files"`
	Compress  bool `mapstructure:"compress"`
}

type LogLevelsConfig struct {
	Console string `mapstructure:"console"`
	File    string `mapstructure:"file"`
}

// LinuxConfig tunes the lsattr based checker.
type LinuxConfig struct {
	LsattrPath string `mapstructure:"lsattr_path"`
	TimeoutMS  int    `mapstructure:"timeout_ms"`
	Strict     bool   `mapstructure:"strict"`
}

// Timeout returns the lsattr wait bound.
func (c LinuxConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

type ScanConfig struct {
	Recursive      bool     `mapstructure:"recursive"`
	FollowSymlinks bool     `mapstructure:"follow_symlinks"`
	IncludeDirs    bool     `mapstructure:"include_dirs"`
	Exclusions     []string `mapstructure:"exclusions"`
}

type ReportConfig struct {
	Format string `mapstructure:"format"`
}

// Report formats understood by the doctor package.
var validFormats = []string{"text", "json", "yaml"}

// Load reads configPath, or config.yaml from the standard locations when
// empty. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath(getDefaultConfigDir())
	}

	setDefaults(v)

	v.SetEnvPrefix("ATTRDOCTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	config.Logging.File = expandPath(config.Logging.File)
	config.Linux.LsattrPath = expandPath(config.Linux.LsattrPath)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects values the commands cannot honour.
func (c *Config) Validate() error {
	if c.Linux.TimeoutMS <= 0 {
		return fmt.Errorf("linux.timeout_ms must be positive, got %d", c.Linux.TimeoutMS)
	}
	for _, f := range validFormats {
		if c.Report.Format == f {
			return nil
		}
	}
	return fmt.Errorf("report.format must be one of %s, got %q", strings.Join(validFormats, ", "), c.Report.Format)
}

// getDefaultConfigDir returns the per-OS configuration directory.
func getDefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "AttrDoctor")
	case "darwin":
		return filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "AttrDoctor")
	default:
		return filepath.Join(os.Getenv("HOME"), ".config", "attrdoctor")
	}
}

// expandPath substitutes ${HOME} and other environment variables.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	home, _ := os.UserHomeDir()
	return os.Expand(path, func(key string) string {
		switch key {
		case "HOME":
			return home
		default:
			return os.Getenv(key)
		}
	})
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "AttrDoctor")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("logging.file", "")
	v.SetDefault("logging.rotation.max_size_mb", 10)
	v.SetDefault("logging.rotation.max_files", 5)
	v.SetDefault("logging.rotation.compress", true)
	v.SetDefault("logging.levels.console", "")
	v.SetDefault("logging.levels.file", "debug")

	v.SetDefault("linux.lsattr_path", "")
	v.SetDefault("linux.timeout_ms", 1000)
	v.SetDefault("linux.strict", false)

	v.SetDefault("scan.recursive", true)
	v.SetDefault("scan.follow_symlinks", false)
	v.SetDefault("scan.include_dirs", false)
	v.SetDefault("scan.exclusions", []string{})

	v.SetDefault("report.format", "text")
}
