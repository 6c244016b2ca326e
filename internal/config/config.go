// Package config loads settings from defaults, an optional lifestore.yaml
// and LIFESTORE_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "LIFESTORE"

// Config holds every runtime setting
type Config struct {
	DataDir   string `mapstructure:"data_dir"`
	DBPath    string `mapstructure:"db_path"`
	AssetsDir string `mapstructure:"assets_dir"`
	ExportDir string `mapstructure:"export_dir"`
	Listen    string `mapstructure:"listen"`
	MemoSize  int    `mapstructure:"memo_size"`

	Analysis AnalysisConfig `mapstructure:"analysis"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	Log      LogConfig      `mapstructure:"log"`
}

type AnalysisConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type BrowserConfig struct {
	ControlURL  string        `mapstructure:"control_url"`
	Bin         string        `mapstructure:"bin"`
	Headless    bool          `mapstructure:"headless"`
	Timeout     time.Duration `mapstructure:"timeout"`
	AllowRemote bool          `mapstructure:"allow_remote_images"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with defaults and env binding set up
func New() *viper.Viper {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("data_dir", filepath.Join(home, ".lifestore"))
	v.SetDefault("db_path", "")
	v.SetDefault("assets_dir", "")
	v.SetDefault("export_dir", ".")
	v.SetDefault("listen", "127.0.0.1:8080")
	v.SetDefault("memo_size", 32)
	v.SetDefault("analysis.url", "http://localhost:8000")
	v.SetDefault("analysis.timeout", 30*time.Second)
	v.SetDefault("browser.control_url", "")
	v.SetDefault("browser.bin", "")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.timeout", 30*time.Second)
	v.SetDefault("browser.allow_remote_images", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file and decodes the result. An empty file
// searches ./lifestore.yaml and ~/.lifestore/lifestore.yaml; a missing
// searched file is not an error, a missing explicit file is.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("lifestore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.lifestore")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.resolve()
	return &cfg, nil
}

func (c *Config) resolve() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "lifestore.db")
	}
	if c.AssetsDir == "" {
		c.AssetsDir = filepath.Join(c.DataDir, "memes")
	}
	if c.MemoSize <= 0 {
		c.MemoSize = 32
	}
}
