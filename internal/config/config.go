package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/statkit-cli/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Output
	Precision int  `mapstructure:"precision" yaml:"precision"`
	Top       int  `mapstructure:"top" yaml:"top"`
	Percent   bool `mapstructure:"percent" yaml:"percent"`

	// Stateless calc: true divides by n-1, false by n
	Sample bool `mapstructure:"sample" yaml:"sample"`

	// Input parsing
	Column             string `mapstructure:"column" yaml:"column"`
	Delimiter          string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`
	MaxRows            int    `mapstructure:"max_rows" yaml:"max_rows"`
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".statkit", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.statkit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("STATKIT")
	v.AutomaticEnv()

	v.SetDefault("precision", 6)
	v.SetDefault("top", 3)
	v.SetDefault("percent", false)
	v.SetDefault("sample", true)
	v.SetDefault("column", "")
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("max_rows", 0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Precision < 0 {
		return nil, fmt.Errorf("invalid precision %d: must be >= 0", c.Precision)
	}
	if c.Top < 0 {
		return nil, fmt.Errorf("invalid top %d: must be >= 0", c.Top)
	}
	return &c, nil
}
