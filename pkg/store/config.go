package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the persistence slot.
type Config interface {
	BasePath() string
	Slot() string
}

// LoadConfig reads .things.yaml from $THINGS_CONFIG_PATH or the working
// directory, with THINGS_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.things.db")
	viper.SetDefault("slot", DefaultSlot)
	viper.SetConfigName(".things") // .yaml is implicit
	viper.SetEnvPrefix("THINGS")
	viper.AutomaticEnv()

	if override := os.Getenv("THINGS_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	return NewConfig(viper.GetString("path"), viper.GetString("slot"))
}

// NewConfig builds a Config from explicit values, expanding a leading ~.
func NewConfig(path, slot string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("store: expand path %q: %w", path, err)
	}
	if slot == "" {
		slot = DefaultSlot
	}
	return &fileConfig{Path: expanded, SlotName: slot}, nil
}

type fileConfig struct {
	Path     string `json:"path"`
	SlotName string `json:"slot"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Slot() string {
	return f.SlotName
}
