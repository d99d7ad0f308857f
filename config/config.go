// Package config reads the optional poster configuration file.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/asaskevich/govalidator"
)

// DefaultLocation is where the command looks when no file is given
const DefaultLocation = "poster.toml"

// Config holds defaults for the command line flags
type Config struct {
	Database string `toml:"database"`
	Format   string `toml:"format" valid:"in(json|binary)"`
	Strict   bool   `toml:"strict"`
	Colors   int    `toml:"colors" valid:"range(1|255)"`
	Dither   bool   `toml:"dither"`
	Scale    int    `toml:"scale" valid:"range(1|64)"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Database: "poster.db",
		Format:   "json",
		Colors:   255,
		Scale:    1,
	}
}

// ValidateFields validates all the fields of the config
func (c Config) ValidateFields() error {
	_, err := govalidator.ValidateStruct(c)
	return err
}

// Decode parses a configuration from s on top of the defaults
func Decode(s string) (Config, error) {
	c := Default()
	if _, err := toml.Decode(s, &c); err != nil {
		return Config{}, err
	}
	if err := c.ValidateFields(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Read parses the configuration file on top of the defaults
func Read(file string) (Config, error) {
	c := Default()
	if _, err := toml.DecodeFile(file, &c); err != nil {
		return Config{}, err
	}
	if err := c.ValidateFields(); err != nil {
		return Config{}, err
	}
	return c, nil
}
