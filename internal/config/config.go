package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFormat is the output line format of the text reporter, in the
// same placeholder style the original tool uses.
const DefaultFormat = "{source}:{line}:{col} [{severity}] {rule_id} {desc}"

var filenames = []string{".roblint.yml", ".roblint.yaml", "roblint.toml"}

type Config struct {
	Include   []string `yaml:"include" toml:"include"`
	Exclude   []string `yaml:"exclude" toml:"exclude"`
	Ignore    []string `yaml:"ignore" toml:"ignore"`
	Configure []string `yaml:"configure" toml:"configure"`
	Format    string   `yaml:"format" toml:"format"`
	Output    string   `yaml:"output" toml:"output"`
	FileTypes []string `yaml:"filetypes" toml:"filetypes"`
	Reports   []string `yaml:"reports" toml:"reports"`
	Threshold string   `yaml:"threshold" toml:"threshold"`
	Jobs      int      `yaml:"jobs" toml:"jobs"`
}

func Default() *Config {
	return &Config{
		Format:    DefaultFormat,
		Output:    "text",
		FileTypes: []string{".robot", ".resource", ".txt"},
	}
}

// Load reads a configuration file, yaml or toml depending on the file
// extension, on top of the defaults.
func Load(file string) (*Config, error) {
	buf, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "read configuration")
	}
	cfg := Default()
	switch ext := filepath.Ext(file); ext {
	case ".toml":
		err = toml.Unmarshal(buf, cfg)
	case ".yml", ".yaml":
		err = yaml.Unmarshal(buf, cfg)
	default:
		err = errors.Errorf("unsupported configuration format %s", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", file)
	}
	return cfg, nil
}

// Discover walks from dir up to the filesystem root looking for the
// nearest configuration file. It returns an empty string when none
// exists.
func Discover(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, name := range filenames {
			file := filepath.Join(dir, name)
			if fi, err := os.Stat(file); err == nil && fi.Mode().IsRegular() {
				return file
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Accepts reports whether the file extension is one of the configured
// input types.
func (c *Config) Accepts(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	for _, ft := range c.FileTypes {
		if strings.EqualFold(ft, ext) {
			return true
		}
	}
	return false
}
