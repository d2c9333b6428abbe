package bootstrap

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the config file probed in the working directory when no
// explicit path is supplied.
const DefaultFileName = "postindex.toml"

// FileConfig mirrors the postindex.toml document.
type FileConfig struct {
	PostsRoot      string            `toml:"posts_root"`
	Filename       string            `toml:"filename"`
	Output         string            `toml:"output"`
	Workers        int               `toml:"workers"`
	WordsPerMinute int               `toml:"words_per_minute"`
	Logging        FileLoggingConfig `toml:"logging"`
}

// FileLoggingConfig mirrors the [logging] table.
type FileLoggingConfig struct {
	Level string `toml:"level"`
}

// LoadFileConfig reads CLI defaults from a TOML file. A blank path probes for
// postindex.toml in the working directory and yields an empty config when the
// file is absent; explicit paths must exist.
func LoadFileConfig(path string) (FileConfig, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, err
	}

	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Apply copies file values onto flags the caller left unset. Explicit command
// line flags always win over file configuration; flags the set does not define
// are skipped.
func (c FileConfig) Apply(fs *flag.FlagSet) error {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	assign := func(name, value string) error {
		if value == "" || set[name] || fs.Lookup(name) == nil {
			return nil
		}
		return fs.Set(name, value)
	}

	if err := assign("posts-root", c.PostsRoot); err != nil {
		return err
	}
	if err := assign("filename", c.Filename); err != nil {
		return err
	}
	if err := assign("output", c.Output); err != nil {
		return err
	}
	if c.Workers > 0 {
		if err := assign("workers", strconv.Itoa(c.Workers)); err != nil {
			return err
		}
	}
	if c.WordsPerMinute > 0 {
		if err := assign("words-per-minute", strconv.Itoa(c.WordsPerMinute)); err != nil {
			return err
		}
	}
	return assign("log-level", c.Logging.Level)
}
