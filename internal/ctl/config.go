package ctl

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/btreekit/btree"
	"github.com/pingcap/errors"
	"github.com/spf13/pflag"
)

const (
	defaultKeys   = "int"
	defaultFormat = "text"
	defaultTrace  = "info"
)

// Config is the configuration of btreectl. It may be read from a TOML file
// and is overridden by command line flags.
type Config struct {
	Tree   TreeConfig   `toml:"tree"`
	Output OutputConfig `toml:"output"`
	Trace  TraceConfig  `toml:"trace"`
}

// TreeConfig configures the tree under test.
type TreeConfig struct {
	Degree int    `toml:"degree"`
	Keys   string `toml:"keys"` // "int" or "string"
	Check  bool   `toml:"check"`
}

// OutputConfig configures what is written after the operations.
type OutputConfig struct {
	Format  string `toml:"format"` // "text", "brackets", "dot" or "none"
	Events  bool   `toml:"events"`
	Async   bool   `toml:"async-events"` // deliver events through a broadcaster
	Color   bool   `toml:"color"`
	Metrics bool   `toml:"metrics"`
}

// TraceConfig configures tracing of the tree package.
type TraceConfig struct {
	Level string `toml:"level"` // "debug", "info" or "error"
}

// DefaultConfig returns a configuration with all values set to defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Adjust(nil)
	return cfg
}

// LoadConfig reads a TOML configuration file. Values not present in the
// file are set to defaults. Unknown items are an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		items := make([]string, len(undecoded))
		for i, key := range undecoded {
			items[i] = key.String()
		}
		return nil, errors.Errorf("config contains undefined items: %s", strings.Join(items, ", "))
	}
	cfg.Adjust(&meta)
	return cfg, nil
}

// Adjust fills in defaults for values not defined in a configuration file.
// meta may be nil, meaning that nothing has been defined. Values defined
// explicitly are kept as they are, to be checked by Validate.
func (c *Config) Adjust(meta *toml.MetaData) {
	if !isDefined(meta, "tree", "degree") {
		c.Tree.Degree = btree.DefaultDegree
	}
	if !isDefined(meta, "tree", "check") {
		c.Tree.Check = true
	}
	if !isDefined(meta, "output", "color") {
		c.Output.Color = true
	}
	adjustString(&c.Tree.Keys, defaultKeys)
	adjustString(&c.Output.Format, defaultFormat)
	adjustString(&c.Trace.Level, defaultTrace)
}

// AdjustFlags overrides configuration values with flags explicitly set on
// the command line.
func (c *Config) AdjustFlags(flags *pflag.FlagSet) {
	if flags.Changed("degree") {
		c.Tree.Degree, _ = flags.GetInt("degree")
	}
	if flags.Changed("keys") {
		c.Tree.Keys, _ = flags.GetString("keys")
	}
	if flags.Changed("check") {
		c.Tree.Check, _ = flags.GetBool("check")
	}
	if flags.Changed("format") {
		c.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("events") {
		c.Output.Events, _ = flags.GetBool("events")
	}
	if flags.Changed("async-events") {
		c.Output.Async, _ = flags.GetBool("async-events")
	}
	if flags.Changed("no-color") {
		noColor, _ := flags.GetBool("no-color")
		c.Output.Color = !noColor
	}
	if flags.Changed("metrics") {
		c.Output.Metrics, _ = flags.GetBool("metrics")
	}
	if flags.Changed("trace") {
		c.Trace.Level, _ = flags.GetString("trace")
	}
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	if c.Tree.Degree < btree.MinDegree {
		return errors.Errorf("degree must be at least %d, is %d", btree.MinDegree, c.Tree.Degree)
	}
	switch c.Tree.Keys {
	case "int", "string":
	default:
		return errors.Errorf("unknown key type %q", c.Tree.Keys)
	}
	switch c.Output.Format {
	case "text", "brackets", "dot", "none":
	default:
		return errors.Errorf("unknown output format %q", c.Output.Format)
	}
	if _, err := traceLevel(c.Trace.Level); err != nil {
		return err
	}
	return nil
}

func isDefined(meta *toml.MetaData, key ...string) bool {
	return meta != nil && meta.IsDefined(key...)
}

func adjustString(v *string, defValue string) {
	if len(*v) == 0 {
		*v = defValue
	}
}
