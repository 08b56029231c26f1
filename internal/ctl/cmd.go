/*
Package ctl implements the commands of btreectl, a command line tool to
exercise B-tree operations and watch the structural changes they cause.
*/
package ctl

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-faker/faker/v4"
	"github.com/npillmayer/btreekit/btree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

// Version is set at link time.
var Version = "dev"

func init() {
	cobra.EnablePrefixMatching = true
}

// NewRootCommand creates the btreectl command with all its subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "btreectl",
		Short:         "Exercise B-tree operations and watch structural changes",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "path of TOML configuration file")
	flags.IntP("degree", "d", btree.DefaultDegree, "minimum degree of the tree")
	flags.String("keys", defaultKeys, "key type: int or string")
	flags.Bool("check", true, "verify invariants after every modification")
	flags.StringP("format", "f", defaultFormat, "output format: text, brackets, dot or none")
	flags.BoolP("events", "e", false, "log structural changes")
	flags.Bool("async-events", false, "collect structural changes asynchronously and log them after the operations")
	flags.Bool("no-color", false, "disable colored output")
	flags.Bool("metrics", false, "write Prometheus metrics after the operations")
	flags.String("trace", defaultTrace, "trace level: debug, info or error")

	rootCmd.AddCommand(
		newRunCommand(),
		newScriptCommand(),
		newSeedCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs btreectl with the given arguments and exits on failure.
func Execute(args []string) {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run -- OP...",
		Short: "Apply operations +key (insert), -key (delete) and ?key (search)",
		Long: `Apply operations +key (insert), -key (delete) and ?key (search) in order.
Use "--" to separate the operations from flags, as deletions start with '-'.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := parseOperations(args)
			if err != nil {
				return err
			}
			return execute(cmd, ops, false)
		},
	}
}

func newScriptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "script FILE",
		Short: "Apply operations read from a file",
		Long: `Apply operations read from a file, one command per line:
  insert KEY...   delete KEY...   search KEY...
  print   dot   check   clear
Lines may also hold operations as for the run command. Lines starting
with '#' are comments.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.WithStack(err)
			}
			defer f.Close()
			ops, err := parseScript(f)
			if err != nil {
				return errors.Annotate(err, args[0])
			}
			return execute(cmd, ops, false)
		},
	}
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a string-keyed tree with generated words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, _ := cmd.Flags().GetInt("records")
			deletes, _ := cmd.Flags().GetInt("deletes")
			if records < 0 || deletes < 0 || deletes > records {
				return errors.Errorf("invalid seed sizes: records=%d deletes=%d", records, deletes)
			}
			words := make([]string, records)
			ops := make([]operation, 0, records+deletes)
			for i := range words {
				words[i] = faker.Word() + faker.Word()
				ops = append(ops, operation{kind: opInsert, arg: words[i]})
			}
			for _, w := range words[:deletes] {
				ops = append(ops, operation{kind: opDelete, arg: w})
			}
			cmd.Flags().Set("keys", "string")
			return execute(cmd, ops, true)
		},
	}
	cmd.Flags().IntP("records", "n", 1000, "number of records to insert")
	cmd.Flags().Int("deletes", 0, "number of inserted records to delete again")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("btreectl", Version)
		},
	}
}

// execute applies ops to a new tree configured from file and flags. If
// quiet is set, only a summary is reported instead of a line per
// operation.
func execute(cmd *cobra.Command, ops []operation, quiet bool) error {
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	s, err := newSession(cfg, out, quiet)
	if err != nil {
		return err
	}
	for _, op := range ops {
		if err := s.apply(op); err != nil {
			return err
		}
	}
	if quiet {
		st := s.stats()
		fmt.Fprintf(out, "inserted=%d duplicates=%d deleted=%d missing=%d\n",
			st.inserted, st.duplicates, st.deleted, st.missing)
	}
	return s.finish()
}

func configFromFlags(cmd *cobra.Command) (*Config, error) {
	flags := cmd.Flags()
	var cfg *Config
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	} else {
		cfg = DefaultConfig()
	}
	cfg.AdjustFlags(flags)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	setTraceLevel(cfg.Trace.Level)
	return cfg, nil
}

func traceLevel(name string) (func(tracing.Trace), error) {
	switch strings.ToLower(name) {
	case "debug":
		return func(t tracing.Trace) { t.SetTraceLevel(tracing.LevelDebug) }, nil
	case "info":
		return func(t tracing.Trace) { t.SetTraceLevel(tracing.LevelInfo) }, nil
	case "error":
		return func(t tracing.Trace) { t.SetTraceLevel(tracing.LevelError) }, nil
	}
	return nil, errors.Errorf("unknown trace level %q", name)
}

// setTraceLevel routes the traces of the tree packages to the core tracer
// and sets its trace level.
func setTraceLevel(name string) {
	set, err := traceLevel(name)
	if err != nil || gtrace.CoreTracer == nil {
		return
	}
	core := gtrace.CoreTracer
	set(core)
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace {
		return core
	}))
}
