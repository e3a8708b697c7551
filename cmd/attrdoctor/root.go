package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errUnhealthy makes the process exit non-zero after a report was printed.
var errUnhealthy = errors.New("problems found")

type buildInfo struct {
	version string
	commit  string
	date    string
}

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath  string
	logLevel    string
	format      string
	noRecursive bool
	includeDirs bool
	exclusions  []string
	strict      bool
	verbose     bool
}

func newRootCmd(info buildInfo) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "attrdoctor",
		Short: "Diagnose and repair problematic file attributes",
		Long: `attrdoctor looks for file attributes that stop a mod manager from reading or
writing game files: compression, sparse, system and hidden flags on Windows,
inode attributes reported by lsattr on Linux.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: config.yaml in ., ./configs or the user config dir)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Console log level: debug, info, warning, error")
	flags.StringVar(&opts.format, "format", "", "Report format: text, json, yaml")
	flags.BoolVar(&opts.noRecursive, "no-recursive", false, "Only inspect the direct entries of directory arguments")
	flags.BoolVar(&opts.includeDirs, "include-dirs", false, "Also inspect directories")
	flags.StringArrayVar(&opts.exclusions, "exclude", nil, "Glob to skip, repeatable (e.g. --exclude '*.bak')")
	flags.BoolVar(&opts.strict, "strict", false, "Linux: only report immutable or append-only files")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "List healthy paths in text reports")

	cmd.AddCommand(newCheckCmd(opts), newFixCmd(opts), newVersionCmd(info))
	return cmd
}
