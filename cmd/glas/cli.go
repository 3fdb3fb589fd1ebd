// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmbarbour/glas"
	"github.com/dmbarbour/glas/host"
	"github.com/dmbarbour/glas/loader"
	"github.com/dmbarbour/glas/valueref"
)

// exitCode carries the result of a --run invocation out past cobra's
// RunE, which only distinguishes "no error" from "some error": a
// successful halt can still want a nonzero process exit code.
var exitCode int

func newRootCmd() *cobra.Command {
	var (
		extractRef string
		runRef     string
		printRef   string
		arityRef   string
		home       string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "glas [verb args...]",
		Short:         "glas runs and inspects compiled glas module values",
		Version:       glas.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = 0
			selected := selectedFlags(extractRef, runRef, printRef, arityRef)
			if len(selected) == 0 {
				return cmd.Help()
			}
			if len(selected) > 1 {
				return errors.Errorf("glas: %s are mutually exclusive", joinFlags(selected))
			}

			sink, err := newLogger(verbose)
			if err != nil {
				return errors.Wrap(err, "glas: init logger")
			}
			defer sink.Sync()

			l, err := bootstrapLoader(home, sink)
			if err != nil {
				return errors.Wrap(err, "glas: bootstrap")
			}

			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "glas: getwd")
			}

			switch {
			case extractRef != "":
				return runExtract(l, cwd, extractRef)
			case printRef != "":
				return runPrint(l, cwd, printRef)
			case arityRef != "":
				return runArity(l, cwd, arityRef)
			case runRef != "":
				code, err := runRunLoop(l, cwd, runRef, args)
				if err != nil {
					return err
				}
				exitCode = code
				return nil
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&extractRef, "extract", "", "print a binary-typed value's bytes to stdout")
	cmd.Flags().StringVar(&runRef, "run", "", "run a program value; trailing args after -- become its input list")
	cmd.Flags().StringVar(&printRef, "print", "", "pretty-print a value")
	cmd.Flags().StringVar(&arityRef, "arity", "", "print a program value's inferred static arity")
	cmd.Flags().StringVar(&home, "home", "", "glas home directory (default: $GLAS_HOME or $HOME/.glas)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")

	return cmd
}

func selectedFlags(extractRef, runRef, printRef, arityRef string) []string {
	var out []string
	for _, f := range []struct{ name, val string }{
		{"--extract", extractRef},
		{"--run", runRef},
		{"--print", printRef},
		{"--arity", arityRef},
	} {
		if f.val != "" {
			out = append(out, f.name)
		}
	}
	return out
}

func joinFlags(flags []string) string {
	s := flags[0]
	for _, f := range flags[1:] {
		s += " and " + f
	}
	return s
}

// newLogger builds the CLI's structured logging sink. Development
// configuration's human-readable console encoder is used throughout:
// this CLI's audience is a developer's terminal, not a log aggregator.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

// glasHome resolves the home directory sources.tt is read from:
// --home, else $GLAS_HOME, else $HOME/.glas. This layering is not
// specified by name anywhere in the source material; it follows the
// common XDG-adjacent convention of an explicit flag overriding an
// environment variable overriding a fixed default under $HOME.
func glasHome(flagHome string) (string, error) {
	if flagHome != "" {
		return flagHome, nil
	}
	if env := os.Getenv("GLAS_HOME"); env != "" {
		return env, nil
	}
	hd, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user home directory")
	}
	return hd + string(os.PathSeparator) + ".glas", nil
}

// bootstrapLoader builds the g0 fixed-point loader over the configured
// global search path. A missing or unreadable sources.tt is not fatal:
// it just means the global search path is empty, which is the correct
// behavior for a glas home that has not been set up yet.
func bootstrapLoader(flagHome string, sink *zap.Logger) (*loader.Loader, error) {
	home, err := glasHome(flagHome)
	if err != nil {
		return nil, err
	}
	dirs, err := loader.GlobalSearchPath(home)
	if err != nil {
		sink.Debug("no global search path configured", zap.String("home", home), zap.Error(err))
		dirs = nil
	}
	return loader.Bootstrap(dirs, sink, host.New(sink))
}

func resolveRef(l *loader.Loader, cwd, raw string) (valueRefResult, error) {
	ref, err := valueref.Parse(raw)
	if err != nil {
		return valueRefResult{}, errors.Wrapf(err, "glas: parse ValueRef %q", raw)
	}
	v, err := valueref.Resolve(l, cwd, ref)
	if err != nil {
		return valueRefResult{}, errors.Wrapf(err, "glas: resolve %s", ref)
	}
	return valueRefResult{ref: ref, value: v}, nil
}
