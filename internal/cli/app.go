// Package cli contains the console application handlers.
package cli

import (
	"context"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/growdashtech/webpconvert/internal/breaker"
	"github.com/growdashtech/webpconvert/internal/env"
	"github.com/growdashtech/webpconvert/internal/logger"
	"github.com/growdashtech/webpconvert/internal/version"
)

// Application flag names.
const (
	prefixFlagName    = "prefix"
	suffixFlagName    = "suffix"
	qualityFlagName   = "quality"
	recursiveFlagName = "recursive"
	muteFlagName      = "mute"
	threadsFlagName   = "threads"
	losslessFlagName  = "lossless"
	configFlagName    = "config"
	logLevelFlagName  = "log-level"
)

// NewApp creates new console application.
func NewApp() *cli.App { //nolint:funlen
	return &cli.App{
		Name:            "webpconvert",
		Usage:           "CLI tool for converting JPEG and PNG images into the WebP format",
		ArgsUsage:       "[source] [target]",
		HideHelpCommand: true, // the positional arguments are paths, not sub-commands
		Before: func(c *cli.Context) error {
			if _, exists := env.ForceColors.Lookup(); exists {
				color.NoColor = false

				pterm.EnableColor()
			} else if _, exists = env.NoColors.Lookup(); exists {
				color.NoColor = true

				pterm.DisableColor()
			} else if v, ok := env.Term.Lookup(); ok && v == "dumb" {
				color.NoColor = true

				pterm.DisableColor()
			} else if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				color.NoColor = true

				pterm.DisableColor()
			}

			return nil
		},
		Action: func(c *cli.Context) error {
			var opts = newOptionsWithDefaults()

			if err := opts.UpdateFromConfigFile(c.String(configFlagName)); err != nil {
				return err
			}

			if c.IsSet(prefixFlagName) {
				opts.Prefix = c.String(prefixFlagName)
			}

			if c.IsSet(suffixFlagName) {
				opts.Suffix = c.String(suffixFlagName)
			}

			if c.IsSet(qualityFlagName) {
				opts.SetQualityFromString(c.String(qualityFlagName))
			}

			if c.IsSet(threadsFlagName) {
				opts.ThreadsCount = c.Uint(threadsFlagName)
			}

			if c.IsSet(losslessFlagName) {
				opts.Lossless = c.Bool(losslessFlagName)
			}

			opts.Recursive = c.Bool(recursiveFlagName)
			opts.Mute = c.Bool(muteFlagName)

			if err := opts.Validate(); err != nil {
				return err
			}

			var log logger.Logger

			if opts.Mute {
				log = logger.NewNop()

				pterm.DisableOutput()
			} else {
				lvl, lvlErr := logger.ParseLevel(c.String(logLevelFlagName))
				if lvlErr != nil {
					return lvlErr
				}

				log = logger.New(lvl,
					logger.WithStdOut(colorable.NewColorableStdout()),
					logger.WithStdErr(colorable.NewColorableStderr()),
				)
			}

			var source, target = c.Args().Get(0), c.Args().Get(1)

			if source == "" {
				source = "."
			}

			if target == "" {
				target = source
			}

			var (
				ctx, cancel = context.WithCancel(c.Context) // main context creation
				oss         = breaker.NewOSSignals(ctx)     // OS signals listener
			)

			oss.Subscribe(func(sig os.Signal) {
				log.Warn("Stopping by OS signal..", "signal="+sig.String())

				cancel()
			})

			defer func() {
				cancel()   // call the cancellation function after all for "service" goroutines stopping
				oss.Stop() // stop system signals listening
			}()

			return run(ctx, log, opts, source, target)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    prefixFlagName,
				Aliases: []string{"p"},
				Usage:   "output file name prefix",
				EnvVars: []string{env.Prefix.String()},
			},
			&cli.StringFlag{
				Name:    suffixFlagName,
				Aliases: []string{"s"},
				Usage:   "output file name suffix (inserted before the extension)",
				EnvVars: []string{env.Suffix.String()},
			},
			&cli.StringFlag{
				Name:    qualityFlagName,
				Aliases: []string{"q"},
				Usage:   "conversion quality (0-100; a malformed value falls back to the default one)",
				Value:   "80",
				EnvVars: []string{env.Quality.String()},
			},
			&cli.BoolFlag{
				Name:    recursiveFlagName,
				Aliases: []string{"r"},
				Usage:   "walk the source directory recursively (enabled regardless, kept for compatibility)",
			},
			&cli.BoolFlag{
				Name:    muteFlagName,
				Aliases: []string{"m"},
				Usage:   "disable any output",
			},
			&cli.UintFlag{
				Name:    threadsFlagName,
				Aliases: []string{"t"},
				Usage:   "number of files converted at the same time",
				Value:   uint(runtime.NumCPU()),
				EnvVars: []string{env.ThreadsCount.String()},
			},
			&cli.BoolFlag{
				Name:  losslessFlagName,
				Usage: "use the lossless WebP encoding (the quality value is ignored)",
			},
			&cli.StringFlag{
				Name:    configFlagName,
				Aliases: []string{"c"},
				Usage:   "path to the configuration file",
				Value:   "./webpconvert.yml",
				EnvVars: []string{env.ConfigFile.String()},
			},
			&cli.StringFlag{
				Name:    logLevelFlagName,
				Usage:   "logging level (debug|info|warn|error)",
				Value:   logger.InfoLevel.String(),
				EnvVars: []string{env.LogLevel.String()},
			},
		},
		Version: version.Version(),
	}
}

// Run creates the application and executes it with the given command line arguments.
func Run(ctx context.Context, args []string) error {
	var app = NewApp()

	return app.RunContext(ctx, reorderArgs(app, args))
}

// reorderArgs moves the option tokens (together with their values) in front of the positional
// arguments. The flags parser stops at the first positional argument, while the tool historically
// accepts `webpconvert [source] [target] [options]`.
func reorderArgs(app *cli.App, args []string) []string {
	if len(args) < 2 {
		return args
	}

	// flag name (with dashes) -> the flag consumes the following token as its value
	var takesValue = map[string]bool{
		"-h": false, "--help": false,
		"-v": false, "--version": false,
	}

	for _, f := range app.Flags {
		_, isBool := f.(*cli.BoolFlag)

		for _, name := range f.Names() {
			if len(name) == 1 {
				takesValue["-"+name] = !isBool
			} else {
				takesValue["-"+name], takesValue["--"+name] = !isBool, !isBool
			}
		}
	}

	var flags, positional = append(make([]string, 0, len(args)), args[0]), make([]string, 0, 2)

	for i := 1; i < len(args); i++ {
		var arg = args[i]

		switch {
		case arg == "--": // everything after the terminator is positional
			flags = append(flags, arg)
			positional = append(positional, args[i+1:]...)
			i = len(args)

		case strings.HasPrefix(arg, "-") && arg != "-":
			flags = append(flags, arg)

			if name, _, hasValue := strings.Cut(arg, "="); !hasValue && takesValue[name] && i+1 < len(args) {
				flags = append(flags, args[i+1])
				i++
			}

		default:
			positional = append(positional, arg)
		}
	}

	return append(flags, positional...)
}
