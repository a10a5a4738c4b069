// Package cli parses the ferris command line.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings parsed from the command line.
type Config struct {
	ScriptPath string        // path to a .ferris file or a directory of scripts
	Check      bool          // compile only, report diagnostics, do not run
	Headless   bool          // run the update loop without a window
	Timeout    time.Duration // stop after this long (0 means unlimited)
	LogLevel   string        // debug, info, warn, error
	ShowHelp   bool
}

// ParseArgs parses command line arguments into a Config. Flags win over
// environment variables (HEADLESS, TIMEOUT, LOG_LEVEL).
func ParseArgs(args []string) (*Config, error) {
	// reorder so flags may appear after the positional script path
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("ferris", flag.ContinueOnError)

	config := &Config{}

	var timeoutSec int
	fs.IntVar(&timeoutSec, "timeout", 0, "stop after the given number of seconds")
	fs.IntVar(&timeoutSec, "t", 0, "stop after the given number of seconds (shorthand)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.BoolVar(&config.Check, "check", false, "compile only and report diagnostics")
	fs.BoolVar(&config.Headless, "headless", false, "run without a window")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// environment fallbacks, flags take precedence
	if !config.Headless {
		if headlessEnv := os.Getenv("HEADLESS"); headlessEnv != "" {
			config.Headless = headlessEnv == "1" || strings.ToLower(headlessEnv) == "true"
		}
	}

	if timeoutSec == 0 {
		if timeoutEnv := os.Getenv("TIMEOUT"); timeoutEnv != "" {
			if t, err := strconv.Atoi(timeoutEnv); err == nil && t > 0 {
				timeoutSec = t
			}
		}
	}

	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if fs.NArg() > 0 {
		config.ScriptPath = fs.Arg(0)
	}

	return config, nil
}

// reorderArgs moves flags in front of positional arguments so both
// orders work.
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	boolFlags := map[string]bool{
		"-h": true, "--help": true,
		"--headless": true,
		"--check":    true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)

			// a value flag consumes the next argument (-t 5)
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				if !boolFlags[arg] {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, arg)
		}
	}

	return append(flags, positional...)
}

// PrintHelp writes the usage message to stdout.
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `ferris - FerrisScript runner

Usage:
  ferris [options] [script-path]

Arguments:
  script-path   Path to a .ferris script, or a directory of scripts.
                Each script is attached to its own node in the scene.
                When omitted, the bundled example scripts run.

Options:
  --check                     Compile only and print diagnostics
  -t, --timeout <seconds>     Stop after the given number of seconds (default: unlimited)
  -l, --log-level <level>     Log level: debug, info, warn, error (default: info)
  --headless                  Run the update loop without a window
  -h, --help                  Show this help

Environment Variables:
  HEADLESS=1                  Enable headless mode
  TIMEOUT=<seconds>           Stop after the given number of seconds
  LOG_LEVEL=<level>           Log level

Examples:
  ferris player.ferris            Run one script in a window
  ferris scripts/                 Run every script in a directory
  ferris --check player.ferris    Type-check without running
  ferris --headless --timeout 5   Run windowless for five seconds
  LOG_LEVEL=debug ferris          Debug logs with the bundled examples
`)
}
