package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/artyom/autoflags"
)

// Config holds the parsed command-line configuration
type Config struct {
	// Command is the executable to run
	Command string
	// Args are the arguments to pass to the command
	Args []string
	// Interval is the period between memory samples
	Interval time.Duration
	// UseProc selects the /proc snapshot source instead of invoking ps
	UseProc bool
	// Verbose enables per-sample logging and the child rusage summary
	Verbose bool
}

const usageHeader = `Run a command and monitor total resident memory while it runs.

usage: %[1]s [flags] COMMAND [ARGS...]

%[1]s starts COMMAND with the caller's standard streams attached, samples
the RSS of every process visible on the host on a fixed interval while
COMMAND and all of its descendants run, and prints the peak total to
stderr once the whole process tree has exited. COMMAND's exit status
becomes the exit status of %[1]s.

Standard input and output are passed straight through, so a here-document
works:

  %[1]s bash << EOF
  echo "hi from bash"
  sleep 5
  echo "bye from bash"
  EOF

flags:
`

// ParseArgs parses command-line arguments and returns a Config.
// Expected format: program_name [flags] COMMAND [ARGS...]
// Flag parsing stops at the first positional argument, so COMMAND's own
// flags are never consumed here.
func ParseArgs(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, errors.New("no arguments provided")
	}

	opts := struct {
		Interval time.Duration `flag:"interval,period between memory samples"`
		UseProc  bool          `flag:"proc,read /proc/[pid]/statm instead of invoking ps"`
		Verbose  bool          `flag:"v,log each sample and the child's rusage on exit"`
	}{
		Interval: time.Second,
	}

	prog := filepath.Base(args[0])
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	autoflags.DefineFlagSet(fs, &opts)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), usageHeader, prog)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return nil, errors.New("no command given")
	}
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("sampling interval must be positive, got %v", opts.Interval)
	}

	rest := fs.Args()
	return &Config{
		Command:  rest[0],
		Args:     rest[1:],
		Interval: opts.Interval,
		UseProc:  opts.UseProc,
		Verbose:  opts.Verbose,
	}, nil
}

// FullCommand returns the command and all its arguments as a slice
func (c *Config) FullCommand() []string {
	return append([]string{c.Command}, c.Args...)
}
