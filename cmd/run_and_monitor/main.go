// run_and_monitor runs a command, waits for the command and every process
// it transitively spawned to exit, then reports the peak total resident
// memory observed while the tree ran and exits with the command's status.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"run_and_monitor/internal/config"
	"run_and_monitor/internal/inventory"
	"run_and_monitor/internal/proctree"
	"run_and_monitor/internal/sampler"
)

func init() { log.SetFlags(0); log.SetPrefix(filepath.Base(os.Args[0]) + ": ") }

func main() {
	code, err := run()
	if errors.Is(err, flag.ErrHelp) {
		// Usage already printed by the flag set.
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	cfg, err := config.ParseArgs(os.Args)
	if err != nil {
		return 0, err
	}

	// Fresh shared state per run: the sampler goroutine is the only writer,
	// this goroutine reads once the whole tree is gone.
	peak := sampler.NewPeak()

	var src inventory.Source = inventory.PS{}
	if cfg.UseProc {
		src = inventory.Proc{}
	}
	smp := sampler.New(src, peak, cfg.Interval)
	smp.Verbose = cfg.Verbose

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	smp.Start(ctx)

	child, err := proctree.Launch(cfg.Command, cfg.Args)
	if err != nil {
		// Nothing to wait on, nothing to report.
		return 0, err
	}

	status, err := child.Wait()
	if err != nil {
		return 0, err
	}

	// The whole tree is gone; join the sampler so an in-flight snapshot
	// still lands before the peak is read.
	smp.Stop()

	report(os.Stderr, peak.Value())
	if cfg.Verbose {
		log.Printf("child %d: %s", child.PID(), child.Stats())
	}

	if code := status.ExitCode(); code != 0 {
		fmt.Fprintf(os.Stderr, "Child exited with status: %s\n", child.Reason())
		return code, nil
	}
	return 0, nil
}

// report prints the fixed-format peak memory summary.
func report(w io.Writer, peakMB float64) {
	fmt.Fprintln(w, "----------------------")
	fmt.Fprintf(w, "Max memory use: %.3fMb\n", peakMB)
	fmt.Fprintln(w, "----------------------")
}
