package proctree

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/artyom/exitstatus"
)

// Status describes how the direct child terminated.
type Status struct {
	// Code is the exit code for a normal exit.
	Code int
	// Signal is set when the child was killed by a signal.
	Signal syscall.Signal
	// Signaled distinguishes signal death from a normal exit.
	Signaled bool
}

// ExitCode renders the status as a shell-style exit code: the child's own
// code for a normal exit, 128+N for death by signal N.
func (s Status) ExitCode() int {
	if s.Signaled {
		return 128 + int(s.Signal)
	}
	return s.Code
}

func (s Status) String() string {
	if s.Signaled {
		return fmt.Sprintf("signal: %v", s.Signal)
	}
	return fmt.Sprintf("exit code %d", s.Code)
}

// Child is a launched process tree root plus the read end of its tracking
// pipe.
type Child struct {
	cmd     *exec.Cmd
	pipeR   *os.File
	waitErr error
}

// PID returns the direct child's process id.
func (c *Child) PID() int {
	return c.cmd.Process.Pid
}

// Launch starts command with args as a new process tree root. The child
// gets the caller's standard streams untouched plus the write end of a
// fresh pipe on fd 3; the parent closes its own copy of the write end
// immediately, so after Launch the tree's processes are the only holders.
func Launch(command string, args []string) (*Child, error) {
	pipeR, pipeW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("creating tracking pipe: %w", err)
	}

	cmd := exec.Command(command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.ExtraFiles = []*os.File{pipeW}

	if err := cmd.Start(); err != nil {
		pipeR.Close()
		pipeW.Close()
		return nil, fmt.Errorf("starting %s: %w", command, err)
	}

	// Keeping a write end here would stop the pipe from ever reporting
	// all-writers-closed.
	pipeW.Close()

	return &Child{cmd: cmd, pipeR: pipeR}, nil
}

// Wait blocks until the direct child and all of its descendants have
// exited, then reports the direct child's termination status. Two blocking
// phases, strictly ordered: reap the child, then read the tracking pipe.
func (c *Child) Wait() (Status, error) {
	c.waitErr = c.cmd.Wait()

	// Nothing ever writes to the pipe, so this read returns only once the
	// last write-end holder is gone. It runs regardless of how the direct
	// child went down.
	buf := make([]byte, 1)
	if _, err := c.pipeR.Read(buf); err != nil && err != io.EOF {
		c.pipeR.Close()
		return Status{}, fmt.Errorf("waiting for descendants: %w", err)
	}
	c.pipeR.Close()

	return decode(c.cmd.ProcessState, c.waitErr)
}

// Reason renders the child's termination in human-readable form, for the
// status line printed on non-zero exits. Only meaningful after Wait.
func (c *Child) Reason() string {
	return exitstatus.Reason(c.waitErr)
}

// Stats renders the direct child's CPU time and max RSS from its rusage.
// Only meaningful after Wait.
func (c *Child) Stats() string {
	return exitstatus.Stats(c.cmd.ProcessState)
}

// decode translates a Wait error and process state into a Status.
func decode(state *os.ProcessState, waitErr error) (Status, error) {
	if waitErr == nil {
		return Status{Code: state.ExitCode()}, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		return Status{}, fmt.Errorf("waiting for child: %w", waitErr)
	}
	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return Status{Code: exitErr.ExitCode()}, nil
	}
	if ws.Signaled() {
		return Status{Signal: ws.Signal(), Signaled: true}, nil
	}
	return Status{Code: ws.ExitStatus()}, nil
}
