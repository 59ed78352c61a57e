// Package proctree launches a command and detects when the command and
// every process it transitively spawned have all exited, without any
// cooperation from those processes.
//
// The mechanism is a pipe that is never written to. Launch hands the write
// end to the child as an extra inherited descriptor (fd 3). POSIX fork/exec
// semantics propagate open descriptors to every descendant the child
// creates, so the write end stays open for as long as any process in the
// tree is alive, unless a process goes out of its way to close fd 3. Once
// the last holder exits, a blocking read on the retained read end returns
// EOF, and only then.
//
// This inheritance is load-bearing: the technique requires the supervised
// command's process-creation path to pass descriptors through by default.
// That holds for ordinary fork/exec but not for spawn APIs that scrub
// inherited descriptors; trees built with such APIs are out of scope.
//
// Wait reaps the direct child first and reads the pipe second, in that
// order, on the calling goroutine. The read happens even when the child was
// killed by a signal: a dying child may leave grandchildren behind, and
// those still hold the write end. Only the direct child's exit status is
// reported; the design can prove nothing about how descendants fared.
package proctree
