package inventory

import (
	"os"
	"runtime"
	"testing"
)

func TestProcSnapshot(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("/proc inventory is linux-only")
	}

	entries, err := Proc{}.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}

	self := os.Getpid()
	for _, e := range entries {
		if e.PID == self {
			if e.RSSKb <= 0 {
				t.Errorf("own RSS = %v kB, want > 0", e.RSSKb)
			}
			return
		}
	}
	t.Errorf("Snapshot() did not include this process (pid %d)", self)
}
