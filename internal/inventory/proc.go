package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Proc samples process memory from /proc/[pid]/statm, for hosts without a
// usable ps binary. The second statm field is resident pages.
type Proc struct{}

// Snapshot walks /proc once and returns one Entry per live process.
// Processes that exit mid-walk are skipped, not errors.
func (Proc) Snapshot() ([]Entry, error) {
	dirs, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	pageKb := float64(unix.Getpagesize()) / 1024
	var entries []Entry
	for _, d := range dirs {
		pid, err := strconv.Atoi(d.Name())
		if err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join("/proc", d.Name(), "statm"))
		if err != nil {
			continue
		}
		fields := strings.Fields(string(data))
		if len(fields) < 2 {
			continue
		}
		pages, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{PID: pid, RSSKb: pages * pageKb})
	}
	return entries, nil
}
