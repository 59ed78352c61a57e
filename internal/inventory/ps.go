package inventory

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// On both linux and osx the first six columns of ps aux output are
// USER PID %CPU %MEM VSZ RSS, with RSS in kilobytes.
const (
	psPidCol = 1
	psRssCol = 5
)

// PS samples process memory by invoking `ps aux`.
type PS struct{}

// Snapshot runs ps and parses one Entry per process row.
func (PS) Snapshot() ([]Entry, error) {
	out, err := exec.Command("ps", "aux").Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return parsePS(out)
}

// parsePS decodes ps aux output, skipping the header row.
func parsePS(out []byte) ([]Entry, error) {
	lines := strings.Split(string(out), "\n")

	var entries []Entry
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) <= psRssCol {
			return nil, fmt.Errorf("malformed ps row %q", line)
		}
		pid, err := strconv.Atoi(fields[psPidCol])
		if err != nil {
			return nil, fmt.Errorf("parsing pid in ps row %q: %w", line, err)
		}
		rss, err := strconv.ParseFloat(fields[psRssCol], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing rss in ps row %q: %w", line, err)
		}
		entries = append(entries, Entry{PID: pid, RSSKb: rss})
	}
	return entries, nil
}
