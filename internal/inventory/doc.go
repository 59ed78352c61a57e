// Package inventory enumerates every process visible to the host together
// with its resident set size.
//
// Two Source implementations exist: PS shells out to `ps aux` and parses
// its fixed leading columns, Proc reads /proc/[pid]/statm directly. PS is
// the default because inside a container it reports per-process memory the
// cgroup actually accounts for, where /proc/meminfo-style totals do not.
//
// Snapshots are point-in-time and never cached; callers re-query on every
// sampling tick.
package inventory
