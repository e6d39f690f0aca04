//go:build linux

package grover

import "golang.org/x/sys/unix"

// hostMemory returns total physical memory in bytes, or zero if sysinfo fails.
func hostMemory() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}

	return uint64(info.Totalram) * uint64(info.Unit)
}
