package util

import (
	"os"
	"runtime"
)

// HostInfo identifies the machine a batch runs on.
type HostInfo struct {
	Hostname string
	CPUs     int
	Platform string
}

// Host describes the current machine. The hostname is "unknown" when the OS
// does not report one.
func Host() HostInfo {
	name, err := os.Hostname()
	if err != nil || name == "" {
		name = "unknown"
	}
	return HostInfo{
		Hostname: name,
		CPUs:     runtime.NumCPU(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
}
