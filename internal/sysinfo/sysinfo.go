// Package sysinfo collects information about the running system for
// provenance records written into cook histories and dataset histories.
package sysinfo

import (
	"os"
	"os/user"
	"runtime"
	"time"
)

// Version is the datachef release stamped into provenance records.
const Version = "0.2.0"

// Info describes the system a computation ran on.
type Info struct {
	Package   string `yaml:"package" json:"package"`
	Version   string `yaml:"version" json:"version"`
	GoVersion string `yaml:"go_version" json:"goVersion"`
	Platform  string `yaml:"platform" json:"platform"`
	Hostname  string `yaml:"hostname" json:"hostname"`
	User      string `yaml:"user" json:"user"`
	Timestamp string `yaml:"timestamp" json:"timestamp"`
}

// Collect gathers system information at the time of the call.
func Collect() Info {
	info := Info{
		Package:   "datachef",
		Version:   Version,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if hostname, err := os.Hostname(); err == nil {
		info.Hostname = hostname
	}
	if u, err := user.Current(); err == nil {
		info.User = u.Username
	}
	return info
}
