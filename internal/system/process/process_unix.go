// Released under an MIT license. See LICENSE.

//go:build unix

// Package process reports facts about the running process on unix systems.
package process

import (
	"os"

	"golang.org/x/sys/unix"
)

//nolint:gochecknoglobals
var (
	Platform = "unix"

	// Umask sets and returns the current umask.
	Umask = unix.Umask
)

// Getenv returns the value of the environment variable k, if set.
func Getenv(k string) (string, bool) {
	return unix.Getenv(k)
}

// Hostname returns the node name reported by the kernel.
func Hostname() (string, error) {
	var u unix.Utsname

	if err := unix.Uname(&u); err != nil {
		return os.Hostname()
	}

	return unix.ByteSliceToString(u.Nodename[:]), nil
}

// Pid returns the process ID.
func Pid() int {
	return unix.Getpid()
}

// Ppid returns the parent process ID.
func Ppid() int {
	return unix.Getppid()
}

// Uid returns the real user ID.
func Uid() int { //nolint:revive,stylecheck
	return unix.Getuid()
}
