//go:build linux || darwin || freebsd || openbsd || netbsd

package sysinfo

import (
	"os"

	"golang.org/x/sys/unix"
)

func fillPlatform(info *Info) {
	var uts unix.Utsname

	err := unix.Uname(&uts)
	if err != nil {
		info.Hostname, _ = os.Hostname()

		return
	}

	info.Hostname = unix.ByteSliceToString(uts.Nodename[:])
	info.Release = unix.ByteSliceToString(uts.Release[:])
	info.Machine = unix.ByteSliceToString(uts.Machine[:])
}
