//go:build !(linux || darwin || freebsd || openbsd || netbsd)

package sysinfo

import (
	"os"
	"runtime"
)

func fillPlatform(info *Info) {
	info.Hostname, _ = os.Hostname()
	info.Machine = runtime.GOARCH
}
