// Package sysinfo describes the machine a benchmark ran on.
package sysinfo

import (
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sys/cpu"
)

// Info is a snapshot of host facts that affect multiplication timings.
type Info struct {
	Hostname string
	OS       string
	Arch     string
	// Release is the kernel release, empty where unavailable.
	Release string
	// Machine is the hardware name reported by the kernel.
	Machine    string
	NumCPU     int
	GOMAXPROCS int
	GoVersion  string
	// Features lists the SIMD extensions the CPU reports.
	Features []string
}

// Collect gathers Info for the current process.
func Collect() Info {
	info := Info{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		GoVersion:  runtime.Version(),
		Features:   cpuFeatures(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil && bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}

	fillPlatform(&info)

	return info
}

// String formats info as a single "key=value" line.
func (i Info) String() string {
	var b strings.Builder

	b.WriteString("host=" + i.Hostname)
	b.WriteString(" os=" + i.OS + "/" + i.Arch)

	if i.Release != "" {
		b.WriteString(" kernel=" + i.Release)
	}

	b.WriteString(" cpus=")
	b.WriteString(strconv.Itoa(i.NumCPU))
	b.WriteString(" gomaxprocs=")
	b.WriteString(strconv.Itoa(i.GOMAXPROCS))
	b.WriteString(" go=" + i.GoVersion)

	if len(i.Features) > 0 {
		b.WriteString(" features=" + strings.Join(i.Features, ","))
	}

	return b.String()
}

// MarshalLogObject lets Info be logged with zap.Object.
func (i Info) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("host", i.Hostname)
	enc.AddString("os", i.OS)
	enc.AddString("arch", i.Arch)
	enc.AddString("release", i.Release)
	enc.AddString("machine", i.Machine)
	enc.AddInt("numcpu", i.NumCPU)
	enc.AddInt("gomaxprocs", i.GOMAXPROCS)
	enc.AddString("go", i.GoVersion)

	return enc.AddArray("features", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, f := range i.Features {
			arr.AppendString(f)
		}

		return nil
	}))
}

// Field returns info as a zap field named "host".
func (i Info) Field() zap.Field {
	return zap.Object("host", i)
}

func cpuFeatures() []string {
	var features []string

	add := func(name string, ok bool) {
		if ok {
			features = append(features, name)
		}
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		add("sse4.2", cpu.X86.HasSSE42)
		add("avx", cpu.X86.HasAVX)
		add("avx2", cpu.X86.HasAVX2)
		add("fma", cpu.X86.HasFMA)
		add("avx512f", cpu.X86.HasAVX512F)
	case "arm64":
		add("asimd", cpu.ARM64.HasASIMD)
		add("fphp", cpu.ARM64.HasFPHP)
		add("sve", cpu.ARM64.HasSVE)
	}

	return features
}
