package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// FindLatestProject returns the most recently modified project file
// (.yaml or .yml) in dir.
func FindLatestProject(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower(f.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no project files found in %s", dir)
	}
	return latestFile, nil
}

// HostSummary describes the machine renders run on, for the stats
// report. Probe failures degrade to a partial line rather than failing
// the report.
func HostSummary() string {
	var parts []string

	if info, err := host.Info(); err == nil {
		parts = append(parts, fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion))
	}
	if n, err := cpu.Counts(true); err == nil {
		parts = append(parts, fmt.Sprintf("%d threads", n))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		parts = append(parts, fmt.Sprintf("%.1f GB RAM", float64(vm.Total)/(1<<30)))
	}

	if len(parts) == 0 {
		return "host info unavailable"
	}
	return strings.Join(parts, " | ")
}
