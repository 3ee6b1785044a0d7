package metrics

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemStats holds a single snapshot of system-wide resource usage.
type SystemStats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	LogicalCPU int
	CPUModel   string
}

// SampleSystem collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Fields are left at their zero
// value when the platform does not report them.
func SampleSystem() SystemStats {
	s := SystemStats{LogicalCPU: runtime.NumCPU()}
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		s.CPUModel = infos[0].ModelName
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}
