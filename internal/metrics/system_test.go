package metrics

import "testing"

func TestSampleSystem_ReturnsValidRanges(t *testing.T) {
	s := SampleSystem()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
	if s.LogicalCPU < 1 {
		t.Errorf("LogicalCPU = %d, want >= 1", s.LogicalCPU)
	}
}
