package memory

import (
	"strings"
	"testing"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
)

func testChecker() *Checker {
	return &Checker{
		Usage: check.Threshold{Metric: "mem.usage", Warning: 80, Critical: 90, Direction: check.DirectionAbove},
		Swap:  check.Threshold{Metric: "mem.swap", Warning: 25, Critical: 50, Direction: check.DirectionAbove},
	}
}

func TestUsageResultClassification(t *testing.T) {
	cases := []struct {
		name string
		pct  float64
		want check.Status
	}{
		{name: "healthy", pct: 42.0, want: check.StatusOK},
		{name: "above warning", pct: 85.0, want: check.StatusWarning},
		{name: "above critical", pct: 95.0, want: check.StatusCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vm := &mem.VirtualMemoryStat{
				Total:       16 << 30,
				Used:        uint64(float64(16<<30) * tc.pct / 100),
				Available:   uint64(float64(16<<30) * (100 - tc.pct) / 100),
				UsedPercent: tc.pct,
			}
			got := testChecker().usageResult(vm)
			if got.Status != tc.want {
				t.Fatalf("unexpected status: got %s want %s", got.Status, tc.want)
			}
			if !strings.Contains(got.Message, "used") {
				t.Fatalf("unexpected message: %q", got.Message)
			}
		})
	}
}

func TestSwapResultWithoutSwap(t *testing.T) {
	got := testChecker().swapResult(&mem.SwapMemoryStat{})
	if got.Status != check.StatusInfo {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusInfo)
	}
	if got.Message != "no swap configured" {
		t.Fatalf("unexpected message: %q", got.Message)
	}
}

func TestSwapResultClassification(t *testing.T) {
	sw := &mem.SwapMemoryStat{
		Total:       4 << 30,
		Used:        2 << 30,
		UsedPercent: 50.5,
	}
	got := testChecker().swapResult(sw)
	if got.Status != check.StatusCritical {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusCritical)
	}
}
