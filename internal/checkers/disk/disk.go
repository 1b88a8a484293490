package disk

import (
	"context"
	"fmt"

	psdisk "github.com/shirou/gopsutil/v4/disk"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/utils/format"
)

// Pseudo and memory-backed filesystems carry no capacity worth
// alerting on.
var skipFstypes = map[string]bool{
	"tmpfs":    true,
	"devtmpfs": true,
	"squashfs": true,
	"overlay":  true,
	"proc":     true,
	"sysfs":    true,
	"cgroup":   true,
	"cgroup2":  true,
	"debugfs":  true,
	"devpts":   true,
	"iso9660":  true,
	"autofs":   true,
	"efivarfs": true,
}

// Checker reports space and inode usage for every real mounted
// filesystem.
type Checker struct {
	Usage check.Threshold
	Inode check.Threshold
}

func (c *Checker) Name() string { return "Disk" }

func (c *Checker) Check(ctx context.Context) ([]check.Result, error) {
	parts, err := psdisk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}

	var results []check.Result
	seen := make(map[string]bool)
	for _, part := range parts {
		if skipFstypes[part.Fstype] || seen[part.Mountpoint] {
			continue
		}
		seen[part.Mountpoint] = true

		usage, err := psdisk.UsageWithContext(ctx, part.Mountpoint)
		if err != nil {
			results = append(results, check.Unavailable("disk."+part.Mountpoint+".usage", err.Error()))
			continue
		}
		if usage.Total == 0 {
			continue
		}
		results = append(results, c.usageResult(part.Mountpoint, usage))
		if inode, ok := c.inodeResult(part.Mountpoint, usage); ok {
			results = append(results, inode)
		}
	}

	if len(results) == 0 {
		results = append(results, check.Unavailable("disk", "no real filesystems found"))
	}
	return results, nil
}

func (c *Checker) usageResult(mount string, usage *psdisk.UsageStat) check.Result {
	return check.New("disk."+mount+".usage", c.Usage.Classify(usage.UsedPercent), format.Percent(usage.UsedPercent),
		fmt.Sprintf("%s %s of %s used (%s), %s free",
			mount, format.Bytes(usage.Used), format.Bytes(usage.Total),
			format.Percent(usage.UsedPercent), format.Bytes(usage.Free)))
}

func (c *Checker) inodeResult(mount string, usage *psdisk.UsageStat) (check.Result, bool) {
	if usage.InodesTotal == 0 {
		return check.Result{}, false
	}
	return check.New("disk."+mount+".inodes", c.Inode.Classify(usage.InodesUsedPercent),
		format.Percent(usage.InodesUsedPercent),
		fmt.Sprintf("%s %d of %d inodes used (%s)",
			mount, usage.InodesUsed, usage.InodesTotal, format.Percent(usage.InodesUsedPercent))), true
}
