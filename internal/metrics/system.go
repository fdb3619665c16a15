package metrics

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"
	gopsutilNet "github.com/shirou/gopsutil/net"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const (
	megabyte = 1024 * 1024
	gigabyte = 1024 * 1024 * 1024

	// cpuSampleInterval is the window cpu percent is measured over
	cpuSampleInterval = 100 * time.Millisecond
)

// SystemProvider reads host metrics through gopsutil
type SystemProvider struct {
	diskPath string

	probeOnce sync.Once
	available bool

	cpuPercent    func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	cpuCount      func(ctx context.Context, logical bool) (int, error)
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	diskUsage     func(ctx context.Context, path string) (*disk.UsageStat, error)
	netIO         func(ctx context.Context, pernic bool) ([]gopsutilNet.IOCountersStat, error)
}

// NewSystemProvider creates a gopsutil-backed provider reporting disk usage
// for diskPath.
func NewSystemProvider(diskPath string) *SystemProvider {
	if diskPath == "" {
		diskPath = "/"
	}
	return &SystemProvider{
		diskPath:      diskPath,
		cpuPercent:    cpu.PercentWithContext,
		cpuCount:      cpu.CountsWithContext,
		virtualMemory: mem.VirtualMemoryWithContext,
		diskUsage:     disk.UsageWithContext,
		netIO:         gopsutilNet.IOCountersWithContext,
	}
}

// Available implements Provider. The first call probes the host once.
func (p *SystemProvider) Available() bool {
	p.probeOnce.Do(func() {
		_, err := p.virtualMemory(context.Background())
		p.available = err == nil
	})
	return p.available
}

// Snapshot implements Provider. Readings are gathered concurrently; every
// reading that succeeded is kept even when another one failed, and the
// returned error names every failed reading.
func (p *SystemProvider) Snapshot(ctx context.Context) (Snapshot, error) {
	var (
		snap                  Snapshot
		cpuPercent            float64
		cpuCount              int
		memory                Memory
		diskInfo              Disk
		bytesSent, bytesRecv  uint64
		okCPU, okCount, okMem bool
		okDisk, okNet         bool
	)

	// A plain group: one failed reading must not cancel the others
	var (
		g     errgroup.Group
		errMu sync.Mutex
		errs  error
	)
	read := func(fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				errMu.Lock()
				errs = multierr.Append(errs, err)
				errMu.Unlock()
			}
			return nil
		})
	}

	read(func() error {
		usage, err := p.cpuPercent(ctx, cpuSampleInterval, false)
		if err != nil {
			return fmt.Errorf("failed to read cpu percent: %w", err)
		}
		if len(usage) > 0 {
			cpuPercent, okCPU = round2(usage[0]), true
		}
		return nil
	})

	read(func() error {
		n, err := p.cpuCount(ctx, true)
		if err != nil {
			return fmt.Errorf("failed to read cpu count: %w", err)
		}
		cpuCount, okCount = n, true
		return nil
	})

	read(func() error {
		vm, err := p.virtualMemory(ctx)
		if err != nil {
			return fmt.Errorf("failed to read memory: %w", err)
		}
		memory = Memory{
			UsedMB:      round2(float64(vm.Used) / megabyte),
			TotalMB:     round2(float64(vm.Total) / megabyte),
			AvailableMB: round2(float64(vm.Available) / megabyte),
			Percent:     round2(vm.UsedPercent),
		}
		okMem = true
		return nil
	})

	read(func() error {
		du, err := p.diskUsage(ctx, p.diskPath)
		if err != nil {
			return fmt.Errorf("failed to read disk usage of %s: %w", p.diskPath, err)
		}
		diskInfo = Disk{
			UsedGB:  round2(float64(du.Used) / gigabyte),
			FreeGB:  round2(float64(du.Free) / gigabyte),
			TotalGB: round2(float64(du.Total) / gigabyte),
			Percent: round2(du.UsedPercent),
		}
		okDisk = true
		return nil
	})

	read(func() error {
		counters, err := p.netIO(ctx, false)
		if err != nil {
			return fmt.Errorf("failed to read network counters: %w", err)
		}
		if len(counters) > 0 {
			bytesSent, bytesRecv, okNet = counters[0].BytesSent, counters[0].BytesRecv, true
		}
		return nil
	})

	_ = g.Wait()

	if okCPU {
		snap.CPUPercent = &cpuPercent
	}
	if okCount {
		snap.CPUCount = &cpuCount
	}
	if okMem {
		snap.Memory = &memory
	}
	if okDisk {
		snap.Disk = &diskInfo
	}
	if okNet {
		snap.NetworkBytesSent = &bytesSent
		snap.NetworkBytesRecv = &bytesRecv
	}
	return snap, errs
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
