// Package stats samples process resource usage during a generation run and
// logs a summary when stopped.
package stats

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

type sample struct {
	heapAlloc  uint64
	rss        uint64
	cpuPercent float64
	goroutines int
}

type Collector struct {
	mu      sync.Mutex
	samples []sample

	started  time.Time
	interval time.Duration
	proc     *process.Process

	stopChan chan struct{}
	doneChan chan struct{}
}

func NewCollector(interval time.Duration) (*Collector, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to get process info: %w", err)
	}

	return &Collector{
		interval: interval,
		proc:     proc,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}, nil
}

func (c *Collector) Start() {
	c.started = time.Now()
	go c.collect()
}

func (c *Collector) collect() {
	defer close(c.doneChan)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.sample()
	for {
		select {
		case <-c.stopChan:
			c.sample()
			return
		case <-ticker.C:
			c.sample()
		}
	}
}

func (c *Collector) sample() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	s := sample{
		heapAlloc:  memStats.HeapAlloc,
		goroutines: runtime.NumGoroutine(),
	}
	if memInfo, err := c.proc.MemoryInfo(); err == nil && memInfo != nil {
		s.rss = memInfo.RSS
	}
	if cpuPercent, err := c.proc.CPUPercent(); err == nil {
		s.cpuPercent = cpuPercent
	}

	c.mu.Lock()
	c.samples = append(c.samples, s)
	c.mu.Unlock()
}

// Stop halts sampling and logs peak/average resource usage.
func (c *Collector) Stop(log *slog.Logger) {
	close(c.stopChan)
	<-c.doneChan

	c.mu.Lock()
	defer c.mu.Unlock()

	var peakHeap, peakRSS uint64
	var peakCPU, totalCPU float64
	peakGoroutines := 0
	for _, s := range c.samples {
		peakHeap = max(peakHeap, s.heapAlloc)
		peakRSS = max(peakRSS, s.rss)
		peakCPU = max(peakCPU, s.cpuPercent)
		peakGoroutines = max(peakGoroutines, s.goroutines)
		totalCPU += s.cpuPercent
	}

	avgCPU := 0.0
	if len(c.samples) > 0 {
		avgCPU = totalCPU / float64(len(c.samples))
	}

	log.Info("runtime stats",
		"elapsed", time.Since(c.started).String(),
		"samples", len(c.samples),
		"peak_heap_bytes", peakHeap,
		"peak_rss_bytes", peakRSS,
		"peak_cpu_percent", peakCPU,
		"avg_cpu_percent", avgCPU,
		"peak_goroutines", peakGoroutines,
	)
}
