// Package bench 测量一次运行的耗时、内存和 CPU，并生成报告。
package bench

import (
	"runtime"
	"time"
)

// Sample 是一次测量的结果，对应 CSV 中的一行
type Sample struct {
	Implementation string
	DatasetSize    int
	ThreadCount    int
	Elapsed        time.Duration
	// MemoryUsed 是运行前后堆内存的差值，可能为负
	MemoryUsed int64
	CPUTime    time.Duration
	// StartCPULoad 和 EndCPULoad 是进程在测量开始和结束时的平均 CPU 负载百分比
	StartCPULoad float64
	EndCPULoad   float64
}

// MemoryUsedMB 以 MiB 为单位返回 MemoryUsed
func (s Sample) MemoryUsedMB() float64 {
	return float64(s.MemoryUsed) / (1024 * 1024)
}

var processStart = time.Now()

// Measure 运行 fn 并记录它的资源消耗，fn 的错误原样返回，测量结果仍然有效。
func Measure(impl string, datasetSize, threads int, fn func() error) (Sample, error) {
	s := Sample{
		Implementation: impl,
		DatasetSize:    datasetSize,
		ThreadCount:    threads,
	}

	runtime.GC()
	memBefore := heapInUse()
	cpuBefore := cpuTime()
	s.StartCPULoad = cpuLoad(cpuBefore)
	start := time.Now()

	err := fn()

	s.Elapsed = time.Since(start)
	cpuAfter := cpuTime()
	s.CPUTime = cpuAfter - cpuBefore
	s.EndCPULoad = cpuLoad(cpuAfter)
	s.MemoryUsed = int64(heapInUse()) - int64(memBefore)

	return s, err
}

func heapInUse() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapInuse
}

// cpuLoad 计算进程启动以来平均占用全部 CPU 的百分比
func cpuLoad(used time.Duration) float64 {
	wall := time.Since(processStart)
	if wall <= 0 {
		return 0
	}
	return 100 * used.Seconds() / (wall.Seconds() * float64(runtime.NumCPU()))
}
