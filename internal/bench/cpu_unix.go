//go:build unix

package bench

import (
	"syscall"
	"time"
)

// cpuTime 返回进程已消耗的用户态和内核态 CPU 时间
func cpuTime() time.Duration {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
}
