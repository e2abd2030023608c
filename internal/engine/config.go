package engine

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Strategy 选择页面在 worker 之间的分发方式
type Strategy string

const (
	Sequential       Strategy = "sequential"
	BoundedQueue     Strategy = "queue"
	FixedPool        Strategy = "pool"
	DivideAndConquer Strategy = "forkjoin"
	FanOutFanIn      Strategy = "fanout"
)

// Strategies 返回所有可用的策略，顺序化的基准排在第一位。
func Strategies() []Strategy {
	return []Strategy{Sequential, BoundedQueue, FixedPool, DivideAndConquer, FanOutFanIn}
}

func ParseStrategy(s string) (Strategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range Strategies() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, s)
}

const (
	DefaultQueueCapacity   = 500
	DefaultThreshold       = 100
	DefaultTopK            = 3
	DefaultQueueTimeout    = time.Minute
	DefaultShutdownTimeout = time.Hour
	DefaultShards          = 64
)

// Config 是一次运行的参数，零值字段取默认值。
type Config struct {
	Strategy Strategy `yaml:"strategy"`
	// Workers 是 worker 数量，也是线程池大小
	Workers       int `yaml:"workers"`
	QueueCapacity int `yaml:"queue_capacity"`
	// Threshold 分治策略中直接计算的最大页数
	Threshold int `yaml:"threshold"`
	// MaxPages 最多处理的页数，0 表示不限制
	MaxPages int `yaml:"max_pages"`
	TopK     int `yaml:"top_k"`
	// QueueTimeout 生产者等待队列空位、或提交任务等待空闲 worker 的最长时间
	QueueTimeout time.Duration `yaml:"queue_timeout"`
	// ShutdownTimeout 线程池关闭时等待在途任务的最长时间
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// Shards 共享累加器的分片数
	Shards int `yaml:"shards"`
}

// WithDefaults 返回填充了默认值的副本，可识别的策略名会被规范化。
func (c Config) WithDefaults() Config {
	if c.Strategy == "" {
		c.Strategy = DivideAndConquer
	} else if st, err := ParseStrategy(string(c.Strategy)); err == nil {
		c.Strategy = st
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.QueueCapacity == 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	if c.TopK == 0 {
		c.TopK = DefaultTopK
	}
	if c.QueueTimeout == 0 {
		c.QueueTimeout = DefaultQueueTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Shards == 0 {
		c.Shards = DefaultShards
	}
	return c
}

func (c Config) Validate() error {
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.QueueCapacity < 1:
		return fmt.Errorf("%w: queue capacity must be positive, got %d", ErrInvalidConfig, c.QueueCapacity)
	case c.Threshold < 1:
		return fmt.Errorf("%w: threshold must be positive, got %d", ErrInvalidConfig, c.Threshold)
	case c.MaxPages < 0:
		return fmt.Errorf("%w: max pages must not be negative, got %d", ErrInvalidConfig, c.MaxPages)
	case c.TopK < 0:
		return fmt.Errorf("%w: top k must not be negative, got %d", ErrInvalidConfig, c.TopK)
	case c.QueueTimeout < 0, c.ShutdownTimeout < 0:
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidConfig)
	case c.Shards < 1:
		return fmt.Errorf("%w: shards must be positive, got %d", ErrInvalidConfig, c.Shards)
	}
	return nil
}
