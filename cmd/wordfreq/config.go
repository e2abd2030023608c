package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/TomCN0803/wordfreq/internal/corpus"
	"github.com/TomCN0803/wordfreq/internal/engine"
)

const (
	defaultFile     = "enwiki.xml"
	defaultMaxPages = 100000
)

// config 是命令行的全部设置，优先级：命令行参数 > 配置文件 > 默认值
type config struct {
	File      string        `yaml:"file"`
	Format    string        `yaml:"format"`
	Tokenizer string        `yaml:"tokenizer"`
	CSV       string        `yaml:"csv"`
	Engine    engine.Config `yaml:"engine"`
}

func defaultConfig() *config {
	return &config{
		File:      defaultFile,
		Format:    corpus.FormatWiki,
		Tokenizer: "words",
		Engine:    engine.Config{MaxPages: defaultMaxPages},
	}
}

// loadConfig 读取 YAML 配置文件，文件中没有的字段保留默认值。
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// configFromContext 加载配置文件并用显式设置的命令行参数覆盖
func configFromContext(c *cli.Context) (*config, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("file") {
		cfg.File = c.String("file")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("tokenizer") {
		cfg.Tokenizer = c.String("tokenizer")
	}
	if c.IsSet("csv") {
		cfg.CSV = c.String("csv")
	}
	if c.IsSet("pages") {
		cfg.Engine.MaxPages = c.Int("pages")
	}
	if c.IsSet("strategy") {
		st, err := engine.ParseStrategy(c.String("strategy"))
		if err != nil {
			return nil, err
		}
		cfg.Engine.Strategy = st
	}
	if c.IsSet("threads") {
		cfg.Engine.Workers = c.Int("threads")
	}
	if c.IsSet("threshold") {
		cfg.Engine.Threshold = c.Int("threshold")
	}
	if c.IsSet("queue-capacity") {
		cfg.Engine.QueueCapacity = c.Int("queue-capacity")
	}
	if c.IsSet("top") {
		cfg.Engine.TopK = c.Int("top")
	}
	if c.IsSet("queue-timeout") {
		cfg.Engine.QueueTimeout = c.Duration("queue-timeout")
	}
	if c.IsSet("shutdown-timeout") {
		cfg.Engine.ShutdownTimeout = c.Duration("shutdown-timeout")
	}
	return cfg, nil
}
