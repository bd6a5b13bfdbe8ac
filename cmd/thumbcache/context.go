package main

import (
	"math"
	"strings"
	"sync"

	"thumbcache/internal/batch"
	"thumbcache/internal/filesystem"
	"thumbcache/internal/media"
	"thumbcache/internal/memory"
	"thumbcache/internal/metrics"
	"thumbcache/internal/startup"
)

type commandContext struct {
	envFileFlag *string

	configOnce sync.Once
	config     *startup.Config
	configErr  error
	memory     memory.ConfigResult
}

func newCommandContext(envFileFlag *string) *commandContext {
	return &commandContext{envFileFlag: envFileFlag}
}

// ensureConfig loads the configuration once and wires the filesystem
// metrics for the configured volumes.
func (c *commandContext) ensureConfig() (*startup.Config, error) {
	c.configOnce.Do(func() {
		var files []string
		if c.envFileFlag != nil && strings.TrimSpace(*c.envFileFlag) != "" {
			files = append(files, strings.TrimSpace(*c.envFileFlag))
		}
		cfg, err := startup.LoadConfig(files...)
		if err != nil {
			c.configErr = err
			return
		}

		filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
			"cache":   cfg.CacheDir(),
			"staging": cfg.StagingDir,
		}))
		filesystem.SetObserver(metrics.NewFilesystemObserver())
		c.memory = memory.ConfigureFromEnv()
		c.config = cfg
	})
	return c.config, c.configErr
}

// newDriver builds a batch driver from the loaded configuration. Under a
// heap limit the renderer refuses sources too large to decode within it.
func (c *commandContext) newDriver() (*batch.Driver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	renderer := media.NewImageRenderer()
	if c.memory.Configured {
		renderer.MaxDecodePixels = c.memory.PixelBudget(math.MaxInt)
	}

	d, err := batch.New(cfg.ToBatchConfig(), batch.Deps{Renderer: renderer})
	if err != nil {
		return nil, err
	}

	stages := d.Stages()
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, string(s))
	}
	startup.LogPipelineInit(d.Config(), names)
	return d, nil
}
