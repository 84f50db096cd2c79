package main

import (
	"strings"
	"sync"

	"github.com/milk9111/musicstrip/config"
	"github.com/milk9111/musicstrip/logging"
	"github.com/milk9111/musicstrip/scenes"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type commandOptions struct {
	config string
	scene  string
	debug  bool
	muted  bool
}

type commandContext struct {
	opts *commandOptions

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(opts *commandOptions) *commandContext {
	return &commandContext{opts: opts}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.opts.config))
		if err != nil {
			c.configErr = err
			return
		}
		if c.opts.debug {
			cfg.Debug.Overlay = true
		}
		if c.opts.muted {
			cfg.Audio.Muted = true
		}
		if scene := strings.TrimSpace(c.opts.scene); scene != "" {
			cfg.Paths.SceneFile = scene
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*zap.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
}

// loadScene reads the configured scene, preferring the scene directory on
// disk over the embedded copy.
func (c *commandContext) loadScene() (*scenes.Scene, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Paths.SceneDir != "" {
		scenes.DiskDir = cfg.Paths.SceneDir
	}
	return scenes.LoadScene(cfg.Paths.SceneFile)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
