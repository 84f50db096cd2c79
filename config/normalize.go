package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWindow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.AssetDir) == "" {
		c.Paths.AssetDir = defaultAssetDir
	}
	if c.Paths.AssetDir, err = expandPath(c.Paths.AssetDir); err != nil {
		return fmt.Errorf("paths.asset_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SceneDir) == "" {
		c.Paths.SceneDir = defaultSceneDir
	}
	if c.Paths.SceneDir, err = expandPath(c.Paths.SceneDir); err != nil {
		return fmt.Errorf("paths.scene_dir: %w", err)
	}
	c.Paths.SceneFile = strings.TrimSpace(c.Paths.SceneFile)
	if c.Paths.SceneFile == "" {
		c.Paths.SceneFile = defaultSceneFile
	}
	return nil
}

func (c *Config) normalizeWindow() {
	c.Window.Title = strings.TrimSpace(c.Window.Title)
	if c.Window.Title == "" {
		c.Window.Title = defaultWindowTitle
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
