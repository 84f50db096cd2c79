package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWindow(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWindow() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

func (c *Config) validateAudio() error {
	switch c.Audio.SampleRate {
	case 22050, 44100, 48000:
		return nil
	default:
		return fmt.Errorf("audio.sample_rate must be 22050, 44100 or 48000, got %d", c.Audio.SampleRate)
	}
}

func (c *Config) validateInput() error {
	if c.Input.ScrollStep <= 0 || c.Input.ScrollStep > 1 {
		return errors.New("input.scroll_step must be in (0, 1]")
	}
	if c.Input.KeyStep <= 0 || c.Input.KeyStep > 1 {
		return errors.New("input.key_step must be in (0, 1]")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be auto, console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
