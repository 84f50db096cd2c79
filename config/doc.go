// Package config loads, normalizes, and validates musicstrip runtime
// settings.
//
// Settings come from an optional TOML file layered over Default(). The scene
// itself (windows, channels, meshes) lives in the scenes package; this
// package only covers how the host process runs.
package config
