package config

const (
	defaultConfigPath   = "~/.config/musicstrip/config.toml"
	defaultAssetDir     = "assets"
	defaultSceneDir     = "scenes"
	defaultSceneFile    = "musicstrip.yaml"
	defaultWindowWidth  = 1280
	defaultWindowHeight = 720
	defaultWindowTitle  = "The Bangalore Music Strip"
	defaultSampleRate   = 44100
	defaultScrollStep   = 0.004
	defaultKeyStep      = 0.01
	defaultLogFormat    = "auto"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AssetDir:  defaultAssetDir,
			SceneDir:  defaultSceneDir,
			SceneFile: defaultSceneFile,
		},
		Window: Window{
			Width:  defaultWindowWidth,
			Height: defaultWindowHeight,
			Title:  defaultWindowTitle,
		},
		Audio: Audio{
			SampleRate: defaultSampleRate,
		},
		Input: Input{
			ScrollStep: defaultScrollStep,
			KeyStep:    defaultKeyStep,
		},
		Debug: Debug{
			HotReload: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
