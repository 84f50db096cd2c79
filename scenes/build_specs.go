package scenes

import (
	"time"

	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TimelineComponentSpec struct {
	Length  float64 `yaml:"length"`
	Damping float64 `yaml:"damping"`
}

type AudioSourceComponentSpec struct {
	Name  string `yaml:"name"`
	Track string `yaml:"track"`
}

type MasterTrackComponentSpec struct {
	Threshold  float64       `yaml:"threshold"`
	NearVolume float64       `yaml:"near_volume"`
	FarVolume  float64       `yaml:"far_volume"`
	TierFade   time.Duration `yaml:"tier_fade"`
	StartDelay time.Duration `yaml:"start_delay"`
	StartFade  time.Duration `yaml:"start_fade"`
	RetryFade  time.Duration `yaml:"retry_fade"`
	ResumeFade time.Duration `yaml:"resume_fade"`
}

type InterruptComponentSpec struct {
	FadeOut time.Duration `yaml:"fade_out"`
}

type HighlightComponentSpec struct {
	Boost     float64 `yaml:"boost"`
	Depressed float64 `yaml:"depressed"`
	Neutral   float64 `yaml:"neutral"`
}

type EndCardComponentSpec struct {
	Threshold float64 `yaml:"threshold"`
}
