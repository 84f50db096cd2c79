package scenes

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("scenes: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("scenes: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Scene is everything one timeline needs: the prefabs that make up its
// singletons, the window and channel tables, and the drawable content.
type Scene struct {
	Name     string           `yaml:"name"`
	Prefabs  []string         `yaml:"prefabs"`
	Windows  []WindowSpec     `yaml:"windows"`
	Channels []ChannelSpec    `yaml:"channels"`
	Meshes   []MeshSpec       `yaml:"meshes"`
	Captions []CaptionSpec    `yaml:"captions"`
	Videos   VideoCatalogSpec `yaml:"videos"`
	Camera   []KeyframeSpec   `yaml:"camera"`
	Credits  CreditsSpec      `yaml:"credits"`
}

func LoadScene(filename string) (*Scene, error) {
	scene, err := LoadSpec[Scene](filename)
	if err != nil {
		return nil, err
	}
	if err := Validate(&scene); err != nil {
		return nil, fmt.Errorf("scenes: %s: %w", filename, err)
	}
	return &scene, nil
}

type WindowSpec struct {
	ID     string  `yaml:"id"`
	Kind   string  `yaml:"kind"`
	Start  float64 `yaml:"start"`
	End    float64 `yaml:"end"`
	Target string  `yaml:"target"`
	Slot   int     `yaml:"slot"`
}

// ChannelSpec is one ambient source with its window. Start and End bound the
// position range in which the channel plays.
type ChannelSpec struct {
	Name    string        `yaml:"name"`
	Track   string        `yaml:"track"`
	Volume  float64       `yaml:"volume"`
	Start   float64       `yaml:"start"`
	End     float64       `yaml:"end"`
	FadeIn  time.Duration `yaml:"fade_in"`
	FadeOut time.Duration `yaml:"fade_out"`
}

type MeshSpec struct {
	Name       string  `yaml:"name"`
	Parent     string  `yaml:"parent"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Color      string  `yaml:"color"`
	Layer      int     `yaml:"layer"`
	Label      string  `yaml:"label"`
	VideoIndex int     `yaml:"video_index"`
}

type CaptionSpec struct {
	Slot  int     `yaml:"slot"`
	Text  string  `yaml:"text"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Align string  `yaml:"align"`
	Color string  `yaml:"color"`
}

type VideoCatalogSpec struct {
	Fallback string      `yaml:"fallback"`
	ClipDir  string      `yaml:"clip_dir"`
	Entries  []VideoSpec `yaml:"entries"`
}

type VideoSpec struct {
	Key          string `yaml:"key"`
	URL          string `yaml:"url"`
	Participants string `yaml:"participants"`
}

type KeyframeSpec struct {
	Position float64 `yaml:"position"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Zoom     float64 `yaml:"zoom"`
}

type CreditsSpec struct {
	Title    string       `yaml:"title"`
	Subtitle string       `yaml:"subtitle"`
	Heading  string       `yaml:"heading"`
	People   []PersonSpec `yaml:"people"`
	Lines    []string     `yaml:"lines"`
}

type PersonSpec struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
	Note string `yaml:"note"`
}
