package scenes

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var ScenesFS embed.FS

// DiskDir is checked before the embedded copy so scenes can be edited without
// a rebuild.
var DiskDir = "scenes"

func Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(diskScenePath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanScenePath(name)
	info, err := os.Stat(diskScenePath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanScenePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, filepath.ToSlash(DiskDir)+"/"); ok {
		return after
	}
	return filepath.Base(s)
}

func diskScenePath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}
