package assets

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed sounds music
var assetsFS embed.FS

// LoadFile reads an asset from dir when it exists there, falling back to the
// embedded copy.
func LoadFile(dir, path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if dir != "" {
		if b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(clean))); err == nil {
			return b, nil
		}
	}
	return assetsFS.ReadFile(clean)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
