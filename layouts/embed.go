package layouts

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var LayoutsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// DiskDir is checked before the embedded files so layouts and scripts can
// be edited without rebuilding.
var DiskDir = "layouts"

func Load(name string) ([]byte, error) {
	clean := cleanLayoutPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return LayoutsFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ModTime reports the modification time of the on-disk copy of name, if any.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanLayoutPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanLayoutPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	s, _ = strings.CutPrefix(s, "layouts/")
	return s
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := cleanLayoutPath(p)
	s, _ = strings.CutPrefix(s, "scripts/")
	return path.Join("scripts", s)
}

func diskPath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}
