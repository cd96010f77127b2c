package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// Dir is where on-disk overrides of the embedded prefabs live, relative to
// the working directory. A file found there wins over the built-in copy, so
// edits take effect on the next restart.
var Dir = "prefabs"

// Load returns a level file.
func Load(name string) ([]byte, error) {
	return open(relative(name))
}

// LoadScript returns a reaction script from scripts/.
func LoadScript(name string) ([]byte, error) {
	return open(scriptPath(name))
}

func open(rel string) ([]byte, error) {
	if rel == "." || rel == "scripts" {
		return nil, fmt.Errorf("prefabs: empty file name")
	}
	data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel)))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("prefabs: %w", err)
	}
	return embedded.ReadFile(rel)
}

// relative strips a leading Dir so "level.yaml" and "prefabs/level.yaml"
// name the same file.
func relative(name string) string {
	s := path.Clean(filepath.ToSlash(name))
	if after, ok := strings.CutPrefix(s, filepath.ToSlash(Dir)+"/"); ok {
		return after
	}
	return s
}

func scriptPath(name string) string {
	return path.Join("scripts", strings.TrimPrefix(relative(name), "scripts/"))
}
