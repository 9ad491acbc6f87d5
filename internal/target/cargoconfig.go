package target

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// configNames are checked in each directory, newest spelling first.
var configNames = []string{
	filepath.Join(".cargo", "config.toml"),
	filepath.Join(".cargo", "config"),
}

type cargoConfig struct {
	Build struct {
		// Target is a string, or an array of strings in newer cargo.
		Target any `toml:"target"`
	} `toml:"build"`
}

// FindConfigTarget walks from start up to the filesystem root and returns
// the `[build] target` of the first cargo config file that sets one, along
// with that file's path. An empty triple means no config sets a target.
func FindConfigTarget(start string) (triple, path string, err error) {
	start = strings.TrimSpace(start)
	if start == "" {
		return "", "", nil
	}
	if info, statErr := os.Stat(start); statErr == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}
	current, err := filepath.Abs(start)
	if err != nil {
		return "", "", err
	}
	for {
		for _, name := range configNames {
			p := filepath.Join(current, name)
			fi, statErr := os.Stat(p)
			if statErr != nil || fi.IsDir() {
				continue
			}
			t, err := readConfigTarget(p)
			if err != nil {
				return "", p, err
			}
			if t != "" {
				return resolveJSONTarget(current, t), p, nil
			}
			// config.toml takes precedence; the legacy file in the same
			// directory is ignored once it exists.
			break
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", "", nil
		}
		current = parent
	}
}

func readConfigTarget(path string) (string, error) {
	var cfg cargoConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return "", err
	}
	switch v := cfg.Build.Target.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []any:
		if len(v) == 0 {
			return "", nil
		}
		s, ok := v[0].(string)
		if !ok {
			return "", fmt.Errorf("build.target: expected string, got %T", v[0])
		}
		return s, nil
	default:
		return "", fmt.Errorf("build.target: expected string or array, got %T", v)
	}
}

// resolveJSONTarget anchors a relative custom target spec path at the
// directory containing .cargo/.
func resolveJSONTarget(dir, t string) string {
	if strings.HasSuffix(t, ".json") && !filepath.IsAbs(t) {
		return filepath.Join(dir, t)
	}
	return t
}

// TripleName is the directory cargo uses for a target under the target
// directory: the file stem for custom .json specs, the triple otherwise.
func TripleName(t string) string {
	if strings.HasSuffix(t, ".json") {
		return strings.TrimSuffix(filepath.Base(t), ".json")
	}
	return t
}
