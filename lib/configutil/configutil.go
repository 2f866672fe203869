// Package configutil reads json5 configuration files with optional local
// overrides.
package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// LocalPath returns the override file of path: `headers.json5` becomes
// `headers.local.json5`.
func LocalPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// readFile decodes path into out, reporting false if the file does not
// exist or is empty.
func readFile[T any](path string, out *T) (bool, error) {
	buf, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(buf) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(buf, out)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

// ReadConfig reads the configuration file at path and merges the fields
// set in its local override (see LocalPath) on top of it.
//
// It returns an error wrapping os.ErrNotExist when neither file exists.
func ReadConfig[T any](path string) (T, error) {
	var out T

	found, err := readFile(path, &out)
	if err != nil {
		return out, err
	}

	local := LocalPath(path)
	var override T
	foundLocal, err := readFile(local, &override)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Debug("merged local config overrides", "path", path, "local", local)
	}

	if !found && !foundLocal {
		return out, fmt.Errorf("config %s: %w", path, os.ErrNotExist)
	}
	return out, nil
}

// ReadRecursively looks for name in the working directory and each of its
// parents, returning the first configuration found.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	current, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return zero, err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return zero, fmt.Errorf("config %s: %w", name, os.ErrNotExist)
		}
		current = parent
	}
}

// ReadOrDefault is ReadConfig falling back to fallback when no file
// exists. Decoding errors are still returned.
func ReadOrDefault[T any](path string, fallback T) (T, error) {
	config, err := ReadConfig[T](path)
	if errors.Is(err, os.ErrNotExist) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	err = mergo.Merge(&config, fallback)
	if err != nil {
		return fallback, err
	}
	return config, nil
}
