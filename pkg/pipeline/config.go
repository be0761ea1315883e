package pipeline

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
)

// LoadOptions reads options from a TOML (.toml) or YAML (.yaml, .yml) file.
// Unknown keys are rejected so that typos do not silently fall back to
// defaults. Defaults are not applied.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Options{}, vkerr.Wrap(vkerr.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Options{}, vkerr.Wrap(vkerr.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return decodeTOML(data, path)
	case ".yaml", ".yml":
		return decodeYAML(data, path)
	default:
		return Options{}, vkerr.New(vkerr.ErrCodeInvalidConfig,
			"config %s: unsupported extension %q (use .toml, .yaml or .yml)", path, ext)
	}
}

func decodeTOML(data []byte, path string) (Options, error) {
	var opts Options
	md, err := toml.Decode(string(data), &opts)
	if err != nil {
		return Options{}, vkerr.Wrap(vkerr.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, vkerr.New(vkerr.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return opts, nil
}

func decodeYAML(data []byte, path string) (Options, error) {
	var opts Options
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, vkerr.Wrap(vkerr.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return opts, nil
}
