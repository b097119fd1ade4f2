package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

type configFile struct {
	path   string
	parser koanf.Parser
}

// parsers maps supported file extensions to koanf parsers, in discovery order.
var parsers = []struct {
	ext    string
	parser koanf.Parser
}{
	{".yaml", yaml.Parser()},
	{".yml", yaml.Parser()},
	{".json", json.Parser()},
	{".toml", toml.Parser()},
}

// ParserFor returns the koanf parser matching the extension of path.
func ParserFor(path string) (koanf.Parser, bool) { //nolint:ireturn
	ext := strings.ToLower(filepath.Ext(path))
	for _, p := range parsers {
		if p.ext == ext {
			return p.parser, true
		}
	}
	return nil, false
}

// LoadFile loads a single configuration file into k, picking the parser by extension.
func LoadFile(k *koanf.Koanf, path string) error {
	parser, ok := ParserFor(path)
	if !ok {
		return oops.
			With("path", path).
			Errorf("unsupported config file extension %q", filepath.Ext(path))
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return oops.Wrapf(err, "failed to load config file: %s", path)
	}

	return nil
}

func (m *Module) discoverConfigFiles() []configFile {
	var files []configFile

	for _, dir := range m.config.ConfigDirs {
		for _, p := range parsers {
			path := filepath.Join(dir, m.config.ConfigName+p.ext)
			if _, err := os.Stat(path); err == nil {
				files = append(files, configFile{path: path, parser: p.parser})
			}
		}
	}

	return files
}

func loadConfigFiles(k *koanf.Koanf, files []configFile) error {
	for _, cf := range files {
		if err := k.Load(file.Provider(cf.path), cf.parser); err != nil {
			return oops.Wrapf(err, "failed to load config file: %s", cf.path)
		}
	}
	return nil
}
