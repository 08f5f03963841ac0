package bridge

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Config is the bridge's process-wide configuration, loaded once from
// three optional newline-delimited text files sitting next to the
// bridge's own shared-library binary (spec §9 "Global state"):
//
//	.bundle     extra LV2 bundle search paths, one per line
//	.whitelist  URI prefixes to allow (empty = allow everything)
//	.blacklist  URI prefixes to reject, checked before the whitelist
//
// A missing file is not an error — it is treated as an empty list.
type Config struct {
	BundlePaths []string
	Whitelist   []string
	Blacklist   []string
}

// LoadConfig reads .bundle/.whitelist/.blacklist from dir, typically
// the directory containing the bridge's own shared-library file
// (looked up by main.go on the first VSTPluginMain call, since a VST2
// plugin has no argv/cwd of its own to resolve relative paths against).
func LoadConfig(dir string) (*Config, error) {
	cfg := &Config{}
	var err error
	if cfg.BundlePaths, err = readLines(filepath.Join(dir, ".bundle")); err != nil {
		return nil, err
	}
	if cfg.Whitelist, err = readLines(filepath.Join(dir, ".whitelist")); err != nil {
		return nil, err
	}
	if cfg.Blacklist, err = readLines(filepath.Join(dir, ".blacklist")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readLines returns every non-blank, non-comment line in path, or nil
// (not an error) if path does not exist.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
