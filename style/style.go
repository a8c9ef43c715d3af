// Package style holds the metadata that language plugins publish and the
// loading of per-style option defaults.
package style

import (
	"encoding/json"
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

// Info describes one registered language style.
type Info struct {
	Lang        string `json:"lang" yaml:"lang"`
	Style       string `json:"style" yaml:"style"`
	Version     string `json:"version" yaml:"version"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
	License     string `json:"license,omitempty" yaml:"license,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func (i Info) String() string {
	return fmt.Sprintf("%s.%s %s", i.Lang, i.Style, i.Version)
}

// Defaults builds the option map of a style: the plugin's built-in
// defaults, given as a JSON object, overridden by an optional YAML file
// applied as a merge patch. An empty overrideFile returns the defaults
// alone.
func Defaults(base []byte, overrideFile string) (map[string]any, error) {
	merged := base
	if len(merged) == 0 {
		merged = []byte("{}")
	}
	if overrideFile != "" {
		d, err := os.ReadFile(overrideFile)
		if err != nil {
			return nil, fmt.Errorf("reading style overrides: %w", err)
		}
		patch, err := yaml.YAMLToJSON(d)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", overrideFile, err)
		}
		merged, err = jsonpatch.MergePatch(merged, patch)
		if err != nil {
			return nil, fmt.Errorf("merging %s: %w", overrideFile, err)
		}
	}
	var m map[string]any
	if err := json.Unmarshal(merged, &m); err != nil {
		return nil, fmt.Errorf("style defaults are not an object: %w", err)
	}
	return m, nil
}
