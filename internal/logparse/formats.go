package logparse

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

type formatFile struct {
	Formats []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
	} `yaml:"formats"`
}

// LoadFormats reads extra format definitions from a YAML file:
//
//	formats:
//	  - name: proxied
//	    pattern: '^(?P<addr>\S+) ... '
//
// Loaded formats are tried after the built-in ones. Each pattern must capture
// the named groups listed in requiredGroups.
func LoadFormats(path string) ([]Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("logparse: read formats file: %w", err)
	}

	var ff formatFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("logparse: parse formats file: %w", err)
	}

	formats := make([]Format, 0, len(ff.Formats))
	for _, def := range ff.Formats {
		if def.Name == "" {
			return nil, fmt.Errorf("logparse: format with empty name in %s", path)
		}
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("logparse: format %q: %w", def.Name, err)
		}
		if err := checkGroups(re); err != nil {
			return nil, fmt.Errorf("logparse: format %q: %w", def.Name, err)
		}
		formats = append(formats, Format{Name: def.Name, Pattern: re})
	}
	return formats, nil
}

func checkGroups(re *regexp.Regexp) error {
	names := make(map[string]bool)
	for _, name := range re.SubexpNames() {
		if name != "" {
			names[name] = true
		}
	}
	for _, required := range requiredGroups {
		if !names[required] {
			return fmt.Errorf("missing capture group %q", required)
		}
	}
	return nil
}
