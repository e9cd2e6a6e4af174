// Package config loads and normalizes the rules a run classifies blocks
// against. It is the only place that deals with config file shapes: whatever
// it hands to the engine is a fully validated, compiled rule set.
//
// The rules file maps destination file names to pattern lists:
//
//	{
//	  "errors.log": {
//	    "patterns": ["ERROR", {"pattern": "fatal", "keep": true}],
//	    "keep_all_blocks": false
//	  }
//	}
//
// A pattern entry is either a bare string or an object with a "pattern" key
// and an optional "keep" flag; both forms normalize to the same rule shape
// here, so the classifier never branches on input shape. JSON, TOML and YAML
// are accepted, chosen by file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/logsieve/pkg/errors"
	"github.com/arthur-debert/logsieve/pkg/logging"
	"github.com/arthur-debert/logsieve/pkg/rules"
)

// Destination names routinely contain dots ("errors.log"), so the koanf
// delimiter must be something that cannot appear in a file name.
const keyDelim = "/"

// LoadRules reads, validates and compiles the rules file at path.
// Any failure here is fatal to the run: it happens before a single source
// file is opened.
func LoadRules(path string) (*rules.Set, error) {
	logger := logging.GetLogger("config")

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"cannot read rules file %s", path)
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"malformed rules file %s", path)
	}

	specs, err := normalize(k.Raw())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid,
			"invalid rules file %s", path)
	}

	set, err := rules.Compile(specs)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("destinations", len(set.Destinations)).
		Int("rules", set.RuleCount()).
		Msg("Rules loaded")
	return set, nil
}

// parserFor picks the koanf parser matching the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad,
			"unsupported rules file format %q (want .json, .toml or .yaml)", filepath.Ext(path))
	}
}

// normalize converts the raw decoded config into destination specs, rejecting
// malformed shapes with errors that name the offending entry.
func normalize(raw map[string]interface{}) ([]rules.DestinationSpec, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	var specs []rules.DestinationSpec
	for _, name := range names {
		entry, ok := raw[name].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("configuration for destination %q must be an object", name)
		}

		rawPatterns, ok := entry["patterns"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("destination %q must have a 'patterns' list", name)
		}

		spec := rules.DestinationSpec{Name: name}
		if rawKeepAll, present := entry["keep_all_blocks"]; present {
			keepAll, ok := rawKeepAll.(bool)
			if !ok {
				return nil, fmt.Errorf("'keep_all_blocks' for destination %q must be a boolean", name)
			}
			spec.KeepAllBlocks = keepAll
		}

		for i, item := range rawPatterns {
			rule, err := normalizeRule(item)
			if err != nil {
				return nil, fmt.Errorf("pattern %d of destination %q: %w", i+1, name, err)
			}
			spec.Rules = append(spec.Rules, rule)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// normalizeRule accepts the bare-string and object forms of a pattern entry.
func normalizeRule(item interface{}) (rules.RuleSpec, error) {
	switch v := item.(type) {
	case string:
		return rules.RuleSpec{Pattern: v}, nil
	case map[string]interface{}:
		pattern, ok := v["pattern"].(string)
		if !ok {
			return rules.RuleSpec{}, fmt.Errorf("object form must have a 'pattern' string key")
		}
		spec := rules.RuleSpec{Pattern: pattern}
		if rawKeep, present := v["keep"]; present {
			keep, ok := rawKeep.(bool)
			if !ok {
				return rules.RuleSpec{}, fmt.Errorf("'keep' for pattern %q must be a boolean", pattern)
			}
			spec.Keep = keep
		}
		return spec, nil
	default:
		return rules.RuleSpec{}, fmt.Errorf("entry must be a string or an object with a 'pattern' key")
	}
}
