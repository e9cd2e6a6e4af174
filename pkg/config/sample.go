package config

import (
	"encoding/json"
	"fmt"

	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/logsieve/pkg/errors"
)

// SampleRules returns an example rules configuration demonstrating every
// supported field: bare and object pattern forms, the keep flag and
// keep_all_blocks.
func SampleRules() map[string]interface{} {
	return map[string]interface{}{
		"critical_errors.log": map[string]interface{}{
			"patterns": []interface{}{
				"CRITICAL ERROR:",
				map[string]interface{}{"pattern": "Fatal exception", "keep": true},
				"Segmentation fault",
			},
			"keep_all_blocks": false,
		},
		"network_issues.log": map[string]interface{}{
			"patterns": []interface{}{
				"Connection refused",
				"Timeout occurred",
				"Network unreachable",
			},
		},
		"audit.log": map[string]interface{}{
			"patterns": []interface{}{
				"User Login Success",
				"Failed Login Attempt",
				map[string]interface{}{"pattern": "Unauthorized access", "keep": true},
			},
			"keep_all_blocks": true,
		},
	}
}

// RenderSample marshals the sample rules config in the requested format
// (json, toml or yaml).
func RenderSample(format string) (string, error) {
	sample := SampleRules()
	switch format {
	case "json", "":
		data, err := json.MarshalIndent(sample, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal sample config: %w", err)
		}
		return string(data) + "\n", nil
	case "toml":
		data, err := gotoml.Marshal(sample)
		if err != nil {
			return "", fmt.Errorf("marshal sample config: %w", err)
		}
		return string(data), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(sample)
		if err != nil {
			return "", fmt.Errorf("marshal sample config: %w", err)
		}
		return string(data), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput,
			"unknown sample format %q (want json, toml or yaml)", format)
	}
}
