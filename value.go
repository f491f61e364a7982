// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package sysctl

import (
	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

// ConfigValue is one requested sysctl entry. Only the value field is
// meaningful to this package; it is formatted as a string before use.
type ConfigValue struct {
	Value interface{} `yaml:"value"`
}

// ParseConfig unmarshals the YAML document charms declare their
// desired sysctl values in:
//
//	vm.swappiness:
//	  value: 1
func ParseConfig(data []byte) (map[string]ConfigValue, error) {
	var parsed map[string]ConfigValue
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Annotate(err, "cannot parse sysctl config")
	}
	return parsed, nil
}
