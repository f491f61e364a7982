// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package sysctl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/juju/utils/v4"
)

var logger = loggo.GetLogger("juju.sysctl")

const (
	// DefaultDirectory is where the OS reads sysctl.d fragments from
	// at boot time.
	DefaultDirectory = "/etc/sysctl.d"

	// appFilePrefix is the prefix of every per-application file.
	// Files carrying it are globbed by the merge step, so nothing
	// else in the directory may use it.
	appFilePrefix = "90-juju-"

	// mergedFileName is the single merged file regenerated from all
	// per-application files.
	mergedFileName = "95-juju-sysctl.conf"
)

// The merged file header records the library version that produced
// it, matching the format consumed by existing deployments.
const (
	libAPI   = 0
	libPatch = 2
)

var mergedHeader = fmt.Sprintf(`# This config file was produced by sysctl lib v%d.%d
#
# This file represents the output of the sysctl lib, which can combine multiple
# configurations into a single file like.
`, libAPI, libPatch)

// Config reconciles the sysctl values one application wants to
// enforce with those already persisted by other applications on the
// same machine. The zero value is not useful; use NewConfig or
// NewConfigFromDirectory.
type Config struct {
	name string
	dir  string

	// data is the merged view of every persisted per-application
	// file, reloaded each time the merged file is regenerated.
	data map[string]string

	// desired holds the values of the Update call in progress.
	desired map[string]string
}

// NewConfig returns a Config for the named application, operating on
// DefaultDirectory. The merged view is loaded immediately.
func NewConfig(name string) (*Config, error) {
	return NewConfigFromDirectory(DefaultDirectory, name)
}

// NewConfigFromDirectory returns a Config operating on dir instead of
// the system sysctl.d directory.
func NewConfigFromDirectory(dir, name string) (*Config, error) {
	cfg := &Config{name: name, dir: dir}
	if err := cfg.load(); err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

// Name returns the application name this Config reconciles for.
func (c *Config) Name() string {
	return c.name
}

// Contains reports whether key is present in the merged view.
func (c *Config) Contains(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Len returns the number of keys in the merged view.
func (c *Config) Len() int {
	return len(c.data)
}

// Keys returns the keys of the merged view in sorted order.
func (c *Config) Keys() []string {
	keys := set.NewStrings()
	for key := range c.data {
		keys.Add(key)
	}
	return keys.SortedValues()
}

// Value returns the merged value for key, if present.
func (c *Config) Value(key string) (string, bool) {
	value, ok := c.data[key]
	return value, ok
}

func (c *Config) appFilePath() string {
	return filepath.Join(c.dir, appFilePrefix+c.name)
}

func (c *Config) mergedFilePath() string {
	return filepath.Join(c.dir, mergedFileName)
}

// Update applies the desired values to the running kernel and
// persists them to this application's file, regenerating the merged
// file afterwards.
//
// It fails with a *ValidationError if another application has already
// persisted a different value for one of the desired keys; nothing is
// applied or written in that case. It fails with a *PermissionError
// if the kernel refuses one or more keys; the values captured before
// the apply are restored and nothing is written. Any other failure of
// the sysctl binary is returned as a *CommandError, with no rollback,
// on the assumption that nothing was applied.
func (c *Config) Update(desired map[string]ConfigValue) error {
	c.desired = make(map[string]string, len(desired))
	for key, value := range desired {
		c.desired[key] = fmt.Sprintf("%v", value.Value)
	}

	// The application may call Update more than once. Rebuild the
	// merged view without our own file first, so values from a
	// previous update do not conflict with the new ones.
	if _, err := os.Stat(c.appFilePath()); err == nil {
		if err := c.merge(false); err != nil {
			return errors.Trace(err)
		}
	}

	if conflicts := c.validate(); len(conflicts) > 0 {
		return &ValidationError{Keys: conflicts}
	}

	snapshot, err := c.snapshot()
	if err != nil {
		return errors.Trace(err)
	}
	logger.Debugf("created snapshot for keys: %v", snapshot)

	if err := c.apply(); err != nil {
		if IsPermissionError(err) {
			if restoreErr := c.restore(snapshot); restoreErr != nil {
				logger.Errorf("cannot restore snapshot after failed apply: %v", restoreErr)
			}
		}
		return errors.Trace(err)
	}

	if err := c.writeAppFile(); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.merge(true))
}

// Remove deletes this application's file, if it exists, and
// regenerates the merged file from the remaining ones. Live kernel
// values are not reverted; removal only stops the keys from being
// applied again at boot.
func (c *Config) Remove() error {
	if err := os.Remove(c.appFilePath()); err != nil {
		if !os.IsNotExist(err) {
			return errors.Trace(err)
		}
	} else {
		logger.Infof("application sysctl file %s was removed", c.appFilePath())
	}
	return errors.Trace(c.merge(true))
}

// validate returns the keys of the desired config whose values
// disagree with what other applications have already persisted.
func (c *Config) validate() []string {
	current := set.NewStrings()
	for key := range c.data {
		current.Add(key)
	}
	requested := set.NewStrings()
	for key := range c.desired {
		requested.Add(key)
	}

	var conflicts []string
	for _, key := range current.Intersection(requested).SortedValues() {
		if c.data[key] != c.desired[key] {
			logger.Warningf("values for key %q are different: %q != %q",
				key, c.data[key], c.desired[key])
			conflicts = append(conflicts, key)
		}
	}
	return conflicts
}

// snapshot records the live value of every key about to be changed,
// one query per key.
func (c *Config) snapshot() (map[string]string, error) {
	snapshot := make(map[string]string, len(c.desired))
	for _, key := range sortedKeys(c.desired) {
		value, err := querySysctl(key)
		if err != nil {
			return nil, errors.Trace(err)
		}
		snapshot[key] = value
	}
	return snapshot, nil
}

// restore applies a snapshot back to the kernel in one invocation.
func (c *Config) restore(snapshot map[string]string) error {
	_, err := applySysctl(assignments(snapshot))
	return errors.Trace(err)
}

// apply sets the desired values in one invocation. The combined
// output is scanned for per-key permission refusals before any exit
// status is considered: the binary reports those per key and may
// still have applied the rest.
func (c *Config) apply() error {
	lines, err := applySysctl(assignments(c.desired))
	if denied := deniedKeys(lines); len(denied) > 0 {
		return &PermissionError{Keys: denied}
	}
	return errors.Trace(err)
}

// writeAppFile persists the desired values to this application's own
// file, one key=value line per entry.
func (c *Config) writeAppFile() error {
	var content strings.Builder
	for _, key := range sortedKeys(c.desired) {
		fmt.Fprintf(&content, "%s=%s\n", key, c.desired[key])
	}
	err := utils.AtomicWriteFile(c.appFilePath(), []byte(content.String()), 0644)
	return errors.Annotate(err, "cannot write application sysctl file")
}

// merge regenerates the merged file from every per-application file
// in the directory and reloads the merged view from it. When
// includeOwn is false this application's file is left out of the
// scan. Ordering across applications follows directory enumeration
// and is not guaranteed.
func (c *Config) merge(includeOwn bool) error {
	paths, err := filepath.Glob(filepath.Join(c.dir, appFilePrefix+"*"))
	if err != nil {
		return errors.Trace(err)
	}

	content := []byte(mergedHeader)
	for _, path := range paths {
		if !includeOwn && path == c.appFilePath() {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Trace(err)
		}
		content = append(content, data...)
	}

	if err := utils.AtomicWriteFile(c.mergedFilePath(), content, 0644); err != nil {
		return errors.Annotate(err, "cannot write merged sysctl file")
	}
	return errors.Trace(c.load())
}

// load re-parses the merged file into the in-memory merged view. A
// missing merged file is an empty view.
func (c *Config) load() error {
	c.data = make(map[string]string)

	data, err := os.ReadFile(c.mergedFilePath())
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Trace(err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, err := parseLine(line)
		if err != nil {
			return errors.Trace(err)
		}
		if key == "" {
			continue
		}
		c.data[key] = value
	}
	return nil
}

// parseLine splits one merged-file line into key and value. Comment
// and blank lines return an empty key.
func parseLine(line string) (string, string, error) {
	if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
		return "", "", nil
	}
	parts := strings.Split(line, "=")
	if len(parts) != 2 {
		return "", "", errors.NotValidf("sysctl line %q", line)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// assignments renders a key to value mapping as the key=value
// arguments the sysctl binary expects, in sorted key order.
func assignments(values map[string]string) []string {
	args := make([]string, 0, len(values))
	for _, key := range sortedKeys(values) {
		args = append(args, key+"="+values[key])
	}
	return args
}

func sortedKeys(values map[string]string) []string {
	keys := set.NewStrings()
	for key := range values {
		keys.Add(key)
	}
	return keys.SortedValues()
}
