// Package yaml loads parser rule tables from YAML files using gopkg.in/yaml.v3.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/lunchmenu"
	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk layout. Top-level keys replace the matching
// default table; tables under "extend" are appended to it.
type ruleFile struct {
	lunchmenu.Rules `yaml:",inline"`
	Extend          lunchmenu.Rules `yaml:"extend"`
}

// LoadRules reads the rule file at path and overlays it on the default rules.
func LoadRules(path string) (lunchmenu.Rules, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lunchmenu.Rules{}, lunchmenu.Errorf(lunchmenu.ENOTFOUND, "rules file %q not found", path)
		}
		return lunchmenu.Rules{}, err
	}
	return DecodeRules(bytes.NewReader(b))
}

// DecodeRules reads YAML rules from r and overlays them on the default rules.
// Unknown keys are rejected so that typos don't silently fall back to defaults.
func DecodeRules(r io.Reader) (lunchmenu.Rules, error) {
	f := ruleFile{Rules: lunchmenu.DefaultRules()}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return lunchmenu.Rules{}, lunchmenu.Errorf(lunchmenu.EINVALID, "parse rules: %v", err)
	}

	rules := f.Rules
	rules.Weekdays = append(rules.Weekdays, f.Extend.Weekdays...)
	rules.NoisePhrases = append(rules.NoisePhrases, f.Extend.NoisePhrases...)
	rules.NoiseSubstrings = append(rules.NoiseSubstrings, f.Extend.NoiseSubstrings...)
	rules.NoisePatterns = append(rules.NoisePatterns, f.Extend.NoisePatterns...)
	rules.Placeholders = append(rules.Placeholders, f.Extend.Placeholders...)
	rules.Currencies = append(rules.Currencies, f.Extend.Currencies...)

	if err := rules.Validate(); err != nil {
		return lunchmenu.Rules{}, err
	}
	return rules, nil
}

// EncodeRules writes rules as YAML, for dumping the defaults as a starting point.
func EncodeRules(w io.Writer, rules lunchmenu.Rules) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rules); err != nil {
		return err
	}
	return enc.Close()
}
