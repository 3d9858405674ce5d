package main

import (
	"github.com/fwojciec/lunchmenu/yaml"
)

// Run executes the show-rules command.
func (c *ShowRulesCmd) Run(deps *Dependencies) error {
	return yaml.EncodeRules(deps.Stdout, deps.Rules)
}
