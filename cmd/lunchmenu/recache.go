package main

import (
	"fmt"

	"github.com/fwojciec/lunchmenu"
)

// Run executes the recache command.
func (c *RecacheCmd) Run(deps *Dependencies) error {
	buster, err := deps.Cache.BumpCacheBuster(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Cache cleared (generation %d)\n", buster)
	return nil
}
