package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/lunchmenu"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	var data []byte
	var err error
	if c.File == "" || c.File == "-" {
		data, err = io.ReadAll(deps.Stdin)
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	dishes := lunchmenu.SplitLines(string(data))
	if len(dishes) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no dishes to analyze")
		return lunchmenu.Errorf(lunchmenu.EINVALID, "no dishes to analyze")
	}

	rec := lunchmenu.Recommend(dishes)
	if c.JSON {
		return writeJSON(deps.Stdout, rec)
	}
	fmt.Fprintln(deps.Stdout, rec.Summary)
	return nil
}
