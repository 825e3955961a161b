package main

import (
	"fmt"

	"github.com/fwojciec/catalog"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	kind := catalog.Kind(c.Kind)
	if err := kind.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalog.ErrorMessage(err))
		return err
	}

	if c.Clear {
		if err := deps.History.Clear(deps.Ctx, string(kind)); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", catalog.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Cleared recent searches for %s\n", kind)
		return nil
	}

	terms := deps.History.Load(deps.Ctx, string(kind))
	if len(terms) == 0 {
		fmt.Fprintf(deps.Stdout, "No recent searches for %s.\n", kind)
		return nil
	}

	for _, term := range terms {
		fmt.Fprintln(deps.Stdout, term)
	}
	return nil
}
