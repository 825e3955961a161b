package main

import (
	"fmt"

	"github.com/fwojciec/catalog"
)

// Run executes the facets command.
func (c *FacetsCmd) Run(deps *Dependencies) error {
	kind := catalog.Kind(c.Kind)
	if err := kind.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalog.ErrorMessage(err))
		return err
	}

	values, err := deps.Facets.ListFacetValues(deps.Ctx, kind)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalog.ErrorMessage(err))
		return err
	}

	if len(values) == 0 {
		fmt.Fprintf(deps.Stdout, "No facet values for %s. Use 'catalog seed' to load sample data.\n", kind)
		return nil
	}

	for _, v := range values {
		fmt.Fprintln(deps.Stdout, v)
	}
	return nil
}
