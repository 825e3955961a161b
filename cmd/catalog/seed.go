package main

import (
	"fmt"

	"github.com/fwojciec/catalog"
)

// Run executes the seed command.
func (c *SeedCmd) Run(deps *Dependencies) error {
	var written, unchanged int
	for _, entry := range catalog.SampleEntries() {
		changed, err := deps.Entries.UpsertEntry(deps.Ctx, entry)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", catalog.ErrorMessage(err))
			return err
		}
		if changed {
			written++
		} else {
			unchanged++
		}
	}

	fmt.Fprintf(deps.Stdout, "Seeded %d entries (%d unchanged)\n", written, unchanged)
	return nil
}
