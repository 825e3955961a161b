package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/catalog"
	"github.com/fwojciec/catalog/listing"
	"github.com/fwojciec/catalog/memory"
	"github.com/fwojciec/catalog/querystate"
	"golang.org/x/sync/errgroup"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	kind := catalog.Kind(c.Kind)
	if err := kind.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalog.ErrorMessage(err))
		return err
	}

	delay, err := deps.Config.DebounceDuration()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalog.ErrorMessage(err))
		return err
	}

	addr := memory.NewAddressBar(c.Address)
	state := querystate.New(addr, querystate.WithLogger(deps.Logger))
	defer state.Close()

	var actions []catalog.Action
	if c.Facet != "" {
		actions = append(actions, catalog.SetFacet(c.Facet))
	}
	if c.View != "" {
		view := catalog.ViewMode(c.View)
		if !view.Valid() {
			err := catalog.Errorf(catalog.EINVALID, "view must be %q or %q", catalog.ViewGrid, catalog.ViewList)
			fmt.Fprintf(deps.Stderr, "error: %s\n", catalog.ErrorMessage(err))
			return err
		}
		actions = append(actions, catalog.SetView(view))
	}
	state.Write(actions...)

	ctrl, err := listing.New(deps.Ctx, listing.Config{
		Kind:    kind,
		Source:  deps.Source,
		State:   state,
		Facets:  deps.Facets,
		History: deps.History,
		Limit:   deps.Config.PageSize,
		Sort:    catalog.SortOrder(c.Sort),
		Delay:   delay,
		Logger:  deps.Logger,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalog.ErrorMessage(err))
		return err
	}
	defer ctrl.Close()

	ctrl.Mount()
	if c.Text != "" {
		ctrl.Type(c.Text)
		ctrl.Submit()
	}

	var facets []string
	g, gctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		ctrl.Wait()
		return nil
	})
	g.Go(func() error {
		facets = ctrl.LoadFacets(gctx)
		return nil
	})
	_ = g.Wait()

	if c.Page > 0 {
		ctrl.SetPage(c.Page)
		ctrl.Wait()
	}

	view := ctrl.Snapshot()
	if view.Err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", view.Message)
		return view.Err
	}

	printResults(deps, kind, view)
	if len(facets) > 0 {
		fmt.Fprintf(deps.Stdout, "\nFacets: %s\n", strings.Join(facets, ", "))
	}
	if len(view.History) > 0 {
		fmt.Fprintf(deps.Stdout, "Recent: %s\n", strings.Join(view.History, ", "))
	}
	if raw := state.Read().Encode(); raw != "" {
		fmt.Fprintf(deps.Stdout, "Address: ?%s\n", raw)
	}

	return nil
}

func printResults(deps *Dependencies, kind catalog.Kind, view listing.View) {
	page := view.Results

	if page.Total == 0 {
		fmt.Fprintf(deps.Stdout, "No %s match %q.\n", kind, view.Query.Text)
		return
	}

	fmt.Fprintf(deps.Stdout, "%d %s (page %d of %d)\n\n", page.Total, kind, page.Page, page.TotalPages)

	switch view.Query.View {
	case catalog.ViewList:
		for _, e := range page.Items {
			fmt.Fprintf(deps.Stdout, "%s [%s]\n", e.Name, e.Category)
			if e.Description != "" {
				fmt.Fprintf(deps.Stdout, "    %s\n", e.Description)
			}
			if len(e.Tags) > 0 {
				fmt.Fprintf(deps.Stdout, "    tags: %s\n", strings.Join(e.Tags, ", "))
			}
		}
	default:
		width := 0
		for _, e := range page.Items {
			width = max(width, len(e.Name))
		}
		for _, e := range page.Items {
			fmt.Fprintf(deps.Stdout, "%-*s  %s\n", width, e.Name, e.Category)
		}
	}
}
