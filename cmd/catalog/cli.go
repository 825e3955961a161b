package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/catalog"
	"github.com/fwojciec/catalog/history"
	"github.com/fwojciec/catalog/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Source  catalog.Source
	Facets  catalog.FacetSource
	Entries catalog.EntryWriter
	History *history.Store
	Logger  *slog.Logger
	Config  Config
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `help:"SQLite database path" env:"CATALOG_DB" type:"path"`
	Remote  string `help:"Remote listing endpoint (overrides the local database)" env:"CATALOG_REMOTE"`
	Config  string `help:"Config file path" env:"CATALOG_CONFIG" type:"path"`
	Verbose bool   `short:"v" help:"Log operations to stderr"`

	Search  SearchCmd  `cmd:"" help:"Search a listing"`
	History HistoryCmd `cmd:"" help:"Show recent searches of a listing"`
	Facets  FacetsCmd  `cmd:"" help:"List facet values of a listing"`
	Seed    SeedCmd    `cmd:"" help:"Load the sample catalog into the local database"`
}

const kindEnum = "concepts,domains,kpis,lines-of-business,subject-categories"

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Kind    string `arg:"" enum:"${kinds}" help:"Listing: ${kinds}"`
	Text    string `arg:"" optional:"" help:"Search text"`
	Facet   string `short:"f" help:"Facet value to filter by"`
	Page    int    `short:"p" help:"Page number"`
	View    string `help:"Result view: grid or list (default: from the address, else grid)"`
	Sort    string `enum:"name,updated" default:"name" help:"Sort order: name or updated"`
	Address string `short:"a" help:"Start from a raw address query string, e.g. 'q=order&page=2'"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Kind  string `arg:"" enum:"${kinds}" help:"Listing: ${kinds}"`
	Clear bool   `help:"Remove the recent searches"`
}

// FacetsCmd is the "facets" subcommand.
type FacetsCmd struct {
	Kind string `arg:"" enum:"${kinds}" help:"Listing: ${kinds}"`
}

// SeedCmd is the "seed" subcommand.
type SeedCmd struct{}
