package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/catalog"
	"github.com/fwojciec/catalog/fs"
	"github.com/fwojciec/catalog/history"
	cataloghttp "github.com/fwojciec/catalog/http"
	catalogslog "github.com/fwojciec/catalog/slog"
	"github.com/fwojciec/catalog/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default paths. Flags, environment and the config file override them.
	DBPath     string
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultPath("catalog.db"),
		ConfigPath: defaultPath("config.toml"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("catalog"),
		kong.Description("Browse catalog listings from the command line."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"kinds": kindEnum},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'catalog --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	configPath := firstNonEmpty(cli.Config, m.ConfigPath)
	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set CATALOG_CONFIG to use a different config file\n")
		return fmt.Errorf("failed to load config %q: %w", configPath, err)
	}

	logger := newLogger(stderr, cli.Verbose)

	dbPath := firstNonEmpty(cli.DB, cfg.DB, m.DBPath)
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CATALOG_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	var kv catalog.KeyValueStore = sqlite.NewKeyValueStore(m.DB)
	if cfg.HistoryFile != "" {
		kv = fs.NewKeyValueStore(cfg.HistoryFile)
	}
	kv = catalogslog.NewLoggingKeyValueStore(kv, logger)

	deps.DB = m.DB
	deps.Entries = sqlite.NewEntryService(m.DB)
	deps.History = history.NewStore(kv, history.WithLogger(logger))
	deps.Logger = logger
	deps.Config = cfg

	if remote := firstNonEmpty(cli.Remote, cfg.Remote); remote != "" {
		timeout, err := cfg.TimeoutDuration()
		if err != nil {
			return err
		}
		source, err := cataloghttp.NewSource(remote,
			cataloghttp.WithTimeout(timeout),
			cataloghttp.WithRateLimit(cfg.Rate),
			cataloghttp.WithLogger(logger),
		)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set CATALOG_REMOTE to an http(s) listing endpoint\n")
			return err
		}
		deps.Source = catalogslog.NewLoggingSource(source, logger)
		deps.Facets = catalogslog.NewLoggingFacetSource(source, logger)
	} else {
		source := sqlite.NewSource(m.DB)
		deps.Source = catalogslog.NewLoggingSource(source, logger)
		deps.Facets = catalogslog.NewLoggingFacetSource(source, logger)
	}

	return kongCtx.Run(deps)
}

// newLogger returns a text logger on w. Operational records are only shown
// with --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	dir := filepath.Join(home, ".catalog")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
