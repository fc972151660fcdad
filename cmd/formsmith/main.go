package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/formsmith/internal/config"
	"github.com/tgienger/formsmith/internal/db"
	"github.com/tgienger/formsmith/internal/logging"
	"github.com/tgienger/formsmith/internal/store"
	"github.com/tgienger/formsmith/internal/ui"
	"go.uber.org/zap"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `Usage:
  formsmith [--config file]            open the editor
  formsmith export [file]              write every group as JSON (stdout by default)
  formsmith import <file>              replace every group with the file's contents
  formsmith --version
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("formsmith", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	configPath := fs.String("config", "", "path to config.yaml")
	showVersion := fs.Bool("version", false, "print version information")
	fs.BoolVar(showVersion, "v", false, "print version information")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Printf("formsmith %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	}

	dataDir, err := db.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data directory: %w", err)
	}
	cfg, err := config.Load(*configPath, dataDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Sync()

	database, err := db.Open(cfg.Data.DBPath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer database.Close()

	s := store.New(database, log.Named("store"))

	rest := fs.Args()
	if len(rest) > 0 {
		switch rest[0] {
		case "export":
			return runExport(s, rest[1:])
		case "import":
			return runImport(s, rest[1:], log)
		default:
			fs.Usage()
			return fmt.Errorf("unknown command %q", rest[0])
		}
	}

	log.Info("starting editor",
		zap.String("version", version),
		zap.String("db", cfg.Data.DBPath))

	app := ui.NewApp(database, s, log.Named("ui"))
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	return nil
}

func runExport(s *store.Store, args []string) error {
	blob, err := s.Export()
	if err != nil {
		return fmt.Errorf("export groups: %w", err)
	}

	var out io.Writer = os.Stdout
	if len(args) > 0 {
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	_, err = fmt.Fprintln(out, blob)
	return err
}

func runImport(s *store.Store, args []string, log *zap.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("import needs a file")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := s.Import(string(data)); err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}

	groups := s.Snapshot()
	log.Info("groups imported", zap.String("file", args[0]), zap.Int("groups", len(groups)))
	fmt.Printf("Imported %d groups\n", len(groups))
	return nil
}
