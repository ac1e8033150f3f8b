package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gestock/backend/internal/infrastructure/config"
	"github.com/gestock/backend/internal/infrastructure/logger"
	"github.com/gestock/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "path to migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	path, err := resolveMigrationsPath(migrationsPath)
	if err != nil {
		log.Fatal("Could not resolve migrations path", zap.Error(err))
	}

	log.Info("Migration tool",
		zap.String("command", command),
		zap.String("migrations_path", path),
	)

	// create and list work purely on the filesystem
	switch command {
	case "create":
		runCreate(log, path, args[1:])
		return
	case "list":
		runList(log, path)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to reach database", zap.Error(err))
	}

	m, err := migration.New(db, path, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer m.Close()

	if err := runCommand(m, log, command, args[1:]); err != nil {
		log.Fatal("Command failed", zap.String("command", command), zap.Error(err))
	}
}

func runCommand(m *migration.Migrator, log *zap.Logger, command string, args []string) error {
	switch command {
	case "up":
		return m.Up()

	case "down":
		return m.Down()

	case "step":
		n, err := intArg(args, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)

	case "goto":
		n, err := intArg(args, "target version")
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("target version cannot be negative")
		}
		return m.GoTo(uint(n))

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("No migrations applied yet")
		} else {
			log.Info("Current schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
		return nil

	case "force":
		n, err := intArg(args, "version")
		if err != nil {
			return err
		}
		return m.Force(n)

	case "drop":
		if !hasConfirmFlag(args) {
			return fmt.Errorf("drop destroys all data; rerun as 'migrate drop -confirm'")
		}
		return m.Drop()

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runCreate(log *zap.Logger, path string, args []string) {
	if len(args) == 0 {
		log.Fatal("Migration name required. Usage: migrate create <name> [description]")
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(path, args[0], description)
	if err != nil {
		log.Fatal("Failed to create migration", zap.Error(err))
	}
	log.Info("Migration pair created",
		zap.String("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath),
	)
}

func runList(log *zap.Logger, path string) {
	migrations, err := migration.ListMigrations(path)
	if err != nil {
		log.Fatal("Failed to list migrations", zap.Error(err))
	}
	if len(migrations) == 0 {
		log.Info("No migrations found")
		return
	}
	log.Info("Available migrations", zap.Int("count", len(migrations)))
	for _, name := range migrations {
		fmt.Println("  -", name)
	}
}

// resolveMigrationsPath prefers the -path flag, then ./migrations, then the
// migrations directory relative to the installed binary.
func resolveMigrationsPath(flagPath string) (string, error) {
	path := flagPath
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(path); err != nil {
			if execPath, execErr := os.Executable(); execErr == nil {
				candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	return filepath.Abs(path)
}

func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[0])
	}
	return n, nil
}

func hasConfirmFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println(`GeStock database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative rolls back)
  goto <version>        Migrate to a specific version
  version               Show the current schema version
  force <version>       Overwrite the recorded version (recovery only)
  drop -confirm         Drop all database objects
  create <name> [desc]  Create a new .up.sql/.down.sql pair
  list                  List available migrations

Flags:
  -path string          Path to migrations directory (default: ./migrations)
  -log-level string     Log level: debug, info, warn, error (default: info)

Configuration:
  Reads config.toml plus GESTOCK_-prefixed environment variables, e.g.
  GESTOCK_DATABASE_HOST, GESTOCK_DATABASE_PASSWORD, GESTOCK_DATABASE_DBNAME.

Examples:
  migrate up
  migrate step -1
  migrate create add_stock_alerts "Track per-product alert thresholds"
  migrate version`)
}
