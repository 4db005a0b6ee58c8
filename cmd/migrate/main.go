package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/casecraft/backend/internal/infrastructure/config"
	"github.com/casecraft/backend/internal/infrastructure/logger"
	"github.com/casecraft/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const usage = `casecraft schema migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative rolls back)
  goto <version>        Migrate to a specific version
  version               Show the current schema version
  force <version>       Overwrite the recorded version (dirty-state recovery)
  drop -confirm         Drop every database object
  create <name> [desc]  Create an empty up/down migration pair
  list                  List the migration pairs on disk

Flags:
  -path string          Migrations directory (default: ./migrations)
  -log-level string     debug, info, warn or error (default: info)

The database connection comes from config.toml or CASE_DATABASE_* variables.`

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "migrations", "migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	migrationsPath, err = filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal("resolve migrations path", zap.Error(err))
	}

	// create and list work on the directory alone, no database needed
	switch command {
	case "create":
		runCreate(log, migrationsPath, args[1:])
		return
	case "list":
		runList(log, migrationsPath)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("ping database", zap.Error(err))
	}

	m, err := migration.New(db, migrationsPath, log)
	if err != nil {
		log.Fatal("create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("migrate up", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("migrate down", zap.Error(err))
		}

	case "step":
		n, err := strconv.Atoi(requireArg(log, args, "step count"))
		if err != nil {
			log.Fatal("step count must be an integer", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("migrate step", zap.Error(err))
		}

	case "goto":
		version, err := strconv.ParseUint(requireArg(log, args, "target version"), 10, 32)
		if err != nil {
			log.Fatal("version must be a number", zap.String("value", args[1]))
		}
		if err := m.GoTo(uint(version)); err != nil {
			log.Fatal("migrate goto", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("read schema version", zap.Error(err))
		}
		if version == 0 {
			log.Info("no migrations applied yet")
			return
		}
		log.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))

	case "force":
		version, err := strconv.Atoi(requireArg(log, args, "version"))
		if err != nil {
			log.Fatal("version must be a number", zap.String("value", args[1]))
		}
		if err := m.Force(version); err != nil {
			log.Fatal("force version", zap.Error(err))
		}

	case "drop":
		if !hasConfirmFlag(args[1:]) {
			log.Fatal("drop destroys every table; rerun as 'migrate drop -confirm'")
		}
		if err := m.Drop(); err != nil {
			log.Fatal("drop", zap.Error(err))
		}

	default:
		fmt.Fprintln(os.Stderr, usage)
		log.Fatal("unknown command", zap.String("command", command))
	}
}

func runCreate(log *zap.Logger, migrationsPath string, args []string) {
	if len(args) == 0 {
		log.Fatal("migration name required: migrate create <name> [description]")
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(migrationsPath, args[0], description)
	if err != nil {
		log.Fatal("create migration", zap.Error(err))
	}
	log.Info("migration created",
		zap.String("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath),
	)
}

func runList(log *zap.Logger, migrationsPath string) {
	migrations, err := migration.ListMigrations(migrationsPath)
	if err != nil {
		log.Fatal("list migrations", zap.Error(err))
	}
	if len(migrations) == 0 {
		log.Info("no migrations found", zap.String("path", migrationsPath))
		return
	}
	for _, m := range migrations {
		fmt.Println(m)
	}
}

func requireArg(log *zap.Logger, args []string, what string) string {
	if len(args) < 2 {
		log.Fatal(what + " required")
	}
	return args[1]
}

func hasConfirmFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}
