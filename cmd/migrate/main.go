package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/migration"
)

const usage = `Usage: migrate <command> [arguments]

Commands:
  up              apply all pending migrations
  down            roll back the most recent migration
  steps <n>       migrate up (positive) or down (negative) by n steps
  version         print the current migration version
  force <v>       force the schema version without running migrations
  create <name>   create a new migration file pair
  list            list migration files

Flags:
  -path           migrations directory (default "migrations")
`

func main() {
	path := flag.String("path", "migrations", "migrations directory")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	// create and list work on files only and need no database
	switch args[0] {
	case "create":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "create requires a migration name")
			os.Exit(2)
		}
		file, err := migration.CreateMigration(*path, args[1], "")
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		fmt.Println("Created", file.UpPath)
		fmt.Println("Created", file.DownPath)
		return
	case "list":
		files, err := migration.ListMigrations(*path)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	migrator, err := migration.New(db, *path, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() {
		_ = migrator.Close()
	}()

	switch args[0] {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
	case "down":
		if err := migrator.Steps(-1); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
	case "steps":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "steps requires a step count")
			os.Exit(2)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid step count:", args[1])
			os.Exit(2)
		}
		if err := migrator.Steps(n); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			log.Fatal("Failed to read version", zap.Error(err))
		}
		fmt.Printf("version: %d dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "force requires a version")
			os.Exit(2)
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid version:", args[1])
			os.Exit(2)
		}
		if err := migrator.Force(v); err != nil {
			log.Fatal("Failed to force version", zap.Error(err))
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}
