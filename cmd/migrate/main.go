package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"algorithm_guessr/internal/platform/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

func main() {
	config.Load()

	flags := pflag.NewFlagSet("migrate", pflag.ExitOnError)
	dir := flags.String("dir", config.AppConfig.MigrationsDir, "directory holding the *.sql migrations")
	steps := flags.Int("steps", 0, "apply only N migrations (negative rolls back); 0 means all")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: migrate [flags] up|down|version")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(2)
	}

	absDir, err := filepath.Abs(*dir)
	if err != nil {
		log.Fatalf("Cannot resolve migrations dir %s: %v", *dir, err)
	}
	m, err := migrate.New("file://"+filepath.ToSlash(absDir), config.AppConfig.MigrationURL())
	if err != nil {
		log.Fatalf("Cannot create migrate instance: %v", err)
	}
	defer m.Close()

	command := flags.Arg(0)
	log.Printf("Running migration command: %s", command)

	var errMigration error
	switch command {
	case "up":
		if *steps != 0 {
			errMigration = m.Steps(*steps)
		} else {
			errMigration = m.Up()
		}
	case "down":
		if *steps != 0 {
			errMigration = m.Steps(-abs(*steps))
		} else {
			errMigration = m.Down()
		}
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatalf("Cannot read version: %v", err)
		}
		log.Printf("Schema version %d (dirty=%t)", version, dirty)
		return
	default:
		log.Fatalf("Unknown command: %s", command)
	}

	if errMigration != nil && !errors.Is(errMigration, migrate.ErrNoChange) {
		log.Fatalf("Migration failed: %v", errMigration)
	}
	log.Println("Migration finished successfully!")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
