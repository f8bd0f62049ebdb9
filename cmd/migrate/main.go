// Command migrate manages the database schema.
//
//	migrate up
//	migrate down [steps]
//	migrate version
//	migrate force <version>
package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/rutea-api/internal/config"
	"github.com/rutea-api/internal/pkg/logger"
	"github.com/rutea-api/internal/repository/postgres"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate up | down [steps] | version | force <version>")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	migrator, err := postgres.NewMigrator(cfg.GetDatabaseURL(), log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer migrator.Close()

	if err := run(migrator, os.Args[1], os.Args[2:], log); err != nil {
		log.Error("Migration command failed", zap.String("command", os.Args[1]), zap.Error(err))
		os.Exit(1)
	}
}

func run(migrator *postgres.Migrator, command string, args []string, log *zap.Logger) error {
	switch command {
	case "up":
		return migrator.Up()
	case "down":
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid steps %q", args[0])
			}
			steps = n
		}
		return migrator.Down(steps)
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		fmt.Printf("%d (dirty=%t)\n", version, dirty)
		return nil
	case "force":
		if len(args) == 0 {
			usage()
		}
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return migrator.Force(version)
	}
	usage()
	return nil
}
