package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/brushlead/brushlead/internal/config"
	"github.com/brushlead/brushlead/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	dir := flag.String("dir", "migrations", "Directory containing .sql migration files")
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(*dir, "*.sql"))
	if err != nil {
		logger.Fatalf("Failed to list migrations: %v", err)
	}
	sort.Strings(files)

	if *dryRun {
		for _, file := range files {
			sql, err := os.ReadFile(file)
			if err != nil {
				logger.Fatalf("Failed to read %s: %v", file, err)
			}
			fmt.Printf("-- %s\n%s\n", file, sql)
		}
		return
	}

	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logger.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			logger.Fatalf("Failed to read %s: %v", file, err)
		}

		logger.Infof("Applying migration %s", filepath.Base(file))
		if _, err := db.ExecContext(ctx, string(sql)); err != nil {
			logger.Fatalf("Migration %s failed: %v", file, err)
		}
	}

	logger.Infof("Applied %d migrations", len(files))
}
