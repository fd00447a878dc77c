package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"pincheck/internal/collector"
	"pincheck/internal/config"
	"pincheck/internal/input"
	"pincheck/internal/pkg/anjani"
	"pincheck/internal/store"
)

func main() {
	inputPath := flag.String("input", "", "path to the pincode list (defaults to INPUT_PATH)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	closeLog, err := teeLogToStore(cfg.StoreDir)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()

	path := *inputPath
	if path == "" {
		path = cfg.InputPath
	}

	codes, err := input.Load(path)
	if err != nil {
		log.Fatalf("Failed to load pincode list: %v", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	client := anjani.New(cfg.CourierBaseURL, cfg.CourierUser, cfg.CourierPassword)

	ctx := context.Background()
	if err := client.Login(ctx); err != nil {
		log.Fatalf("Failed to log in to courier: %v", err)
	}

	col := collector.New(client, st,
		collector.WithBatchSize(cfg.CollectBatchSize),
		collector.WithPause(cfg.CollectPause),
	)

	summary, err := col.Run(ctx, codes)
	if err != nil {
		log.Fatalf("Collection aborted: %v", err)
	}

	log.Printf("Collection complete. Found: %d, not found: %d, errors: %d, skipped: %d",
		summary.Found, summary.NotFound, summary.Errors, summary.Skipped)
	log.Printf("Records stored in %s", cfg.StoreDir)
}

// teeLogToStore mirrors log output into a timestamped file inside the store
// directory so each run leaves a processing record behind.
func teeLogToStore(storeDir string) (func(), error) {
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("collect_log_%s.txt", time.Now().Format("20060102_150405"))
	f, err := os.Create(filepath.Join(storeDir, name))
	if err != nil {
		return nil, err
	}

	log.SetOutput(io.MultiWriter(os.Stderr, f))

	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
