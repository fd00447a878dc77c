package main

import (
	"context"
	"flag"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"pincheck/internal/config"
	"pincheck/internal/reporter"
	"pincheck/internal/store"
)

func main() {
	outPath := flag.String("out", "", "path of the Excel workbook to write (defaults to REPORT_PATH)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	path := *outPath
	if path == "" {
		path = cfg.ReportPath
	}

	rep, err := reporter.Run(context.Background(), st, path)
	if err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}

	log.Printf("Excel file %s created successfully", rep.Path)
}
