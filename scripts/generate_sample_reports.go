package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ashmitsharp/treasury-api/internal/data"
	"github.com/ashmitsharp/treasury-api/internal/services"
)

// Writes every report for the built-in sample data, for checking layouts in a spreadsheet app
func main() {
	outDir := flag.String("out", "testdata/reports", "directory to write the workbooks to")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	snap := data.SampleSnapshot()
	for _, r := range services.AvailableReports {
		body, err := services.BuildReport(r.Type, &snap)
		if err != nil {
			log.Fatalf("%s: %v", r.Type, err)
		}

		path := filepath.Join(*outDir, string(r.Type)+".xlsx")
		if err := os.WriteFile(path, body, 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Println("✓ Generated", path)
	}
	fmt.Println("\n✅ All sample reports generated successfully!")
}
