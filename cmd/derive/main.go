package main

import (
	"flag"
	"log"

	"github.com/jengzang/prevalence-backend-go/internal/config"
	"github.com/jengzang/prevalence-backend-go/internal/database"
	"github.com/jengzang/prevalence-backend-go/internal/repository"
	"github.com/jengzang/prevalence-backend-go/internal/service"
)

func main() {
	var (
		registerPath  = flag.String("register", "", "Path to the register extract CSV (two-row header)")
		practicesPath = flag.String("practices", "", "Path to the practice directory CSV")
		datasetPath   = flag.String("out", "", "Output path for the interchange document")
		postcodeCSV   = flag.String("import-postcodes", "", "Optional postcode CSV to import into the lookup store before deriving")
	)
	flag.Parse()

	cfg := config.Load()
	if *registerPath != "" {
		cfg.RegisterPath = *registerPath
	}
	if *practicesPath != "" {
		cfg.PracticesPath = *practicesPath
	}
	if *datasetPath != "" {
		cfg.DatasetPath = *datasetPath
	}

	if err := database.Init(database.Config{Path: cfg.PostcodeDBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	postcodes := repository.NewPostcodeRepository(database.GetDB())
	if err := postcodes.EnsureSchema(); err != nil {
		log.Fatal("Failed to prepare postcode store:", err)
	}

	if *postcodeCSV != "" {
		rows, err := service.LoadPostcodeCSV(*postcodeCSV)
		if err != nil {
			log.Fatalf("Failed to read postcode CSV: %v", err)
		}
		inserted, err := postcodes.Import(rows)
		if err != nil {
			log.Fatalf("Failed to import postcodes: %v", err)
		}
		log.Printf("Imported %d postcodes (%d rows read)", inserted, len(rows))
	}

	deriver := service.NewDeriveService(cfg, postcodes)
	ds, err := deriver.Run()
	if err != nil {
		log.Fatalf("Derivation failed: %v", err)
	}

	log.Printf("Done: %d practices, %d conditions", len(ds.PracticeInfo), len(ds.ConditionTotals))
}
