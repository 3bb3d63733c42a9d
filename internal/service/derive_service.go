package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/jengzang/prevalence-backend-go/internal/aggregate"
	"github.com/jengzang/prevalence-backend-go/internal/config"
	"github.com/jengzang/prevalence-backend-go/internal/dataset"
	"github.com/jengzang/prevalence-backend-go/internal/geocode"
	"github.com/jengzang/prevalence-backend-go/internal/models"
	"github.com/jengzang/prevalence-backend-go/internal/repository"
	"github.com/jengzang/prevalence-backend-go/internal/source"
)

// DeriveService runs the offline pipeline: normalize the register
// extract, aggregate per-condition metrics, join coordinates onto the
// practice directory and emit the interchange document.
type DeriveService struct {
	cfg       *config.Config
	postcodes *repository.PostcodeRepository
}

// NewDeriveService creates a new derive service
func NewDeriveService(cfg *config.Config, postcodes *repository.PostcodeRepository) *DeriveService {
	return &DeriveService{cfg: cfg, postcodes: postcodes}
}

// Run executes the pipeline and writes the dataset to the configured
// path, returning the built document.
func (s *DeriveService) Run() (*models.Dataset, error) {
	grid, err := source.LoadSheet(s.cfg.RegisterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load register extract: %w", err)
	}

	table, err := source.Normalize(grid, source.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to normalize register extract: %w", err)
	}
	log.Printf("Normalized extract: %d canonical columns, %d practice rows", len(table.Columns), len(table.Rows))

	result, err := aggregate.Aggregate(aggregate.Input{
		Table:         table,
		ListSizeKey:   s.cfg.ListSizeKey,
		SubsetSizeKey: s.cfg.SubsetSizeKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate registers: %w", err)
	}
	log.Printf("Aggregated %d conditions", len(result.ConditionTotals))

	seeds, err := LoadPracticeSeeds(s.cfg.PracticesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load practice directory: %w", err)
	}

	lookup, err := s.postcodes.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load postcode lookup: %w", err)
	}

	directory := geocode.Join(seeds, lookup)
	matched := 0
	for _, info := range directory {
		if info.HasCoordinates() {
			matched++
		}
	}
	log.Printf("Geocoded %d/%d practices", matched, len(directory))

	ds, err := dataset.Build(directory, result.ConditionTotals, result.ConditionData)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset: %w", err)
	}

	if err := dataset.Write(s.cfg.DatasetPath, ds); err != nil {
		return nil, err
	}
	log.Printf("Dataset written to %s", s.cfg.DatasetPath)

	return ds, nil
}

// LoadPracticeSeeds reads the practice directory sheet. Unlike the
// register extract it carries a single header row with id, name and
// postcode columns.
func LoadPracticeSeeds(path string) ([]geocode.PracticeSeed, error) {
	grid, err := source.LoadSheet(path)
	if err != nil {
		return nil, err
	}
	if len(grid) < 1 {
		return nil, fmt.Errorf("practice directory %s is empty", path)
	}

	colIdx := indexColumns(grid[0])
	idCol, ok := colIdx["Practice Code"]
	if !ok {
		return nil, fmt.Errorf("practice directory %s lacks a Practice Code column", path)
	}
	nameCol := columnOr(colIdx, "Practice Name")
	postcodeCol := columnOr(colIdx, "Postcode")

	var seeds []geocode.PracticeSeed
	for _, row := range grid[1:] {
		id := cell(row, idCol)
		if id == "" {
			continue
		}
		seeds = append(seeds, geocode.PracticeSeed{
			ID:       id,
			Name:     cell(row, nameCol),
			Postcode: cell(row, postcodeCol),
		})
	}

	return seeds, nil
}

// LoadPostcodeCSV reads a raw postcode lookup sheet for import into
// the sqlite store
func LoadPostcodeCSV(path string) ([]geocode.PostcodeRow, error) {
	grid, err := source.LoadSheet(path)
	if err != nil {
		return nil, err
	}
	if len(grid) < 1 {
		return nil, fmt.Errorf("postcode sheet %s is empty", path)
	}

	colIdx := indexColumns(grid[0])
	pcCol, ok := colIdx["Postcode"]
	if !ok {
		return nil, fmt.Errorf("postcode sheet %s lacks a Postcode column", path)
	}
	latCol := columnOr(colIdx, "Latitude")
	lngCol := columnOr(colIdx, "Longitude")

	var rows []geocode.PostcodeRow
	for _, row := range grid[1:] {
		lat := source.ParseNumber(cell(row, latCol))
		lng := source.ParseNumber(cell(row, lngCol))
		if cell(row, pcCol) == "" || lat == nil || lng == nil {
			continue
		}
		rows = append(rows, geocode.PostcodeRow{
			Postcode:  cell(row, pcCol),
			Latitude:  *lat,
			Longitude: *lng,
		})
	}

	return rows, nil
}

func indexColumns(header []string) map[string]int {
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[name] = i
	}
	return colIdx
}

func columnOr(colIdx map[string]int, name string) int {
	if i, ok := colIdx[name]; ok {
		return i
	}
	return -1
}

func cell(row []string, i int) string {
	if i >= 0 && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
