package geocode

import (
	"strings"

	"github.com/jengzang/prevalence-backend-go/internal/models"
)

// Location represents a postcode centroid
type Location struct {
	Latitude  float64
	Longitude float64
}

// PostcodeRow represents one raw lookup-table entry before de-duplication
type PostcodeRow struct {
	Postcode  string
	Latitude  float64
	Longitude float64
}

// PracticeSeed represents one practice-directory entry before the join.
// The postcode is a join key only and is not exposed downstream.
type PracticeSeed struct {
	ID       string
	Name     string
	Postcode string
}

// BuildLookup de-duplicates the postcode table keeping the first
// occurrence per postcode, trimming keys for exact matching.
func BuildLookup(rows []PostcodeRow) map[string]Location {
	lookup := make(map[string]Location, len(rows))
	for _, r := range rows {
		key := strings.TrimSpace(r.Postcode)
		if key == "" {
			continue
		}
		if _, exists := lookup[key]; exists {
			continue
		}
		lookup[key] = Location{Latitude: r.Latitude, Longitude: r.Longitude}
	}
	return lookup
}

// Join attaches coordinates to practices by exact postcode match.
// Unmatched practices keep their name with nil coordinates; they stay
// in the directory but never produce a spatial feature.
func Join(seeds []PracticeSeed, lookup map[string]Location) map[string]models.PracticeInfo {
	directory := make(map[string]models.PracticeInfo, len(seeds))
	for _, seed := range seeds {
		info := models.PracticeInfo{Name: seed.Name}
		if loc, ok := lookup[strings.TrimSpace(seed.Postcode)]; ok {
			lat, lng := loc.Latitude, loc.Longitude
			info.Latitude = &lat
			info.Longitude = &lng
		}
		directory[seed.ID] = info
	}
	return directory
}
