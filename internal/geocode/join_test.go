package geocode

import "testing"

func TestBuildLookupKeepsFirstOccurrence(t *testing.T) {
	lookup := BuildLookup([]PostcodeRow{
		{Postcode: "AB1 2CD", Latitude: 51.1, Longitude: -2.1},
		{Postcode: " AB1 2CD ", Latitude: 99, Longitude: 99},
		{Postcode: "EF3 4GH", Latitude: 51.2, Longitude: -2.2},
		{Postcode: "", Latitude: 1, Longitude: 1},
	})

	if len(lookup) != 2 {
		t.Fatalf("got %d entries, want 2", len(lookup))
	}
	if loc := lookup["AB1 2CD"]; loc.Latitude != 51.1 || loc.Longitude != -2.1 {
		t.Errorf("duplicate postcode should keep first occurrence, got %+v", loc)
	}
}

func TestJoin(t *testing.T) {
	lookup := map[string]Location{
		"AB1 2CD": {Latitude: 51.1, Longitude: -2.1},
	}
	seeds := []PracticeSeed{
		{ID: "P1", Name: "Riverside Surgery", Postcode: " AB1 2CD "},
		{ID: "P2", Name: "Hill View Practice", Postcode: "ZZ9 9ZZ"},
	}

	directory := Join(seeds, lookup)
	if len(directory) != 2 {
		t.Fatalf("got %d practices, want 2", len(directory))
	}

	matched := directory["P1"]
	if !matched.HasCoordinates() {
		t.Fatal("P1 should have coordinates")
	}
	if *matched.Latitude != 51.1 || *matched.Longitude != -2.1 {
		t.Errorf("P1 coordinates = %v,%v", *matched.Latitude, *matched.Longitude)
	}

	// Unmatched practices stay in the directory with nil coordinates
	unmatched := directory["P2"]
	if unmatched.Name != "Hill View Practice" {
		t.Errorf("P2 name = %q", unmatched.Name)
	}
	if unmatched.Latitude != nil || unmatched.Longitude != nil {
		t.Error("P2 should have nil coordinates")
	}
}
