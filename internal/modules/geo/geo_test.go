package geo

import (
	"math"
	"testing"

	"shuttle/internal/types"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a         types.Point
		b         types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Point{Lat: 12.9716, Lng: 77.5946},
			b:         types.Point{Lat: 12.9716, Lng: 77.5946},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "across campus (~1km)",
			a:         types.Point{Lat: 12.9716, Lng: 77.5946},
			b:         types.Point{Lat: 12.9800, Lng: 77.5970},
			wantKm:    0.97,
			tolerance: 0.1,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			a:         types.Point{Lat: 40.7128, Lng: -74.0060},
			b:         types.Point{Lat: 34.0522, Lng: -118.2437},
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := types.Point{Lat: 12.0, Lng: 77.0}
	b := types.Point{Lat: 13.0, Lng: 78.0}
	d1 := HaversineKm(a, b)
	d2 := HaversineKm(b, a)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestHaversineKm_NonNegative(t *testing.T) {
	pts := []types.Point{
		{Lat: 0, Lng: 0},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 51.5074, Lng: -0.1278},
	}
	for _, a := range pts {
		for _, b := range pts {
			if d := HaversineKm(a, b); d < 0 {
				t.Errorf("HaversineKm(%v, %v) = %f, want >= 0", a, b, d)
			}
		}
	}
}

func TestSortByDistance(t *testing.T) {
	type candidate struct {
		id   string
		dist float64
	}
	items := []candidate{
		{id: "c", dist: 5.0},
		{id: "a", dist: 1.0},
		{id: "b", dist: 3.0},
	}

	SortByDistance(items, func(c candidate) float64 { return c.dist })

	if items[0].id != "a" || items[1].id != "b" || items[2].id != "c" {
		t.Errorf("unexpected sort order: %v", items)
	}
}
