package storage

import (
	"encoding/json"
	"fmt"

	"parking-cli/parking"
)

type snapshot struct {
	ParkingSpaces [][]*parking.Booking `json:"parking_spaces"`
}

// rawBooking keeps every field optional so missing keys can be told apart
// from zero values.
type rawBooking struct {
	Name         *string `json:"name"`
	CarLicense   *string `json:"car_license"`
	IsAccessible *bool   `json:"is_accessible"`
}

type rawSnapshot struct {
	ParkingSpaces *[][]*rawBooking `json:"parking_spaces"`
}

// EncodeSnapshot serializes the whole grid. Empty slots become null.
func EncodeSnapshot(g *parking.Grid) ([]byte, error) {
	doc := snapshot{ParkingSpaces: make([][]*parking.Booking, parking.Days)}
	for d := 0; d < parking.Days; d++ {
		day := make([]*parking.Booking, parking.SlotsPerDay)
		for s := 0; s < parking.SlotsPerDay; s++ {
			if b, ok := g.Get(d, s); ok {
				day[s] = &b
			}
		}
		doc.ParkingSpaces[d] = day
	}
	return json.MarshalIndent(doc, "", "    ")
}

// DecodeSnapshot rebuilds a grid from data. Anything that is not exactly
// 14 days of 20 slots with complete records yields ErrMalformedData.
func DecodeSnapshot(data []byte) (*parking.Grid, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	if raw.ParkingSpaces == nil {
		return nil, fmt.Errorf("%w: missing parking_spaces", ErrMalformedData)
	}
	days := *raw.ParkingSpaces
	if len(days) != parking.Days {
		return nil, fmt.Errorf("%w: expected %d days, got %d", ErrMalformedData, parking.Days, len(days))
	}

	grid := parking.NewGrid()
	for d, day := range days {
		if len(day) != parking.SlotsPerDay {
			return nil, fmt.Errorf("%w: day %d has %d slots, expected %d", ErrMalformedData, d+1, len(day), parking.SlotsPerDay)
		}
		for s, entry := range day {
			if entry == nil {
				continue
			}
			if entry.Name == nil || entry.CarLicense == nil || entry.IsAccessible == nil {
				return nil, fmt.Errorf("%w: day %d slot %d is missing fields", ErrMalformedData, d+1, s+1)
			}
			grid.Set(d, s, parking.Booking{
				Name:         *entry.Name,
				CarLicense:   *entry.CarLicense,
				IsAccessible: *entry.IsAccessible,
			})
		}
	}
	return grid, nil
}
