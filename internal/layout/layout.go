// Package layout builds the 2D seating chart of a taxi-brousse vehicle.
//
// A layout is a slice of rows; each slot holds a seat number, or Empty (0)
// for an aisle filler. Seat 1 is always the driver and is never bookable.
package layout

import (
	"errors"
	"fmt"
)

// Empty marks a slot that is not a seat (aisle filler).
const Empty = 0

// DriverSeat is seat number 1, reserved for the driver on every vehicle.
const DriverSeat = 1

// ErrInvalidConfiguration is returned when a seat count cannot produce a
// well-formed layout. Valid trip data never triggers it.
var ErrInvalidConfiguration = errors.New("invalid vehicle configuration")

// VanModel identifies vehicles with a known, fixed cabin arrangement.
type VanModel string

const (
	// VanModelGeneric selects the computed layout.
	VanModelGeneric VanModel = ""
	// VanModelSprinter20 is the 20-seat Mercedes Sprinter arrangement.
	VanModelSprinter20 VanModel = "SPRINTER_20"
	// VanModelCrafter22 is the 22-seat VW Crafter arrangement.
	VanModelCrafter22 VanModel = "CRAFTER_22"
)

// IsValid checks if the van model is a known value.
func (m VanModel) IsValid() bool {
	switch m {
	case VanModelGeneric, VanModelSprinter20, VanModelCrafter22:
		return true
	}
	return false
}

// Layout is the seating chart: rows of slots, front row first.
type Layout [][]int

// Fixed cabin charts surveyed from the two van models operated by the
// cooperatives. Seat counts must match the model or Generate falls back
// to ErrInvalidConfiguration.
var fixedLayouts = map[VanModel]Layout{
	VanModelSprinter20: {
		{1, Empty, 2, 3},
		{4, 5, 6, 7},
		{8, 9, Empty, 10},
		{11, 12, Empty, 13},
		{14, 15, Empty, 16},
		{17, 18, 19, 20},
	},
	VanModelCrafter22: {
		{1, Empty, 2, 3},
		{4, 5, 6, 7},
		{8, 9, 10, Empty},
		{11, 12, 13, 14},
		{15, 16, 17, 18},
		{19, 20, 21, 22},
	},
}

// fixedSeatCounts maps each known model to its total seat count.
var fixedSeatCounts = map[VanModel]int{
	VanModelSprinter20: 20,
	VanModelCrafter22:  22,
}

// Generate produces the seating chart for a vehicle. Known van models
// return their fixed chart; anything else uses the computed arrangement:
// a front row [1 2 3], then benches of four, then a partial tail bench.
//
// The result is deterministic and safe to cache by (totalSeats, model).
func Generate(totalSeats int, model VanModel) (Layout, error) {
	if fixed, ok := fixedLayouts[model]; ok {
		if totalSeats != fixedSeatCounts[model] {
			return nil, fmt.Errorf("%w: model %s has %d seats, got %d",
				ErrInvalidConfiguration, model, fixedSeatCounts[model], totalSeats)
		}
		return clone(fixed), nil
	}

	// The generic arrangement needs the full front row. Smaller counts are
	// rejected rather than clamped so malformed trip data surfaces early.
	if totalSeats < 3 {
		return nil, fmt.Errorf("%w: total seats must be at least 3, got %d",
			ErrInvalidConfiguration, totalSeats)
	}

	chart := Layout{{1, 2, 3}}

	remaining := totalSeats - 3
	fullRows := remaining / 4
	for i := 0; i < fullRows; i++ {
		base := 4 + i*4
		chart = append(chart, []int{base, base + 1, base + 2, base + 3})
	}

	if tail := remaining % 4; tail > 0 {
		row := make([]int, 0, tail)
		for seat := totalSeats - tail + 1; seat <= totalSeats; seat++ {
			row = append(row, seat)
		}
		chart = append(chart, row)
	}

	return chart, nil
}

// Seats returns every passenger seat number in the chart, excluding the
// driver seat and empty slots, in chart order.
func (l Layout) Seats() []int {
	var seats []int
	for _, row := range l {
		for _, slot := range row {
			if slot == Empty || slot == DriverSeat {
				continue
			}
			seats = append(seats, slot)
		}
	}
	return seats
}

// Contains reports whether the chart carries the given passenger seat.
func (l Layout) Contains(seat int) bool {
	if seat == Empty || seat == DriverSeat {
		return false
	}
	for _, row := range l {
		for _, slot := range row {
			if slot == seat {
				return true
			}
		}
	}
	return false
}

// TotalSeats returns the number of seats including the driver's.
func (l Layout) TotalSeats() int {
	count := 0
	for _, row := range l {
		for _, slot := range row {
			if slot != Empty {
				count++
			}
		}
	}
	return count
}

func clone(l Layout) Layout {
	out := make(Layout, len(l))
	for i, row := range l {
		out[i] = append([]int(nil), row...)
	}
	return out
}
