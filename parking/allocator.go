package parking

import "fmt"

// Slot identifies one parking position on one day, both zero-based.
type Slot struct {
	Day   int
	Index int
}

// Number is the one-based space number shown to visitors.
func (s Slot) Number() int {
	return s.Index + 1
}

func (s Slot) Accessible() bool {
	return IsAccessibleSlot(s.Index)
}

type Request struct {
	Day        int
	Accessible bool
}

// Allocation describes a claimed slot. Fallback is set when a general request
// was placed on an accessible space because every general space was taken.
type Allocation struct {
	Slot
	Booking  Booking
	Fallback bool
}

// BookingFunc supplies visitor details once a free slot has been found. An
// error leaves the grid untouched.
type BookingFunc func(slot Slot) (Booking, error)

// ValidateDay checks a zero-based day index.
func ValidateDay(day int) error {
	if day < 0 || day >= Days {
		return fmt.Errorf("%w: %d (expected 1-%d)", ErrInvalidDay, day+1, Days)
	}
	return nil
}

// Allocate claims the first free slot for req.
//
// Accessible requests only look at the accessible spaces. General requests
// look at the general spaces first and fall back to the accessible ones; a
// fallback booking is tagged as not accessible.
func Allocate(g *Grid, req Request, build BookingFunc) (Allocation, error) {
	if err := ValidateDay(req.Day); err != nil {
		return Allocation{}, err
	}

	if req.Accessible {
		if slot, ok := firstFree(g, req.Day, 0, AccessibleSlots); ok {
			return claim(g, Slot{Day: req.Day, Index: slot}, true, false, build)
		}
		return Allocation{}, ErrNoSpaceAvailable
	}

	if slot, ok := firstFree(g, req.Day, AccessibleSlots, SlotsPerDay); ok {
		return claim(g, Slot{Day: req.Day, Index: slot}, false, false, build)
	}
	if slot, ok := firstFree(g, req.Day, 0, AccessibleSlots); ok {
		return claim(g, Slot{Day: req.Day, Index: slot}, false, true, build)
	}
	return Allocation{}, ErrNoSpaceAvailable
}

func firstFree(g *Grid, day, from, to int) (int, bool) {
	for i := from; i < to; i++ {
		if !g.occupied(day, i) {
			return i, true
		}
	}
	return 0, false
}

func claim(g *Grid, slot Slot, accessible, fallback bool, build BookingFunc) (Allocation, error) {
	var booking Booking
	if build != nil {
		b, err := build(slot)
		if err != nil {
			return Allocation{}, err
		}
		booking = b
	}
	booking.IsAccessible = accessible
	g.Set(slot.Day, slot.Index, booking)
	return Allocation{Slot: slot, Booking: booking, Fallback: fallback}, nil
}
