package parking

import "fmt"

const (
	Days            = 14
	SlotsPerDay     = 20
	AccessibleSlots = 5
)

// Booking is the visitor record held by an occupied slot. IsAccessible records
// whether the slot was claimed for an accessibility request, not the physical
// type of the slot.
type Booking struct {
	Name         string `json:"name"`
	CarLicense   string `json:"car_license"`
	IsAccessible bool   `json:"is_accessible"`
}

// Grid is the two-week allotment: Days days of SlotsPerDay slots each. Slots
// 0..AccessibleSlots-1 of every day are the physically accessible spaces.
type Grid struct {
	days [Days][SlotsPerDay]*Booking
}

func NewGrid() *Grid {
	return &Grid{}
}

// IsAccessibleSlot reports whether slot index is one of the accessible spaces.
func IsAccessibleSlot(slot int) bool {
	return slot >= 0 && slot < AccessibleSlots
}

// Get returns the booking stored at day/slot, if any.
func (g *Grid) Get(day, slot int) (Booking, bool) {
	checkIndex(day, slot)
	b := g.days[day][slot]
	if b == nil {
		return Booking{}, false
	}
	return *b, true
}

func (g *Grid) Set(day, slot int, booking Booking) {
	checkIndex(day, slot)
	b := booking
	g.days[day][slot] = &b
}

// Reset empties every slot of every day.
func (g *Grid) Reset() {
	g.days = [Days][SlotsPerDay]*Booking{}
}

func (g *Grid) occupied(day, slot int) bool {
	return g.days[day][slot] != nil
}

func checkIndex(day, slot int) {
	if day < 0 || day >= Days {
		panic(fmt.Sprintf("parking: day index %d out of range [0,%d)", day, Days))
	}
	if slot < 0 || slot >= SlotsPerDay {
		panic(fmt.Sprintf("parking: slot index %d out of range [0,%d)", slot, SlotsPerDay))
	}
}
