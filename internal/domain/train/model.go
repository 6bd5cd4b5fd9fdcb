package train

import "fmt"

type TrainType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Train struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CargoNum      int    `json:"cargo_num"`
	PlacesInCargo int    `json:"places_in_cargo"`
	TrainTypeID   string `json:"train_type_id"`

	// Populated on list reads.
	TrainTypeName string `json:"train_type,omitempty"`
}

// SeatOutOfRangeError reports a cargo or seat index outside the train's
// configuration, along with the valid range.
type SeatOutOfRangeError struct {
	Field string // "cargo" or "seat"
	Value int
	Max   int
}

func (e *SeatOutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [1, %d]", e.Field, e.Value, e.Max)
}

// Capacity is the total number of seats across all cargo units.
func (t *Train) Capacity() int {
	return t.CargoNum * t.PlacesInCargo
}

// ValidateSeat checks a 1-indexed (cargo, seat) pair against the train's
// configuration. Both the seat validator and the availability query derive
// bounds from the same stored CargoNum/PlacesInCargo, so they cannot drift.
func (t *Train) ValidateSeat(cargo, seat int) error {
	if cargo < 1 || cargo > t.CargoNum {
		return &SeatOutOfRangeError{Field: "cargo", Value: cargo, Max: t.CargoNum}
	}
	if seat < 1 || seat > t.PlacesInCargo {
		return &SeatOutOfRangeError{Field: "seat", Value: seat, Max: t.PlacesInCargo}
	}
	return nil
}
