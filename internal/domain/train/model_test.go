package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacity(t *testing.T) {
	tests := []struct {
		name          string
		cargoNum      int
		placesInCargo int
		want          int
	}{
		{"small train", 2, 3, 6},
		{"single cargo", 1, 50, 50},
		{"large train", 100, 100, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Train{CargoNum: tt.cargoNum, PlacesInCargo: tt.placesInCargo}
			assert.Equal(t, tt.want, tr.Capacity())
		})
	}
}

func TestValidateSeat(t *testing.T) {
	tr := &Train{CargoNum: 2, PlacesInCargo: 3}

	tests := []struct {
		name      string
		cargo     int
		seat      int
		wantErr   bool
		wantField string
	}{
		{"first seat", 1, 1, false, ""},
		{"last seat", 2, 3, false, ""},
		{"seat zero", 1, 0, true, "seat"},
		{"seat above range", 1, 7, true, "seat"},
		{"cargo zero", 0, 1, true, "cargo"},
		{"cargo above range", 3, 1, true, "cargo"},
		{"negative seat", 1, -1, true, "seat"},
		{"cargo checked before seat", 5, 9, true, "cargo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tr.ValidateSeat(tt.cargo, tt.seat)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var oor *SeatOutOfRangeError
			require.ErrorAs(t, err, &oor)
			assert.Equal(t, tt.wantField, oor.Field)
		})
	}
}

func TestValidateSeatReportsRange(t *testing.T) {
	tr := &Train{CargoNum: 2, PlacesInCargo: 3}

	err := tr.ValidateSeat(1, 7)
	var oor *SeatOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 7, oor.Value)
	assert.Equal(t, 3, oor.Max)
	assert.Contains(t, err.Error(), "[1, 3]")
}

// Every in-range pair must validate, everything else must not.
func TestValidateSeatExhaustive(t *testing.T) {
	tr := &Train{CargoNum: 3, PlacesInCargo: 4}

	valid := 0
	for cargo := -1; cargo <= tr.CargoNum+1; cargo++ {
		for seat := -1; seat <= tr.PlacesInCargo+1; seat++ {
			err := tr.ValidateSeat(cargo, seat)
			inRange := cargo >= 1 && cargo <= tr.CargoNum && seat >= 1 && seat <= tr.PlacesInCargo
			if inRange {
				assert.NoError(t, err, "cargo=%d seat=%d", cargo, seat)
				valid++
			} else {
				assert.Error(t, err, "cargo=%d seat=%d", cargo, seat)
			}
		}
	}

	assert.Equal(t, tr.Capacity(), valid)
}
