package allocator

import (
	"github.com/jakechorley/camp-quarters/pkg/core/inventory"
	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

// RoomOccupancyLedger tracks who holds beds in each room as an allocation run
// progresses. It is seeded from the inventory snapshot and updated with every
// tentative assignment, so later candidates in the same run see the room
// types and nationalities established by earlier ones.
type RoomOccupancyLedger struct {
	occupants map[string][]inventory.Occupant
}

// NewRoomOccupancyLedger seeds a ledger from a snapshot's current occupants.
func NewRoomOccupancyLedger(snapshot *inventory.Snapshot) *RoomOccupancyLedger {
	occupants := make(map[string][]inventory.Occupant, len(snapshot.Occupants))
	for roomID, roomOccupants := range snapshot.Occupants {
		occupants[roomID] = append([]inventory.Occupant(nil), roomOccupants...)
	}
	return &RoomOccupancyLedger{occupants: occupants}
}

// Occupants returns the room's occupants, existing and tentative.
func (l *RoomOccupancyLedger) Occupants(roomID string) []inventory.Occupant {
	return l.occupants[roomID]
}

// EstablishedType returns the person type a room is currently locked to, if
// any occupant has established one. Occupants missing a type (unknown
// personnel records) do not establish a lock.
func (l *RoomOccupancyLedger) EstablishedType(roomID string) (model.PersonType, bool) {
	for _, occupant := range l.occupants[roomID] {
		if occupant.Type.IsValid() {
			return occupant.Type, true
		}
	}
	return "", false
}

// Record adds a tentative assignment to the ledger.
func (l *RoomOccupancyLedger) Record(roomID string, person model.Person) {
	l.occupants[roomID] = append(l.occupants[roomID], inventory.Occupant{
		PersonID:    person.ID,
		Type:        person.Type,
		Gender:      person.Gender,
		Nationality: person.Nationality,
		HomeState:   person.HomeState,
		Languages:   person.Languages,
		Trade:       person.Trade,
		Shift:       person.Shift,
	})
}
