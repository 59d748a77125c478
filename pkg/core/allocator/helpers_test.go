package allocator

import (
	"time"

	"github.com/jakechorley/camp-quarters/internal/config"
	"github.com/jakechorley/camp-quarters/pkg/core/inventory"
	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// bedOption mutates a test bed context
type bedOption func(*inventory.BedContext)

func upperBerth() bedOption {
	return func(b *inventory.BedContext) { b.Bed.IsLowerBerth = false }
}

func roomType(t model.OccupantType) bedOption {
	return func(b *inventory.BedContext) { b.Room.OccupantType = t }
}

func roomGender(g model.GenderRestriction) bedOption {
	return func(b *inventory.BedContext) { b.Room.GenderRestriction = g }
}

func roomCapacity(c int) bedOption {
	return func(b *inventory.BedContext) { b.Room.Capacity = c }
}

func temporaryFill(leaveID string) bedOption {
	return func(b *inventory.BedContext) {
		b.IsTemporary = true
		b.LeaveID = leaveID
		b.Bed.Status = model.BedStatusReserved
	}
}

// makeBed builds an eligible bed context in a mixed, unrestricted room. Room
// identity is derived from floor and room numbers so beds in the same room
// share a room ID.
func makeBed(floorNumber int, roomNumber, bedNumber string, opts ...bedOption) inventory.BedContext {
	roomID := "room-" + roomNumber
	bed := inventory.BedContext{
		Bed: model.Bed{
			ID:           "bed-" + roomNumber + "-" + bedNumber,
			RoomID:       roomID,
			Number:       bedNumber,
			IsLowerBerth: true,
			Status:       model.BedStatusAvailable,
		},
		Room: model.Room{
			ID:                roomID,
			FloorID:           "floor-1",
			Number:            roomNumber,
			Capacity:          4,
			OccupantType:      model.OccupantTypeMixed,
			GenderRestriction: model.GenderRestrictionNone,
		},
		Floor: model.Floor{
			ID:     "floor-1",
			CampID: "camp-1",
			Number: floorNumber,
		},
	}
	for _, opt := range opts {
		opt(&bed)
	}
	return bed
}

// personOption mutates a test person
type personOption func(*model.Person)

func external() personOption {
	return func(p *model.Person) { p.Type = model.PersonTypeExternalStaff }
}

func female() personOption {
	return func(p *model.Person) { p.Gender = model.GenderFemale }
}

func nationality(n string) personOption {
	return func(p *model.Person) { p.Nationality = n }
}

func homeState(s string) personOption {
	return func(p *model.Person) { p.HomeState = s }
}

func languages(l ...string) personOption {
	return func(p *model.Person) { p.Languages = l }
}

func trade(t string) personOption {
	return func(p *model.Person) { p.Trade = t }
}

func nightShift() personOption {
	return func(p *model.Person) { p.Shift = model.ShiftNight }
}

func bornIn(year int) personOption {
	return func(p *model.Person) {
		dob := time.Date(year, 1, 15, 0, 0, 0, 0, time.UTC)
		p.DateOfBirth = &dob
	}
}

func arrivesAt(t time.Time) personOption {
	return func(p *model.Person) { p.ArrivalAt = t }
}

func makePerson(id string, opts ...personOption) model.Person {
	person := model.Person{
		ID:          id,
		Type:        model.PersonTypeWorker,
		FirstName:   "Test",
		LastName:    id,
		Gender:      model.GenderMale,
		Nationality: "India",
		Shift:       model.ShiftDay,
		ArrivalAt:   testNow.Add(-24 * time.Hour),
	}
	for _, opt := range opts {
		opt(&person)
	}
	return person
}

func makeSnapshot(beds ...inventory.BedContext) *inventory.Snapshot {
	return &inventory.Snapshot{
		CampID:    "camp-1",
		Beds:      beds,
		Occupants: make(map[string][]inventory.Occupant),
	}
}

func withOccupant(snapshot *inventory.Snapshot, roomID string, person model.Person) *inventory.Snapshot {
	snapshot.Occupants[roomID] = append(snapshot.Occupants[roomID], inventory.Occupant{
		PersonID:    person.ID,
		Type:        person.Type,
		Gender:      person.Gender,
		Nationality: person.Nationality,
		HomeState:   person.HomeState,
		Languages:   person.Languages,
		Trade:       person.Trade,
		Shift:       person.Shift,
	})
	return snapshot
}

func allPreferences() config.GroupingPreferences {
	return config.GroupingPreferences{
		GroupByNationality: true,
		GroupByHomeState:   true,
		GroupByLanguage:    true,
		GroupByTrade:       true,
		GroupByShift:       true,
	}
}

func testCamp(campType model.CampType) model.Camp {
	return model.Camp{ID: "camp-1", Name: "Camp One", Type: campType}
}

func testRequest(campType model.CampType, candidates ...model.Person) AllocationRequest {
	return AllocationRequest{
		Camp:        testCamp(campType),
		Candidates:  candidates,
		Preferences: allPreferences(),
		Weights:     config.DefaultScoringWeights(),
		Mode:        ModeDirect,
		Now:         testNow,
	}
}
