package services

import (
	"context"

	"github.com/jakechorley/camp-quarters/internal/config"
	"github.com/jakechorley/camp-quarters/pkg/core/model"
	"github.com/jakechorley/camp-quarters/pkg/db"
)

// fakeStore is an in-memory store satisfying the service interfaces, with
// per-record error injection for failure paths.
type fakeStore struct {
	camp      *db.Camp
	floors    []db.Floor
	rooms     []db.Room
	beds      []db.Bed
	personnel map[string]db.Person
	leaves    []db.LeaveRequest
	transfers []db.TransferRequest

	occupyErrs map[string]error // keyed by bed ID
	personErrs map[string]error // keyed by person ID
	attachErr  error

	occupiedBeds   map[string]string // bed ID -> person ID
	temporaryBeds  map[string]string // bed ID -> person ID
	annotatedLeave map[string]string // leave ID -> person ID
	residences     map[string]string // person ID -> bed ID
	attachedTo     string
	attachedBody   []byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		personnel:      make(map[string]db.Person),
		occupyErrs:     make(map[string]error),
		personErrs:     make(map[string]error),
		occupiedBeds:   make(map[string]string),
		temporaryBeds:  make(map[string]string),
		annotatedLeave: make(map[string]string),
		residences:     make(map[string]string),
	}
}

func (s *fakeStore) GetCamp(_ context.Context, campID string) (*db.Camp, error) {
	if s.camp == nil || s.camp.ID != campID {
		return nil, db.ErrNotFound
	}
	return s.camp, nil
}

func (s *fakeStore) GetFloors(_ context.Context, _ string) ([]db.Floor, error) {
	return s.floors, nil
}

func (s *fakeStore) GetRooms(_ context.Context, _ string) ([]db.Room, error) {
	return s.rooms, nil
}

func (s *fakeStore) GetBeds(_ context.Context, _ string) ([]db.Bed, error) {
	return s.beds, nil
}

func (s *fakeStore) GetPersonnel(_ context.Context, ids []string) ([]db.Person, error) {
	records := make([]db.Person, 0, len(ids))
	for _, id := range ids {
		if record, ok := s.personnel[id]; ok {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *fakeStore) GetApprovedLeaves(_ context.Context) ([]db.LeaveRequest, error) {
	return s.leaves, nil
}

func (s *fakeStore) GetActiveTransfers(_ context.Context) ([]db.TransferRequest, error) {
	return s.transfers, nil
}

func (s *fakeStore) GetTransfer(_ context.Context, transferID string) (*db.TransferRequest, error) {
	for i := range s.transfers {
		if s.transfers[i].ID == transferID {
			return &s.transfers[i], nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *fakeStore) OccupyBed(_ context.Context, bedID, personID string, _ model.PersonType) error {
	if err := s.occupyErrs[bedID]; err != nil {
		return err
	}
	s.occupiedBeds[bedID] = personID
	return nil
}

func (s *fakeStore) SetBedTemporaryOccupant(_ context.Context, bedID, personID string) error {
	if err := s.occupyErrs[bedID]; err != nil {
		return err
	}
	s.temporaryBeds[bedID] = personID
	return nil
}

func (s *fakeStore) SetLeaveTemporaryOccupant(_ context.Context, leaveID, personID string) error {
	s.annotatedLeave[leaveID] = personID
	return nil
}

func (s *fakeStore) UpdatePersonResidence(_ context.Context, personID, bedID, _ string) error {
	if err := s.personErrs[personID]; err != nil {
		return err
	}
	s.residences[personID] = bedID
	return nil
}

func (s *fakeStore) AttachTransferProposal(_ context.Context, transferID string, proposal []byte) error {
	if s.attachErr != nil {
		return s.attachErr
	}
	s.attachedTo = transferID
	s.attachedBody = proposal
	return nil
}

func (s *fakeStore) mutationCount() int {
	return len(s.occupiedBeds) + len(s.temporaryBeds) + len(s.annotatedLeave) + len(s.residences)
}

// seedCamp populates the store with one regular camp, one floor, and a single
// four-bed mixed room.
func seedCamp(store *fakeStore, campType string, bedCount int) {
	store.camp = &db.Camp{ID: "camp-1", Name: "Camp One", Type: campType}
	store.floors = []db.Floor{{ID: "floor-1", CampID: "camp-1", Number: 1}}
	store.rooms = []db.Room{{
		ID: "room-101", FloorID: "floor-1", Number: "101",
		Capacity: 4, OccupantType: "mixed", GenderRestriction: "none",
	}}
	for i := 0; i < bedCount; i++ {
		store.beds = append(store.beds, db.Bed{
			ID:           "bed-" + string(rune('a'+i)),
			RoomID:       "room-101",
			Number:       string(rune('1' + i)),
			IsLowerBerth: true,
			Status:       "available",
		})
	}
}

func seedWorker(store *fakeStore, id string) {
	store.personnel[id] = db.Person{
		ID: id, Type: "worker",
		FirstName: "Test", LastName: id,
		Gender: "male", Nationality: "India", Shift: "day",
	}
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL: "postgres://test",
		Preferences: config.GroupingPreferences{GroupByNationality: true},
	}
}
