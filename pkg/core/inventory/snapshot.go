package inventory

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/camp-quarters/internal/config"
	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

// Occupant is a person currently holding a bed in a room, carrying the
// attributes the allocator needs for compatibility checks and scoring.
type Occupant struct {
	PersonID    string
	Type        model.PersonType
	Gender      model.Gender
	Nationality string
	HomeState   string
	Languages   []string
	Trade       string
	Shift       model.WorkShift
}

// BedContext is a bed eligible for allocation, enriched with its room and
// floor. IsTemporary marks a reserved bed that may be filled for the duration
// of its holder's leave.
type BedContext struct {
	Bed         model.Bed
	Room        model.Room
	Floor       model.Floor
	IsTemporary bool
	LeaveID     string
}

// Snapshot is a read-only view of a camp's allocatable beds and current room
// occupancy, taken once at the start of an allocation run.
type Snapshot struct {
	CampID string

	// Beds eligible for allocation, sorted by (floor, room, bed)
	Beds []BedContext

	// Occupants per room ID, derived from beds currently holding someone
	Occupants map[string][]Occupant
}

// BuildInput carries the raw inventory records needed to build a snapshot.
type BuildInput struct {
	Camp   model.Camp
	Floors []model.Floor
	Rooms  []model.Room
	Beds   []model.Bed

	// Leaves is the set of approved leave requests, used to discover
	// reserved beds eligible for temporary fill
	Leaves []model.LeaveRequest

	// Personnel indexes people by ID so occupants can be enriched with the
	// attributes used by compatibility checks and scoring
	Personnel map[string]model.Person

	// MaintenanceWindows take rooms out of service while active
	MaintenanceWindows []config.MaintenanceWindow

	// Now anchors maintenance window evaluation
	Now time.Time
}

// BuildSnapshot assembles the allocatable-bed view for a camp.
//
// A bed is eligible if it is available, or reserved with an approved leave
// whose bed action is temporary_allocate and whose temporary occupant slot is
// still empty. Rooms under an active maintenance window are excluded
// entirely, matched by room number camp-wide. A camp with no floors, rooms,
// or beds yields an empty snapshot.
func BuildSnapshot(input BuildInput) (*Snapshot, error) {
	outOfService, err := roomsOutOfService(input.MaintenanceWindows, input.Now)
	if err != nil {
		return nil, err
	}

	floorsByID := make(map[string]model.Floor, len(input.Floors))
	for _, floor := range input.Floors {
		floorsByID[floor.ID] = floor
	}

	roomsByID := make(map[string]model.Room, len(input.Rooms))
	for _, room := range input.Rooms {
		roomsByID[room.ID] = room
	}

	// Index approved temporary-fill leaves by the technician holding the bed
	leavesByTechnician := make(map[string]model.LeaveRequest)
	for _, leave := range input.Leaves {
		if leave.BedAction == model.LeaveBedActionTemporaryAllocate && leave.TemporaryOccupant == nil {
			leavesByTechnician[leave.TechnicianID] = leave
		}
	}

	snapshot := &Snapshot{
		CampID:    input.Camp.ID,
		Beds:      []BedContext{},
		Occupants: make(map[string][]Occupant),
	}

	for _, bed := range input.Beds {
		room, ok := roomsByID[bed.RoomID]
		if !ok {
			continue
		}
		floor, ok := floorsByID[room.FloorID]
		if !ok || floor.CampID != input.Camp.ID {
			continue
		}

		// Record current occupancy before eligibility filtering so room
		// exclusivity rules see everyone physically present
		if occupantID, held := bed.OccupantID(); held && bed.Status != model.BedStatusAvailable {
			snapshot.Occupants[room.ID] = append(snapshot.Occupants[room.ID], occupantFor(occupantID, input.Personnel))
		}

		if outOfService[room.Number] {
			continue
		}

		switch bed.Status {
		case model.BedStatusAvailable:
			snapshot.Beds = append(snapshot.Beds, BedContext{Bed: bed, Room: room, Floor: floor})
		case model.BedStatusReserved:
			if bed.ReservedFor == nil || bed.TemporaryOccupant != nil {
				continue
			}
			leave, ok := leavesByTechnician[*bed.ReservedFor]
			if !ok {
				continue
			}
			snapshot.Beds = append(snapshot.Beds, BedContext{
				Bed:         bed,
				Room:        room,
				Floor:       floor,
				IsTemporary: true,
				LeaveID:     leave.ID,
			})
		}
	}

	sortBeds(snapshot.Beds)

	return snapshot, nil
}

// occupantFor builds an Occupant from the personnel index. An occupant
// missing from the index still counts toward room occupancy, just without
// attributes to match on.
func occupantFor(personID string, personnel map[string]model.Person) Occupant {
	person, ok := personnel[personID]
	if !ok {
		return Occupant{PersonID: personID}
	}
	return Occupant{
		PersonID:    person.ID,
		Type:        person.Type,
		Gender:      person.Gender,
		Nationality: person.Nationality,
		HomeState:   person.HomeState,
		Languages:   person.Languages,
		Trade:       person.Trade,
		Shift:       person.Shift,
	}
}

// sortBeds orders beds by (floor number, room number, bed number), the
// physical order used by sequential allocation and as the deterministic scan
// order for scoring.
func sortBeds(beds []BedContext) {
	sort.SliceStable(beds, func(i, j int) bool {
		if beds[i].Floor.Number != beds[j].Floor.Number {
			return beds[i].Floor.Number < beds[j].Floor.Number
		}
		if c := compareAlphanumeric(beds[i].Room.Number, beds[j].Room.Number); c != 0 {
			return c < 0
		}
		return compareAlphanumeric(beds[i].Bed.Number, beds[j].Bed.Number) < 0
	})
}

// compareAlphanumeric compares two identifiers numerically when both parse as
// integers, lexically otherwise, so room "9" sorts before room "10".
func compareAlphanumeric(a, b string) int {
	numA, errA := strconv.Atoi(a)
	numB, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		switch {
		case numA < numB:
			return -1
		case numA > numB:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// roomsOutOfService resolves which room numbers have an active maintenance
// window at the given moment.
func roomsOutOfService(windows []config.MaintenanceWindow, now time.Time) (map[string]bool, error) {
	outOfService := make(map[string]bool)

	for i, window := range windows {
		rule, err := rrule.StrToRRule(window.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in maintenance window %d: %w", i, err)
		}

		occurrence := rule.Before(now, true)
		if occurrence.IsZero() {
			continue
		}

		windowEnd := occurrence.Add(time.Duration(window.DurationHours) * time.Hour)
		if now.Before(windowEnd) {
			for _, roomNumber := range window.RoomNumbers {
				outOfService[roomNumber] = true
			}
		}
	}

	return outOfService, nil
}
