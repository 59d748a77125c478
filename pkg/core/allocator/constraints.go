package allocator

import (
	"fmt"
	"time"

	"github.com/jakechorley/camp-quarters/pkg/core/inventory"
	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

// lowerBerthAge is the age from which a person must be given a lower berth
const lowerBerthAge = 45

// CheckBed applies the hard constraints for assigning the person to the bed.
// It returns nil when the bed is eligible, otherwise one rejection per
// violated constraint.
//
// The rules, in order:
//  1. Room occupant type: staff rooms are never allocatable, typed rooms
//     require a matching person type, and a mixed room is locked to whichever
//     type currently occupies it, including tentative occupants from earlier
//     in the run.
//  2. Gender restriction: a single-gender room requires a matching gender.
//  3. Lower berth: a person aged 45 or older must get a lower berth.
func CheckBed(person *model.Person, bed *inventory.BedContext, ledger *RoomOccupancyLedger, now time.Time) []Rejection {
	var rejections []Rejection

	if rejection := checkOccupantType(person, bed, ledger); rejection != nil {
		rejections = append(rejections, *rejection)
	}

	if !bed.Room.AcceptsGender(person.Gender) {
		rejections = append(rejections, Rejection{
			RoomNumber: bed.Room.Number,
			Code:       RejectionGender,
			Message:    fmt.Sprintf("room %s is restricted to %s occupants", bed.Room.Number, bed.Room.GenderRestriction),
		})
	}

	if age, known := person.AgeAt(now); known && age >= lowerBerthAge && !bed.Bed.IsLowerBerth {
		rejections = append(rejections, Rejection{
			RoomNumber: bed.Room.Number,
			Code:       RejectionLowerBerth,
			Message:    fmt.Sprintf("bed %s in room %s is an upper berth but the person is %d", bed.Bed.Number, bed.Room.Number, age),
		})
	}

	return rejections
}

func checkOccupantType(person *model.Person, bed *inventory.BedContext, ledger *RoomOccupancyLedger) *Rejection {
	switch bed.Room.OccupantType {
	case model.OccupantTypeStaffOnly:
		return &Rejection{
			RoomNumber: bed.Room.Number,
			Code:       RejectionOccupantType,
			Message:    fmt.Sprintf("room %s is reserved for staff", bed.Room.Number),
		}
	case model.OccupantTypeTechnicianOnly:
		if person.Type != model.PersonTypeWorker {
			return &Rejection{
				RoomNumber: bed.Room.Number,
				Code:       RejectionOccupantType,
				Message:    fmt.Sprintf("room %s is technician-only but person is %s", bed.Room.Number, person.Type),
			}
		}
	case model.OccupantTypeExternalOnly:
		if person.Type != model.PersonTypeExternalStaff {
			return &Rejection{
				RoomNumber: bed.Room.Number,
				Code:       RejectionOccupantType,
				Message:    fmt.Sprintf("room %s is external-staff-only but person is %s", bed.Room.Number, person.Type),
			}
		}
	case model.OccupantTypeMixed:
		if established, locked := ledger.EstablishedType(bed.Room.ID); locked && established != person.Type {
			return &Rejection{
				RoomNumber: bed.Room.Number,
				Code:       RejectionOccupantType,
				Message:    fmt.Sprintf("room %s currently holds %s occupants but person is %s", bed.Room.Number, established, person.Type),
			}
		}
	}
	return nil
}

// CheckStrictNationality excludes a room outright when it has any occupant,
// existing or tentative, of another nationality. Applied only by the scored
// strategy when the strict nationality preference is enabled, irrespective of
// how well the bed would otherwise score.
func CheckStrictNationality(person *model.Person, bed *inventory.BedContext, ledger *RoomOccupancyLedger) *Rejection {
	for _, occupant := range ledger.Occupants(bed.Room.ID) {
		if occupant.Nationality != person.Nationality {
			return &Rejection{
				RoomNumber: bed.Room.Number,
				Code:       RejectionNationality,
				Message: fmt.Sprintf("room %s holds %s nationals but person is from %s",
					bed.Room.Number, occupant.Nationality, person.Nationality),
			}
		}
	}
	return nil
}
