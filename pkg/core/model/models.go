package model

import "time"

type PersonType string

const (
	PersonTypeWorker        PersonType = "worker"
	PersonTypeExternalStaff PersonType = "external_staff"
)

func (p PersonType) IsValid() bool {
	return p == PersonTypeWorker || p == PersonTypeExternalStaff
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type WorkShift string

const (
	ShiftDay   WorkShift = "day"
	ShiftNight WorkShift = "night"
)

type CampType string

const (
	CampTypeRegular   CampType = "regular"
	CampTypeInduction CampType = "induction"
	CampTypeExit      CampType = "exit"
	CampTypeProject   CampType = "project"
)

// UsesSequentialAllocation reports whether camps of this type are filled
// first-come-first-served in physical bed order rather than by scoring.
func (c CampType) UsesSequentialAllocation() bool {
	return c == CampTypeInduction || c == CampTypeExit || c == CampTypeProject
}

type OccupantType string

const (
	OccupantTypeTechnicianOnly OccupantType = "technician_only"
	OccupantTypeExternalOnly   OccupantType = "external_only"
	OccupantTypeStaffOnly      OccupantType = "staff_only"
	OccupantTypeMixed          OccupantType = "mixed"
)

type GenderRestriction string

const (
	GenderRestrictionMale   GenderRestriction = "male"
	GenderRestrictionFemale GenderRestriction = "female"
	GenderRestrictionMixed  GenderRestriction = "mixed"
	GenderRestrictionNone   GenderRestriction = "none"
)

type BedStatus string

const (
	BedStatusAvailable BedStatus = "available"
	BedStatusOccupied  BedStatus = "occupied"
	BedStatusReserved  BedStatus = "reserved"
)

type LeaveBedAction string

const (
	LeaveBedActionNone              LeaveBedAction = "none"
	LeaveBedActionTemporaryAllocate LeaveBedAction = "temporary_allocate"
)

type TransferStatus string

const (
	TransferStatusPendingAllocation   TransferStatus = "pending_allocation"
	TransferStatusBedsAllocated       TransferStatus = "beds_allocated"
	TransferStatusApprovedForDispatch TransferStatus = "approved_for_dispatch"
	TransferStatusDispatched          TransferStatus = "dispatched"
	TransferStatusPartiallyArrived    TransferStatus = "partially_arrived"
	TransferStatusArrived             TransferStatus = "arrived"
	TransferStatusCancelled           TransferStatus = "cancelled"
)

// IsActive reports whether a transfer request in this status still lays claim
// to its personnel. A person referenced by an active transfer must not be
// allocated elsewhere.
func (s TransferStatus) IsActive() bool {
	switch s {
	case TransferStatusPendingAllocation,
		TransferStatusBedsAllocated,
		TransferStatusApprovedForDispatch,
		TransferStatusDispatched,
		TransferStatusPartiallyArrived:
		return true
	}
	return false
}

// Person represents a worker or external staff member being housed.
// Bed and camp references are mutated only when a proposal is committed.
type Person struct {
	ID          string
	Type        PersonType
	FirstName   string
	LastName    string
	Gender      Gender
	Nationality string
	HomeState   string
	Languages   []string
	Trade       string // Workers only
	Shift       WorkShift
	DateOfBirth *time.Time // nil if unknown
	BedID       *string
	CampID      string
	ArrivalAt   time.Time // Actual or expected, used for FCFS ordering
	Active      bool
}

// AgeAt returns the person's age in whole years at the given moment, adjusted
// so the birthday must have passed. Returns false if the date of birth is
// unknown.
func (p *Person) AgeAt(now time.Time) (int, bool) {
	if p.DateOfBirth == nil {
		return 0, false
	}
	dob := *p.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}

// SpeaksAnyOf reports whether the person shares at least one language with
// the given set.
func (p *Person) SpeaksAnyOf(languages []string) bool {
	for _, theirs := range languages {
		for _, ours := range p.Languages {
			if ours == theirs {
				return true
			}
		}
	}
	return false
}

// Camp represents a dormitory facility
type Camp struct {
	ID   string
	Name string
	Type CampType
}

// Floor represents one floor of a camp building
type Floor struct {
	ID     string
	CampID string
	Number int
}

// Room represents a single room on a floor
type Room struct {
	ID                string
	FloorID           string
	Number            string
	Capacity          int
	OccupantType      OccupantType
	GenderRestriction GenderRestriction
}

// AcceptsGender reports whether the room's gender restriction allows the
// given gender.
func (r *Room) AcceptsGender(g Gender) bool {
	switch r.GenderRestriction {
	case GenderRestrictionMixed, GenderRestrictionNone:
		return true
	case GenderRestrictionMale:
		return g == GenderMale
	case GenderRestrictionFemale:
		return g == GenderFemale
	}
	return false
}

// Bed represents a single berth. The occupant fields and status always change
// together: occupied means exactly one occupant reference is set, reserved
// means ReservedFor is set, available means neither.
type Bed struct {
	ID                string
	RoomID            string
	Number            string
	IsLowerBerth      bool
	Status            BedStatus
	WorkerID          *string
	ExternalStaffID   *string
	ReservedFor       *string // Person on leave holding this bed
	TemporaryOccupant *string // Person filling a reserved bed temporarily
}

// OccupantID returns the ID of whoever currently holds the bed, preferring a
// temporary occupant on a reserved bed.
func (b *Bed) OccupantID() (string, bool) {
	if b.TemporaryOccupant != nil {
		return *b.TemporaryOccupant, true
	}
	if b.WorkerID != nil {
		return *b.WorkerID, true
	}
	if b.ExternalStaffID != nil {
		return *b.ExternalStaffID, true
	}
	return "", false
}

// LeaveRequest represents a technician's approved leave. When BedAction is
// temporary_allocate the technician's reserved bed may be filled for the
// duration of the leave.
type LeaveRequest struct {
	ID                string
	TechnicianID      string
	Status            string
	BedAction         LeaveBedAction
	TemporaryOccupant *string
}

// TransferRequest represents a batch move of personnel between camps. The
// allocation proposal is computed when the request reaches bed allocation and
// applied by the arrival workflow.
type TransferRequest struct {
	ID           string
	SourceCampID string
	TargetCampID string
	PersonnelIDs []string
	Status       TransferStatus
	Proposal     []byte // Serialized allocation proposal, nil until allocated
}

// References reports whether the transfer request includes the given person.
func (t *TransferRequest) References(personID string) bool {
	for _, id := range t.PersonnelIDs {
		if id == personID {
			return true
		}
	}
	return false
}
