package allocator

import (
	"time"

	"github.com/jakechorley/camp-quarters/internal/config"
	"github.com/jakechorley/camp-quarters/pkg/core/inventory"
	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

// Mode selects what happens to a proposal after the run
type Mode string

const (
	// ModeDirect commits pairings straight to bed and person records
	ModeDirect Mode = "direct"

	// ModeTransfer attaches the proposal to a transfer request for the
	// arrival workflow to apply later
	ModeTransfer Mode = "transfer"
)

// Strategy identifies which allocation algorithm a run used
type Strategy string

const (
	StrategySequential Strategy = "sequential"
	StrategyScored     Strategy = "scored"
)

// AllocationRequest describes one allocation run. It carries everything the
// run needs so the allocator holds no package state.
type AllocationRequest struct {
	Camp       model.Camp
	Candidates []model.Person

	Preferences config.GroupingPreferences
	Weights     config.ScoringWeights

	Mode Mode

	// TransferID is the transfer request driving the run in transfer mode,
	// excluded from conflict detection
	TransferID string

	// Now anchors age computation; zero means time.Now
	Now time.Time
}

// Pairing assigns one person to one bed
type Pairing struct {
	Person model.Person
	Bed    model.Bed
	Room   model.Room
	Floor  model.Floor

	// IsTemporary marks a reserved bed filled for the duration of its
	// holder's leave; LeaveID is the leave request to annotate on commit
	IsTemporary bool
	LeaveID     string

	// Score is the winning bed's score (scored strategy only)
	Score float64
}

// Proposal is the in-memory result of one allocation run, prior to commit.
// Discarding it before commit has no side effects.
type Proposal struct {
	ID        string
	CampID    string
	Mode      Mode
	CreatedAt time.Time
	Pairings  []Pairing
}

// BedIDs returns the IDs of all beds used by the proposal, in pairing order.
func (p *Proposal) BedIDs() []string {
	ids := make([]string, len(p.Pairings))
	for i, pairing := range p.Pairings {
		ids[i] = pairing.Bed.ID
	}
	return ids
}

// RejectionCode classifies why a bed was excluded for a person
type RejectionCode string

const (
	RejectionOccupantType RejectionCode = "occupant_type"
	RejectionGender       RejectionCode = "gender"
	RejectionLowerBerth   RejectionCode = "lower_berth"
	RejectionNationality  RejectionCode = "nationality"
	RejectionNoBeds       RejectionCode = "no_beds"
)

// Rejection records why a specific room's bed was excluded for a person
type Rejection struct {
	RoomNumber string
	Code       RejectionCode
	Message    string
}

// UnallocatedPerson is a candidate no bed could be found for, with the
// deduplicated reasons collected while scanning
type UnallocatedPerson struct {
	Person  model.Person
	Reasons []Rejection
}

// Outcome is the result of one allocation run. Every candidate appears in
// exactly one of Proposal.Pairings or Unallocated.
type Outcome struct {
	Proposal    *Proposal
	Unallocated []UnallocatedPerson
	Strategy    Strategy

	// CapacityShortfall is how many more candidates there were than eligible
	// beds at the start of the run, zero when capacity sufficed. The run
	// still proceeds and reports partial results.
	CapacityShortfall int
}

// AllocatedCount returns the number of candidates the run placed.
func (o *Outcome) AllocatedCount() int {
	if o.Proposal == nil {
		return 0
	}
	return len(o.Proposal.Pairings)
}

// dedupeRejections drops duplicate (room, code) pairs, preserving first-seen
// order.
func dedupeRejections(rejections []Rejection) []Rejection {
	seen := make(map[string]bool, len(rejections))
	deduped := make([]Rejection, 0, len(rejections))
	for _, rejection := range rejections {
		key := rejection.RoomNumber + "|" + string(rejection.Code)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, rejection)
	}
	return deduped
}

// runState is the mutable per-run view both strategies assign against: the
// eligible beds in scan order, the beds taken so far, and the room occupancy
// ledger carrying tentative assignments forward.
type runState struct {
	beds     []inventory.BedContext
	usedBeds map[string]bool
	ledger   *RoomOccupancyLedger
}

func newRunState(snapshot *inventory.Snapshot) *runState {
	return &runState{
		beds:     snapshot.Beds,
		usedBeds: make(map[string]bool),
		ledger:   NewRoomOccupancyLedger(snapshot),
	}
}
