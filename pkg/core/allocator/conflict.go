package allocator

import (
	"fmt"
	"strings"

	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

// Conflict identifies a candidate already claimed by another active transfer
// request.
type Conflict struct {
	PersonID     string
	PersonName   string
	TransferID   string
	TargetCampID string
	Status       model.TransferStatus
}

// ConflictError rejects a whole allocation run because one or more candidates
// already have a competing allocation in flight. The caller can recover by
// re-selecting candidates.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	names := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		names[i] = fmt.Sprintf("%s (transfer %s → camp %s, %s)", c.PersonID, c.TransferID, c.TargetCampID, c.Status)
	}
	return fmt.Sprintf("%d candidate(s) already held by active transfer requests: %s",
		len(e.Conflicts), strings.Join(names, "; "))
}

// DetectConflicts checks every candidate against the open transfer requests,
// skipping the one driving the current run. Any hit rejects the whole batch:
// this is an all-or-nothing gate, not a per-person skip, and it must run
// before anything is committed.
func DetectConflicts(candidates []model.Person, transfers []model.TransferRequest, currentTransferID string) error {
	var conflicts []Conflict

	for _, person := range candidates {
		for _, transfer := range transfers {
			if transfer.ID == currentTransferID || !transfer.Status.IsActive() {
				continue
			}
			if transfer.References(person.ID) {
				conflicts = append(conflicts, Conflict{
					PersonID:     person.ID,
					PersonName:   strings.TrimSpace(person.FirstName + " " + person.LastName),
					TransferID:   transfer.ID,
					TargetCampID: transfer.TargetCampID,
					Status:       transfer.Status,
				})
			}
		}
	}

	if len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}
	return nil
}
