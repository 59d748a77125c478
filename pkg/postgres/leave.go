package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/camp-quarters/pkg/db"
)

// GetApprovedLeaves retrieves approved leave requests, used to discover
// reserved beds eligible for temporary fill.
func (s *Store) GetApprovedLeaves(ctx context.Context) ([]db.LeaveRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, technician_id, status, bed_action, temporary_occupant
		FROM leave_request
		WHERE status = 'approved'
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var leaves []db.LeaveRequest
	for rows.Next() {
		var leave db.LeaveRequest
		if err := rows.Scan(&leave.ID, &leave.TechnicianID, &leave.Status,
			&leave.BedAction, &leave.TemporaryOccupant); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		leaves = append(leaves, leave)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave requests: %w", err)
	}

	return leaves, nil
}

// SetLeaveTemporaryOccupant records who is filling the leave holder's bed.
func (s *Store) SetLeaveTemporaryOccupant(ctx context.Context, leaveID, personID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE leave_request
		SET temporary_occupant = $2
		WHERE id = $1
	`, leaveID, personID)
	if err != nil {
		return fmt.Errorf("failed to update leave request %s: %w", leaveID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("leave request %s: %w", leaveID, db.ErrNotFound)
	}
	return nil
}
