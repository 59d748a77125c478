package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/camp-quarters/pkg/db"
)

// GetTransfer retrieves a single transfer request
func (s *Store) GetTransfer(ctx context.Context, transferID string) (*db.TransferRequest, error) {
	var transfer db.TransferRequest
	err := s.pool.QueryRow(ctx, `
		SELECT id, source_camp_id, target_camp_id, personnel_ids, status, proposal
		FROM transfer_request
		WHERE id = $1
	`, transferID).Scan(&transfer.ID, &transfer.SourceCampID, &transfer.TargetCampID,
		&transfer.PersonnelIDs, &transfer.Status, &transfer.Proposal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("transfer request %s: %w", transferID, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer request: %w", err)
	}
	return &transfer, nil
}

// GetActiveTransfers retrieves transfer requests whose status still lays
// claim to their personnel, for conflict detection.
func (s *Store) GetActiveTransfers(ctx context.Context) ([]db.TransferRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, source_camp_id, target_camp_id, personnel_ids, status, proposal
		FROM transfer_request
		WHERE status IN ('pending_allocation', 'beds_allocated', 'approved_for_dispatch',
		                 'dispatched', 'partially_arrived')
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer requests: %w", err)
	}
	defer rows.Close()

	var transfers []db.TransferRequest
	for rows.Next() {
		var transfer db.TransferRequest
		if err := rows.Scan(&transfer.ID, &transfer.SourceCampID, &transfer.TargetCampID,
			&transfer.PersonnelIDs, &transfer.Status, &transfer.Proposal); err != nil {
			return nil, fmt.Errorf("failed to scan transfer request: %w", err)
		}
		transfers = append(transfers, transfer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer requests: %w", err)
	}

	return transfers, nil
}

// AttachTransferProposal stores the serialized allocation proposal on the
// transfer request and moves it to beds_allocated. Conditional on the request
// still awaiting allocation.
func (s *Store) AttachTransferProposal(ctx context.Context, transferID string, proposal []byte) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE transfer_request
		SET proposal = $2, status = 'beds_allocated'
		WHERE id = $1 AND status = 'pending_allocation'
	`, transferID, proposal)
	if err != nil {
		return fmt.Errorf("failed to attach proposal to transfer %s: %w", transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transfer request %s is not awaiting allocation: %w", transferID, db.ErrBedStateChanged)
	}
	return nil
}
