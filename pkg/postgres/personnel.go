package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/camp-quarters/pkg/db"
)

// GetPersonnel retrieves personnel records by ID. IDs with no matching record
// are silently absent from the result.
func (s *Store) GetPersonnel(ctx context.Context, ids []string) ([]db.Person, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, person_type, first_name, last_name, gender, nationality,
		       home_state, languages, trade, work_shift, date_of_birth,
		       bed_id, camp_id, arrival_at, active
		FROM personnel
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query personnel: %w", err)
	}
	defer rows.Close()

	var personnel []db.Person
	for rows.Next() {
		var person db.Person
		if err := rows.Scan(&person.ID, &person.Type, &person.FirstName, &person.LastName,
			&person.Gender, &person.Nationality, &person.HomeState, &person.Languages,
			&person.Trade, &person.Shift, &person.DateOfBirth, &person.BedID,
			&person.CampID, &person.ArrivalAt, &person.Active); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		personnel = append(personnel, person)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating personnel: %w", err)
	}

	return personnel, nil
}

// UpdatePersonResidence sets a person's bed and camp references and marks
// them active.
func (s *Store) UpdatePersonResidence(ctx context.Context, personID, bedID, campID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE personnel
		SET bed_id = $2, camp_id = $3, active = TRUE
		WHERE id = $1
	`, personID, bedID, campID)
	if err != nil {
		return fmt.Errorf("failed to update person %s residence: %w", personID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("person %s: %w", personID, db.ErrNotFound)
	}
	return nil
}
