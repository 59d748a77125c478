package db

import (
	"strings"
	"time"

	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

// Camp represents a database camp record
type Camp struct {
	ID   string
	Name string
	Type string
}

func (c Camp) ToModel() model.Camp {
	return model.Camp{ID: c.ID, Name: c.Name, Type: model.CampType(c.Type)}
}

// Floor represents a database floor record
type Floor struct {
	ID     string
	CampID string
	Number int
}

func (f Floor) ToModel() model.Floor {
	return model.Floor{ID: f.ID, CampID: f.CampID, Number: f.Number}
}

// Room represents a database room record
type Room struct {
	ID                string
	FloorID           string
	Number            string
	Capacity          int
	OccupantType      string
	GenderRestriction string
}

func (r Room) ToModel() model.Room {
	return model.Room{
		ID:                r.ID,
		FloorID:           r.FloorID,
		Number:            r.Number,
		Capacity:          r.Capacity,
		OccupantType:      model.OccupantType(r.OccupantType),
		GenderRestriction: model.GenderRestriction(r.GenderRestriction),
	}
}

// Bed represents a database bed record
type Bed struct {
	ID                string
	RoomID            string
	Number            string
	IsLowerBerth      bool
	Status            string
	WorkerID          *string
	ExternalStaffID   *string
	ReservedFor       *string
	TemporaryOccupant *string
}

func (b Bed) ToModel() model.Bed {
	return model.Bed{
		ID:                b.ID,
		RoomID:            b.RoomID,
		Number:            b.Number,
		IsLowerBerth:      b.IsLowerBerth,
		Status:            model.BedStatus(b.Status),
		WorkerID:          b.WorkerID,
		ExternalStaffID:   b.ExternalStaffID,
		ReservedFor:       b.ReservedFor,
		TemporaryOccupant: b.TemporaryOccupant,
	}
}

// Person represents a database personnel record, worker or external staff
type Person struct {
	ID          string
	Type        string
	FirstName   string
	LastName    string
	Gender      string
	Nationality string
	HomeState   string
	Languages   string // Comma-separated
	Trade       string
	Shift       string
	DateOfBirth *time.Time
	BedID       *string
	CampID      string
	ArrivalAt   time.Time
	Active      bool
}

func (p Person) ToModel() model.Person {
	var languages []string
	if p.Languages != "" {
		for _, language := range strings.Split(p.Languages, ",") {
			if trimmed := strings.TrimSpace(language); trimmed != "" {
				languages = append(languages, trimmed)
			}
		}
	}
	return model.Person{
		ID:          p.ID,
		Type:        model.PersonType(p.Type),
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Gender:      model.Gender(p.Gender),
		Nationality: p.Nationality,
		HomeState:   p.HomeState,
		Languages:   languages,
		Trade:       p.Trade,
		Shift:       model.WorkShift(p.Shift),
		DateOfBirth: p.DateOfBirth,
		BedID:       p.BedID,
		CampID:      p.CampID,
		ArrivalAt:   p.ArrivalAt,
		Active:      p.Active,
	}
}

// LeaveRequest represents a database leave request record
type LeaveRequest struct {
	ID                string
	TechnicianID      string
	Status            string
	BedAction         string
	TemporaryOccupant *string
}

func (l LeaveRequest) ToModel() model.LeaveRequest {
	return model.LeaveRequest{
		ID:                l.ID,
		TechnicianID:      l.TechnicianID,
		Status:            l.Status,
		BedAction:         model.LeaveBedAction(l.BedAction),
		TemporaryOccupant: l.TemporaryOccupant,
	}
}

// TransferRequest represents a database transfer request record
type TransferRequest struct {
	ID           string
	SourceCampID string
	TargetCampID string
	PersonnelIDs []string
	Status       string
	Proposal     []byte
}

func (t TransferRequest) ToModel() model.TransferRequest {
	return model.TransferRequest{
		ID:           t.ID,
		SourceCampID: t.SourceCampID,
		TargetCampID: t.TargetCampID,
		PersonnelIDs: t.PersonnelIDs,
		Status:       model.TransferStatus(t.Status),
		Proposal:     t.Proposal,
	}
}
