package types

import (
	"strings"
	"time"
)

// Registration enrolls one student in one Offering. The (OfferingID, Email)
// pair is unique; Email is stored lower-case.
type Registration struct {
	ID           string    `json:"id"`
	OfferingID   string    `json:"offeringId"` // References Offering.ID.
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// RecordID implements Record.
func (r Registration) RecordID() string { return r.ID }

// ForeignKeys implements Record.
func (r Registration) ForeignKeys() map[Kind]string {
	return map[Kind]string{KindOffering: r.OfferingID}
}

// RegistrationInput carries the mutable fields of a Registration.
type RegistrationInput struct {
	OfferingID string `json:"offeringId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// Normalize trims every field and lower-cases the email.
func (in RegistrationInput) Normalize() RegistrationInput {
	return RegistrationInput{
		OfferingID: strings.TrimSpace(in.OfferingID),
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
	}
}
