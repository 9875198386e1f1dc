package types

import (
	"strings"
	"time"
)

// CourseType classifies how a course is delivered (e.g. "Individual", "Group").
type CourseType struct {
	ID        string    `json:"id"`        // UUID v7, generated on creation.
	Name      string    `json:"name"`      // Unique case-insensitively.
	CreatedAt time.Time `json:"createdAt"` // Set once on creation.
}

// RecordID implements Record.
func (c CourseType) RecordID() string { return c.ID }

// ForeignKeys implements Record. Course types reference nothing.
func (c CourseType) ForeignKeys() map[Kind]string { return nil }

// CourseTypeInput carries the mutable fields of a CourseType.
type CourseTypeInput struct {
	Name string `json:"name"`
}

// Normalize returns the input with surrounding whitespace removed.
func (in CourseTypeInput) Normalize() CourseTypeInput {
	return CourseTypeInput{Name: strings.TrimSpace(in.Name)}
}
