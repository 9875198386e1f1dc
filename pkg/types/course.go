package types

import (
	"strings"
	"time"
)

// Course is a subject that can be offered (e.g. "Hindi").
type Course struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordID implements Record.
func (c Course) RecordID() string { return c.ID }

// ForeignKeys implements Record. Courses reference nothing.
func (c Course) ForeignKeys() map[Kind]string { return nil }

// CourseInput carries the mutable fields of a Course.
type CourseInput struct {
	Name string `json:"name"`
}

// Normalize returns the input with surrounding whitespace removed.
func (in CourseInput) Normalize() CourseInput {
	return CourseInput{Name: strings.TrimSpace(in.Name)}
}
