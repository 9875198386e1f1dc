package types

import (
	"strings"
	"time"
)

// Offering pairs one Course with one CourseType; it is the unit students
// register for. The (CourseID, CourseTypeID) pair is unique.
type Offering struct {
	ID           string    `json:"id"`
	CourseID     string    `json:"courseId"`     // References Course.ID.
	CourseTypeID string    `json:"courseTypeId"` // References CourseType.ID.
	CreatedAt    time.Time `json:"createdAt"`
}

// RecordID implements Record.
func (o Offering) RecordID() string { return o.ID }

// ForeignKeys implements Record.
func (o Offering) ForeignKeys() map[Kind]string {
	return map[Kind]string{
		KindCourse:     o.CourseID,
		KindCourseType: o.CourseTypeID,
	}
}

// OfferingInput carries the mutable fields of an Offering.
type OfferingInput struct {
	CourseID     string `json:"courseId"`
	CourseTypeID string `json:"courseTypeId"`
}

// Normalize returns the input with surrounding whitespace removed from the
// referenced IDs.
func (in OfferingInput) Normalize() OfferingInput {
	return OfferingInput{
		CourseID:     strings.TrimSpace(in.CourseID),
		CourseTypeID: strings.TrimSpace(in.CourseTypeID),
	}
}
