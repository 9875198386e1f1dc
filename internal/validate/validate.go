// Package validate holds the per-kind validation rules. Every function is
// pure: it checks a candidate against snapshots supplied by the caller and
// never reads storage itself.
//
// Within a field the first failing rule wins; failures across fields are
// collected together. A comparison-key collision is reported once, in
// ValidationError.Duplicate, and only when the key fields themselves are
// present.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// Field names used as ValidationError.Fields keys.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldCourseID     = "courseId"
	FieldCourseTypeID = "courseTypeId"
	FieldOfferingID   = "offeringId"
)

// MinNameLength is the minimum length of a trimmed name, counted in UTF-16
// code units so that a character outside the Basic Multilingual Plane counts
// as two.
const MinNameLength = 2

// emailPattern accepts local@domain.tld with no whitespace and a single @.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s has the local@domain.tld shape.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Name applies the required and minimum-length rules to a name and returns
// the message of the first rule that fails, or "" when the name passes.
func Name(value, required, tooShort string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return required
	}
	if textLength(v) < MinNameLength {
		return tooShort
	}
	return ""
}

// textLength returns the length of s in UTF-16 code units.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// name records a Name failure under FieldName and reports whether it passed.
func name(ve *types.ValidationError, value, required, tooShort string) bool {
	if msg := Name(value, required, tooShort); msg != "" {
		ve.Add(FieldName, msg)
		return false
	}
	return true
}

// sameName compares names case-insensitively after trimming.
func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// contains reports whether records holds one with the given id.
func contains[T types.Record](records []T, id string) bool {
	for _, r := range records {
		if r.RecordID() == id {
			return true
		}
	}
	return false
}

// CourseType validates a course type candidate against the existing course
// types, ignoring the record with excludeID.
func CourseType(in types.CourseTypeInput, existing []types.CourseType, excludeID string) error {
	ve := types.NewValidationError(types.KindCourseType)
	if name(ve, in.Name,
		"Course type name is required",
		"Course type name must be at least 2 characters") {
		for _, ct := range existing {
			if ct.ID != excludeID && sameName(ct.Name, in.Name) {
				ve.Duplicate = "This course type already exists"
				break
			}
		}
	}
	return ve.Err()
}

// Course validates a course candidate against the existing courses, ignoring
// the record with excludeID.
func Course(in types.CourseInput, existing []types.Course, excludeID string) error {
	ve := types.NewValidationError(types.KindCourse)
	if name(ve, in.Name,
		"Course name is required",
		"Course name must be at least 2 characters") {
		for _, c := range existing {
			if c.ID != excludeID && sameName(c.Name, in.Name) {
				ve.Duplicate = "This course already exists"
				break
			}
		}
	}
	return ve.Err()
}

// Offering validates an offering candidate. Both references must resolve in
// courses and courseTypes, and the (course, course type) pair must be unused
// by any offering other than excludeID.
func Offering(in types.OfferingInput, existing []types.Offering, courses []types.Course, courseTypes []types.CourseType, excludeID string) error {
	ve := types.NewValidationError(types.KindOffering)
	courseID := strings.TrimSpace(in.CourseID)
	typeID := strings.TrimSpace(in.CourseTypeID)

	switch {
	case courseID == "":
		ve.Add(FieldCourseID, "Please select a course")
	case !contains(courses, courseID):
		ve.Add(FieldCourseID, "Please select a valid course")
	}
	switch {
	case typeID == "":
		ve.Add(FieldCourseTypeID, "Please select a course type")
	case !contains(courseTypes, typeID):
		ve.Add(FieldCourseTypeID, "Please select a valid course type")
	}

	if courseID != "" && typeID != "" {
		for _, o := range existing {
			if o.ID != excludeID && o.CourseID == courseID && o.CourseTypeID == typeID {
				ve.Duplicate = "This offering already exists"
				break
			}
		}
	}
	return ve.Err()
}

// Registration validates a registration candidate. The offering must
// resolve, the student name and email must be well formed, and the
// (offering, email) pair must be unused by any registration other than
// excludeID. Emails compare case-insensitively; the shape rule applies to
// the email as given, so surrounding whitespace is rejected.
func Registration(in types.RegistrationInput, existing []types.Registration, offerings []types.Offering, excludeID string) error {
	ve := types.NewValidationError(types.KindRegistration)
	offeringID := strings.TrimSpace(in.OfferingID)
	email := strings.TrimSpace(in.Email)

	switch {
	case offeringID == "":
		ve.Add(FieldOfferingID, "Please select a course offering")
	case !contains(offerings, offeringID):
		ve.Add(FieldOfferingID, "Please select a valid course offering")
	}

	name(ve, in.Name, "Student name is required", "Name must be at least 2 characters")

	switch {
	case email == "":
		ve.Add(FieldEmail, "Email is required")
	case !Email(in.Email):
		ve.Add(FieldEmail, "Please enter a valid email address")
	}

	if offeringID != "" && email != "" {
		for _, r := range existing {
			if r.ID != excludeID && r.OfferingID == offeringID && strings.EqualFold(r.Email, email) {
				ve.Duplicate = "This student is already registered for this offering"
				break
			}
		}
	}
	return ve.Err()
}
