package registry

import (
	"context"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// Placeholders for names whose record no longer resolves.
const (
	UnknownLabel         = "Unknown"
	UnknownOfferingLabel = "Unknown Offering"
)

// OfferingRoster is one offering with the registrations made for it.
type OfferingRoster struct {
	Offering      types.Offering       `json:"offering"`
	Label         string               `json:"label"`
	Registrations []types.Registration `json:"registrations"`
}

// Stats counts stored records per kind.
type Stats struct {
	CourseTypes   int `json:"courseTypes"`
	Courses       int `json:"courses"`
	Offerings     int `json:"offerings"`
	Registrations int `json:"registrations"`
}

// Count returns the number of records of kind.
func (s Stats) Count(kind types.Kind) int {
	switch kind {
	case types.KindCourseType:
		return s.CourseTypes
	case types.KindCourse:
		return s.Courses
	case types.KindOffering:
		return s.Offerings
	case types.KindRegistration:
		return s.Registrations
	}
	return 0
}

// OfferingsByCourseType returns the offerings of one course type in stored
// order. An empty courseTypeID returns every offering.
func (r *Registry) OfferingsByCourseType(ctx context.Context, courseTypeID string) ([]types.Offering, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	offerings, err := r.offerings.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	if courseTypeID == "" {
		return offerings, nil
	}
	out := make([]types.Offering, 0, len(offerings))
	for _, o := range offerings {
		if o.CourseTypeID == courseTypeID {
			out = append(out, o)
		}
	}
	return out, nil
}

// RegistrationsByOffering returns every offering, in stored order, with its
// registrations. Offerings without registrations carry an empty slice.
func (r *Registry) RegistrationsByOffering(ctx context.Context) ([]OfferingRoster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	offerings, err := r.offerings.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	registrations, err := r.registrations.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	labels, err := r.labeler(ctx)
	if err != nil {
		return nil, err
	}

	byOffering := make(map[string][]types.Registration, len(offerings))
	for _, reg := range registrations {
		byOffering[reg.OfferingID] = append(byOffering[reg.OfferingID], reg)
	}

	rosters := make([]OfferingRoster, 0, len(offerings))
	for _, o := range offerings {
		regs := byOffering[o.ID]
		if regs == nil {
			regs = []types.Registration{}
		}
		rosters = append(rosters, OfferingRoster{Offering: o, Label: labels(o), Registrations: regs})
	}
	return rosters, nil
}

// OfferingLabel returns "<course type> - <course>" for o, with UnknownLabel
// in place of a name that does not resolve.
func (r *Registry) OfferingLabel(ctx context.Context, o types.Offering) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	labels, err := r.labeler(ctx)
	if err != nil {
		return "", err
	}
	return labels(o), nil
}

// OfferingLabels returns the label of every stored offering keyed by
// offering ID. Callers show UnknownOfferingLabel for IDs that are absent.
func (r *Registry) OfferingLabels(ctx context.Context) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	offerings, err := r.offerings.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	labels, err := r.labeler(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(offerings))
	for _, o := range offerings {
		out[o.ID] = labels(o)
	}
	return out, nil
}

// labeler snapshots course and course type names and returns a function
// labelling offerings against that snapshot.
func (r *Registry) labeler(ctx context.Context) (func(types.Offering) string, error) {
	courseTypes, err := r.courseTypes.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := r.courses.coll.All(ctx)
	if err != nil {
		return nil, err
	}

	typeNames := make(map[string]string, len(courseTypes))
	for _, ct := range courseTypes {
		typeNames[ct.ID] = ct.Name
	}
	courseNames := make(map[string]string, len(courses))
	for _, c := range courses {
		courseNames[c.ID] = c.Name
	}

	return func(o types.Offering) string {
		typeName, ok := typeNames[o.CourseTypeID]
		if !ok {
			typeName = UnknownLabel
		}
		courseName, ok := courseNames[o.CourseID]
		if !ok {
			courseName = UnknownLabel
		}
		return typeName + " - " + courseName
	}, nil
}

// Stats returns the number of stored records of each kind.
func (r *Registry) Stats(ctx context.Context) (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var s Stats
	for _, kind := range types.Kinds {
		records, err := r.records(ctx, kind)
		if err != nil {
			return Stats{}, err
		}
		n := len(records)
		switch kind {
		case types.KindCourseType:
			s.CourseTypes = n
		case types.KindCourse:
			s.Courses = n
		case types.KindOffering:
			s.Offerings = n
		case types.KindRegistration:
			s.Registrations = n
		}
		r.metrics.SetRecords(kind, n)
	}
	return s, nil
}
