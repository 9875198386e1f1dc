package types

// Kind names an entity kind. Its string value is the storage key under which
// the kind's collection is persisted.
type Kind string

// Entity kinds.
const (
	KindCourseType   Kind = "courseTypes"
	KindCourse       Kind = "courses"
	KindOffering     Kind = "offerings"
	KindRegistration Kind = "registrations"
)

// Kinds lists every entity kind in dependency order: referenced kinds come
// before the kinds that reference them.
var Kinds = []Kind{
	KindCourseType,
	KindCourse,
	KindOffering,
	KindRegistration,
}

// kindLabels holds the human-readable singular name of each kind.
var kindLabels = map[Kind]string{
	KindCourseType:   "course type",
	KindCourse:       "course",
	KindOffering:     "offering",
	KindRegistration: "registration",
}

// Valid reports whether k is one of the four entity kinds.
func (k Kind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}

// Label returns the singular, lower-case name of the kind ("course type").
func (k Kind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// ParseKind maps a storage key or CLI noun to a Kind.
// Returns ErrUnknownKind if the name is not recognized.
func ParseKind(name string) (Kind, error) {
	if k := Kind(name); k.Valid() {
		return k, nil
	}
	switch name {
	case "course-type", "course-types":
		return KindCourseType, nil
	case "course":
		return KindCourse, nil
	case "offering":
		return KindOffering, nil
	case "registration", "reg":
		return KindRegistration, nil
	}
	return "", ErrUnknownKind
}

// Record is implemented by every entity so that referential checks can scan
// any collection without knowing its concrete type.
type Record interface {
	// RecordID returns the immutable identifier of the record.
	RecordID() string

	// ForeignKeys returns the record's references keyed by the referenced
	// kind. Kinds without references return nil.
	ForeignKeys() map[Kind]string
}
