// Package types defines the entity records, the key-value Store interface,
// configuration, and standard errors for the Coursebook data layer.
//
// The four entity kinds (course types, courses, offerings, registrations)
// are persisted as one JSON array per kind. Each entity implements Record so
// referential checks can be written once for every kind.
package types
