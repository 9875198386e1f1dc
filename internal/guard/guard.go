// Package guard enforces referential integrity on delete: a record may not be
// removed while another record references it.
package guard

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// Source is the read-only view of stored records the guard needs.
type Source interface {
	// Records returns the current records of kind.
	Records(ctx context.Context, kind types.Kind) ([]types.Record, error)
}

// dependents maps a kind to the kinds whose records may reference it.
var dependents = map[types.Kind][]types.Kind{
	types.KindCourseType: {types.KindOffering},
	types.KindCourse:     {types.KindOffering},
	types.KindOffering:   {types.KindRegistration},
}

// Dependents returns the kinds that may reference records of kind.
func Dependents(kind types.Kind) []types.Kind {
	return dependents[kind]
}

// CanDelete reports whether no record in src references the record of kind
// identified by id. It stops at the first reference found.
func CanDelete(ctx context.Context, src Source, kind types.Kind, id string) (bool, error) {
	for _, dep := range Dependents(kind) {
		records, err := src.Records(ctx, dep)
		if err != nil {
			return false, fmt.Errorf("loading %s: %w", dep, err)
		}
		for _, r := range records {
			if r.ForeignKeys()[kind] == id {
				return false, nil
			}
		}
	}
	return true, nil
}

// Check returns nil when the record may be deleted. Otherwise it returns an
// error wrapping types.ErrInUse that names the first dependent kind holding
// references and how many of its records do.
func Check(ctx context.Context, src Source, kind types.Kind, id string) error {
	for _, dep := range Dependents(kind) {
		records, err := src.Records(ctx, dep)
		if err != nil {
			return fmt.Errorf("loading %s: %w", dep, err)
		}
		n := 0
		for _, r := range records {
			if r.ForeignKeys()[kind] == id {
				n++
			}
		}
		if n > 0 {
			return fmt.Errorf("%s %s is referenced by %d %s: %w", kind.Label(), id, n, dep, types.ErrInUse)
		}
	}
	return nil
}
