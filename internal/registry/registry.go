// Package registry is the repository facade over the four entity
// collections. It owns one persisted collection per kind and routes every
// create, update and delete through validation, the referential guard and a
// write-through save. All operations serialize on one mutex.
package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/coursebook/internal/collection"
	"github.com/mesh-intelligence/coursebook/internal/metrics"
	"github.com/mesh-intelligence/coursebook/internal/validate"
	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// Registry owns the collections of every entity kind.
type Registry struct {
	mu      sync.Mutex
	store   types.Store
	log     zerolog.Logger
	now     func() time.Time
	newID   func() (string, error)
	metrics *metrics.Metrics

	courseTypes   *Repo[types.CourseType, types.CourseTypeInput]
	courses       *Repo[types.Course, types.CourseInput]
	offerings     *Repo[types.Offering, types.OfferingInput]
	registrations *Repo[types.Registration, types.RegistrationInput]
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// WithClock sets the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithIDGenerator sets the source of record identifiers.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(r *Registry) { r.newID = newID }
}

// WithMetrics records operation outcomes and collection sizes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// newUUID returns a UUID v7 string.
func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// New returns a Registry persisting through store. Collections load lazily
// on first use.
func New(store types.Store, opts ...Option) *Registry {
	r := &Registry{
		store: store,
		log:   zerolog.Nop(),
		now:   time.Now,
		newID: newUUID,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.courseTypes = &Repo[types.CourseType, types.CourseTypeInput]{
		reg:       r,
		kind:      types.KindCourseType,
		coll:      collection.New[types.CourseType](store, string(types.KindCourseType)),
		normalize: types.CourseTypeInput.Normalize,
		validate: func(_ context.Context, in types.CourseTypeInput, existing []types.CourseType, excludeID string) error {
			return validate.CourseType(in, existing, excludeID)
		},
		build: func(id string, at time.Time, in types.CourseTypeInput) types.CourseType {
			return types.CourseType{ID: id, Name: in.Name, CreatedAt: at}
		},
		apply: func(ct types.CourseType, in types.CourseTypeInput) types.CourseType {
			ct.Name = in.Name
			return ct
		},
	}

	r.courses = &Repo[types.Course, types.CourseInput]{
		reg:       r,
		kind:      types.KindCourse,
		coll:      collection.New[types.Course](store, string(types.KindCourse)),
		normalize: types.CourseInput.Normalize,
		validate: func(_ context.Context, in types.CourseInput, existing []types.Course, excludeID string) error {
			return validate.Course(in, existing, excludeID)
		},
		build: func(id string, at time.Time, in types.CourseInput) types.Course {
			return types.Course{ID: id, Name: in.Name, CreatedAt: at}
		},
		apply: func(c types.Course, in types.CourseInput) types.Course {
			c.Name = in.Name
			return c
		},
	}

	r.offerings = &Repo[types.Offering, types.OfferingInput]{
		reg:       r,
		kind:      types.KindOffering,
		coll:      collection.New[types.Offering](store, string(types.KindOffering)),
		normalize: types.OfferingInput.Normalize,
		validate: func(ctx context.Context, in types.OfferingInput, existing []types.Offering, excludeID string) error {
			courses, err := r.courses.coll.All(ctx)
			if err != nil {
				return err
			}
			courseTypes, err := r.courseTypes.coll.All(ctx)
			if err != nil {
				return err
			}
			return validate.Offering(in, existing, courses, courseTypes, excludeID)
		},
		build: func(id string, at time.Time, in types.OfferingInput) types.Offering {
			return types.Offering{ID: id, CourseID: in.CourseID, CourseTypeID: in.CourseTypeID, CreatedAt: at}
		},
		apply: func(o types.Offering, in types.OfferingInput) types.Offering {
			o.CourseID = in.CourseID
			o.CourseTypeID = in.CourseTypeID
			return o
		},
	}

	r.registrations = &Repo[types.Registration, types.RegistrationInput]{
		reg:       r,
		kind:      types.KindRegistration,
		coll:      collection.New[types.Registration](store, string(types.KindRegistration)),
		normalize: types.RegistrationInput.Normalize,
		validate: func(ctx context.Context, in types.RegistrationInput, existing []types.Registration, excludeID string) error {
			offerings, err := r.offerings.coll.All(ctx)
			if err != nil {
				return err
			}
			return validate.Registration(in, existing, offerings, excludeID)
		},
		build: func(id string, at time.Time, in types.RegistrationInput) types.Registration {
			return types.Registration{ID: id, OfferingID: in.OfferingID, Name: in.Name, Email: in.Email, RegisteredAt: at}
		},
		apply: func(reg types.Registration, in types.RegistrationInput) types.Registration {
			reg.OfferingID = in.OfferingID
			reg.Name = in.Name
			reg.Email = in.Email
			return reg
		},
	}

	return r
}

// CourseTypes returns the course type repository.
func (r *Registry) CourseTypes() *Repo[types.CourseType, types.CourseTypeInput] { return r.courseTypes }

// Courses returns the course repository.
func (r *Registry) Courses() *Repo[types.Course, types.CourseInput] { return r.courses }

// Offerings returns the offering repository.
func (r *Registry) Offerings() *Repo[types.Offering, types.OfferingInput] { return r.offerings }

// Registrations returns the registration repository.
func (r *Registry) Registrations() *Repo[types.Registration, types.RegistrationInput] {
	return r.registrations
}

// timestamp returns the current time in UTC at millisecond precision, the
// resolution the stored ISO 8601 strings carry.
func (r *Registry) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

// Init writes an empty collection for every kind that has never been stored.
func (r *Registry) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ensure := range []func(context.Context) error{
		r.courseTypes.coll.Ensure,
		r.courses.coll.Ensure,
		r.offerings.coll.Ensure,
		r.registrations.coll.Ensure,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Reset empties every collection. When the store supports batched writes the
// four keys are replaced in one unit; otherwise they are written one at a
// time, dependents first.
func (r *Registry) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.reset(ctx)
	for _, kind := range types.Kinds {
		r.metrics.Observe(kind, metrics.OpReset, err)
	}
	if err != nil {
		r.log.Error().Err(err).Str("op", metrics.OpReset).Msg("reset failed")
		return err
	}
	r.log.Debug().Str("op", metrics.OpReset).Msg("all collections cleared")
	return nil
}

func (r *Registry) reset(ctx context.Context) error {
	if batch, ok := r.store.(types.BatchStore); ok {
		entries := make(map[string]string, len(types.Kinds))
		for _, kind := range types.Kinds {
			entries[string(kind)] = "[]"
		}
		if err := batch.SetMany(ctx, entries); err != nil {
			return fmt.Errorf("resetting collections: %w", err)
		}
		r.courseTypes.coll.Replace(nil)
		r.courses.coll.Replace(nil)
		r.offerings.coll.Replace(nil)
		r.registrations.coll.Replace(nil)
	} else {
		if err := r.registrations.coll.Save(ctx, nil); err != nil {
			return err
		}
		if err := r.offerings.coll.Save(ctx, nil); err != nil {
			return err
		}
		if err := r.courses.coll.Save(ctx, nil); err != nil {
			return err
		}
		if err := r.courseTypes.coll.Save(ctx, nil); err != nil {
			return err
		}
	}
	for _, kind := range types.Kinds {
		r.metrics.SetRecords(kind, 0)
	}
	return nil
}

// Records returns the current records of kind. It implements guard.Source.
func (r *Registry) Records(ctx context.Context, kind types.Kind) ([]types.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records(ctx, kind)
}

// records is Records without locking, for use while r.mu is held.
func (r *Registry) records(ctx context.Context, kind types.Kind) ([]types.Record, error) {
	switch kind {
	case types.KindCourseType:
		return recordsOf(ctx, r.courseTypes.coll)
	case types.KindCourse:
		return recordsOf(ctx, r.courses.coll)
	case types.KindOffering:
		return recordsOf(ctx, r.offerings.coll)
	case types.KindRegistration:
		return recordsOf(ctx, r.registrations.coll)
	}
	return nil, fmt.Errorf("%q: %w", kind, types.ErrUnknownKind)
}

func recordsOf[T types.Record](ctx context.Context, c *collection.Collection[T]) ([]types.Record, error) {
	items, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out, nil
}

// lockedSource exposes records to the guard while the registry lock is held.
type lockedSource struct{ r *Registry }

func (s lockedSource) Records(ctx context.Context, kind types.Kind) ([]types.Record, error) {
	return s.r.records(ctx, kind)
}
