package registry

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/mesh-intelligence/coursebook/internal/collection"
	"github.com/mesh-intelligence/coursebook/internal/guard"
	"github.com/mesh-intelligence/coursebook/internal/metrics"
	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// Repo is the repository of one entity kind. T is the stored record and In
// the input carrying its mutable fields. Repos are obtained from a Registry
// and share its lock. Input is validated as given and normalized only for
// storage.
type Repo[T types.Record, In any] struct {
	reg  *Registry
	kind types.Kind
	coll *collection.Collection[T]

	normalize func(In) In
	validate  func(ctx context.Context, in In, existing []T, excludeID string) error
	build     func(id string, at time.Time, in In) T
	apply     func(rec T, in In) T
}

// Kind returns the entity kind the repository stores.
func (p *Repo[T, In]) Kind() types.Kind { return p.kind }

// List returns every record in stored order.
func (p *Repo[T, In]) List(ctx context.Context) ([]T, error) {
	p.reg.mu.Lock()
	defer p.reg.mu.Unlock()
	return p.coll.All(ctx)
}

// Get returns the record with id.
// Returns ErrInvalidID if id is empty and ErrNotFound if no record has it.
func (p *Repo[T, In]) Get(ctx context.Context, id string) (T, error) {
	p.reg.mu.Lock()
	defer p.reg.mu.Unlock()

	items, err := p.coll.All(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	i, err := p.find(items, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return items[i], nil
}

// Create validates in, assigns an identifier and creation time, appends the
// record and persists the collection.
func (p *Repo[T, In]) Create(ctx context.Context, in In) (T, error) {
	p.reg.mu.Lock()
	defer p.reg.mu.Unlock()

	rec, err := p.create(ctx, in)
	p.finish(metrics.OpCreate, rec.RecordID(), err)
	return rec, err
}

func (p *Repo[T, In]) create(ctx context.Context, in In) (T, error) {
	var zero T
	items, err := p.coll.All(ctx)
	if err != nil {
		return zero, err
	}
	if err := p.validate(ctx, in, items, ""); err != nil {
		return zero, err
	}
	in = p.normalize(in)

	id, err := p.reg.newID()
	if err != nil {
		return zero, fmt.Errorf("generating %s id: %w", p.kind.Label(), err)
	}
	rec := p.build(id, p.reg.timestamp(), in)

	items = append(items, rec)
	if err := p.coll.Save(ctx, items); err != nil {
		return zero, err
	}
	p.reg.metrics.SetRecords(p.kind, len(items))
	return rec, nil
}

// Update replaces the mutable fields of the record with id. The identifier
// and creation time are kept. Not-found is reported before validation.
func (p *Repo[T, In]) Update(ctx context.Context, id string, in In) (T, error) {
	p.reg.mu.Lock()
	defer p.reg.mu.Unlock()

	rec, err := p.update(ctx, id, in)
	p.finish(metrics.OpUpdate, id, err)
	return rec, err
}

func (p *Repo[T, In]) update(ctx context.Context, id string, in In) (T, error) {
	var zero T
	items, err := p.coll.All(ctx)
	if err != nil {
		return zero, err
	}
	i, err := p.find(items, id)
	if err != nil {
		return zero, err
	}
	if err := p.validate(ctx, in, items, id); err != nil {
		return zero, err
	}
	in = p.normalize(in)

	items[i] = p.apply(items[i], in)
	if err := p.coll.Save(ctx, items); err != nil {
		return zero, err
	}
	return items[i], nil
}

// Delete removes the record with id unless another record references it,
// in which case the error wraps ErrInUse.
func (p *Repo[T, In]) Delete(ctx context.Context, id string) error {
	p.reg.mu.Lock()
	defer p.reg.mu.Unlock()

	err := p.delete(ctx, id)
	p.finish(metrics.OpDelete, id, err)
	return err
}

func (p *Repo[T, In]) delete(ctx context.Context, id string) error {
	items, err := p.coll.All(ctx)
	if err != nil {
		return err
	}
	i, err := p.find(items, id)
	if err != nil {
		return err
	}
	if err := guard.Check(ctx, lockedSource{p.reg}, p.kind, id); err != nil {
		return err
	}

	items = slices.Delete(items, i, i+1)
	if err := p.coll.Save(ctx, items); err != nil {
		return err
	}
	p.reg.metrics.SetRecords(p.kind, len(items))
	return nil
}

// find returns the index of the record with id.
func (p *Repo[T, In]) find(items []T, id string) (int, error) {
	if id == "" {
		return -1, types.ErrInvalidID
	}
	i := slices.IndexFunc(items, func(rec T) bool { return rec.RecordID() == id })
	if i < 0 {
		return -1, fmt.Errorf("%s %s: %w", p.kind.Label(), id, types.ErrNotFound)
	}
	return i, nil
}

// finish logs and counts the outcome of one mutation.
func (p *Repo[T, In]) finish(op, id string, err error) {
	p.reg.metrics.Observe(p.kind, op, err)

	log := p.reg.log
	switch outcome := metrics.Outcome(err); outcome {
	case metrics.OutcomeOK:
		log.Debug().Str("kind", string(p.kind)).Str("op", op).Str("id", id).Msg("mutation applied")
	case metrics.OutcomeError:
		log.Error().Err(err).Str("kind", string(p.kind)).Str("op", op).Str("id", id).Msg("operation failed")
	default:
		log.Info().Err(err).Str("kind", string(p.kind)).Str("op", op).Str("id", id).
			Str("outcome", outcome).Msg("operation rejected")
	}
}
