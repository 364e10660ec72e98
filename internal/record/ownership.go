package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/elsaedy55/Revo-backend/pkg/platform/sentinel"
)

// OwnerLookup is the slice of the record store the guard needs.
type OwnerLookup interface {
	GetOwner(ctx context.Context, recordID string) (string, error)
}

// OwnerCache is an optional read-through cache in front of OwnerLookup.
// Ownership never changes after creation, so cached entries only need
// invalidation on delete.
type OwnerCache interface {
	Get(ctx context.Context, recordID string) (string, bool)
	Set(ctx context.Context, recordID, ownerID string)
	Invalidate(ctx context.Context, recordID string)
}

// OwnershipGuard confirms that an identity owns a target record. On mutating
// paths it must complete successfully before validation or transformation
// touch the submitted data; the service enforces that ordering.
type OwnershipGuard struct {
	store OwnerLookup
	cache OwnerCache
	log   *slog.Logger
}

// NewOwnershipGuard constructs a guard. cache may be nil.
func NewOwnershipGuard(store OwnerLookup, cache OwnerCache, log *slog.Logger) *OwnershipGuard {
	return &OwnershipGuard{store: store, cache: cache, log: log}
}

// Require resolves the record's owner and fails with sentinel.ErrNotFound or
// sentinel.ErrForbidden unless subjectID owns it.
func (g *OwnershipGuard) Require(ctx context.Context, recordID, subjectID string) error {
	ownerID, err := g.resolveOwner(ctx, recordID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return fmt.Errorf("record %s: %w", recordID, sentinel.ErrNotFound)
		}
		return fmt.Errorf("resolve owner of record %s: %w", recordID, err)
	}

	if ownerID != subjectID {
		g.log.WarnContext(ctx, "ownership check failed",
			"record_id", recordID,
			"subject_id", subjectID,
		)
		return fmt.Errorf("record %s: %w", recordID, sentinel.ErrForbidden)
	}
	return nil
}

func (g *OwnershipGuard) resolveOwner(ctx context.Context, recordID string) (string, error) {
	if g.cache != nil {
		if ownerID, ok := g.cache.Get(ctx, recordID); ok {
			return ownerID, nil
		}
	}

	ownerID, err := g.store.GetOwner(ctx, recordID)
	if err != nil {
		return "", err
	}

	if g.cache != nil {
		g.cache.Set(ctx, recordID, ownerID)
	}
	return ownerID, nil
}

// Invalidate drops the cached owner for a record, if a cache is configured.
// Called after delete so a recreated id never sees a stale owner.
func (g *OwnershipGuard) Invalidate(ctx context.Context, recordID string) {
	if g.cache != nil {
		g.cache.Invalidate(ctx, recordID)
	}
}
