package services

import (
	"context"
	"errors"
	"log/slog"

	"spendlog-server/src/models"
)

// Outcome reports what a guarded operation did. Denied and NotFound leave
// stored state unchanged.
type Outcome string

const (
	Applied  Outcome = "applied"
	Denied   Outcome = "denied"
	NotFound Outcome = "not_found"
)

type owned interface {
	OwnerID() int64
}

// authorize returns Applied only when actor owns record.
func authorize[T owned](actor *models.User, record T) Outcome {
	if actor == nil || record.OwnerID() != actor.ID {
		return Denied
	}
	return Applied
}

// loadOwned fetches a record by id and checks it against actor. Storage
// errors other than ErrNotFound are returned as-is.
func loadOwned[T owned](ctx context.Context, actor *models.User, kind string, id int64,
	find func(context.Context, int64) (T, error)) (T, Outcome, error) {
	var zero T

	record, err := find(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		warnRejected(ctx, actor, kind, id, NotFound)
		return zero, NotFound, nil
	}
	if err != nil {
		return zero, "", err
	}

	if o := authorize(actor, record); o != Applied {
		warnRejected(ctx, actor, kind, id, o)
		return zero, o, nil
	}
	return record, Applied, nil
}

func warnRejected(ctx context.Context, actor *models.User, kind string, id int64, o Outcome) {
	var userID int64
	if actor != nil {
		userID = actor.ID
	}
	slog.WarnContext(ctx, "ownership check rejected request",
		"user_id", userID, "kind", kind, "target_id", id, "outcome", string(o))
}

// settle maps the result of a guarded write. A row removed between the
// ownership check and the write counts as NotFound.
func settle(err error) (Outcome, error) {
	switch {
	case err == nil:
		return Applied, nil
	case errors.Is(err, models.ErrNotFound):
		return NotFound, nil
	default:
		return "", err
	}
}
