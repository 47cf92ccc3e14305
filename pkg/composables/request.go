package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
	"github.com/enclaveworks/enclave-sdk/pkg/constants"
)

var (
	ErrNoActor   = errors.New("actor not found in context")
	ErrNoTenant  = errors.New("tenant not found in context")
	ErrForbidden = errors.New("forbidden")
)

// WithActor returns a new context carrying the authenticated caller.
func WithActor(ctx context.Context, actor access.Actor) context.Context {
	return context.WithValue(ctx, constants.ActorKey, actor)
}

// UseActor returns the authenticated caller from the context.
func UseActor(ctx context.Context) (access.Actor, error) {
	actor, ok := ctx.Value(constants.ActorKey).(access.Actor)
	if !ok {
		return access.Actor{}, ErrNoActor
	}
	return actor, nil
}

func WithTenantID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.TenantKey, id)
}

func UseTenantID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(constants.TenantKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoTenant
	}
	return id, nil
}

func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, entry)
}

// UseLogger returns the request-scoped logger. Falls back to the standard
// logger so library code never has to nil-check.
func UseLogger(ctx context.Context) *logrus.Entry {
	entry, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return entry
}
