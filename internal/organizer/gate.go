// Package organizer gates organizer-only surfaces by resolving whether
// the signed-in email belongs to an organizer profile.
package organizer

import (
	"context"
	"fmt"

	"ticketly-gateway/internal/api"
	"ticketly-gateway/internal/logger"
	"ticketly-gateway/internal/models"
)

// Lookup is the backend call the gate depends on.
type Lookup interface {
	LookupOrganizer(ctx context.Context, email string) (*models.Organizer, error)
}

// Fallback is the local durable record of organizer emails. It is read
// only when the backend lookup fails unexpectedly and written
// opportunistically on confirmed lookups.
type Fallback interface {
	Remember(ctx context.Context, email string) error
	Known(ctx context.Context, email string) (bool, error)
}

type Gate struct {
	backend  Lookup
	fallback Fallback
	logger   *logger.Logger
}

func NewGate(backend Lookup, fallback Fallback, log *logger.Logger) *Gate {
	return &Gate{backend: backend, fallback: fallback, logger: log}
}

// IsOrganizer resolves the gate for an email. A clean backend 404 means
// "not an organizer" and never consults the fallback.
func (g *Gate) IsOrganizer(ctx context.Context, email string) (bool, error) {
	_, err := g.backend.LookupOrganizer(ctx, email)
	if err == nil {
		if g.fallback != nil {
			if err := g.fallback.Remember(ctx, email); err != nil {
				g.logger.Warn("ORGANIZER", fmt.Sprintf("Failed to record organizer email: %v", err))
			}
		}
		return true, nil
	}

	if api.IsNotFound(err) {
		return false, nil
	}

	if g.fallback == nil {
		return false, err
	}

	g.logger.Warn("ORGANIZER", fmt.Sprintf("Lookup failed, consulting local fallback: %v", err))
	known, fallbackErr := g.fallback.Known(ctx, email)
	if fallbackErr != nil {
		return false, err
	}
	return known, nil
}
