package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"token-shop/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrPaymentDeclined is returned by SimulatedGateway for a failed charge.
var ErrPaymentDeclined = errors.New("payment declined by provider")

// SimulatedGateway implements ports.PaymentGateway without an external
// provider. A configurable share of charges is declined.
type SimulatedGateway struct {
	mu          sync.Mutex
	failureRate float64
	rng         *rand.Rand
	log         zerolog.Logger
}

// NewSimulatedGateway creates a gateway declining failureRate (0..1) of charges.
func NewSimulatedGateway(failureRate float64, seed uint64, log zerolog.Logger) *SimulatedGateway {
	return &SimulatedGateway{
		failureRate: failureRate,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log:         log,
	}
}

// Charge returns a provider reference, or ErrPaymentDeclined.
func (g *SimulatedGateway) Charge(ctx context.Context, req ports.TopUpRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	g.mu.Lock()
	roll := g.rng.Float64()
	g.mu.Unlock()

	if roll < g.failureRate {
		return "", ErrPaymentDeclined
	}

	ref := "TU-" + uuid.NewString()
	g.log.Debug().
		Str("owner_id", req.OwnerID.String()).
		Str("method", string(req.Method)).
		Str("amount", req.Amount.String()).
		Str("reference", ref).
		Msg("top-up charged")
	return ref, nil
}
