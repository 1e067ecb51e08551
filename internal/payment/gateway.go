package payment

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// ChargeResult is the gateway's answer to a single charge attempt.
type ChargeResult struct {
	Succeeded bool
	ChargeID  string
}

// Gateway is the external charge collaborator. Amount is in minor currency
// units; methodToken is an opaque payment-method descriptor.
type Gateway interface {
	Charge(ctx context.Context, amount int64, currency, methodToken string) (ChargeResult, error)
}

// Mode controls the simulated gateway's behavior.
type Mode string

const (
	ModeSucceed Mode = "succeed"
	ModeDecline Mode = "decline"
	ModeRandom  Mode = "random"
)

var errCardDeclined = errors.New("card declined")

// simGateway stands in for a real payment provider. Outcomes are remembered
// per charge id so repeated status checks stay consistent.
type simGateway struct {
	mu       sync.Mutex
	mode     Mode
	outcomes map[string]bool
}

func NewSimulated(mode Mode) Gateway {
	if mode == "" {
		mode = ModeSucceed
	}
	return &simGateway{mode: mode, outcomes: make(map[string]bool)}
}

func (g *simGateway) Charge(_ context.Context, amount int64, _ string, _ string) (ChargeResult, error) {
	if amount <= 0 {
		return ChargeResult{}, errors.New("amount must be positive")
	}

	chargeID := "ch_" + uuid.NewString()

	succeeded := true
	switch g.mode {
	case ModeDecline:
		succeeded = false
	case ModeRandom:
		succeeded = rand.IntN(100) < 70
	}

	g.mu.Lock()
	g.outcomes[chargeID] = succeeded
	g.mu.Unlock()

	if !succeeded {
		return ChargeResult{Succeeded: false, ChargeID: chargeID}, errCardDeclined
	}
	return ChargeResult{Succeeded: true, ChargeID: chargeID}, nil
}
