// Package dedupe decides whether a freshly extracted or imported transaction
// already exists, and reconciles whole transaction sets into duplicate-free
// output.
package dedupe

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boltpappu0224/finance-tracker/internal/common"
	"github.com/boltpappu0224/finance-tracker/internal/model"
	"github.com/boltpappu0224/finance-tracker/internal/similarity"
)

// Scoring weights are additive. Amount is a hard gate, not a scored factor:
// a pair whose amounts differ beyond the tolerance can never be a duplicate.
// The weights are tuning constants, not configuration; a pair matching on
// amount and direction alone scores 0.6, below the duplicate threshold, so
// it surfaces as a soft match only.
const (
	amountMatchWeight    = 0.4
	directionMatchWeight = 0.2
	counterpartyWeight   = 0.3

	// matchThreshold admits a pool member into the verdict's match list.
	matchThreshold = 0.5
	// duplicateThreshold flags the overall verdict as a confident duplicate.
	duplicateThreshold = 0.7
)

// DefaultWindowMinutes is the time window applied when the config leaves it unset.
const DefaultWindowMinutes = 30

// DefaultAmountTolerance is the absolute amount tolerance applied when the
// config leaves it unset.
var DefaultAmountTolerance = decimal.NewFromFloat(0.01)

// Config tunes a duplicate check. The zero value selects the defaults.
type Config struct {
	AmountTolerance    decimal.Decimal
	WindowMinutes      int
	IgnoreCounterparty bool
}

func (c Config) validate() error {
	if c.WindowMinutes < 0 {
		return common.NewUserError(
			fmt.Sprintf("time window must not be negative, got %d", c.WindowMinutes),
			common.ErrInvalidConfig)
	}
	if c.AmountTolerance.IsNegative() {
		return common.NewUserError(
			fmt.Sprintf("amount tolerance must not be negative, got %s", c.AmountTolerance),
			common.ErrInvalidConfig)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.WindowMinutes == 0 {
		c.WindowMinutes = DefaultWindowMinutes
	}
	if c.AmountTolerance.IsZero() {
		c.AmountTolerance = DefaultAmountTolerance
	}
	return c
}

// Check scores a candidate against a read-only pool of existing
// transactions and renders a verdict. The pool is never mutated.
func Check(candidate *model.TransactionCandidate, pool []model.StoredTransaction, cfg Config) (model.DuplicateVerdict, error) {
	if err := cfg.validate(); err != nil {
		return model.DuplicateVerdict{}, err
	}

	p := probe{
		id:           candidate.ID,
		date:         candidate.Date,
		amount:       candidate.Amount,
		direction:    candidate.Direction,
		counterparty: candidate.Counterparty,
	}

	return score(p, pool, cfg.withDefaults()), nil
}

// probe is the view of a transaction the scorer needs; it lets candidates
// and stored transactions flow through the same scoring path.
type probe struct {
	date         time.Time
	id           string
	counterparty string
	direction    model.TransactionDirection
	amount       decimal.Decimal
}

func storedProbe(txn model.StoredTransaction) probe {
	return probe{
		id:           txn.ID,
		date:         txn.Date,
		amount:       txn.Amount,
		direction:    txn.Direction,
		counterparty: txn.Counterparty,
	}
}

// score runs the weighted comparison of one probe against the pool.
// Pool members sharing the probe's ID are skipped so a transaction never
// matches itself during batch reconciliation.
func score(p probe, pool []model.StoredTransaction, cfg Config) model.DuplicateVerdict {
	window := time.Duration(cfg.WindowMinutes) * time.Minute

	var verdict model.DuplicateVerdict

	for _, member := range pool {
		if p.id != "" && member.ID == p.id {
			continue
		}

		timeDiff := p.date.Sub(member.Date)
		if timeDiff < 0 {
			timeDiff = -timeDiff
		}
		if timeDiff > window {
			continue
		}

		// Hard gate: amounts must agree within tolerance.
		if p.amount.Sub(member.Amount).Abs().GreaterThan(cfg.AmountTolerance) {
			continue
		}

		confidence := amountMatchWeight

		if p.direction == member.Direction {
			confidence += directionMatchWeight
		}

		if !cfg.IgnoreCounterparty && p.counterparty != "" && member.Counterparty != "" {
			confidence += counterpartyWeight * similarity.Score(p.counterparty, member.Counterparty)
		}

		if confidence >= matchThreshold {
			verdict.Matches = append(verdict.Matches, member)
			if confidence > verdict.Confidence {
				verdict.Confidence = confidence
			}
		}
	}

	verdict.IsDuplicate = len(verdict.Matches) > 0 && verdict.Confidence >= duplicateThreshold

	return verdict
}
