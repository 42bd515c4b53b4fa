package plan

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/driftwell/riverplan/internal/models"
)

const (
	// CodeLength is the fixed share-code length.
	CodeLength = 8
	// DefaultMaxAttempts bounds the collision-retry loop.
	DefaultMaxAttempts = 10

	// Lowercase plus digits, with the ambiguous l/o/0/1 left out since
	// codes get read aloud and retyped.
	codeAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"
)

// SharedPlanStore persists share records. Insert must be an atomic
// conditional insert against the code uniqueness constraint and return
// ErrDuplicateCode on collision; there is no separate existence check,
// so concurrent allocations cannot race past each other.
type SharedPlanStore interface {
	InsertSharedPlan(sp *models.SharedPlan) error
}

// Allocator mints short share codes and freezes plan snapshots behind
// them. Every call mints a fresh code; identical inputs are not
// deduplicated.
type Allocator struct {
	store       SharedPlanStore
	maxAttempts int
	now         func() time.Time
}

// NewAllocator creates an allocator with the default retry bound.
func NewAllocator(store SharedPlanStore) *Allocator {
	return &Allocator{
		store:       store,
		maxAttempts: DefaultMaxAttempts,
		now:         time.Now,
	}
}

// Allocate persists the plan's inputs plus its condition snapshot under
// a new code. Exceeding the collision bound surfaces as
// ErrAllocationExhausted rather than looping.
func (a *Allocator) Allocate(p *models.FloatPlan) (*models.SharedPlan, error) {
	if p == nil || p.River == nil || p.PutIn == nil || p.TakeOut == nil || p.Vessel == nil {
		return nil, fmt.Errorf("%w: incomplete plan", ErrValidation)
	}

	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		code, err := newCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate share code: %w", err)
		}

		sp := a.record(p, code)
		err = a.store.InsertSharedPlan(sp)
		if err == nil {
			return sp, nil
		}
		if errors.Is(err, ErrDuplicateCode) {
			continue
		}
		return nil, fmt.Errorf("failed to persist shared plan: %w", err)
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrAllocationExhausted, a.maxAttempts)
}

// record freezes the plan into its persisted form.
func (a *Allocator) record(p *models.FloatPlan, code string) *models.SharedPlan {
	sp := &models.SharedPlan{
		Code:          code,
		RiverID:       p.River.ID,
		PutInID:       p.PutIn.ID,
		TakeOutID:     p.TakeOut.ID,
		VesselID:      p.Vessel.ID,
		DistanceMiles: p.DistanceMiles,
		DriveMinutes:  p.Drive.Minutes,
		ConditionCode: p.Conditions.Code,
		GaugeHeightFt: p.Conditions.GaugeHeightFt,
		GaugeName:     p.Conditions.GaugeName,
		CreatedAt:     a.now().UTC(),
	}
	if p.Float != nil {
		minutes := p.Float.Minutes
		sp.FloatMinutes = &minutes
	}
	return sp
}

// newCode draws a fixed-length random code from the alphabet.
func newCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
