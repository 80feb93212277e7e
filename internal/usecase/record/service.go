// Package record is the use case layer: it ties property computation, the
// content-addressed repository, and the two filter paths together.
package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/stringdex/internal/domain"
	"github.com/kailas-cloud/stringdex/internal/domain/predicate"
	"github.com/kailas-cloud/stringdex/internal/domain/query"
	domrec "github.com/kailas-cloud/stringdex/internal/domain/record"
	"github.com/kailas-cloud/stringdex/internal/metrics"
)

// Service handles string analysis, lookup, and filtering.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a record service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the creation timestamp source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Analyze computes the properties of value and stores the record,
// content-addressed by its SHA-256 digest. Re-analyzing an already stored
// value returns the existing record unchanged — same id, same properties,
// same created_at. Returns true when this call created the record.
func (s *Service) Analyze(ctx context.Context, value string) (domrec.StringRecord, bool, error) {
	rec, err := domrec.New(value, s.now().UnixMilli())
	if err != nil {
		return domrec.StringRecord{}, false, domain.NewValidationError("value", err.Error())
	}

	stored, created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return domrec.StringRecord{}, false, fmt.Errorf("store record: %w", err)
	}

	outcome := "duplicate"
	if created {
		outcome = "created"
	}
	metrics.AnalyzeTotal.WithLabelValues(outcome).Inc()

	return stored, created, nil
}

// Fetch returns the record for value, keyed by its content hash.
func (s *Service) Fetch(ctx context.Context, value string) (domrec.StringRecord, error) {
	rec, err := s.repo.GetByID(ctx, domrec.Hash(value))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domrec.StringRecord{}, domain.ErrNotFound
		}
		return domrec.StringRecord{}, fmt.Errorf("fetch record: %w", err)
	}
	return rec, nil
}

// Query filters stored records by structured parameters. It returns the
// matching records and the predicates that were applied, so callers can
// echo the interpreted filters.
func (s *Service) Query(
	ctx context.Context, params map[string]string,
) ([]domrec.StringRecord, []predicate.Predicate, error) {
	preds, err := query.FromParams(params)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.evaluate(ctx, preds)
	if err != nil {
		return nil, nil, err
	}
	return records, preds, nil
}

// QueryNatural filters stored records by a bounded-grammar phrase.
// Translation failures surface as UnrecognizedQuery; they are never
// downgraded to an empty result.
func (s *Service) QueryNatural(
	ctx context.Context, phrase string,
) ([]domrec.StringRecord, []predicate.Predicate, error) {
	preds, err := query.Translate(phrase)
	if err != nil {
		if errors.Is(err, domain.ErrUnrecognizedQuery) {
			metrics.TranslateTotal.WithLabelValues("unrecognized").Inc()
		}
		return nil, nil, err
	}
	metrics.TranslateTotal.WithLabelValues("ok").Inc()

	records, err := s.evaluate(ctx, preds)
	if err != nil {
		return nil, nil, err
	}
	return records, preds, nil
}

// Remove deletes the record for value. A value never analyzed (or already
// deleted) reports ErrNotFound rather than succeeding silently.
func (s *Service) Remove(ctx context.Context, value string) error {
	existed, err := s.repo.Delete(ctx, domrec.Hash(value))
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if !existed {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of stored records.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (s *Service) evaluate(
	ctx context.Context, preds []predicate.Predicate,
) ([]domrec.StringRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return predicate.Filter(records, preds), nil
}
