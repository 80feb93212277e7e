// Package record implements the content-addressed record repository over a
// db key-value store.
package record

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/stringdex/internal/db"
	"github.com/kailas-cloud/stringdex/internal/domain"
	domrec "github.com/kailas-cloud/stringdex/internal/domain/record"
)

// createAttempts bounds the SetNX/Get race retry: a loser whose winner is
// deleted before the follow-up read simply tries to create again.
const createAttempts = 3

// store is the consumer interface for records (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
	Del(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/record.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a record repository. keyPrefix namespaces all keys.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// Create stores rec unless a record with the same ID already exists, in
// which case the existing record is returned untouched. The create is
// atomic per key: of two concurrent creators exactly one wins, and the
// loser observes the winner's record and created_at.
func (r *Repo) Create(ctx context.Context, rec domrec.StringRecord) (domrec.StringRecord, bool, error) {
	key := r.recordKey(rec.ID())
	data, err := marshalRecord(rec)
	if err != nil {
		return domrec.StringRecord{}, false, err
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		created, err := r.store.SetNX(ctx, key, data)
		if err != nil {
			return domrec.StringRecord{}, false, fmt.Errorf("setnx %s: %w", key, err)
		}
		if created {
			return rec, true, nil
		}

		existing, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				// Winner was deleted between SetNX and Get; try again.
				continue
			}
			return domrec.StringRecord{}, false, fmt.Errorf("get %s: %w", key, err)
		}

		out, err := unmarshalRecord(existing)
		if err != nil {
			return domrec.StringRecord{}, false, fmt.Errorf("record %s: %w", rec.ID(), err)
		}
		return out, false, nil
	}

	return domrec.StringRecord{}, false, fmt.Errorf("create %s: lost setnx race %d times", key, createAttempts)
}

// GetByID returns the record with the given content hash.
func (r *Repo) GetByID(ctx context.Context, id string) (domrec.StringRecord, error) {
	data, err := r.store.Get(ctx, r.recordKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domrec.StringRecord{}, domain.ErrNotFound
		}
		return domrec.StringRecord{}, fmt.Errorf("get %s: %w", id, err)
	}
	return unmarshalRecord(data)
}

// Delete removes the record with the given ID, reporting whether it existed.
func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	existed, err := r.store.Del(ctx, r.recordKey(id))
	if err != nil {
		return false, fmt.Errorf("del %s: %w", id, err)
	}
	return existed, nil
}

// List returns all records ordered by (created_at, id) — a stable,
// reproducible order across store drivers.
func (r *Repo) List(ctx context.Context) ([]domrec.StringRecord, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"record:*")
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("mget records: %w", err)
	}

	records := make([]domrec.StringRecord, 0, len(values))
	for _, data := range values {
		if data == nil {
			// Deleted between SCAN and MGET.
			continue
		}
		rec, err := unmarshalRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt() != records[j].CreatedAt() {
			return records[i].CreatedAt() < records[j].CreatedAt()
		}
		return records[i].ID() < records[j].ID()
	})
	return records, nil
}

// Count returns the number of stored records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"record:*")
	if err != nil {
		return 0, fmt.Errorf("scan records: %w", err)
	}
	return len(keys), nil
}

func (r *Repo) recordKey(id string) string {
	return r.prefix + "record:" + id
}
