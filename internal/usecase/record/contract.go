package record

import (
	"context"

	domrec "github.com/kailas-cloud/stringdex/internal/domain/record"
)

// Repository defines the storage contract for analyzed records.
type Repository interface {
	Create(ctx context.Context, rec domrec.StringRecord) (stored domrec.StringRecord, created bool, err error)
	GetByID(ctx context.Context, id string) (domrec.StringRecord, error)
	Delete(ctx context.Context, id string) (existed bool, err error)
	List(ctx context.Context) ([]domrec.StringRecord, error)
	Count(ctx context.Context) (int, error)
}
