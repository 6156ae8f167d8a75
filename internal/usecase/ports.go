package usecase

import (
	"context"

	"github.com/regulaworks/vendorcomply"
	"github.com/regulaworks/vendorcomply/internal/domain"
)

// SubmissionRepository defines persistence for submission aggregates.
// Update executes mutate against the freshly loaded aggregate inside
// one atomic unit; a concurrent writer loses with
// ConcurrentModificationError.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) error
	Get(ctx context.Context, id string) (*domain.Submission, error)
	GetByVendorPeriod(ctx context.Context, vendorID string, period vendorcomply.Period) (*domain.Submission, error)
	List(ctx context.Context, vendorID string) ([]domain.Submission, error)
	Update(ctx context.Context, id string, mutate func(*domain.Submission) error) (*domain.Submission, error)
	Delete(ctx context.Context, id string) error
}

// DocumentResolver presents the two physical stores (flat legacy
// records and grouped submissions) as one logical view for reads.
type DocumentResolver interface {
	ResolveDocument(ctx context.Context, id string) (*domain.DocumentRecord, error)
	ResolveSubmission(ctx context.Context, id string) (*domain.Submission, error)
	OwningSubmission(ctx context.Context, documentID string) (string, error)
}

// Dispatcher accepts notification events. Dispatch is best-effort: the
// engine never retries on its behalf and never fails an operation over
// a dispatch error.
type Dispatcher interface {
	Dispatch(ctx context.Context, events []vendorcomply.Event) error
}
