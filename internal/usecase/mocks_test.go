package usecase

import (
	"context"
	"time"

	"github.com/regulaworks/vendorcomply"
	"github.com/regulaworks/vendorcomply/internal/domain"
)

// --- mocks ---

type mockSubmissionRepo struct {
	subs    map[string]*domain.Submission
	deleted []string
	// when set, Update loses the optimistic-concurrency race
	conflict bool
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{subs: map[string]*domain.Submission{}}
}

func (m *mockSubmissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	m.subs[sub.ID] = sub
	return nil
}

func (m *mockSubmissionRepo) Get(ctx context.Context, id string) (*domain.Submission, error) {
	sub, ok := m.subs[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "submission " + id}
	}
	return sub, nil
}

func (m *mockSubmissionRepo) GetByVendorPeriod(ctx context.Context, vendorID string, period vendorcomply.Period) (*domain.Submission, error) {
	for _, s := range m.subs {
		if s.VendorID == vendorID && s.Period == period {
			return s, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "submission"}
}

func (m *mockSubmissionRepo) List(ctx context.Context, vendorID string) ([]domain.Submission, error) {
	var out []domain.Submission
	for _, s := range m.subs {
		if s.VendorID == vendorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSubmissionRepo) Update(ctx context.Context, id string, mutate func(*domain.Submission) error) (*domain.Submission, error) {
	if m.conflict {
		return nil, domain.ConcurrentModificationError{Resource: "submission " + id}
	}
	sub, ok := m.subs[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "submission " + id}
	}
	if err := mutate(sub); err != nil {
		return nil, err
	}
	sub.Revision++
	sub.UpdatedAt = time.Now().UTC()
	return sub, nil
}

func (m *mockSubmissionRepo) Delete(ctx context.Context, id string) error {
	delete(m.subs, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockResolver struct {
	docs   map[string]*domain.DocumentRecord
	owners map[string]string
}

func (m *mockResolver) ResolveDocument(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "document " + id}
	}
	return doc, nil
}

func (m *mockResolver) ResolveSubmission(ctx context.Context, id string) (*domain.Submission, error) {
	return nil, domain.NotFoundError{Resource: "submission " + id}
}

func (m *mockResolver) OwningSubmission(ctx context.Context, documentID string) (string, error) {
	owner, ok := m.owners[documentID]
	if !ok {
		return "", domain.NotFoundError{Resource: "submission for document " + documentID}
	}
	return owner, nil
}

type mockDispatcher struct {
	events []vendorcomply.Event
	fail   error
}

func (m *mockDispatcher) Dispatch(ctx context.Context, events []vendorcomply.Event) error {
	if m.fail != nil {
		return m.fail
	}
	m.events = append(m.events, events...)
	return nil
}

// --- fixtures ---

func seededSubmission(repo *mockSubmissionRepo, docs ...domain.DocumentRecord) *domain.Submission {
	sub := &domain.Submission{
		ID:       "sub-1",
		VendorID: "vendor-1",
		Period:   vendorcomply.Period{Year: 2026, Month: time.March},
		Consultant: vendorcomply.ConsultantSnapshot{
			Name:  "Asha Raman",
			Email: "asha@consultancy.example",
		},
		Documents: append([]domain.DocumentRecord(nil), docs...),
		CreatedAt: time.Now().UTC(),
	}
	sub.Recompute()
	repo.subs[sub.ID] = sub
	return sub
}

func fullMandatoryDocs(status domain.DocumentStatus) []domain.DocumentRecord {
	reg := domain.NewRegistry()
	types := reg.MandatoryTypesFor(time.March)
	docs := make([]domain.DocumentRecord, len(types))
	for i, t := range types {
		docs[i] = domain.DocumentRecord{
			ID:           "doc-" + string(t),
			SubmissionID: "sub-1",
			Type:         t,
			ArtifactRef:  "s3://artifacts/" + string(t),
			Mandatory:    true,
			Status:       status,
			UploadedAt:   time.Now().UTC(),
			Version:      1,
		}
	}
	return docs
}
