package knowhub

import (
	"context"

	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/search/page"
	healthuc "github.com/kailas-cloud/knowhub/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn     func(ctx context.Context, entityType, rawTerms string, req page.Request) (page.Page[any], error)
	registriesFn func() []*field.Registry
}

func (m *mockSearchUC) Search(
	ctx context.Context, entityType, rawTerms string, req page.Request,
) (page.Page[any], error) {
	return m.searchFn(ctx, entityType, rawTerms, req)
}

func (m *mockSearchUC) Registries() []*field.Registry {
	return m.registriesFn()
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}
