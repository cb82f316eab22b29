package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/domain"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/search/page"
)

const tracerName = "github.com/kailas-cloud/knowhub/internal/usecase/search"

// Outcome labels passed to Recorder.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Run searches one entity type and returns a page of typed entities.
// It never returns a partial page: any failure aborts the whole call.
func Run[T any](ctx context.Context, store Store, e Entity[T], rawTerms string, req page.Request) (page.Page[T], error) {
	return run(ctx, store, e, rawTerms, req, nil)
}

func run[T any](
	ctx context.Context, store Store, e Entity[T],
	rawTerms string, req page.Request, dropped func(string),
) (page.Page[T], error) {
	reg := e.Registry()

	f, err := compile(reg, rawTerms, dropped)
	if err != nil {
		return page.Page[T]{}, err
	}
	q, err := apply(reg, f, req)
	if err != nil {
		return page.Page[T]{}, err
	}

	var (
		total int
		rows  []db.Row
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := store.Count(gctx, q)
		if err != nil {
			return fmt.Errorf("count %s: %w", reg.Entity(), err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		rs, err := store.Fetch(gctx, q)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", reg.Entity(), err)
		}
		rows = rs
		return nil
	})
	if err := g.Wait(); err != nil {
		return page.Page[T]{}, err
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := e.Map(row)
		if err != nil {
			return page.Page[T]{}, fmt.Errorf("map %s row: %w", reg.Entity(), err)
		}
		items = append(items, item)
	}
	return page.New(req, total, items), nil
}

// Service searches any registered entity type by name.
type Service struct {
	store       Store
	entities    map[string]Entity[any]
	logger      *zap.Logger
	recorder    Recorder
	tracer      trace.Tracer
	maxPageSize int
}

// New creates a search service over entities keyed by entity name.
// A nil logger or recorder disables that concern.
func New[E Entity[any]](
	store Store, entities map[string]E,
	logger *zap.Logger, recorder Recorder, maxPageSize int,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	byName := make(map[string]Entity[any], len(entities))
	for name, e := range entities {
		byName[name] = e
	}
	return &Service{
		store:       store,
		entities:    byName,
		logger:      logger,
		recorder:    recorder,
		tracer:      otel.Tracer(tracerName),
		maxPageSize: maxPageSize,
	}
}

// Registries returns the registry of every searchable entity, sorted by entity name.
func (s *Service) Registries() []*field.Registry {
	out := make([]*field.Registry, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e.Registry())
	}
	slices.SortFunc(out, func(a, b *field.Registry) int {
		switch {
		case a.Entity() < b.Entity():
			return -1
		case a.Entity() > b.Entity():
			return 1
		}
		return 0
	})
	return out
}

// Search runs rawTerms against entityType. Unknown entity types fail with
// domain.ErrUnknownEntity before any storage access.
func (s *Service) Search(
	ctx context.Context, entityType, rawTerms string, req page.Request,
) (page.Page[any], error) {
	e, ok := s.entities[entityType]
	if !ok {
		return page.Page[any]{}, fmt.Errorf("%w: %s", domain.ErrUnknownEntity, entityType)
	}

	ctx, span := s.tracer.Start(ctx, "search.Search", trace.WithAttributes(
		attribute.String("search.entity", entityType),
		attribute.Int("search.page", req.Number()),
	))
	defer span.End()

	req = req.Clamp(s.maxPageSize)
	start := time.Now()

	dropped := func(segment string) {
		s.logger.Debug("Dropped malformed search segment",
			zap.String("entity", entityType),
			zap.String("segment", segment),
		)
		if s.recorder != nil {
			s.recorder.DroppedSegment(entityType)
		}
	}

	result, err := run(ctx, s.store, e, rawTerms, req, dropped)
	outcome := OutcomeOK
	switch {
	case err == nil:
		span.SetAttributes(attribute.Int("search.total", result.TotalCount))
	case errors.Is(err, domain.ErrUnknownField), errors.Is(err, domain.ErrInvalidValue):
		outcome = OutcomeInvalid
		s.logger.Debug("Search rejected", zap.String("entity", entityType), zap.Error(err))
	default:
		outcome = OutcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.recorder != nil {
		s.recorder.ObserveSearch(entityType, outcome, time.Since(start))
	}
	return result, err
}
