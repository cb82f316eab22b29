package knowhub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/db/storage"
	dombatch "github.com/kailas-cloud/knowhub/internal/domain/batch"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/search/page"
	"github.com/kailas-cloud/knowhub/internal/repository/catalog"
	batchuc "github.com/kailas-cloud/knowhub/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/knowhub/internal/usecase/health"
	searchuc "github.com/kailas-cloud/knowhub/internal/usecase/search"
)

const (
	defaultReadinessTimeoutSec = 10
	defaultConnectRetries      = 5
)

// Internal interfaces, swapped in tests.
type searchUseCase interface {
	Search(ctx context.Context, entityType, rawTerms string, req page.Request) (page.Page[any], error)
	Registries() []*field.Registry
}

type importUseCase interface {
	Import(ctx context.Context, f batchuc.Fixture) []dombatch.Result
}

// Client is the knowhub SDK entry point.
type Client struct {
	store       db.Store
	searchSvc   searchUseCase
	importSvc   importUseCase
	healthSvc   healthUseCase
	obs         *observer
	maxPageSize int
}

// New creates a Client and connects to the database.
// The provided context is used for the connection and readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{maxPageSize: page.MaxSize}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.database.Driver == "" {
		return nil, errors.New("knowhub: database required (use WithPostgres, WithSQLite, WithRedis or WithValkey)")
	}
	cfg.database.ReadinessTimeout = defaultReadinessTimeoutSec
	cfg.database.ConnectRetries = defaultConnectRetries

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, cfg.database, nil)
	if err != nil {
		return nil, fmt.Errorf("knowhub: %w", err)
	}

	if cfg.migrate {
		if err := storage.Migrate(ctx, store); err != nil && !errors.Is(err, storage.ErrNoMigrations) {
			store.Close()
			return nil, fmt.Errorf("knowhub: migrate: %w", err)
		}
	}

	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	return &Client{
		store:       store,
		searchSvc:   searchuc.New(store, catalog.All(), nil, nil, cfg.maxPageSize),
		importSvc:   batchuc.New(store),
		healthSvc:   healthuc.New(store, store),
		obs:         obs,
		maxPageSize: cfg.maxPageSize,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", "", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Entities describes every searchable entity type, sorted by name.
func (c *Client) Entities() []EntityInfo {
	regs := c.searchSvc.Registries()
	out := make([]EntityInfo, len(regs))
	for i, reg := range regs {
		descriptors := reg.Fields()
		fields := make([]FieldInfo, len(descriptors))
		for j, d := range descriptors {
			_, sortable := d.SortColumn()
			fields[j] = FieldInfo{
				Name:     d.Name(),
				Kind:     string(d.Kind()),
				Values:   d.Symbols(),
				Sortable: sortable,
			}
		}
		out[i] = EntityInfo{Name: reg.Entity(), Fields: fields}
	}
	return out
}

// Import loads a YAML fixture of table name to rows. Rows are written per table,
// parents before children. A malformed fixture fails the whole call; rejected rows
// are reported in the summary.
func (c *Client) Import(ctx context.Context, r io.Reader) (sum ImportSummary, err error) {
	start := time.Now()
	defer func() { c.obs.observe("import", "", start, err) }()

	fixture, err := batchuc.Decode(r)
	if err != nil {
		return ImportSummary{}, err
	}

	results := c.importSvc.Import(ctx, fixture)
	s := dombatch.Summarize(results)
	sum = ImportSummary{OK: s.OK, Failed: s.Failed}
	for _, res := range results {
		if res.Err() != nil {
			sum.Errors = append(sum.Errors, fmt.Errorf("%s %s: %w", res.Table(), res.Key(), res.Err()))
		}
	}
	return sum, nil
}

// Entity starts an untyped search over the named entity type. Items are the
// entity values (User, Question, ...) boxed in any.
func (c *Client) Entity(name string) *Query[any] {
	return newQuery[any](name, c.obs, c.searchSvc.Search)
}
