package site

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/metrics"
)

const DefaultLoadTimeout = 3 * time.Second

var tracer = otel.Tracer("menu-sites/site")

// AggregateCache stores validated aggregates by exact tenant key.
//
// Set must refuse to store when key was invalidated after Generation
// returned gen; otherwise a fetch that raced an owner edit would put the
// old aggregate back.
type AggregateCache interface {
	Get(ctx context.Context, key tenant.Key) (*menu.Aggregate, bool, error)
	Generation(ctx context.Context, key tenant.Key) (int64, error)
	Set(ctx context.Context, key tenant.Key, gen int64, agg *menu.Aggregate) (bool, error)
}

// LoadRestaurantAggregate fetches and validates the full graph for a tenant.
//
// Concurrent calls for the same key share one fetch; callers must treat the
// returned aggregate as read-only. Keys are never merged across tenants.
type LoadRestaurantAggregate struct {
	repo    menu.Reader
	cache   AggregateCache
	timeout time.Duration
	log     *slog.Logger
	flight  singleflight.Group
}

// NewLoadRestaurantAggregate builds the loader. cache may be nil.
func NewLoadRestaurantAggregate(
	repo menu.Reader,
	cache AggregateCache,
	timeout time.Duration,
	log *slog.Logger,
) *LoadRestaurantAggregate {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &LoadRestaurantAggregate{
		repo:    repo,
		cache:   cache,
		timeout: timeout,
		log:     log,
	}
}

func (uc *LoadRestaurantAggregate) Execute(
	ctx context.Context,
	key tenant.Key,
) (*menu.Aggregate, error) {

	ctx, span := tracer.Start(ctx, "site.load_aggregate",
		trace.WithAttributes(
			attribute.String("tenant.key", key.Value),
			attribute.String("tenant.kind", string(key.Kind)),
		),
	)
	defer span.End()

	if agg, ok := uc.fromCache(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return agg, nil
	}

	// The shared fetch must outlive any single caller; its own timeout bounds it.
	ch := uc.flight.DoChan(key.String(), func() (any, error) {
		return uc.fetch(context.WithoutCancel(ctx), key)
	})

	select {
	case res := <-ch:
		if res.Shared {
			metrics.SharedLoads.Inc()
		}
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, outcomeOf(res.Err))
			return nil, res.Err
		}
		return res.Val.(*menu.Aggregate), nil

	case <-ctx.Done():
		err := classify(key, ctx.Err())
		span.RecordError(err)
		span.SetStatus(codes.Error, outcomeOf(err))
		return nil, err
	}
}

func (uc *LoadRestaurantAggregate) fromCache(ctx context.Context, key tenant.Key) (*menu.Aggregate, bool) {
	if uc.cache == nil {
		return nil, false
	}
	agg, ok, err := uc.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.AggregateCache.WithLabelValues(metrics.CacheError).Inc()
		uc.log.Warn("aggregate cache read failed",
			slog.String("tenant_key", key.String()),
			slog.Any("error", err),
		)
		return nil, false
	case !ok:
		metrics.AggregateCache.WithLabelValues(metrics.CacheMiss).Inc()
		return nil, false
	default:
		metrics.AggregateCache.WithLabelValues(metrics.CacheHit).Inc()
		return agg, true
	}
}

func (uc *LoadRestaurantAggregate) fetch(ctx context.Context, key tenant.Key) (*menu.Aggregate, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	// read before the snapshot so a concurrent invalidation is detected
	gen, cacheable := uc.generation(ctx, key)

	agg, err := uc.load(ctx, key)

	outcome := outcomeOf(err)
	metrics.AggregateLoads.WithLabelValues(outcome).Inc()
	metrics.AggregateLoadSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		uc.logFailure(key, err)
		return nil, err
	}

	if cacheable {
		stored, cerr := uc.cache.Set(ctx, key, gen, agg)
		switch {
		case cerr != nil:
			uc.log.Warn("aggregate cache write failed",
				slog.String("tenant_key", key.String()),
				slog.Any("error", cerr),
			)
		case !stored:
			metrics.AggregateCache.WithLabelValues(metrics.CacheStale).Inc()
		}
	}

	return agg, nil
}

func (uc *LoadRestaurantAggregate) generation(ctx context.Context, key tenant.Key) (int64, bool) {
	if uc.cache == nil {
		return 0, false
	}
	gen, err := uc.cache.Generation(ctx, key)
	if err != nil {
		uc.log.Warn("aggregate cache generation read failed",
			slog.String("tenant_key", key.String()),
			slog.Any("error", err),
		)
		return 0, false
	}
	return gen, true
}

func (uc *LoadRestaurantAggregate) load(ctx context.Context, key tenant.Key) (*menu.Aggregate, error) {
	rec, err := uc.repo.FindRestaurantGraph(ctx, key)
	if err != nil {
		return nil, classify(key, err)
	}

	agg, err := menu.Build(rec, key)
	if err != nil {
		return nil, err
	}

	if len(agg.Menus) == 0 {
		return nil, menu.ErrOnboardingIncomplete
	}

	return agg, nil
}

func (uc *LoadRestaurantAggregate) logFailure(key tenant.Key, err error) {
	var integrity *menu.IntegrityError
	switch {
	case errors.As(err, &integrity):
		uc.log.Error("restaurant aggregate failed validation",
			slog.String("tenant_key", integrity.TenantKey),
			slog.String("field", integrity.Field),
			slog.String("reason", integrity.Reason),
		)
	case menu.IsNotFound(err):
		uc.log.Debug("restaurant aggregate not available",
			slog.String("tenant_key", key.String()),
			slog.String("outcome", outcomeOf(err)),
		)
	default:
		uc.log.Warn("restaurant aggregate load failed",
			slog.String("tenant_key", key.String()),
			slog.Any("error", err),
		)
	}
}

// classify maps persistence errors onto the loader's outcomes.
func classify(key tenant.Key, err error) error {
	switch {
	case errors.Is(err, menu.ErrRecordNotFound):
		return menu.ErrRestaurantNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return &menu.UpstreamError{TenantKey: key.String(), Kind: menu.ErrUpstreamTimeout, Err: err}
	default:
		return &menu.UpstreamError{TenantKey: key.String(), Kind: menu.ErrUpstreamUnavailable, Err: err}
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, menu.ErrRestaurantNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, menu.ErrOnboardingIncomplete):
		return metrics.OutcomeOnboarding
	case errors.Is(err, menu.ErrDataIntegrity):
		return metrics.OutcomeIntegrity
	case errors.Is(err, menu.ErrUpstreamTimeout):
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeUnavailable
	}
}
