package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/invoicedash/backend/internal/domain/analytics"
)

const (
	maxWindowMonths = 24
	maxTopClients   = 50

	// defaultCacheTTL bounds staleness; keys also carry a minute bucket
	// so a cached dashboard never outlives the minute it was computed in.
	defaultCacheTTL = 90 * time.Second
)

// SnapshotReader loads the invoice snapshot the dashboard is derived from.
// Implemented by the persistence layer.
type SnapshotReader interface {
	Snapshot(ctx context.Context) ([]analytics.RawRecord, error)
}

// DashboardCache memoizes composed dashboards. A miss returns (nil, nil).
// Implemented by the Redis cache in the infrastructure layer.
type DashboardCache interface {
	Get(ctx context.Context, key string) (*Dashboard, error)
	Set(ctx context.Context, key string, dashboard *Dashboard, ttl time.Duration) error
}

// DashboardService composes the analytics engine output for one snapshot
// and evaluation instant. All derivations are recomputed per request; the
// optional cache only short-circuits identical requests within the same
// minute.
type DashboardService struct {
	reader SnapshotReader
	cache  DashboardCache
	logger *zap.Logger
	now    func() time.Time

	cacheTTL       time.Duration
	defaultMonths  int
	defaultClients int
}

// DashboardServiceOption is a functional option for configuring the service
type DashboardServiceOption func(*DashboardService)

// WithCacheTTL overrides how long composed dashboards stay cached
func WithCacheTTL(ttl time.Duration) DashboardServiceOption {
	return func(s *DashboardService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithWindowDefaults overrides the default monthly window and top client
// count applied when a request leaves them unset or out of range.
func WithWindowDefaults(months, topClients int) DashboardServiceOption {
	return func(s *DashboardService) {
		if months > 0 && months <= maxWindowMonths {
			s.defaultMonths = months
		}
		if topClients > 0 && topClients <= maxTopClients {
			s.defaultClients = topClients
		}
	}
}

// NewDashboardService creates a new DashboardService. cache may be nil to
// disable memoization.
func NewDashboardService(reader SnapshotReader, cache DashboardCache, logger *zap.Logger, opts ...DashboardServiceOption) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DashboardService{
		reader:         reader,
		cache:          cache,
		logger:         logger,
		now:            time.Now,
		cacheTTL:       defaultCacheTTL,
		defaultMonths:  analytics.DefaultWindowMonths,
		defaultClients: analytics.DefaultTopClients,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetDashboard runs every engine component over the current snapshot and
// composes the dashboard. Cache failures are logged and degrade to a
// recompute; they never fail the request.
func (s *DashboardService) GetDashboard(ctx context.Context, req DashboardRequest) (*Dashboard, error) {
	req = s.clamp(req)
	now := s.now()
	key := s.cacheKey(req, now)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	raws, err := s.reader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := s.compose(raws, req, now)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, dashboard, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}

	return dashboard, nil
}

func (s *DashboardService) compose(raws []analytics.RawRecord, req DashboardRequest, now time.Time) *Dashboard {
	records := analytics.NormalizeAll(raws)

	var selected *analytics.Record
	if req.SelectedID != "" {
		for i := range records {
			if records[i].ID == req.SelectedID {
				selected = &records[i]
				break
			}
		}
	}

	selectedClient := ""
	var risk *RiskResponse
	if selected != nil {
		selectedClient = selected.CustomerName
		assessment := analytics.ClassifyRisk(selected.DueDate, now)
		risk = &RiskResponse{
			Tier:            assessment.Tier.String(),
			DaysOutstanding: assessment.DaysOutstanding,
		}
	}

	dist := analytics.Distribution(records, now)

	return &Dashboard{
		PaymentScore: analytics.PaymentScore(records),
		SelectedRisk: risk,
		Monthly:      toMonthPoints(analytics.MonthlySeries(records, now, req.Months)),
		TopClients:   toClientEntries(analytics.TopClients(records, req.Top, selectedClient)),
		Distribution: DistributionResponse{
			Paid:    dist.Paid,
			Unpaid:  dist.Unpaid,
			Overdue: dist.Overdue,
			Total:   dist.Total(),
		},
		Totals: TotalsResponse{
			PaidValue:        analytics.PaidValue(records),
			OutstandingValue: analytics.OutstandingValue(records),
			InvoiceCount:     len(records),
		},
		Insights:    toInsightResponses(analytics.ComposeInsights(records, selected, now)),
		GeneratedAt: now,
	}
}

func (s *DashboardService) clamp(req DashboardRequest) DashboardRequest {
	if req.Months <= 0 || req.Months > maxWindowMonths {
		req.Months = s.defaultMonths
	}
	if req.Top <= 0 || req.Top > maxTopClients {
		req.Top = s.defaultClients
	}
	return req
}

func (s *DashboardService) cacheKey(req DashboardRequest, now time.Time) string {
	return fmt.Sprintf("dashboard:%s:%d:%d:%d",
		req.SelectedID, req.Months, req.Top, now.Truncate(time.Minute).Unix())
}
