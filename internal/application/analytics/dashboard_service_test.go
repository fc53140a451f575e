package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/invoicedash/backend/internal/domain/analytics"
)

// MockSnapshotReader is a mock implementation of SnapshotReader
type MockSnapshotReader struct {
	mock.Mock
}

func (m *MockSnapshotReader) Snapshot(ctx context.Context) ([]analytics.RawRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.RawRecord), args.Error(1)
}

// MockDashboardCache is a mock implementation of DashboardCache
type MockDashboardCache struct {
	mock.Mock
}

func (m *MockDashboardCache) Get(ctx context.Context, key string) (*Dashboard, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Dashboard), args.Error(1)
}

func (m *MockDashboardCache) Set(ctx context.Context, key string, dashboard *Dashboard, ttl time.Duration) error {
	args := m.Called(ctx, key, dashboard, ttl)
	return args.Error(0)
}

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestDashboardService(reader SnapshotReader, cache DashboardCache) *DashboardService {
	svc := NewDashboardService(reader, cache, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func snapshotFixture() []analytics.RawRecord {
	return []analytics.RawRecord{
		{
			ID:           "inv-a",
			CustomerName: "Acme",
			TotalAmount:  100,
			Status:       "PAID",
			DueDate:      testNow.AddDate(0, 0, -30).Format(time.RFC3339),
			IssueDate:    "2026-07-10",
		},
		{
			ID:           "inv-b",
			CustomerName: "Globex",
			TotalAmount:  200,
			Status:       "SENT",
			DueDate:      testNow.AddDate(0, 0, 5).Format(time.RFC3339),
			IssueDate:    "2026-08-20",
		},
		{
			ID:           "inv-c",
			CustomerName: "Initech",
			TotalAmount:  300,
			Status:       "SENT",
			DueDate:      testNow.AddDate(0, 0, -20).Format(time.RFC3339),
			IssueDate:    "2026-08-01",
		},
	}
}

func TestDashboardService_GetDashboard(t *testing.T) {
	t.Run("composes every component", func(t *testing.T) {
		reader := new(MockSnapshotReader)
		svc := newTestDashboardService(reader, nil)

		reader.On("Snapshot", mock.Anything).Return(snapshotFixture(), nil)

		dashboard, err := svc.GetDashboard(context.Background(), DashboardRequest{SelectedID: "inv-c"})

		require.NoError(t, err)
		assert.Equal(t, 17, dashboard.PaymentScore)
		require.NotNil(t, dashboard.SelectedRisk)
		assert.Equal(t, "MEDIUM", dashboard.SelectedRisk.Tier)
		assert.Equal(t, 20, dashboard.SelectedRisk.DaysOutstanding)
		assert.Len(t, dashboard.Monthly, analytics.DefaultWindowMonths)
		assert.Equal(t, 1, dashboard.Distribution.Paid)
		assert.Equal(t, 1, dashboard.Distribution.Unpaid)
		assert.Equal(t, 1, dashboard.Distribution.Overdue)
		assert.Equal(t, 3, dashboard.Totals.InvoiceCount)
		assert.NotEmpty(t, dashboard.Insights)
		assert.Equal(t, testNow, dashboard.GeneratedAt)

		require.Len(t, dashboard.TopClients, 3)
		assert.Equal(t, "Initech", dashboard.TopClients[0].ClientName)
		assert.True(t, dashboard.TopClients[0].Selected)
	})

	t.Run("empty snapshot composes an empty dashboard", func(t *testing.T) {
		reader := new(MockSnapshotReader)
		svc := newTestDashboardService(reader, nil)

		reader.On("Snapshot", mock.Anything).Return([]analytics.RawRecord{}, nil)

		dashboard, err := svc.GetDashboard(context.Background(), DashboardRequest{})

		require.NoError(t, err)
		assert.Equal(t, 100, dashboard.PaymentScore)
		assert.Nil(t, dashboard.SelectedRisk)
		assert.Empty(t, dashboard.TopClients)
		assert.Nil(t, dashboard.Insights)
		assert.Zero(t, dashboard.Distribution.Total)
		assert.Len(t, dashboard.Monthly, analytics.DefaultWindowMonths)
	})

	t.Run("unknown selected id yields no risk or insights", func(t *testing.T) {
		reader := new(MockSnapshotReader)
		svc := newTestDashboardService(reader, nil)

		reader.On("Snapshot", mock.Anything).Return(snapshotFixture(), nil)

		dashboard, err := svc.GetDashboard(context.Background(), DashboardRequest{SelectedID: "inv-zzz"})

		require.NoError(t, err)
		assert.Nil(t, dashboard.SelectedRisk)
		assert.Nil(t, dashboard.Insights)
	})

	t.Run("clamps out of range parameters", func(t *testing.T) {
		reader := new(MockSnapshotReader)
		svc := newTestDashboardService(reader, nil)

		reader.On("Snapshot", mock.Anything).Return(snapshotFixture(), nil)

		dashboard, err := svc.GetDashboard(context.Background(), DashboardRequest{Months: -1, Top: 9000})

		require.NoError(t, err)
		assert.Len(t, dashboard.Monthly, analytics.DefaultWindowMonths)
		assert.Len(t, dashboard.TopClients, 3)
	})

	t.Run("propagates snapshot errors", func(t *testing.T) {
		reader := new(MockSnapshotReader)
		svc := newTestDashboardService(reader, nil)

		reader.On("Snapshot", mock.Anything).Return(nil, errors.New("db down"))

		_, err := svc.GetDashboard(context.Background(), DashboardRequest{})

		assert.Error(t, err)
	})

	t.Run("serves a cache hit without reading the snapshot", func(t *testing.T) {
		reader := new(MockSnapshotReader)
		cache := new(MockDashboardCache)
		svc := newTestDashboardService(reader, cache)
		cached := &Dashboard{PaymentScore: 42}

		cache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(cached, nil)

		dashboard, err := svc.GetDashboard(context.Background(), DashboardRequest{})

		require.NoError(t, err)
		assert.Equal(t, 42, dashboard.PaymentScore)
		reader.AssertNotCalled(t, "Snapshot", mock.Anything)
	})

	t.Run("recomputes and stores on a cache miss", func(t *testing.T) {
		reader := new(MockSnapshotReader)
		cache := new(MockDashboardCache)
		svc := newTestDashboardService(reader, cache)

		cache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil)
		reader.On("Snapshot", mock.Anything).Return(snapshotFixture(), nil)
		cache.On("Set", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("*analytics.Dashboard"), defaultCacheTTL).Return(nil)

		dashboard, err := svc.GetDashboard(context.Background(), DashboardRequest{})

		require.NoError(t, err)
		assert.Equal(t, 17, dashboard.PaymentScore)
		cache.AssertExpectations(t)
	})

	t.Run("degrades to recompute when the cache fails", func(t *testing.T) {
		reader := new(MockSnapshotReader)
		cache := new(MockDashboardCache)
		svc := newTestDashboardService(reader, cache)

		cache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(nil, errors.New("redis down"))
		reader.On("Snapshot", mock.Anything).Return(snapshotFixture(), nil)
		cache.On("Set", mock.Anything, mock.AnythingOfType("string"), mock.Anything, defaultCacheTTL).Return(errors.New("redis down"))

		dashboard, err := svc.GetDashboard(context.Background(), DashboardRequest{})

		require.NoError(t, err)
		assert.Equal(t, 17, dashboard.PaymentScore)
	})
}

func TestDashboardService_CacheKey(t *testing.T) {
	svc := newTestDashboardService(new(MockSnapshotReader), nil)

	t.Run("same minute shares a key", func(t *testing.T) {
		a := svc.cacheKey(DashboardRequest{SelectedID: "x", Months: 6, Top: 5}, testNow)
		b := svc.cacheKey(DashboardRequest{SelectedID: "x", Months: 6, Top: 5}, testNow.Add(30*time.Second))
		assert.Equal(t, a, b)
	})

	t.Run("different minutes differ", func(t *testing.T) {
		a := svc.cacheKey(DashboardRequest{Months: 6, Top: 5}, testNow)
		b := svc.cacheKey(DashboardRequest{Months: 6, Top: 5}, testNow.Add(time.Minute))
		assert.NotEqual(t, a, b)
	})

	t.Run("different selections differ", func(t *testing.T) {
		a := svc.cacheKey(DashboardRequest{SelectedID: "x", Months: 6, Top: 5}, testNow)
		b := svc.cacheKey(DashboardRequest{SelectedID: "y", Months: 6, Top: 5}, testNow)
		assert.NotEqual(t, a, b)
	})
}

func TestDashboardServiceOptions(t *testing.T) {
	reader := new(MockSnapshotReader)
	reader.On("Snapshot", mock.Anything).Return(snapshotFixture(), nil)

	t.Run("WithWindowDefaults changes the default window", func(t *testing.T) {
		svc := NewDashboardService(reader, nil, nil, WithWindowDefaults(3, 2))
		svc.now = func() time.Time { return testNow }

		dashboard, err := svc.GetDashboard(context.Background(), DashboardRequest{})

		require.NoError(t, err)
		assert.Len(t, dashboard.Monthly, 3)
	})

	t.Run("WithWindowDefaults ignores out of range values", func(t *testing.T) {
		svc := NewDashboardService(reader, nil, nil, WithWindowDefaults(0, maxTopClients+1))

		assert.Equal(t, analytics.DefaultWindowMonths, svc.defaultMonths)
		assert.Equal(t, analytics.DefaultTopClients, svc.defaultClients)
	})

	t.Run("WithCacheTTL changes the stored TTL", func(t *testing.T) {
		cache := new(MockDashboardCache)
		cache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil)
		cache.On("Set", mock.Anything, mock.AnythingOfType("string"), mock.Anything, 5*time.Minute).Return(nil)

		svc := NewDashboardService(reader, cache, nil, WithCacheTTL(5*time.Minute))
		svc.now = func() time.Time { return testNow }

		_, err := svc.GetDashboard(context.Background(), DashboardRequest{})

		require.NoError(t, err)
		cache.AssertExpectations(t)
	})
}
