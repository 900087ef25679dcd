package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roamalto/config"
	"roamalto/infras/otel/mocks"
	eventMocks "roamalto/internal/domains/event/mocks"
	"roamalto/internal/domains/event/model"
	"roamalto/internal/domains/event/model/dto"
	"roamalto/internal/domains/event/service"
	cacheMocks "roamalto/shared/cache/mocks"
	gDto "roamalto/shared/dto"
	"roamalto/shared/failure"
	"roamalto/shared/jsonval"
	"roamalto/shared/limiter"
	limiterMocks "roamalto/shared/limiter/mocks"
)

type eventServiceMocks struct {
	repo      *eventMocks.MockEvent
	visitRepo *eventMocks.MockVisit
	cache     *cacheMocks.MockRedisCache
}

func newEventService(t *testing.T, lim limiter.Limiter, maxPerWindow, windowSeconds int) (service.Event, eventServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := eventServiceMocks{
		repo:      eventMocks.NewMockEvent(ctrl),
		visitRepo: eventMocks.NewMockVisit(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Analytics.EventMaxPerWindow = maxPerWindow
	cfg.App.Analytics.EventWindowSeconds = windowSeconds

	svc := service.New(m.repo, m.visitRepo, lim, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func pageViewRequest(sessionID string, meta jsonval.Value) dto.IngestEventRequest {
	return dto.IngestEventRequest{
		Type:      model.TypePageView,
		Path:      "/packages/komodo-sailing",
		SessionID: sessionID,
		Meta:      meta,
		ClientIP:  "203.0.113.7",
		UserAgent: "Mozilla/5.0",
	}
}

func TestEventService_Ingest_Window(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	lim := limiter.New(limiter.NewMemoryStoreWithClock(clock), mocks.NewOtel())
	svc, m := newEventService(t, lim, 3, 60)

	req := dto.IngestEventRequest{
		Type:      model.TypeCtaClick,
		Path:      "/packages",
		SessionID: "sess-1",
		ClientIP:  "203.0.113.7",
	}

	m.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(4)

	for i := 0; i < 3; i++ {
		res, limit, err := svc.Ingest(context.Background(), req)
		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, 3, limit.Limit)
		assert.Equal(t, 2-i, limit.Remaining)
	}

	_, limit, err := svc.Ingest(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 429, failure.GetCode(err))
	assert.Equal(t, 0, limit.Remaining)
	assert.Equal(t, now.Add(60*time.Second), limit.Reset)

	// A fresh window admits again.
	now = now.Add(61 * time.Second)

	_, limit, err = svc.Ingest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, limit.Remaining)
}

func TestEventService_Ingest_SeparateKeysPerVisitor(t *testing.T) {
	lim := limiter.New(limiter.NewMemoryStoreWithClock(time.Now), mocks.NewOtel())
	svc, m := newEventService(t, lim, 1, 60)

	m.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)

	first := dto.IngestEventRequest{Type: model.TypeCtaClick, Path: "/", SessionID: "sess-1", ClientIP: "203.0.113.7"}
	anonymous := dto.IngestEventRequest{Type: model.TypeCtaClick, Path: "/", ClientIP: "203.0.113.7"}

	_, _, err := svc.Ingest(context.Background(), first)
	require.NoError(t, err)

	// Same IP, no session: a different bucket.
	_, _, err = svc.Ingest(context.Background(), anonymous)
	require.NoError(t, err)

	// Same bucket as the first: exhausted.
	_, _, err = svc.Ingest(context.Background(), first)
	require.Error(t, err)
	assert.Equal(t, 429, failure.GetCode(err))
}

func TestEventService_Ingest_PageViewDerivesVisit(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	lim := limiter.New(limiter.NewMemoryStoreWithClock(func() time.Time { return now }), mocks.NewOtel())

	t.Run("utm object is carried onto the visit", func(t *testing.T) {
		svc, m := newEventService(t, lim, 10, 60)

		meta, err := jsonval.From(map[string]any{
			"utm":      map[string]any{"source": "instagram", "campaign": "komodo-2026"},
			"referrer": "https://instagram.com",
		})
		require.NoError(t, err)

		var inserted model.Event

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event model.Event) error {
				inserted = event

				return nil
			})

		m.visitRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, visit model.Visit) error {
				assert.Equal(t,
					model.VisitFingerprint("Mozilla/5.0", "203.0.113.7", inserted.CreatedAt, "sess-1"),
					visit.Fingerprint,
				)
				assert.Equal(t, inserted.CreatedAt.UTC().Format("2006-01-02"), visit.Day)
				assert.Equal(t, "/packages/komodo-sailing", visit.Path)
				assert.True(t, visit.Utm.IsObject())

				source, ok := visit.Utm.Field("source")
				require.True(t, ok)
				assert.Equal(t, "instagram", source.Interface())

				return nil
			})

		_, _, err = svc.Ingest(context.Background(), pageViewRequest("sess-1", meta))
		assert.NoError(t, err)
	})

	t.Run("non-object utm stores as null", func(t *testing.T) {
		svc, m := newEventService(t, lim, 10, 60)

		meta, err := jsonval.From(map[string]any{"utm": "instagram"})
		require.NoError(t, err)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		m.visitRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, visit model.Visit) error {
				assert.False(t, visit.Utm.IsSet())

				return nil
			})

		_, _, err = svc.Ingest(context.Background(), pageViewRequest("sess-1", meta))
		assert.NoError(t, err)
	})

	t.Run("visit insert failure does not fail the event", func(t *testing.T) {
		svc, m := newEventService(t, lim, 10, 60)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		m.visitRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		res, _, err := svc.Ingest(context.Background(), pageViewRequest("sess-1", jsonval.Value{}))
		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("non page_view derives nothing", func(t *testing.T) {
		svc, m := newEventService(t, lim, 10, 60)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		req := pageViewRequest("sess-1", jsonval.Value{})
		req.Type = model.TypeBookClick

		_, _, err := svc.Ingest(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestEventService_Ingest_LimiterFailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLimiter := limiterMocks.NewMockLimiter(ctrl)

	svc, m := newEventService(t, mockLimiter, 10, 60)

	mockLimiter.EXPECT().
		Limit(gomock.Any(), "event:203.0.113.7:sess-1", 10, 60).
		Return(limiter.Result{}, errors.New("redis connection refused"))

	m.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	req := dto.IngestEventRequest{Type: model.TypeItineraryOpen, Path: "/itinerary", SessionID: "sess-1", ClientIP: "203.0.113.7"}

	res, limit, err := svc.Ingest(context.Background(), req)
	assert.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.True(t, limit.Success)
	assert.Equal(t, 10, limit.Limit)
}

func TestEventService_Ingest_RejectedWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLimiter := limiterMocks.NewMockLimiter(ctrl)

	svc, _ := newEventService(t, mockLimiter, 10, 60)

	mockLimiter.EXPECT().
		Limit(gomock.Any(), gomock.Any(), 10, 60).
		Return(limiter.Result{Success: false, Limit: 10, Remaining: 0}, nil)

	req := pageViewRequest("sess-1", jsonval.Value{})

	_, limit, err := svc.Ingest(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 429, failure.GetCode(err))
	assert.Equal(t, 10, limit.Limit)
}

func TestEventService_GetAllEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLimiter := limiterMocks.NewMockLimiter(ctrl)

	svc, m := newEventService(t, mockLimiter, 10, 60)

	t.Run("cache miss, successful get all", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		m.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Event{{ID: "evt-1", Type: model.TypePageView, Path: "/"}}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		result, err := svc.GetAllEvents(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
		assert.NoError(t, err)
		assert.Equal(t, 1, result.TotalData)
		assert.Len(t, result.Events, 1)
	})
}

func TestEventService_GetAllVisits(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLimiter := limiterMocks.NewMockLimiter(ctrl)

	svc, m := newEventService(t, mockLimiter, 10, 60)

	t.Run("cache miss, successful get all", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		m.visitRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		m.visitRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Visit{{ID: "vis-1", Day: "2026-03-14"}}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		result, err := svc.GetAllVisits(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
		assert.NoError(t, err)
		assert.Equal(t, 1, result.TotalData)
		assert.Len(t, result.Visits, 1)
	})
}
