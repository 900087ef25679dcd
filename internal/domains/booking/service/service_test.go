package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roamalto/config"
	"roamalto/infras/otel/mocks"
	auditDto "roamalto/internal/domains/audit/model/dto"
	auditServiceMocks "roamalto/internal/domains/audit/service/mocks"
	bookingMocks "roamalto/internal/domains/booking/mocks"
	"roamalto/internal/domains/booking/model"
	"roamalto/internal/domains/booking/model/dto"
	"roamalto/internal/domains/booking/service"
	leadMocks "roamalto/internal/domains/lead/mocks"
	packageMocks "roamalto/internal/domains/packages/mocks"
	cacheMocks "roamalto/shared/cache/mocks"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/failure"
	"roamalto/shared/timezone"
)

type bookingServiceMocks struct {
	repo        *bookingMocks.MockBooking
	leadRepo    *leadMocks.MockLead
	packageRepo *packageMocks.MockPackage
	audit       *auditServiceMocks.MockAudit
	cache       *cacheMocks.MockRedisCache
}

func newBookingService(t *testing.T) (service.Booking, bookingServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := bookingServiceMocks{
		repo:        bookingMocks.NewMockBooking(ctrl),
		leadRepo:    leadMocks.NewMockLead(ctrl),
		packageRepo: packageMocks.NewMockPackage(ctrl),
		audit:       auditServiceMocks.NewMockAudit(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.leadRepo, m.packageRepo, m.audit, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(m bookingServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation starts at new",
			req: dto.CreateBookingRequest{
				LeadID:         "lead-1",
				PackageID:      "pkg-1",
				AmountEstimate: 25000000,
			},
			setupMock: func(m bookingServiceMocks) {
				m.leadRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.packageRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, model.StatusNew, booking.Status)
						assert.Equal(t, "lead-1", booking.LeadID)

						return nil
					})

				m.audit.EXPECT().
					Record(gomock.Any(), gomock.Any())

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "lead does not exist",
			req: dto.CreateBookingRequest{
				LeadID:    "missing",
				PackageID: "pkg-1",
			},
			setupMock: func(m bookingServiceMocks) {
				m.leadRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "package does not exist",
			req: dto.CreateBookingRequest{
				LeadID:    "lead-1",
				PackageID: "missing",
			},
			setupMock: func(m bookingServiceMocks) {
				m.leadRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.packageRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "insert error skips audit",
			req: dto.CreateBookingRequest{
				LeadID:    "lead-1",
				PackageID: "pkg-1",
			},
			setupMock: func(m bookingServiceMocks) {
				m.leadRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.packageRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newBookingService(t)
			tt.setupMock(m)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, model.StatusNew, res.Status)
			}
		})
	}
}

func TestBookingService_Transition(t *testing.T) {
	stored := func(status string) model.Booking {
		return model.Booking{
			ID:        "bkg-1",
			LeadID:    "lead-1",
			PackageID: "pkg-1",
			Status:    status,
			UpdatedAt: timezone.Now(),
		}
	}

	tests := []struct {
		name       string
		requested  string
		setupMock  func(m bookingServiceMocks)
		wantErr    bool
		wantCode   int
		wantStatus string
	}{
		{
			name:      "new to consulting",
			requested: model.StatusConsulting,
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored(model.StatusNew), nil)

				m.repo.EXPECT().
					UpdateStatus(gomock.Any(), "bkg-1", model.StatusNew, model.StatusConsulting).
					Return(true, nil)

				m.audit.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, req auditDto.RecordEntryRequest) {
						assert.Equal(t, constant.AuditActionBookingStatusUpdate, req.Action)
						assert.Equal(t, model.StatusNew, req.Detail["from"])
						assert.Equal(t, model.StatusConsulting, req.Detail["to"])
					})

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantStatus: model.StatusConsulting,
		},
		{
			name:      "docs to closed",
			requested: model.StatusClosed,
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored(model.StatusDocs), nil)

				m.repo.EXPECT().
					UpdateStatus(gomock.Any(), "bkg-1", model.StatusDocs, model.StatusClosed).
					Return(true, nil)

				m.audit.EXPECT().
					Record(gomock.Any(), gomock.Any())

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantStatus: model.StatusClosed,
		},
		{
			name:      "same status is an idempotent no-op",
			requested: model.StatusConsulting,
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored(model.StatusConsulting), nil)
			},
			wantStatus: model.StatusConsulting,
		},
		{
			name:      "illegal jump new to booked",
			requested: model.StatusBooked,
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored(model.StatusNew), nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name:      "terminal status has no outgoing edges",
			requested: model.StatusConsulting,
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored(model.StatusBooked), nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name:      "booking not found",
			requested: model.StatusConsulting,
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:      "lost race against a concurrent transition",
			requested: model.StatusConsulting,
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored(model.StatusNew), nil)

				m.repo.EXPECT().
					UpdateStatus(gomock.Any(), "bkg-1", model.StatusNew, model.StatusConsulting).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name:      "update error",
			requested: model.StatusConsulting,
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored(model.StatusNew), nil)

				m.repo.EXPECT().
					UpdateStatus(gomock.Any(), "bkg-1", model.StatusNew, model.StatusConsulting).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newBookingService(t)
			tt.setupMock(m)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
			res, err := svc.Transition(ctx, "bkg-1", tt.requested)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, res.Status)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	t.Run("cache miss, found", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "bkg-1", Status: model.StatusDocs}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "bkg-1")
		assert.NoError(t, err)
		assert.Equal(t, model.StatusDocs, res.Status)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Get(context.Background(), "missing")
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	t.Run("cache miss, successful get all", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		m.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{{ID: "bkg-1", Status: model.StatusNew}}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		result, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
		assert.NoError(t, err)
		assert.Equal(t, 1, result.TotalData)
		assert.Len(t, result.Bookings, 1)
	})
}
