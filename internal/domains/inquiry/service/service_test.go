package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roamalto/config"
	"roamalto/infras/otel/mocks"
	auditServiceMocks "roamalto/internal/domains/audit/service/mocks"
	inquiryMocks "roamalto/internal/domains/inquiry/mocks"
	"roamalto/internal/domains/inquiry/model"
	"roamalto/internal/domains/inquiry/model/dto"
	"roamalto/internal/domains/inquiry/service"
	leadMocks "roamalto/internal/domains/lead/mocks"
	cacheMocks "roamalto/shared/cache/mocks"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/failure"
)

func TestInquiryService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := inquiryMocks.NewMockInquiry(ctrl)
	mockLeadRepo := leadMocks.NewMockLead(ctrl)
	mockAudit := auditServiceMocks.NewMockAudit(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockLeadRepo, mockAudit, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateInquiryRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateInquiryRequest{
				LeadID:  "lead-1",
				Channel: model.ChannelWhatsapp,
				Message: "Asked about the Komodo package",
			},
			setupMock: func() {
				mockLeadRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockAudit.EXPECT().
					Record(gomock.Any(), gomock.Any())

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "lead does not exist",
			req: dto.CreateInquiryRequest{
				LeadID:  "missing",
				Channel: model.ChannelEmail,
				Message: "Follow up",
			},
			setupMock: func() {
				mockLeadRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "lead check error",
			req: dto.CreateInquiryRequest{
				LeadID:  "lead-1",
				Channel: model.ChannelForm,
				Message: "Follow up",
			},
			setupMock: func() {
				mockLeadRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "insert error skips audit",
			req: dto.CreateInquiryRequest{
				LeadID:  "lead-1",
				Channel: model.ChannelWhatsapp,
				Message: "Follow up",
			},
			setupMock: func() {
				mockLeadRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

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
				assert.Equal(t, "staff-1", res.StaffID)
			}
		})
	}
}

func TestInquiryService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := inquiryMocks.NewMockInquiry(ctrl)
	mockLeadRepo := leadMocks.NewMockLead(ctrl)
	mockAudit := auditServiceMocks.NewMockAudit(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockLeadRepo, mockAudit, cfg, mockCache, mockOtel)

	t.Run("cache miss, successful get all", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Inquiry{{ID: "inq-1", LeadID: "lead-1", Channel: model.ChannelWhatsapp}}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		result, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
		assert.NoError(t, err)
		assert.Equal(t, 1, result.TotalData)
		assert.Len(t, result.Inquiries, 1)
	})
}
