package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roamalto/config"
	otelMocks "roamalto/infras/otel/mocks"
	s3Mocks "roamalto/infras/s3/mocks"
	auditServiceMocks "roamalto/internal/domains/audit/service/mocks"
	packageMocks "roamalto/internal/domains/packages/mocks"
	"roamalto/internal/domains/packages/model"
	"roamalto/internal/domains/packages/model/dto"
	"roamalto/internal/domains/packages/service"
	cacheMocks "roamalto/shared/cache/mocks"
	"roamalto/shared/constant"
	"roamalto/shared/failure"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

type packageServiceMocks struct {
	repo  *packageMocks.MockPackage
	audit *auditServiceMocks.MockAudit
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newPackageService(t *testing.T) (service.Package, packageServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	deps := packageServiceMocks{
		repo:  packageMocks.NewMockPackage(ctrl),
		audit: auditServiceMocks.NewMockAudit(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "roamalto-assets"

	svc := service.New(deps.repo, deps.audit, cfg, deps.cache, otelMocks.NewOtel(), deps.s3)

	return svc, deps
}

func TestPackageService_Create(t *testing.T) {
	svc, deps := newPackageService(t)

	t.Run("successful creation", func(t *testing.T) {
		deps.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		deps.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		deps.audit.EXPECT().
			Record(gomock.Any(), gomock.Any())

		deps.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Create(context.Background(), dto.CreatePackageRequest{
			Title:      "Komodo Island Escape",
			Slug:       "komodo-island-escape",
			Days:       4,
			Highlights: []string{"Pink beach", "Dragon trekking"},
			PriceFrom:  8500000,
			Active:     true,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "komodo-island-escape", res.Slug)
	})

	t.Run("slug conflict", func(t *testing.T) {
		deps.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		_, err := svc.Create(context.Background(), dto.CreatePackageRequest{
			Title:      "Komodo Island Escape",
			Slug:       "komodo-island-escape",
			Days:       4,
			Highlights: []string{"Pink beach"},
		})

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestPackageService_GetBySlug(t *testing.T) {
	svc, deps := newPackageService(t)

	pkg := model.Package{
		ID:     "pkg-1",
		Title:  "Komodo Island Escape",
		Slug:   "komodo-island-escape",
		Days:   4,
		Active: true,
	}

	t.Run("cache miss, found in db", func(t *testing.T) {
		deps.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pkg, nil)

		deps.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetBySlug(context.Background(), "komodo-island-escape")
		assert.NoError(t, err)
		assert.Equal(t, "pkg-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		deps.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, nil)

		_, err := svc.GetBySlug(context.Background(), "missing")
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestPackageService_Update(t *testing.T) {
	existing := model.Package{
		ID:   "pkg-1",
		Slug: "komodo-island-escape",
	}

	tests := []struct {
		name      string
		req       dto.UpdatePackageRequest
		setupMock func(deps packageServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful partial update",
			req: dto.UpdatePackageRequest{
				Title:  strPtr("Komodo Island Escape 2026"),
				Days:   intPtr(5),
				Active: boolPtr(false),
			},
			setupMock: func(deps packageServiceMocks) {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				deps.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, "Komodo Island Escape 2026", fields[model.FieldTitle])
						assert.Equal(t, 5, fields[model.FieldDays])
						assert.Equal(t, false, fields[model.FieldActive])

						return nil
					})

				deps.audit.EXPECT().
					Record(gomock.Any(), gomock.Any())

				deps.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				deps.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "empty update request",
			req:       dto.UpdatePackageRequest{},
			setupMock: func(deps packageServiceMocks) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "package not found",
			req: dto.UpdatePackageRequest{
				Title: strPtr("Komodo Island Escape 2026"),
			},
			setupMock: func(deps packageServiceMocks) {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Package{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "update error",
			req: dto.UpdatePackageRequest{
				Title: strPtr("Komodo Island Escape 2026"),
			},
			setupMock: func(deps packageServiceMocks) {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				deps.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newPackageService(t)
			tt.setupMock(deps)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
			err := svc.Update(ctx, tt.req, "pkg-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPackageService_UploadHero(t *testing.T) {
	heroPNG := "data:image/png;base64,aVZCT1J3MEtHZ28="

	t.Run("successful upload stores URL", func(t *testing.T) {
		svc, deps := newPackageService(t)

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{ID: "pkg-1", Slug: "komodo-island-escape"}, nil)

		deps.s3.EXPECT().
			UploadFileBytes(gomock.Any(), "roamalto-assets", model.EntityName, gomock.Any(), "image/png", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, fileName, _ string, _ []byte) (string, error) {
				assert.True(t, strings.HasPrefix(fileName, "komodo-island-escape-"))
				assert.True(t, strings.HasSuffix(fileName, ".png"))

				return "https://cdn.roamalto.example/roamalto-assets/package/" + fileName, nil
			})

		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Contains(t, fields, model.FieldHeroImageURL)

				return nil
			})

		deps.audit.EXPECT().
			Record(gomock.Any(), gomock.Any())

		deps.cache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		deps.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.UploadHero(context.Background(), dto.UploadHeroRequest{File: heroPNG}, "pkg-1")
		assert.NoError(t, err)
		assert.NotEmpty(t, res.URL)
	})

	t.Run("package not found", func(t *testing.T) {
		svc, deps := newPackageService(t)

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, nil)

		_, err := svc.UploadHero(context.Background(), dto.UploadHeroRequest{File: heroPNG}, "missing")
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("invalid payload", func(t *testing.T) {
		svc, deps := newPackageService(t)

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{ID: "pkg-1", Slug: "komodo-island-escape"}, nil)

		_, err := svc.UploadHero(context.Background(), dto.UploadHeroRequest{File: "not-a-data-uri"}, "pkg-1")
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("upload error", func(t *testing.T) {
		svc, deps := newPackageService(t)

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{ID: "pkg-1", Slug: "komodo-island-escape"}, nil)

		deps.s3.EXPECT().
			UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("upload error"))

		_, err := svc.UploadHero(context.Background(), dto.UploadHeroRequest{File: heroPNG}, "pkg-1")
		assert.Error(t, err)
	})
}
