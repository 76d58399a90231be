package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/straye-as/calltracker-api/internal/auth"
	"github.com/straye-as/calltracker-api/internal/cache"
	"github.com/straye-as/calltracker-api/internal/domain"
	"github.com/straye-as/calltracker-api/internal/metrics"
	"github.com/straye-as/calltracker-api/internal/repository"
	"github.com/straye-as/calltracker-api/internal/service"
	"github.com/straye-as/calltracker-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixedNow is a Wednesday morning used as "now" throughout the service tests
var fixedNow = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type testEnv struct {
	db            *gorm.DB
	clientRepo    *repository.ClientRepository
	callRepo      *repository.CallRepository
	clients       *service.ClientService
	calls         *service.CallService
	notifications *service.NotificationService
	user          *domain.User
	ctx           context.Context
}

func userContext(user *domain.User) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})
}

func setupEnv(t *testing.T) *testEnv {
	return setupEnvWithCache(t, cache.New(nil, time.Minute))
}

func setupEnvWithCache(t *testing.T, statsCache *cache.Cache) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	m := metrics.New()

	clientRepo := repository.NewClientRepository(db)
	callRepo := repository.NewCallRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	user := testutil.CreateTestUser(t, db, "seller")

	return &testEnv{
		db:         db,
		clientRepo: clientRepo,
		callRepo:   callRepo,
		clients:    service.NewClientService(clientRepo, statsCache, m, logger).WithClock(fixedClock),
		calls: service.NewCallService(callRepo, clientRepo, service.ScheduleOptions{
			Location:      time.UTC,
			UpcomingLimit: 5,
		}, m, logger).WithClock(fixedClock),
		notifications: service.NewNotificationService(notificationRepo, callRepo, time.UTC, m, logger).WithClock(fixedClock),
		user:          user,
		ctx:           userContext(user),
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
