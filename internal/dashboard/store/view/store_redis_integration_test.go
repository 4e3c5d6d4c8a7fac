//go:build integration

package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tenantdash/internal/dashboard/models"
	dashview "tenantdash/internal/dashboard/view"
	id "tenantdash/pkg/domain"
	"tenantdash/pkg/platform/sentinel"
	"tenantdash/pkg/testutil"
	"tenantdash/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = NewRedis(s.redis.Client, time.Minute)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTripKeepsTypedIDs() {
	ctx := context.Background()
	rows := []models.TenantRow{{
		ID:              testutil.TestIDs.TenantID1,
		Account:         "acme",
		Owner:           "Ada Lovelace",
		Users:           3,
		Devices:         2,
		DeviceIoTStatus: models.StatusUnknown,
		Status:          models.StatusUnknown,
	}}
	v := dashview.New(testutil.TestIDs.UserID1, rows, 10, time.Now().UTC().Truncate(time.Second))
	v.ApplyFilter("acme")
	v.SetSort(dashview.Sort{Column: dashview.ColumnUsers, Desc: true})

	s.Require().NoError(s.store.Save(ctx, v))
	found, err := s.store.Find(ctx, v.ID)
	s.Require().NoError(err)

	s.Equal(v.ID, found.ID)
	s.Equal(v.OwnerID, found.OwnerID)
	s.Equal(v.Rows, found.Rows)
	s.Equal(v.Filter, found.Filter)
	s.Equal(v.Sort, found.Sort)
	s.True(v.CreatedAt.Equal(found.CreatedAt))
}

func (s *RedisStoreSuite) TestSaveSetsTTL() {
	ctx := context.Background()
	v := dashview.New(testutil.TestIDs.UserID1, nil, 10, time.Now())
	s.Require().NoError(s.store.Save(ctx, v))

	ttl, err := s.redis.Client.TTL(ctx, viewKey(v.ID)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

func (s *RedisStoreSuite) TestFindRefreshesTTL() {
	ctx := context.Background()
	v := dashview.New(testutil.TestIDs.UserID1, nil, 10, time.Now())
	s.Require().NoError(s.store.Save(ctx, v))
	s.Require().NoError(s.redis.Client.Expire(ctx, viewKey(v.ID), 5*time.Second).Err())

	_, err := s.store.Find(ctx, v.ID)
	s.Require().NoError(err)

	ttl, err := s.redis.Client.TTL(ctx, viewKey(v.ID)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 5*time.Second)
}

func (s *RedisStoreSuite) TestFindMissing() {
	_, err := s.store.Find(context.Background(), id.NewViewID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestDelete() {
	ctx := context.Background()
	v := dashview.New(testutil.TestIDs.UserID1, nil, 10, time.Now())
	s.Require().NoError(s.store.Save(ctx, v))
	s.Require().NoError(s.store.Delete(ctx, v.ID))

	_, err := s.store.Find(ctx, v.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
