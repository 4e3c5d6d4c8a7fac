package service

//go:generate mockgen -source=../ports/ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	dashmetrics "tenantdash/internal/dashboard/metrics"
	"tenantdash/internal/dashboard/models"
	"tenantdash/internal/dashboard/service/mocks"
	viewstore "tenantdash/internal/dashboard/store/view"
	id "tenantdash/pkg/domain"
	dErrors "tenantdash/pkg/domain-errors"
	"tenantdash/pkg/testutil"
)

// ServiceSuite drives the aggregator against a mocked data service.
type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockData *mocks.MockDataService
	views    *viewstore.InMemoryStore
	metrics  *dashmetrics.Metrics
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockData = mocks.NewMockDataService(s.ctrl)
	s.views = viewstore.NewInMemory(time.Hour)
	s.metrics = dashmetrics.NewWith(prometheus.NewRegistry())
	s.service = s.newService()
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) newService(opts ...Option) *Service {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithFanOutLimit(4),
	}
	svc, err := New(s.mockData, s.views, append(base, opts...)...)
	s.Require().NoError(err)
	return svc
}

// expectEmptyCollections allows every per-tenant read for tenantID and returns nothing.
func (s *ServiceSuite) expectEmptyCollections(tenantID id.TenantID) {
	s.mockData.EXPECT().ListMonitoredPersons(gomock.Any(), tenantID).Return(nil, nil)
	s.mockData.EXPECT().ListIoTDevices(gomock.Any(), tenantID).Return(nil, nil)
	s.mockData.EXPECT().ListMedicalDevices(gomock.Any(), tenantID).Return(nil, nil)
}

func (s *ServiceSuite) TestNewRequiresDependencies() {
	_, err := New(nil, s.views)
	s.Error(err)
	_, err = New(s.mockData, nil)
	s.Error(err)
}

func (s *ServiceSuite) TestPrivilegedSessionSeesEveryTenant() {
	ctx := context.Background()
	ids := testutil.TestIDs
	tenants := []models.Tenant{{ID: ids.TenantID1, Slug: "acme"}, {ID: ids.TenantID2, Slug: "globex"}}

	s.mockData.EXPECT().ListAllTenants(gomock.Any()).Return(tenants, nil)
	for _, t := range tenants {
		owner := testutil.NewMemberBuilder(t.ID).AsOwner().Build()
		s.mockData.EXPECT().ListTenantMembers(gomock.Any(), t.ID).Return([]models.Member{owner}, nil)
		s.expectEmptyCollections(t.ID)
	}

	dashboard, err := s.service.Load(ctx, testutil.AdminSession())
	s.Require().NoError(err)
	s.Equal(2, dashboard.Summary.Accounts)
	s.Equal(2, dashboard.Summary.Users)
	s.Len(dashboard.Rows, 2)
	s.Empty(dashboard.Issues)
}

func (s *ServiceSuite) TestRegularSessionUsesCallerScope() {
	ctx := context.Background()
	ids := testutil.TestIDs
	session := testutil.UserSession(ids.UserID2)
	tenant := models.Tenant{ID: ids.TenantID1, Slug: "acme"}

	s.mockData.EXPECT().ListTenantsForUser(gomock.Any(), ids.UserID2).Return([]models.Tenant{tenant}, nil)
	s.mockData.EXPECT().ListTenantMembersForCaller(gomock.Any(), ids.UserID2, ids.TenantID1).
		Return([]models.Member{testutil.NewMemberBuilder(ids.TenantID1).WithUserID(ids.UserID2).AsOwner().Build()}, nil)
	s.expectEmptyCollections(ids.TenantID1)

	dashboard, err := s.service.Load(ctx, session)
	s.Require().NoError(err)
	s.Equal(1, dashboard.Summary.Accounts)
	s.Require().Len(dashboard.Rows, 1)
	s.Equal("acme", dashboard.Rows[0].Account)
}

func (s *ServiceSuite) TestEmptyScope() {
	s.mockData.EXPECT().ListTenantsForUser(gomock.Any(), testutil.TestIDs.UserID2).Return(nil, nil)

	dashboard, err := s.service.Load(context.Background(), testutil.UserSession(testutil.TestIDs.UserID2))
	s.Require().NoError(err)
	s.Equal(models.Summary{}, dashboard.Summary)
	s.Empty(dashboard.Rows)
	s.Empty(dashboard.Issues)
}

func (s *ServiceSuite) TestViewEditsDoNotTouchTheDataService() {
	ctx := context.Background()
	ids := testutil.TestIDs
	tenants := []models.Tenant{{ID: ids.TenantID1, Slug: "acme"}, {ID: ids.TenantID2, Slug: "globex"}}

	s.mockData.EXPECT().ListAllTenants(gomock.Any()).Return(tenants, nil).Times(1)
	for _, t := range tenants {
		owner := testutil.NewMemberBuilder(t.ID).AsOwner().Build()
		s.mockData.EXPECT().ListTenantMembers(gomock.Any(), t.ID).Return([]models.Member{owner}, nil).Times(1)
		s.expectEmptyCollections(t.ID)
	}
	opened, err := s.service.Open(ctx, testutil.AdminSession())
	s.Require().NoError(err)

	// Any data service call from here on is unexpected and fails the test.
	v, err := s.service.RemoveRow(ctx, testutil.AdminSession(), opened.View.ID, ids.TenantID1)
	s.Require().NoError(err)
	s.Require().Len(v.Rows, 1)
	s.Equal("globex", v.Rows[0].Account)

	v, err = s.service.ApplyFilter(ctx, testutil.AdminSession(), opened.View.ID, "glo")
	s.Require().NoError(err)
	s.Equal(1, v.Page().Total)

	_, err = s.service.Paginate(ctx, testutil.AdminSession(), opened.View.ID, PageQuery{PageSize: 5})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestScopeFailureFailsTheLoad() {
	s.Run("backend error", func() {
		s.mockData.EXPECT().ListAllTenants(gomock.Any()).Return(nil, errors.New("connection refused"))

		dashboard, err := s.service.Load(context.Background(), testutil.AdminSession())
		s.Nil(dashboard)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("deadline", func() {
		s.mockData.EXPECT().ListAllTenants(gomock.Any()).Return(nil, context.DeadlineExceeded)

		_, err := s.service.Load(context.Background(), testutil.AdminSession())
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

func (s *ServiceSuite) TestSessionWithoutUser() {
	_, err := s.service.Load(context.Background(), id.Session{Role: id.RoleService})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestFailedFetchCountsAsEmpty() {
	ctx := context.Background()
	ids := testutil.TestIDs
	tenants := []models.Tenant{{ID: ids.TenantID1, Slug: "acme"}, {ID: ids.TenantID2, Slug: "globex"}}

	s.mockData.EXPECT().ListAllTenants(gomock.Any()).Return(tenants, nil)
	for _, t := range tenants {
		owner := testutil.NewMemberBuilder(t.ID).AsOwner().Build()
		s.mockData.EXPECT().ListTenantMembers(gomock.Any(), t.ID).Return([]models.Member{owner}, nil)
		s.mockData.EXPECT().ListMonitoredPersons(gomock.Any(), t.ID).Return(testutil.MonitoredPersons(t.ID, 2), nil)
		s.mockData.EXPECT().ListMedicalDevices(gomock.Any(), t.ID).Return(nil, nil)
	}
	s.mockData.EXPECT().ListIoTDevices(gomock.Any(), ids.TenantID1).Return(testutil.Devices(ids.TenantID1, 3), nil)
	s.mockData.EXPECT().ListIoTDevices(gomock.Any(), ids.TenantID2).Return(nil, errors.New("upstream 500"))

	dashboard, err := s.service.Load(ctx, testutil.AdminSession())
	s.Require().NoError(err)

	s.Equal(3, dashboard.Summary.DevicesIoT)
	s.Equal(4, dashboard.Summary.Monitored)
	s.Equal(3, dashboard.Rows[0].Devices)
	s.Zero(dashboard.Rows[1].Devices)
	s.Require().Len(dashboard.Issues, 1)
	s.Equal(models.Issue{TenantID: ids.TenantID2, Resource: models.ResourceIoTDevices, Reason: "upstream 500"}, dashboard.Issues[0])
	s.Equal(1.0, promtest.ToFloat64(s.metrics.FetchFailures.WithLabelValues(string(models.ResourceIoTDevices))))
}

func (s *ServiceSuite) TestHungFetchDegradesAtLoadTimeout() {
	svc := s.newService(WithLoadTimeout(50 * time.Millisecond))
	ids := testutil.TestIDs
	tenant := models.Tenant{ID: ids.TenantID1, Slug: "acme"}

	s.mockData.EXPECT().ListAllTenants(gomock.Any()).Return([]models.Tenant{tenant}, nil)
	s.mockData.EXPECT().ListTenantMembers(gomock.Any(), ids.TenantID1).
		Return([]models.Member{testutil.NewMemberBuilder(ids.TenantID1).AsOwner().Build()}, nil)
	s.mockData.EXPECT().ListMonitoredPersons(gomock.Any(), ids.TenantID1).
		DoAndReturn(func(ctx context.Context, _ id.TenantID) ([]models.MonitoredPerson, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	s.mockData.EXPECT().ListIoTDevices(gomock.Any(), ids.TenantID1).Return(testutil.Devices(ids.TenantID1, 1), nil)
	s.mockData.EXPECT().ListMedicalDevices(gomock.Any(), ids.TenantID1).Return(nil, nil)

	dashboard, err := svc.Load(context.Background(), testutil.AdminSession())
	s.Require().NoError(err)
	s.Zero(dashboard.Summary.Monitored)
	s.Equal(1, dashboard.Summary.DevicesIoT)
	s.Require().Len(dashboard.Issues, 1)
	s.Equal(models.ResourceMonitored, dashboard.Issues[0].Resource)
}

func (s *ServiceSuite) TestFanOutLimit() {
	svc := s.newService(WithFanOutLimit(2))
	tenants := make([]models.Tenant, 8)
	for i := range tenants {
		tenants[i] = models.Tenant{ID: testutil.TestIDs.TenantID1, Slug: "t"}
	}

	var inFlight, peak atomic.Int32
	track := func() {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
	}

	s.mockData.EXPECT().ListAllTenants(gomock.Any()).Return(tenants, nil)
	s.mockData.EXPECT().ListTenantMembers(gomock.Any(), gomock.Any()).Return(nil, nil).Times(8)
	s.mockData.EXPECT().ListMonitoredPersons(gomock.Any(), gomock.Any()).Return(nil, nil).Times(8)
	s.mockData.EXPECT().ListMedicalDevices(gomock.Any(), gomock.Any()).Return(nil, nil).Times(8)
	s.mockData.EXPECT().ListIoTDevices(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, id.TenantID) ([]models.IoTDevice, error) {
			track()
			return nil, nil
		}).Times(8)

	_, err := svc.Load(context.Background(), testutil.AdminSession())
	s.Require().NoError(err)
	s.LessOrEqual(peak.Load(), int32(2))
}

func (s *ServiceSuite) TestOpenStoresAView() {
	ids := testutil.TestIDs
	tenant := models.Tenant{ID: ids.TenantID1, Slug: "acme"}
	s.mockData.EXPECT().ListAllTenants(gomock.Any()).Return([]models.Tenant{tenant}, nil)
	s.mockData.EXPECT().ListTenantMembers(gomock.Any(), ids.TenantID1).
		Return([]models.Member{testutil.NewMemberBuilder(ids.TenantID1).AsOwner().Build()}, nil)
	s.expectEmptyCollections(ids.TenantID1)

	opened, err := s.service.Open(context.Background(), testutil.AdminSession())
	s.Require().NoError(err)
	s.Equal(testutil.TestIDs.UserID1, opened.View.OwnerID)
	s.Equal(opened.Dashboard.Rows, opened.View.Rows)

	stored, err := s.views.Find(context.Background(), opened.View.ID)
	s.Require().NoError(err)
	s.Equal(opened.View.ID, stored.ID)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.ViewsOpened))
}
