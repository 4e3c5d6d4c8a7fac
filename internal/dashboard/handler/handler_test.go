package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"tenantdash/internal/dashboard/models"
	"tenantdash/internal/dashboard/service"
	datastore "tenantdash/internal/dashboard/store/data"
	viewstore "tenantdash/internal/dashboard/store/view"
	"tenantdash/internal/dashboard/view"
	"tenantdash/internal/session"
	id "tenantdash/pkg/domain"
	authmw "tenantdash/pkg/platform/middleware/auth"
	"tenantdash/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	router     http.Handler
	data       *datastore.InMemoryStore
	adminToken string
	userToken  string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ids := testutil.TestIDs
	s.data = datastore.NewInMemory()
	s.data.AddTenant(models.Tenant{ID: ids.TenantID1, Slug: "acme"},
		testutil.NewMemberBuilder(ids.TenantID1).WithName("Ada", "Lovelace").AsOwner().Build(),
		testutil.NewMemberBuilder(ids.TenantID1).WithUserID(ids.UserID2).Build(),
	)
	s.data.AddTenant(models.Tenant{ID: ids.TenantID2, Slug: "globex"},
		testutil.NewMemberBuilder(ids.TenantID2).WithUserID(ids.UserID2).WithName("Grace", "Hopper").AsOwner().Build(),
	)
	s.data.AddIoTDevices(ids.TenantID1, testutil.Devices(ids.TenantID1, 2)...)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.New(s.data, viewstore.NewInMemory(time.Hour), service.WithLogger(logger))
	s.Require().NoError(err)

	jwtService := session.NewJWTService("handler-test-key", "", time.Hour)
	s.adminToken, err = jwtService.Issue(context.Background(), ids.UserID1, id.RoleService)
	s.Require().NoError(err)
	s.userToken, err = jwtService.Issue(context.Background(), ids.UserID2, "authenticated")
	s.Require().NoError(err)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireSession(jwtService, logger))
		New(svc, logger).Register(r)
	})
	s.router = r
}

func (s *HandlerSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](s *HandlerSuite, rec *httptest.ResponseRecorder) T {
	var out T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *HandlerSuite) open(token string) DashboardResponse {
	rec := s.do(http.MethodGet, "/dashboard", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	return decode[DashboardResponse](s, rec)
}

func (s *HandlerSuite) TestSessionRequired() {
	rec := s.do(http.MethodGet, "/dashboard", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/dashboard", "not-a-jwt", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestOpenDashboard() {
	s.Run("privileged sees every tenant", func() {
		res := s.open(s.adminToken)
		s.NotEmpty(res.ViewID)
		s.Equal(models.Summary{Accounts: 2, Users: 3, DevicesIoT: 2}, res.Summary)
		s.Equal(2, res.Page.Total)
		s.Equal("acme", res.Page.Rows[0].Account)
		s.Equal("Ada Lovelace", res.Page.Rows[0].Owner)
		s.Equal(models.StatusUnknown, res.Page.Rows[0].Status)
	})

	s.Run("regular user sees only owned tenants", func() {
		res := s.open(s.userToken)
		s.Equal(1, res.Summary.Accounts)
		s.Require().Len(res.Page.Rows, 1)
		s.Equal("globex", res.Page.Rows[0].Account, "plain membership of acme does not count")
	})

	s.Run("partial failure still serves", func() {
		s.data.FailOn(models.ResourceIoTDevices, testutil.TestIDs.TenantID1, context.DeadlineExceeded)
		res := s.open(s.adminToken)
		s.Zero(res.Summary.DevicesIoT)
		s.Require().Len(res.Issues, 1)
		s.Equal(models.ResourceIoTDevices, res.Issues[0].Resource)
	})

	s.Run("scope failure is an error", func() {
		s.data.FailScope(context.DeadlineExceeded)
		rec := s.do(http.MethodGet, "/dashboard", s.adminToken, nil)
		s.Equal(http.StatusGatewayTimeout, rec.Code)
	})
}

func (s *HandlerSuite) TestFilterAndPaging() {
	viewID := s.open(s.adminToken).ViewID

	rec := s.do(http.MethodPost, "/dashboard/views/"+viewID+"/filter", s.adminToken, FilterRequest{Filter: " GRACE "})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	res := decode[ViewResponse](s, rec)
	s.Equal("grace", res.Page.Filter)
	s.Require().Len(res.Page.Rows, 1)
	s.Equal("globex", res.Page.Rows[0].Account)

	rec = s.do(http.MethodPost, "/dashboard/views/"+viewID+"/filter", s.adminToken, FilterRequest{Filter: ""})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/dashboard/views/"+viewID+"?sort=users&desc=true&page_size=1", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	res = decode[ViewResponse](s, rec)
	s.Equal(1, res.Page.PageSize)
	s.Equal(2, res.Page.Total)
	s.Require().Len(res.Page.Rows, 1)
	s.Equal("acme", res.Page.Rows[0].Account)

	rec = s.do(http.MethodGet, "/dashboard/views/"+viewID, s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(1, decode[ViewResponse](s, rec).Page.PageSize, "plain get keeps stored paging")
}

func (s *HandlerSuite) TestPageSizeLimit() {
	viewID := s.open(s.adminToken).ViewID

	for _, size := range []int{300, view.MaxPageSize} {
		rec := s.do(http.MethodGet, fmt.Sprintf("/dashboard/views/%s?page_size=%d", viewID, size), s.adminToken, nil)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.Equal(size, decode[ViewResponse](s, rec).Page.PageSize)
	}

	rec := s.do(http.MethodGet, fmt.Sprintf("/dashboard/views/%s?page_size=%d", viewID, view.MaxPageSize+1), s.adminToken, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "page_size must be at most 500")
}

func (s *HandlerSuite) TestSortKeepsCurrentPage() {
	viewID := s.open(s.adminToken).ViewID

	rec := s.do(http.MethodGet, "/dashboard/views/"+viewID+"?page=1&page_size=1", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/dashboard/views/"+viewID+"?sort=account", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	res := decode[ViewResponse](s, rec)
	s.Equal(1, res.Page.PageIndex)
	s.Require().Len(res.Page.Rows, 1)
	s.Equal("globex", res.Page.Rows[0].Account)
}

func (s *HandlerSuite) TestInvalidRequests() {
	viewID := s.open(s.adminToken).ViewID

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"bad view id", http.MethodGet, "/dashboard/views/nope", nil, http.StatusBadRequest},
		{"unknown view", http.MethodGet, "/dashboard/views/" + uuid.NewString(), nil, http.StatusNotFound},
		{"bad sort column", http.MethodGet, "/dashboard/views/" + viewID + "?sort=email", nil, http.StatusBadRequest},
		{"negative page", http.MethodGet, "/dashboard/views/" + viewID + "?page=-1", nil, http.StatusBadRequest},
		{"filter too long", http.MethodPost, "/dashboard/views/" + viewID + "/filter", FilterRequest{Filter: strings.Repeat("x", 300)}, http.StatusBadRequest},
		{"bad tenant id", http.MethodDelete, "/dashboard/views/" + viewID + "/rows/nope", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := s.do(tc.method, tc.path, s.adminToken, tc.body)
			s.Equal(tc.status, rec.Code, rec.Body.String())
		})
	}
}

func (s *HandlerSuite) TestViewBelongsToItsOwner() {
	viewID := s.open(s.adminToken).ViewID

	rec := s.do(http.MethodGet, "/dashboard/views/"+viewID, s.userToken, nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *HandlerSuite) TestRemoveRow() {
	opened := s.open(s.adminToken)
	path := "/dashboard/views/" + opened.ViewID + "/rows/" + testutil.TestIDs.TenantID1.String()

	rec := s.do(http.MethodDelete, path, s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	res := decode[ViewResponse](s, rec)
	s.Equal(1, res.Page.Total)
	s.Equal("globex", res.Page.Rows[0].Account)

	again := s.open(s.adminToken)
	s.Equal(opened.Summary, again.Summary, "the tenant itself is untouched")
	s.Equal(2, again.Page.Total)
}

func (s *HandlerSuite) TestCloseView() {
	viewID := s.open(s.adminToken).ViewID

	rec := s.do(http.MethodDelete, "/dashboard/views/"+viewID, s.adminToken, nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/dashboard/views/"+viewID, s.adminToken, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestDescriptors() {
	tenantID := testutil.TestIDs.TenantID2.String()

	rec := s.do(http.MethodGet, "/dashboard/tenants/"+tenantID, s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(models.Navigation{Navigate: "/admin/see-tenant-dashboard/" + tenantID}, decode[models.Navigation](s, rec))

	rec = s.do(http.MethodGet, "/dashboard/dialogs/create-tenant", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(models.Dialog{Dialog: "create-tenant", Width: "30%", Height: "auto"}, decode[models.Dialog](s, rec))

	rec = s.do(http.MethodPost, "/logout", s.userToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(models.Navigation{Navigate: "/auth/sign-in"}, decode[models.Navigation](s, rec))
}
