package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tenantdash/internal/dashboard/models"
	"tenantdash/internal/dashboard/service"
	"tenantdash/internal/dashboard/view"
	id "tenantdash/pkg/domain"
	dErrors "tenantdash/pkg/domain-errors"
	"tenantdash/pkg/platform/httputil"
	"tenantdash/pkg/platform/validation"
	"tenantdash/pkg/requestcontext"
)

// Service defines the dashboard operations exposed over HTTP.
// Every call is scoped to the authenticated session.
type Service interface {
	Open(ctx context.Context, session id.Session) (*service.Opened, error)
	GetView(ctx context.Context, session id.Session, viewID id.ViewID) (*view.View, error)
	Paginate(ctx context.Context, session id.Session, viewID id.ViewID, q service.PageQuery) (*view.View, error)
	ApplyFilter(ctx context.Context, session id.Session, viewID id.ViewID, text string) (*view.View, error)
	RemoveRow(ctx context.Context, session id.Session, viewID id.ViewID, tenantID id.TenantID) (*view.View, error)
	CloseView(ctx context.Context, session id.Session, viewID id.ViewID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the dashboard routes. The router must already require a session.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.HandleOpen)
	r.Get("/dashboard/views/{viewID}", h.HandleGetView)
	r.Delete("/dashboard/views/{viewID}", h.HandleCloseView)
	r.Post("/dashboard/views/{viewID}/filter", h.HandleApplyFilter)
	r.Delete("/dashboard/views/{viewID}/rows/{tenantID}", h.HandleRemoveRow)
	r.Get("/dashboard/tenants/{tenantID}", h.HandleSeeDetails)
	r.Get("/dashboard/dialogs/create-tenant", h.HandleCreateTenantDialog)
	r.Post("/logout", h.HandleLogout)
}

// HandleOpen aggregates the dashboard and returns its summary with the first page.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	session, err := httputil.RequireSession(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	opened, err := h.service.Open(ctx, session)
	if err != nil {
		h.logger.ErrorContext(ctx, "open dashboard failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &DashboardResponse{
		ViewID:  opened.View.ID.String(),
		Summary: opened.Dashboard.Summary,
		Page:    opened.View.Page(),
		Issues:  opened.Dashboard.Issues,
	})
}

// HandleGetView returns the current page, or moves to the page and sort in the query.
func (h *Handler) HandleGetView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	session, viewID, ok := h.viewRequest(w, r)
	if !ok {
		return
	}

	query, present, err := parsePageQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var v *view.View
	if present {
		v, err = h.service.Paginate(ctx, session, viewID, query)
	} else {
		v, err = h.service.GetView(ctx, session, viewID)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "get view failed", "error", err, "request_id", requestID, "view_id", viewID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toViewResponse(v))
}

// HandleApplyFilter filters the view and returns its first page.
func (h *Handler) HandleApplyFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	session, viewID, ok := h.viewRequest(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, validation.MaxBodySize)
	req, ok := httputil.DecodeAndPrepare[FilterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	v, err := h.service.ApplyFilter(ctx, session, viewID, req.Filter)
	if err != nil {
		h.logger.WarnContext(ctx, "apply filter failed", "error", err, "request_id", requestID, "view_id", viewID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toViewResponse(v))
}

// HandleRemoveRow hides a tenant from the view. The tenant itself is not deleted.
func (h *Handler) HandleRemoveRow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	session, viewID, ok := h.viewRequest(w, r)
	if !ok {
		return
	}
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid tenant id"))
		return
	}

	v, err := h.service.RemoveRow(ctx, session, viewID, tenantID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove row failed", "error", err, "request_id", requestID,
			"view_id", viewID, "tenant_id", tenantID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toViewResponse(v))
}

// HandleCloseView discards a view.
func (h *Handler) HandleCloseView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	session, viewID, ok := h.viewRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.CloseView(ctx, session, viewID); err != nil {
		h.logger.WarnContext(ctx, "close view failed", "error", err, "request_id", requestID, "view_id", viewID)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleSeeDetails(w http.ResponseWriter, r *http.Request) {
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid tenant id"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.SeeDetails(tenantID))
}

func (h *Handler) HandleCreateTenantDialog(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, models.CreateTenantDialog())
}

// HandleLogout only tells the client where to go; tokens are stateless.
func (h *Handler) HandleLogout(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, models.Logout())
}

// viewRequest extracts the session and view ID shared by the view routes.
func (h *Handler) viewRequest(w http.ResponseWriter, r *http.Request) (id.Session, id.ViewID, bool) {
	session, err := httputil.RequireSession(r.Context(), h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return id.Session{}, id.ViewID{}, false
	}
	viewID, err := id.ParseViewID(chi.URLParam(r, "viewID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid view id"))
		return id.Session{}, id.ViewID{}, false
	}
	return session, viewID, true
}
