package service

import (
	"context"
	"errors"

	"tenantdash/internal/dashboard/models"
	"tenantdash/internal/dashboard/view"
	id "tenantdash/pkg/domain"
	dErrors "tenantdash/pkg/domain-errors"
	"tenantdash/pkg/platform/sentinel"
	"tenantdash/pkg/requestcontext"
)

// Opened is the result of activating the dashboard.
type Opened struct {
	Dashboard *models.Dashboard
	View      *view.View
}

// PageQuery moves a view to a page and optionally re-sorts it. A nil
// PageIndex keeps the current page and a zero PageSize keeps the current size.
type PageQuery struct {
	PageIndex *int
	PageSize  int
	Sort      *view.Sort
}

// Open aggregates the dashboard and stores a fresh table view over its rows.
func (s *Service) Open(ctx context.Context, session id.Session) (*Opened, error) {
	dashboard, err := s.Load(ctx, session)
	if err != nil {
		return nil, err
	}

	v := view.New(session.UserID, dashboard.Rows, s.pageSize, requestcontext.Now(ctx))
	if err := s.views.Save(ctx, v); err != nil {
		s.logger.ErrorContext(ctx, "failed to save dashboard view",
			"error", err,
			"view_id", v.ID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save dashboard view")
	}
	if s.metrics != nil {
		s.metrics.IncrementViewsOpened()
	}
	return &Opened{Dashboard: dashboard, View: v}, nil
}

// GetView returns a view owned by the session.
func (s *Service) GetView(ctx context.Context, session id.Session, viewID id.ViewID) (*view.View, error) {
	return s.loadView(ctx, session, viewID)
}

// Paginate applies paging and sort to a view and persists the result.
func (s *Service) Paginate(ctx context.Context, session id.Session, viewID id.ViewID, q PageQuery) (*view.View, error) {
	defer s.viewLocks.Lock(viewID.String())()

	v, err := s.loadView(ctx, session, viewID)
	if err != nil {
		return nil, err
	}
	if q.Sort != nil {
		v.SetSort(*q.Sort)
	}
	pageIndex := v.PageIndex
	if q.PageIndex != nil {
		pageIndex = *q.PageIndex
	}
	if err := v.SetPage(pageIndex, q.PageSize); err != nil {
		return nil, err
	}
	if err := s.saveView(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ApplyFilter narrows a view's displayed rows and returns to the first page.
func (s *Service) ApplyFilter(ctx context.Context, session id.Session, viewID id.ViewID, text string) (*view.View, error) {
	defer s.viewLocks.Lock(viewID.String())()

	v, err := s.loadView(ctx, session, viewID)
	if err != nil {
		return nil, err
	}
	v.ApplyFilter(text)
	if err := s.saveView(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// RemoveRow hides a tenant from this view. The tenant itself is untouched and
// the summary counts are not recomputed. Unknown tenants are a no-op.
func (s *Service) RemoveRow(ctx context.Context, session id.Session, viewID id.ViewID, tenantID id.TenantID) (*view.View, error) {
	defer s.viewLocks.Lock(viewID.String())()

	v, err := s.loadView(ctx, session, viewID)
	if err != nil {
		return nil, err
	}
	if !v.RemoveRow(tenantID) {
		return v, nil
	}
	s.logger.InfoContext(ctx, "tenant row removed from view",
		"view_id", v.ID,
		"tenant_id", tenantID,
		"request_id", requestcontext.RequestID(ctx),
	)
	if err := s.saveView(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// CloseView discards a view when the user navigates away.
func (s *Service) CloseView(ctx context.Context, session id.Session, viewID id.ViewID) error {
	defer s.viewLocks.Lock(viewID.String())()

	if _, err := s.loadView(ctx, session, viewID); err != nil {
		return err
	}
	if err := s.views.Delete(ctx, viewID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete dashboard view")
	}
	return nil
}

func (s *Service) loadView(ctx context.Context, session id.Session, viewID id.ViewID) (*view.View, error) {
	v, err := s.views.Find(ctx, viewID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "view not found")
		}
		s.logger.ErrorContext(ctx, "failed to load dashboard view",
			"error", err,
			"view_id", viewID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load dashboard view")
	}
	if v.OwnerID != session.UserID {
		s.logger.WarnContext(ctx, "view access denied",
			"view_id", viewID,
			"owner_id", v.OwnerID,
			"user_id", session.UserID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.New(dErrors.CodeForbidden, "view belongs to another user")
	}
	return v, nil
}

func (s *Service) saveView(ctx context.Context, v *view.View) error {
	if err := s.views.Save(ctx, v); err != nil {
		s.logger.ErrorContext(ctx, "failed to save dashboard view",
			"error", err,
			"view_id", v.ID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save dashboard view")
	}
	return nil
}
