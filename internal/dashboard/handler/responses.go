package handler

import (
	"tenantdash/internal/dashboard/models"
	"tenantdash/internal/dashboard/view"
)

type DashboardResponse struct {
	ViewID  string         `json:"view_id"`
	Summary models.Summary `json:"summary"`
	Page    view.Page      `json:"page"`
	Issues  []models.Issue `json:"issues,omitempty"`
}

type ViewResponse struct {
	ViewID string    `json:"view_id"`
	Page   view.Page `json:"page"`
}

func toViewResponse(v *view.View) *ViewResponse {
	return &ViewResponse{ViewID: v.ID.String(), Page: v.Page()}
}
