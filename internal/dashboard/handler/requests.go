package handler

import (
	"net/http"
	"strconv"

	"tenantdash/internal/dashboard/service"
	"tenantdash/internal/dashboard/view"
	dErrors "tenantdash/pkg/domain-errors"
	"tenantdash/pkg/platform/validation"
	s "tenantdash/pkg/string"
	structvalidation "tenantdash/pkg/validation"
)

type FilterRequest struct {
	Filter string `json:"filter" validate:"max=256"`
}

func (r *FilterRequest) Normalize() {
	if r == nil {
		return
	}
	s.TrimStrings(&r.Filter)
}

func (r *FilterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return structvalidation.Validate(r)
}

// pageParams bounds the numeric paging parameters.
type pageParams struct {
	Page     int `validate:"gte=0"`
	PageSize int `validate:"gte=0,lte=500"`
}

// parsePageQuery reads page, page_size, sort and desc. It reports false when
// none of them is present, meaning the view is returned as stored.
func parsePageQuery(r *http.Request) (service.PageQuery, bool, error) {
	q := r.URL.Query()
	var (
		query   service.PageQuery
		present bool
	)
	for _, key := range []string{"page", "page_size", "sort", "desc"} {
		value := q.Get(key)
		if value == "" {
			continue
		}
		present = true
		if err := validation.CheckStringLength(key, value, validation.MaxQueryParamLength); err != nil {
			return service.PageQuery{}, false, err
		}
	}
	if !present {
		return service.PageQuery{}, false, nil
	}

	var (
		params pageParams
		err    error
	)
	if params.Page, err = parseInt(q.Get("page"), "page"); err != nil {
		return service.PageQuery{}, false, err
	}
	if params.PageSize, err = parseInt(q.Get("page_size"), "page_size"); err != nil {
		return service.PageQuery{}, false, err
	}
	if err := structvalidation.Validate(params); err != nil {
		return service.PageQuery{}, false, err
	}
	if q.Get("page") != "" {
		query.PageIndex = &params.Page
	}
	query.PageSize = params.PageSize
	if q.Has("sort") || q.Has("desc") {
		column, err := view.ParseColumn(q.Get("sort"))
		if err != nil {
			return service.PageQuery{}, false, err
		}
		desc := false
		if raw := q.Get("desc"); raw != "" {
			if desc, err = strconv.ParseBool(raw); err != nil {
				return service.PageQuery{}, false, dErrors.New(dErrors.CodeInvalidInput, "desc must be a boolean")
			}
		}
		query.Sort = &view.Sort{Column: column, Desc: desc}
	}
	return query, true, nil
}

func parseInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, name+" must be an integer")
	}
	return n, nil
}
