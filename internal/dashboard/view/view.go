// Package view holds the server-side table state of one dashboard activation:
// the tenant rows plus the filter, sort and pagination applied to them.
// Everything here is pure and synchronous; persistence lives in the view stores.
package view

import (
	"slices"
	"strings"
	"time"

	"tenantdash/internal/dashboard/models"
	id "tenantdash/pkg/domain"
	dErrors "tenantdash/pkg/domain-errors"
)

// DefaultPageSize matches the dashboard paginator's initial size.
const DefaultPageSize = 10

// MaxPageSize bounds client-requested page sizes.
const MaxPageSize = 500

// Column is a sortable table column.
type Column string

const (
	ColumnNone      Column = ""
	ColumnAccount   Column = "account"
	ColumnOwner     Column = "owner"
	ColumnUsers     Column = "users"
	ColumnDevices   Column = "devices"
	ColumnDeviceIoT Column = "deviceIoT"
	ColumnStatus    Column = "status"
)

// ParseColumn validates a sort column name from a query string.
func ParseColumn(s string) (Column, error) {
	switch c := Column(s); c {
	case ColumnNone, ColumnAccount, ColumnOwner, ColumnUsers, ColumnDevices, ColumnDeviceIoT, ColumnStatus:
		return c, nil
	}
	return ColumnNone, dErrors.New(dErrors.CodeInvalidInput, "unsupported sort column")
}

// Sort orders rows by one column.
type Sort struct {
	Column Column `json:"column,omitempty"`
	Desc   bool   `json:"desc,omitempty"`
}

// View is the table state kept between requests.
type View struct {
	ID        id.ViewID          `json:"id"`
	OwnerID   id.UserID          `json:"owner_id"`
	Rows      []models.TenantRow `json:"rows"`
	Filter    string             `json:"filter,omitempty"`
	Sort      Sort               `json:"sort"`
	PageIndex int                `json:"page_index"`
	PageSize  int                `json:"page_size"`
	CreatedAt time.Time          `json:"created_at"`
}

// New creates a view over rows owned by ownerID.
func New(ownerID id.UserID, rows []models.TenantRow, pageSize int, now time.Time) *View {
	return &View{
		ID:        id.NewViewID(),
		OwnerID:   ownerID,
		Rows:      slices.Clone(rows),
		PageSize:  clampPageSize(pageSize),
		CreatedAt: now,
	}
}

// Clone returns a copy that shares no row storage with v.
func (v *View) Clone() *View {
	c := *v
	c.Rows = slices.Clone(v.Rows)
	return &c
}

// ApplyFilter narrows the displayed rows to those whose serialized content
// contains text, case-insensitively, and resets to the first page.
func (v *View) ApplyFilter(text string) {
	v.Filter = strings.ToLower(strings.TrimSpace(text))
	v.PageIndex = 0
}

// RemoveRow drops the row for tenantID from this view only. Unknown IDs are a
// no-op. It reports whether a row was removed.
func (v *View) RemoveRow(tenantID id.TenantID) bool {
	before := len(v.Rows)
	v.Rows = slices.DeleteFunc(v.Rows, func(r models.TenantRow) bool {
		return r.ID == tenantID
	})
	removed := len(v.Rows) != before
	if removed {
		v.clampPageIndex()
	}
	return removed
}

// SetSort changes the sort order; the page index is kept, as the paginator does.
func (v *View) SetSort(s Sort) {
	v.Sort = s
}

// SetPage moves to pageIndex with pageSize rows per page. A zero size keeps
// the current size. Out of range indexes land on the last page.
func (v *View) SetPage(pageIndex, pageSize int) error {
	if pageIndex < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "page must not be negative")
	}
	if pageSize < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "page size must not be negative")
	}
	if pageSize > 0 {
		v.PageSize = clampPageSize(pageSize)
	}
	v.PageIndex = pageIndex
	v.clampPageIndex()
	return nil
}

// Filtered returns the rows matching the current filter, in sort order.
func (v *View) Filtered() []models.TenantRow {
	rows := make([]models.TenantRow, 0, len(v.Rows))
	for _, r := range v.Rows {
		if v.Filter == "" || strings.Contains(r.FilterText(), v.Filter) {
			rows = append(rows, r)
		}
	}
	if v.Sort.Column != ColumnNone {
		slices.SortStableFunc(rows, func(a, b models.TenantRow) int {
			c := compareBy(v.Sort.Column, a, b)
			if v.Sort.Desc {
				return -c
			}
			return c
		})
	}
	return rows
}

// Page is one page of the filtered, sorted rows.
type Page struct {
	Rows      []models.TenantRow `json:"rows"`
	PageIndex int                `json:"page_index"`
	PageSize  int                `json:"page_size"`
	Total     int                `json:"total"`
	Filter    string             `json:"filter,omitempty"`
	Sort      Sort               `json:"sort"`
}

// Page returns the current page.
func (v *View) Page() Page {
	rows := v.Filtered()
	start := min(v.PageIndex*v.PageSize, len(rows))
	end := min(start+v.PageSize, len(rows))
	return Page{
		Rows:      rows[start:end],
		PageIndex: v.PageIndex,
		PageSize:  v.PageSize,
		Total:     len(rows),
		Filter:    v.Filter,
		Sort:      v.Sort,
	}
}

func (v *View) clampPageIndex() {
	total := len(v.Filtered())
	lastPage := 0
	if total > 0 {
		lastPage = (total - 1) / v.PageSize
	}
	v.PageIndex = min(v.PageIndex, lastPage)
}

func clampPageSize(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	return min(n, MaxPageSize)
}

func compareBy(c Column, a, b models.TenantRow) int {
	switch c {
	case ColumnAccount:
		return strings.Compare(strings.ToLower(a.Account), strings.ToLower(b.Account))
	case ColumnOwner:
		return strings.Compare(strings.ToLower(a.Owner), strings.ToLower(b.Owner))
	case ColumnUsers:
		return a.Users - b.Users
	case ColumnDevices:
		return a.Devices - b.Devices
	case ColumnDeviceIoT:
		return strings.Compare(string(a.DeviceIoTStatus), string(b.DeviceIoTStatus))
	case ColumnStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	}
	return 0
}
