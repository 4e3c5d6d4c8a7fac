package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"tenantdash/internal/dashboard/models"
	id "tenantdash/pkg/domain"
	"tenantdash/pkg/platform/sentinel"
)

// PostgresStore reads dashboard data from PostgreSQL. It never writes.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed data service.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListAllTenants(ctx context.Context) ([]models.Tenant, error) {
	query := `
		SELECT id, slug
		FROM tenants
		ORDER BY created_at, slug
	`
	return queryAll(ctx, s.db, "list tenants", scanTenant, query)
}

func (s *PostgresStore) ListTenantsForUser(ctx context.Context, userID id.UserID) ([]models.Tenant, error) {
	query := `
		SELECT t.id, t.slug
		FROM tenants t
		WHERE EXISTS (
			SELECT 1 FROM tenant_members m
			WHERE m.tenant_id = t.id AND m.user_id = $1 AND m.tenant_role = 'owner'
		)
		ORDER BY t.created_at, t.slug
	`
	return queryAll(ctx, s.db, "list tenants for user", scanTenant, query, uuid.UUID(userID))
}

func (s *PostgresStore) ListTenantMembers(ctx context.Context, tenantID id.TenantID) ([]models.Member, error) {
	query := `
		SELECT user_id, tenant_id, first_name, last_name, tenant_role
		FROM tenant_members
		WHERE tenant_id = $1
		ORDER BY last_name, first_name
	`
	return queryAll(ctx, s.db, "list tenant members", scanMember, query, uuid.UUID(tenantID))
}

// ListTenantMembersForCaller returns no rows unless callerID is itself a member.
func (s *PostgresStore) ListTenantMembersForCaller(ctx context.Context, callerID id.UserID, tenantID id.TenantID) ([]models.Member, error) {
	query := `
		SELECT m.user_id, m.tenant_id, m.first_name, m.last_name, m.tenant_role
		FROM tenant_members m
		WHERE m.tenant_id = $1
		  AND EXISTS (
			SELECT 1 FROM tenant_members c
			WHERE c.tenant_id = $1 AND c.user_id = $2
		  )
		ORDER BY m.last_name, m.first_name
	`
	return queryAll(ctx, s.db, "list tenant members for caller", scanMember, query,
		uuid.UUID(tenantID), uuid.UUID(callerID))
}

func (s *PostgresStore) ListMonitoredPersons(ctx context.Context, tenantID id.TenantID) ([]models.MonitoredPerson, error) {
	query := `
		SELECT id, tenant_id, first_name, last_name
		FROM monitored_persons
		WHERE tenant_id = $1
	`
	return queryAll(ctx, s.db, "list monitored persons", scanMonitoredPerson, query, uuid.UUID(tenantID))
}

func (s *PostgresStore) ListIoTDevices(ctx context.Context, tenantID id.TenantID) ([]models.IoTDevice, error) {
	query := `
		SELECT id, tenant_id, name
		FROM iot_devices
		WHERE tenant_id = $1
	`
	return queryAll(ctx, s.db, "list iot devices", scanIoTDevice, query, uuid.UUID(tenantID))
}

// ListMedicalDevices returns one record per measurement; devices repeat.
func (s *PostgresStore) ListMedicalDevices(ctx context.Context, tenantID id.TenantID) ([]models.MedicalDeviceRecord, error) {
	query := `
		SELECT medical_device_id, device_type_name, last_measurement, measurement_date, first_name, last_name
		FROM medical_device_measurements
		WHERE tenant_id = $1
		ORDER BY measurement_date
	`
	return queryAll(ctx, s.db, "list medical devices", scanMedicalRecord, query, uuid.UUID(tenantID))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func queryAll[T any](ctx context.Context, db *sql.DB, op string, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

// classify marks connection-level failures as unavailable.
func classify(op string, err error) error {
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanTenant(row rowScanner) (models.Tenant, error) {
	var (
		tenantID uuid.UUID
		t        models.Tenant
	)
	if err := row.Scan(&tenantID, &t.Slug); err != nil {
		return models.Tenant{}, err
	}
	t.ID = id.TenantID(tenantID)
	return t, nil
}

func scanMember(row rowScanner) (models.Member, error) {
	var (
		userID, tenantID uuid.UUID
		m                models.Member
	)
	if err := row.Scan(&userID, &tenantID, &m.FirstName, &m.LastName, &m.TenantRole); err != nil {
		return models.Member{}, err
	}
	m.UserID = id.UserID(userID)
	m.TenantID = id.TenantID(tenantID)
	return m, nil
}

func scanMonitoredPerson(row rowScanner) (models.MonitoredPerson, error) {
	var (
		tenantID uuid.UUID
		p        models.MonitoredPerson
	)
	if err := row.Scan(&p.ID, &tenantID, &p.FirstName, &p.LastName); err != nil {
		return models.MonitoredPerson{}, err
	}
	p.TenantID = id.TenantID(tenantID)
	return p, nil
}

func scanIoTDevice(row rowScanner) (models.IoTDevice, error) {
	var (
		tenantID uuid.UUID
		d        models.IoTDevice
	)
	if err := row.Scan(&d.ID, &tenantID, &d.Name); err != nil {
		return models.IoTDevice{}, err
	}
	d.TenantID = id.TenantID(tenantID)
	return d, nil
}

func scanMedicalRecord(row rowScanner) (models.MedicalDeviceRecord, error) {
	var (
		r               models.MedicalDeviceRecord
		lastMeasurement sql.NullString
	)
	if err := row.Scan(&r.MedicalDeviceID, &r.DeviceTypeName, &lastMeasurement, &r.MeasurementDate, &r.FirstName, &r.LastName); err != nil {
		return models.MedicalDeviceRecord{}, err
	}
	r.LastMeasurement = lastMeasurement.String
	return r, nil
}
