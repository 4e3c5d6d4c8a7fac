//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"tenantdash/internal/dashboard/models"
	"tenantdash/migrations"
	id "tenantdash/pkg/domain"
)

// dashboardTables lists every table in child-to-parent order.
var dashboardTables = []string{
	"medical_device_measurements",
	"iot_devices",
	"monitored_persons",
	"tenant_members",
	"tenants",
}

// PostgresContainer is a migrated Postgres instance for store integration tests.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts postgres:18-alpine and applies every embedded
// up migration. The test fails immediately if any step does.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:18-alpine",
		postgres.WithDatabase("tenantdash_test"),
		postgres.WithUsername("tenantdash"),
		postgres.WithPassword("tenantdash_test_password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	pc, err := connectAndMigrate(ctx, container)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("prepare postgres container: %v", err)
	}
	return pc
}

func connectAndMigrate(ctx context.Context, container *postgres.PostgresContainer) (*PostgresContainer, error) {
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("connection string: %w", err)
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresContainer{Container: container, DSN: dsn, DB: db}, nil
}

// applyMigrations runs *.up.sql files from migrationsFS in lexical order.
func applyMigrations(ctx context.Context, db *sql.DB, migrationsFS fs.FS) error {
	files, err := fs.Glob(migrationsFS, "*.up.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	slices.Sort(files)
	for _, file := range files {
		body, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return fmt.Errorf("read %s: %w", path.Base(file), err)
		}
		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("apply %s: %w", path.Base(file), err)
		}
	}
	return nil
}

// TruncateModuleTables empties every dashboard table so suites can share one
// container.
func (p *PostgresContainer) TruncateModuleTables(ctx context.Context) error {
	for _, table := range dashboardTables {
		if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

func (p *PostgresContainer) mustExec(ctx context.Context, t testing.TB, fixture, query string, args ...any) {
	t.Helper()
	if _, err := p.DB.ExecContext(ctx, query, args...); err != nil {
		t.Fatalf("insert %s fixture: %v", fixture, err)
	}
}

// CreateTestTenant inserts a tenant with slug and returns its ID.
func (p *PostgresContainer) CreateTestTenant(ctx context.Context, t testing.TB, slug string) id.TenantID {
	t.Helper()
	tenantID := id.TenantID(uuid.New())
	p.mustExec(ctx, t, "tenant",
		`INSERT INTO tenants (id, slug, created_at) VALUES ($1, $2, NOW())`,
		uuid.UUID(tenantID), slug)
	return tenantID
}

func (p *PostgresContainer) CreateTestMember(ctx context.Context, t testing.TB, m models.Member) {
	t.Helper()
	p.mustExec(ctx, t, "member",
		`INSERT INTO tenant_members (tenant_id, user_id, first_name, last_name, tenant_role)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.UUID(m.TenantID), uuid.UUID(m.UserID), m.FirstName, m.LastName, m.TenantRole)
}

func (p *PostgresContainer) CreateTestIoTDevice(ctx context.Context, t testing.TB, tenantID id.TenantID, name string) {
	t.Helper()
	p.mustExec(ctx, t, "iot device",
		`INSERT INTO iot_devices (id, tenant_id, name) VALUES ($1, $2, $3)`,
		uuid.New(), uuid.UUID(tenantID), name)
}

func (p *PostgresContainer) CreateTestMonitoredPerson(ctx context.Context, t testing.TB, tenantID id.TenantID) {
	t.Helper()
	p.mustExec(ctx, t, "monitored person",
		`INSERT INTO monitored_persons (id, tenant_id, first_name, last_name) VALUES ($1, $2, 'Ada', 'Lovelace')`,
		uuid.New(), uuid.UUID(tenantID))
}

func (p *PostgresContainer) CreateTestMeasurement(ctx context.Context, t testing.TB, tenantID id.TenantID, rec models.MedicalDeviceRecord) {
	t.Helper()
	p.mustExec(ctx, t, "measurement",
		`INSERT INTO medical_device_measurements
			(tenant_id, medical_device_id, device_type_name, last_measurement, measurement_date, first_name, last_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.UUID(tenantID), rec.MedicalDeviceID, rec.DeviceTypeName, rec.LastMeasurement,
		rec.MeasurementDate, rec.FirstName, rec.LastName)
}
