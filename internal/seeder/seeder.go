package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tenantdash/internal/dashboard/models"
	id "tenantdash/pkg/domain"
)

// DemoOwnerID owns the first demo tenant so tokengen can mint a matching
// non-privileged token.
var DemoOwnerID = id.UserID(uuid.MustParse("0d5f6a3e-4c1b-4a57-9a0e-3b1f8f2c7d11"))

// DataStore is the write side of the in-memory data service.
type DataStore interface {
	AddTenant(tenant models.Tenant, members ...models.Member)
	AddMonitoredPersons(tenantID id.TenantID, persons ...models.MonitoredPerson)
	AddIoTDevices(tenantID id.TenantID, devices ...models.IoTDevice)
	AddMedicalRecords(tenantID id.TenantID, records ...models.MedicalDeviceRecord)
}

// Seeder populates the in-memory data service with demo tenants.
type Seeder struct {
	store  DataStore
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new seeder.
func New(store DataStore, logger *slog.Logger) *Seeder {
	return &Seeder{store: store, logger: logger, now: time.Now}
}

type demoTenant struct {
	slug      string
	owner     [2]string
	staff     int
	monitored int
	gateways  int
	devices   []string
}

// SeedAll populates the store and returns the seeded tenant IDs in order.
func (s *Seeder) SeedAll(ctx context.Context) ([]id.TenantID, error) {
	s.logger.InfoContext(ctx, "seeding demo data...")

	demo := []demoTenant{
		{slug: "acme-care", owner: [2]string{"Ada", "Lovelace"}, staff: 3, monitored: 4, gateways: 2, devices: []string{"bp-100", "glu-200"}},
		{slug: "globex-health", owner: [2]string{"Grace", "Hopper"}, staff: 1, monitored: 2, gateways: 1, devices: []string{"spo2-300"}},
		{slug: "initech-homes", owner: [2]string{"Alan", "Turing"}, staff: 5, monitored: 9, gateways: 3, devices: []string{"bp-101", "bp-102", "glu-201"}},
		// No owner: shows up with an empty owner column and an issue.
		{slug: "umbrella-clinic", staff: 2, monitored: 1, gateways: 0, devices: []string{"bp-100"}},
	}

	ids := make([]id.TenantID, 0, len(demo))
	for i, d := range demo {
		tenantID := id.TenantID(uuid.New())
		members, err := s.members(tenantID, d, i == 0)
		if err != nil {
			return nil, fmt.Errorf("failed to seed members for %s: %w", d.slug, err)
		}
		s.store.AddTenant(models.Tenant{ID: tenantID, Slug: d.slug}, members...)
		s.store.AddMonitoredPersons(tenantID, s.monitored(tenantID, d.monitored)...)
		s.store.AddIoTDevices(tenantID, s.gateways(tenantID, d.gateways)...)
		s.store.AddMedicalRecords(tenantID, s.measurements(d.devices)...)
		ids = append(ids, tenantID)
	}

	s.logger.InfoContext(ctx, "demo data seeded successfully",
		"tenants", len(ids),
		"demo_owner_id", DemoOwnerID,
	)
	return ids, nil
}

func (s *Seeder) members(tenantID id.TenantID, d demoTenant, demoOwner bool) ([]models.Member, error) {
	if d.staff < 0 {
		return nil, errors.New("negative staff count")
	}
	members := make([]models.Member, 0, d.staff+1)
	if d.owner[0] != "" {
		ownerID := id.UserID(uuid.New())
		if demoOwner {
			ownerID = DemoOwnerID
		}
		members = append(members, models.Member{
			UserID:     ownerID,
			TenantID:   tenantID,
			FirstName:  d.owner[0],
			LastName:   d.owner[1],
			TenantRole: models.TenantRoleOwner,
		})
	}
	for i := range d.staff {
		members = append(members, models.Member{
			UserID:     id.UserID(uuid.New()),
			TenantID:   tenantID,
			FirstName:  "Carer",
			LastName:   fmt.Sprintf("%d", i+1),
			TenantRole: "member",
		})
	}
	return members, nil
}

func (s *Seeder) monitored(tenantID id.TenantID, n int) []models.MonitoredPerson {
	persons := make([]models.MonitoredPerson, n)
	for i := range persons {
		persons[i] = models.MonitoredPerson{
			ID:        uuid.NewString(),
			TenantID:  tenantID,
			FirstName: "Resident",
			LastName:  fmt.Sprintf("%d", i+1),
		}
	}
	return persons
}

func (s *Seeder) gateways(tenantID id.TenantID, n int) []models.IoTDevice {
	devices := make([]models.IoTDevice, n)
	for i := range devices {
		devices[i] = models.IoTDevice{
			ID:       uuid.NewString(),
			TenantID: tenantID,
			Name:     fmt.Sprintf("gateway-%d", i+1),
		}
	}
	return devices
}

// measurements emits three readings per device so the dashboard has
// duplicates to collapse.
func (s *Seeder) measurements(deviceIDs []string) []models.MedicalDeviceRecord {
	now := s.now().UTC()
	var records []models.MedicalDeviceRecord
	for _, deviceID := range deviceIDs {
		for hoursAgo := 3; hoursAgo >= 1; hoursAgo-- {
			records = append(records, models.MedicalDeviceRecord{
				MedicalDeviceID: deviceID,
				DeviceTypeName:  deviceType(deviceID),
				LastMeasurement: fmt.Sprintf("reading-%d", hoursAgo),
				MeasurementDate: now.Add(-time.Duration(hoursAgo) * time.Hour),
				FirstName:       "Resident",
				LastName:        "1",
			})
		}
	}
	return records
}

func deviceType(deviceID string) string {
	switch {
	case len(deviceID) >= 2 && deviceID[:2] == "bp":
		return "blood_pressure"
	case len(deviceID) >= 3 && deviceID[:3] == "glu":
		return "glucometer"
	default:
		return "pulse_oximeter"
	}
}
