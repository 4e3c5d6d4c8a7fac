package testutil

import (
	"time"

	"github.com/google/uuid"

	"tenantdash/internal/dashboard/models"
	id "tenantdash/pkg/domain"
)

// TestIDs provides pre-generated IDs for deterministic test data.
var TestIDs = struct {
	UserID1   id.UserID
	UserID2   id.UserID
	TenantID1 id.TenantID
	TenantID2 id.TenantID
	TenantID3 id.TenantID
}{
	UserID1:   id.UserID(uuid.MustParse("11111111-1111-1111-1111-111111111111")),
	UserID2:   id.UserID(uuid.MustParse("22222222-2222-2222-2222-222222222222")),
	TenantID1: id.TenantID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000001")),
	TenantID2: id.TenantID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000002")),
	TenantID3: id.TenantID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000003")),
}

// AdminSession is a privileged session for UserID1.
func AdminSession() id.Session {
	return id.Session{UserID: TestIDs.UserID1, Role: id.RoleService}
}

// UserSession is a regular session for userID.
func UserSession(userID id.UserID) id.Session {
	return id.Session{UserID: userID, Role: "authenticated"}
}

// MemberBuilder provides a fluent interface for building tenant members.
type MemberBuilder struct {
	member models.Member
}

// NewMemberBuilder creates a plain member of tenantID with a fresh user ID.
func NewMemberBuilder(tenantID id.TenantID) *MemberBuilder {
	return &MemberBuilder{
		member: models.Member{
			UserID:     id.UserID(uuid.New()),
			TenantID:   tenantID,
			FirstName:  "Test",
			LastName:   "User",
			TenantRole: "member",
		},
	}
}

func (b *MemberBuilder) WithUserID(userID id.UserID) *MemberBuilder {
	b.member.UserID = userID
	return b
}

func (b *MemberBuilder) WithName(firstName, lastName string) *MemberBuilder {
	b.member.FirstName = firstName
	b.member.LastName = lastName
	return b
}

func (b *MemberBuilder) AsOwner() *MemberBuilder {
	b.member.TenantRole = models.TenantRoleOwner
	return b
}

func (b *MemberBuilder) Build() models.Member {
	return b.member
}

// Devices returns n IoT devices for tenantID.
func Devices(tenantID id.TenantID, n int) []models.IoTDevice {
	devices := make([]models.IoTDevice, n)
	for i := range devices {
		devices[i] = models.IoTDevice{ID: uuid.NewString(), TenantID: tenantID, Name: "gateway"}
	}
	return devices
}

// MonitoredPersons returns n monitored persons for tenantID.
func MonitoredPersons(tenantID id.TenantID, n int) []models.MonitoredPerson {
	persons := make([]models.MonitoredPerson, n)
	for i := range persons {
		persons[i] = models.MonitoredPerson{ID: uuid.NewString(), TenantID: tenantID, FirstName: "Ada", LastName: "Lovelace"}
	}
	return persons
}

// MedicalRecord is one measurement of deviceID taken at date.
func MedicalRecord(deviceID string, date time.Time) models.MedicalDeviceRecord {
	return models.MedicalDeviceRecord{
		MedicalDeviceID: deviceID,
		DeviceTypeName:  "blood_pressure",
		LastMeasurement: "120/80",
		MeasurementDate: date,
		FirstName:       "Ada",
		LastName:        "Lovelace",
	}
}
