// Package data adapts the platform backend to the dashboard's DataService port.
package data

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"tenantdash/internal/dashboard/models"
	id "tenantdash/pkg/domain"
)

type failureKey struct {
	resource models.Resource
	tenantID id.TenantID
}

// InMemoryStore serves seeded data for development and tests.
// Failures can be injected per tenant and resource, or for the tenant scope.
type InMemoryStore struct {
	mu        sync.RWMutex
	tenants   []models.Tenant
	members   map[id.TenantID][]models.Member
	monitored map[id.TenantID][]models.MonitoredPerson
	iot       map[id.TenantID][]models.IoTDevice
	medical   map[id.TenantID][]models.MedicalDeviceRecord
	failures  map[failureKey]error
	scopeErr  error
}

// NewInMemory constructs an empty store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		members:   make(map[id.TenantID][]models.Member),
		monitored: make(map[id.TenantID][]models.MonitoredPerson),
		iot:       make(map[id.TenantID][]models.IoTDevice),
		medical:   make(map[id.TenantID][]models.MedicalDeviceRecord),
		failures:  make(map[failureKey]error),
	}
}

// AddTenant registers a tenant with its members.
func (s *InMemoryStore) AddTenant(tenant models.Tenant, members ...models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants = append(s.tenants, tenant)
	for _, m := range members {
		m.TenantID = tenant.ID
		s.members[tenant.ID] = append(s.members[tenant.ID], m)
	}
}

func (s *InMemoryStore) AddMonitoredPersons(tenantID id.TenantID, persons ...models.MonitoredPerson) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monitored[tenantID] = append(s.monitored[tenantID], persons...)
}

func (s *InMemoryStore) AddIoTDevices(tenantID id.TenantID, devices ...models.IoTDevice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iot[tenantID] = append(s.iot[tenantID], devices...)
}

func (s *InMemoryStore) AddMedicalRecords(tenantID id.TenantID, records ...models.MedicalDeviceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.medical[tenantID] = append(s.medical[tenantID], records...)
}

// FailOn makes every read of resource for tenantID return err. A nil err clears it.
func (s *InMemoryStore) FailOn(resource models.Resource, tenantID id.TenantID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := failureKey{resource: resource, tenantID: tenantID}
	if err == nil {
		delete(s.failures, key)
		return
	}
	s.failures[key] = err
}

// FailScope makes tenant scope lookups return err. A nil err clears it.
func (s *InMemoryStore) FailScope(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scopeErr = err
}

func (s *InMemoryStore) ListAllTenants(_ context.Context) ([]models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scopeErr != nil {
		return nil, fmt.Errorf("list tenants: %w", s.scopeErr)
	}
	return slices.Clone(s.tenants), nil
}

func (s *InMemoryStore) ListTenantsForUser(_ context.Context, userID id.UserID) ([]models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scopeErr != nil {
		return nil, fmt.Errorf("list tenants for user: %w", s.scopeErr)
	}
	var tenants []models.Tenant
	for _, t := range s.tenants {
		if s.isOwner(t.ID, userID) {
			tenants = append(tenants, t)
		}
	}
	return tenants, nil
}

func (s *InMemoryStore) ListTenantMembers(_ context.Context, tenantID id.TenantID) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure(models.ResourceMembers, tenantID); err != nil {
		return nil, err
	}
	return slices.Clone(s.members[tenantID]), nil
}

func (s *InMemoryStore) ListTenantMembersForCaller(_ context.Context, callerID id.UserID, tenantID id.TenantID) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure(models.ResourceMembers, tenantID); err != nil {
		return nil, err
	}
	if !s.isMember(tenantID, callerID) {
		return nil, nil
	}
	return slices.Clone(s.members[tenantID]), nil
}

func (s *InMemoryStore) ListMonitoredPersons(_ context.Context, tenantID id.TenantID) ([]models.MonitoredPerson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure(models.ResourceMonitored, tenantID); err != nil {
		return nil, err
	}
	return slices.Clone(s.monitored[tenantID]), nil
}

func (s *InMemoryStore) ListIoTDevices(_ context.Context, tenantID id.TenantID) ([]models.IoTDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure(models.ResourceIoTDevices, tenantID); err != nil {
		return nil, err
	}
	return slices.Clone(s.iot[tenantID]), nil
}

func (s *InMemoryStore) ListMedicalDevices(_ context.Context, tenantID id.TenantID) ([]models.MedicalDeviceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure(models.ResourceMedicalDevices, tenantID); err != nil {
		return nil, err
	}
	return slices.Clone(s.medical[tenantID]), nil
}

// isMember must be called with mu held.
func (s *InMemoryStore) isMember(tenantID id.TenantID, userID id.UserID) bool {
	return slices.ContainsFunc(s.members[tenantID], func(m models.Member) bool {
		return m.UserID == userID
	})
}

// isOwner must be called with mu held.
func (s *InMemoryStore) isOwner(tenantID id.TenantID, userID id.UserID) bool {
	return slices.ContainsFunc(s.members[tenantID], func(m models.Member) bool {
		return m.UserID == userID && m.TenantRole == models.TenantRoleOwner
	})
}

// failure must be called with mu held.
func (s *InMemoryStore) failure(resource models.Resource, tenantID id.TenantID) error {
	if err, ok := s.failures[failureKey{resource: resource, tenantID: tenantID}]; ok {
		return fmt.Errorf("list %s for tenant %s: %w", resource, tenantID, err)
	}
	return nil
}
