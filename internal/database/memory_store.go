package database

import (
	"context"
	"fmt"

	"github.com/go-while/go-medhub/internal/models"
)

// MemoryStore implements Store straight from memory.
// It never changes after construction, so no locking is needed.
type MemoryStore struct {
	catalog *Catalog
}

// NewMemoryStore wraps catalog. The caller must not modify catalog afterwards.
func NewMemoryStore(catalog *Catalog) *MemoryStore {
	return &MemoryStore{catalog: catalog}
}

// Name returns the driver name reported by /api/health
func (m *MemoryStore) Name() string { return DriverMemory }

// Close is a no-op; there is nothing to release
func (m *MemoryStore) Close() error { return nil }

// ListHospitals returns the hospitals accepted by filter, in catalog order
func (m *MemoryStore) ListHospitals(_ context.Context, filter models.HospitalFilter) ([]*models.Hospital, error) {
	out := make([]*models.Hospital, 0, len(m.catalog.Hospitals))
	for _, h := range m.catalog.Hospitals {
		if filter.Match(h) {
			out = append(out, cloneHospital(h))
		}
	}
	return out, nil
}

// GetHospital returns hospital id or ErrNotFound
func (m *MemoryStore) GetHospital(_ context.Context, id int) (*models.Hospital, error) {
	for _, h := range m.catalog.Hospitals {
		if h.ID == id {
			return cloneHospital(h), nil
		}
	}
	return nil, fmt.Errorf("hospital %d: %w", id, ErrNotFound)
}

// ListDepartments returns the departments accepted by filter, in catalog order
func (m *MemoryStore) ListDepartments(_ context.Context, filter models.DepartmentFilter) ([]*models.Department, error) {
	out := make([]*models.Department, 0, len(m.catalog.Departments))
	for _, d := range m.catalog.Departments {
		if filter.Match(d) {
			out = append(out, cloneDepartment(d))
		}
	}
	return out, nil
}

// GetDepartment returns department id or ErrNotFound
func (m *MemoryStore) GetDepartment(_ context.Context, id int) (*models.Department, error) {
	for _, d := range m.catalog.Departments {
		if d.ID == id {
			return cloneDepartment(d), nil
		}
	}
	return nil, fmt.Errorf("department %d: %w", id, ErrNotFound)
}

// ListProjects returns the projects accepted by filter, in catalog order
func (m *MemoryStore) ListProjects(_ context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	out := make([]*models.Project, 0, len(m.catalog.Projects))
	for _, p := range m.catalog.Projects {
		if filter.Match(p) {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

// GetProject returns project id or ErrNotFound
func (m *MemoryStore) GetProject(_ context.Context, id int) (*models.Project, error) {
	for _, p := range m.catalog.Projects {
		if p.ID == id {
			return cloneProject(p), nil
		}
	}
	return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
}

// clones keep callers from mutating the shared catalog

func cloneHospital(h *models.Hospital) *models.Hospital {
	c := *h
	return &c
}

func cloneDepartment(d *models.Department) *models.Department {
	c := *d
	c.Tags = make([]string, len(d.Tags))
	copy(c.Tags, d.Tags)
	return &c
}

func cloneProject(p *models.Project) *models.Project {
	c := *p
	c.Tags = make([]string, len(p.Tags))
	copy(c.Tags, p.Tags)
	return &c
}
