// Package database provides the read-only catalog stores for go-medhub
package database

import (
	"context"
	"errors"

	"github.com/go-while/go-medhub/internal/models"
)

// ErrNotFound is returned when a requested record doesn't exist
var ErrNotFound = errors.New("not found")

// Store is the read-only repository the web layer lists and fetches from.
// List methods return records in catalog order. Get methods return
// ErrNotFound (possibly wrapped) for unknown ids.
type Store interface {
	ListHospitals(ctx context.Context, filter models.HospitalFilter) ([]*models.Hospital, error)
	GetHospital(ctx context.Context, id int) (*models.Hospital, error)
	ListDepartments(ctx context.Context, filter models.DepartmentFilter) ([]*models.Department, error)
	GetDepartment(ctx context.Context, id int) (*models.Department, error)
	ListProjects(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)
	Name() string
	Close() error
}

// Driver names accepted by Open
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open returns the store for driver. path is only used by the sqlite driver.
func Open(driver, path string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryStore(NewCatalog()), nil
	case DriverSQLite:
		store, err := OpenSQLiteStore(path, NewCatalog())
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, errors.New("unknown store driver: " + driver)
	}
}
