package database

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-while/go-medhub/internal/models"
)

// LevelCount is one row of HospitalStats.ByLevel
type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// LocationCount is one row of HospitalStats.ByLocation
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// HospitalStats summarizes the hospital set. Groups keep first-seen order.
type HospitalStats struct {
	TotalCount int             `json:"total_count"`
	ByLevel    []LevelCount    `json:"by_level"`
	ByLocation []LocationCount `json:"by_location"`
}

// HospitalDepartmentCount is one row of DepartmentStats.ByHospital
type HospitalDepartmentCount struct {
	HospitalID      int    `json:"hospital_id"`
	HospitalName    string `json:"hospital_name"`
	DepartmentCount int    `json:"department_count"`
}

// DepartmentStats summarizes the department set, busiest hospital first
type DepartmentStats struct {
	TotalCount int                       `json:"total_count"`
	ByHospital []HospitalDepartmentCount `json:"by_hospital"`
}

// StatusCount is one row of ProjectStats.ByStatus
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ProjectStats summarizes the project set, most common status first
type ProjectStats struct {
	TotalCount int           `json:"total_count"`
	ByStatus   []StatusCount `json:"by_status"`
}

// GetHospitalStats counts hospitals by level and by location
func GetHospitalStats(ctx context.Context, store Store) (*HospitalStats, error) {
	hospitals, err := store.ListHospitals(ctx, models.HospitalFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}

	stats := &HospitalStats{
		TotalCount: len(hospitals),
		ByLevel:    []LevelCount{},
		ByLocation: []LocationCount{},
	}
	levelIdx := make(map[string]int)
	locationIdx := make(map[string]int)
	for _, h := range hospitals {
		if i, ok := levelIdx[h.Level]; ok {
			stats.ByLevel[i].Count++
		} else {
			levelIdx[h.Level] = len(stats.ByLevel)
			stats.ByLevel = append(stats.ByLevel, LevelCount{Level: h.Level, Count: 1})
		}
		if i, ok := locationIdx[h.Location]; ok {
			stats.ByLocation[i].Count++
		} else {
			locationIdx[h.Location] = len(stats.ByLocation)
			stats.ByLocation = append(stats.ByLocation, LocationCount{Location: h.Location, Count: 1})
		}
	}
	return stats, nil
}

// GetDepartmentStats counts departments per hospital
func GetDepartmentStats(ctx context.Context, store Store) (*DepartmentStats, error) {
	departments, err := store.ListDepartments(ctx, models.DepartmentFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	stats := &DepartmentStats{
		TotalCount: len(departments),
		ByHospital: []HospitalDepartmentCount{},
	}
	idx := make(map[int]int)
	for _, d := range departments {
		if i, ok := idx[d.HospitalID]; ok {
			stats.ByHospital[i].DepartmentCount++
			continue
		}
		idx[d.HospitalID] = len(stats.ByHospital)
		stats.ByHospital = append(stats.ByHospital, HospitalDepartmentCount{
			HospitalID:      d.HospitalID,
			HospitalName:    d.HospitalName,
			DepartmentCount: 1,
		})
	}
	sort.SliceStable(stats.ByHospital, func(i, j int) bool {
		a, b := stats.ByHospital[i], stats.ByHospital[j]
		if a.DepartmentCount != b.DepartmentCount {
			return a.DepartmentCount > b.DepartmentCount
		}
		return a.HospitalID < b.HospitalID
	})
	return stats, nil
}

// GetProjectStats counts projects per status
func GetProjectStats(ctx context.Context, store Store) (*ProjectStats, error) {
	projects, err := store.ListProjects(ctx, models.ProjectFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	stats := &ProjectStats{
		TotalCount: len(projects),
		ByStatus:   []StatusCount{},
	}
	idx := make(map[string]int)
	for _, p := range projects {
		if i, ok := idx[p.Status]; ok {
			stats.ByStatus[i].Count++
			continue
		}
		idx[p.Status] = len(stats.ByStatus)
		stats.ByStatus = append(stats.ByStatus, StatusCount{Status: p.Status, Count: 1})
	}
	sort.SliceStable(stats.ByStatus, func(i, j int) bool {
		a, b := stats.ByStatus[i], stats.ByStatus[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Status < b.Status
	})
	return stats, nil
}
