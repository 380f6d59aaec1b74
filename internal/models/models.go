// Package models defines core data structures for go-medhub
package models

// Hospital represents a participating hospital
type Hospital struct {
	ID              int    `json:"id" db:"id"`
	Name            string `json:"name" db:"name"`
	Description     string `json:"description" db:"description"`
	Level           string `json:"level" db:"level"`       // e.g. 三甲
	Location        string `json:"location" db:"location"` // province / city / district
	SubmitDate      string `json:"submitDate" db:"submit_date"`
	DepartmentCount int    `json:"departmentCount" db:"department_count"`
	ProjectCount    int    `json:"projectCount" db:"project_count"`
}

// Department represents a department belonging to one hospital
type Department struct {
	ID           int      `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Description  string   `json:"description" db:"description"`
	HospitalID   int      `json:"hospitalId" db:"hospital_id"`
	HospitalName string   `json:"hospitalName" db:"hospital_name"` // denormalized
	Director     string   `json:"director" db:"director"`
	MemberCount  int      `json:"memberCount" db:"member_count"`
	ProjectCount int      `json:"projectCount" db:"project_count"`
	SubmitDate   string   `json:"submitDate" db:"submit_date"`
	Tags         []string `json:"tags" db:"tags"`
}

// Project status values seen in the catalog. The set is open.
const (
	ProjectStatusRecruiting = "recruiting"
	ProjectStatusOngoing    = "ongoing"
)

// Project represents a research project run by a department
type Project struct {
	ID             int      `json:"id" db:"id"`
	Title          string   `json:"title" db:"title"`
	Description    string   `json:"description" db:"description"`
	Leader         string   `json:"leader" db:"leader"`
	DepartmentID   int      `json:"departmentId" db:"department_id"`
	DepartmentName string   `json:"departmentName" db:"department_name"`
	HospitalID     int      `json:"hospitalId" db:"hospital_id"`
	HospitalName   string   `json:"hospitalName" db:"hospital_name"`
	Status         string   `json:"status" db:"status"`
	MemberCount    int      `json:"memberCount" db:"member_count"`
	MaxMembers     int      `json:"maxMembers" db:"max_members"`
	StartDate      string   `json:"startDate" db:"start_date"`
	EndDate        string   `json:"endDate" db:"end_date"`
	Tags           []string `json:"tags" db:"tags"`
	CanJoin        bool     `json:"canJoin" db:"can_join"`
	IsJoined       bool     `json:"isJoined" db:"is_joined"`
}

// HospitalFilter selects hospitals for listing
type HospitalFilter struct {
	Search string // case-insensitive substring of Name
}

// DepartmentFilter selects departments for listing
type DepartmentFilter struct {
	HospitalID *int   // nil means all hospitals
	Search     string // case-insensitive substring of Name
}

// ProjectFilter selects projects for listing
type ProjectFilter struct {
	DepartmentID *int   // nil means all departments
	Status       string // exact status; empty means any
	Search       string // case-insensitive substring of Title or Leader
}

// ProjectStatusAll in a status query disables the status filter
const ProjectStatusAll = "all"

// Match reports whether h passes the filter
func (f HospitalFilter) Match(h *Hospital) bool {
	return f.Search == "" || ContainsFold(h.Name, f.Search)
}

// Match reports whether d passes the filter
func (f DepartmentFilter) Match(d *Department) bool {
	if f.HospitalID != nil && d.HospitalID != *f.HospitalID {
		return false
	}
	return f.Search == "" || ContainsFold(d.Name, f.Search)
}

// Match reports whether p passes the filter
func (f ProjectFilter) Match(p *Project) bool {
	if f.DepartmentID != nil && p.DepartmentID != *f.DepartmentID {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	return ContainsFold(p.Title, f.Search) || ContainsFold(p.Leader, f.Search)
}
