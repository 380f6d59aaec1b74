package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-while/go-medhub/internal/models"
	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
)

// MemoryDSN keeps the sqlite store entirely in memory
const MemoryDSN = ":memory:"

// SQLiteStore implements Store over a sqlite database that is rebuilt
// from the catalog every time it is opened. Nothing writes to it afterwards.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var catalogSchema = []string{
	`DROP TABLE IF EXISTS projects`,
	`DROP TABLE IF EXISTS departments`,
	`DROP TABLE IF EXISTS hospitals`,
	`CREATE TABLE hospitals (
		id INTEGER PRIMARY KEY,
		pos INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		submit_date TEXT NOT NULL DEFAULT '',
		department_count INTEGER NOT NULL DEFAULT 0,
		project_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE departments (
		id INTEGER PRIMARY KEY,
		pos INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		hospital_id INTEGER NOT NULL,
		hospital_name TEXT NOT NULL DEFAULT '',
		director TEXT NOT NULL DEFAULT '',
		member_count INTEGER NOT NULL DEFAULT 0,
		project_count INTEGER NOT NULL DEFAULT 0,
		submit_date TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE INDEX idx_departments_hospital ON departments(hospital_id)`,
	`CREATE TABLE projects (
		id INTEGER PRIMARY KEY,
		pos INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		leader TEXT NOT NULL DEFAULT '',
		department_id INTEGER NOT NULL,
		department_name TEXT NOT NULL DEFAULT '',
		hospital_id INTEGER NOT NULL,
		hospital_name TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		member_count INTEGER NOT NULL DEFAULT 0,
		max_members INTEGER NOT NULL DEFAULT 0,
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		can_join INTEGER NOT NULL DEFAULT 0,
		is_joined INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX idx_projects_department ON projects(department_id)`,
}

// OpenSQLiteStore opens (or creates) the database at path and loads catalog into it.
// Use MemoryDSN for a throwaway in-memory database.
func OpenSQLiteStore(path string, catalog *Catalog) (*SQLiteStore, error) {
	if path == "" {
		path = MemoryDSN
	}
	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	// every connection to ":memory:" is a separate database
	if path == MemoryDSN {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
	}
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("failed to ping catalog database: %w; also failed to close: %v", err, cerr)
		}
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.applyPragmas(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.load(catalog); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) applyPragmas() error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 30000", // 30 seconds
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	if s.path != MemoryDSN {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute pragma '%s': %w", pragma, err)
		}
	}
	return nil
}

// load replaces the catalog tables in one transaction
func (s *SQLiteStore) load(catalog *Catalog) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin catalog load: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, stmt := range catalogSchema {
		if _, err = tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create catalog schema: %w", err)
		}
	}

	for pos, h := range catalog.Hospitals {
		_, err = tx.Exec(`INSERT INTO hospitals
			(id, pos, name, description, level, location, submit_date, department_count, project_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, pos, h.Name, h.Description, h.Level, h.Location, h.SubmitDate, h.DepartmentCount, h.ProjectCount)
		if err != nil {
			return fmt.Errorf("failed to insert hospital %d: %w", h.ID, err)
		}
	}
	for pos, d := range catalog.Departments {
		tags, jerr := json.Marshal(d.Tags)
		if jerr != nil {
			err = jerr
			return fmt.Errorf("failed to encode tags of department %d: %w", d.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO departments
			(id, pos, name, description, hospital_id, hospital_name, director, member_count, project_count, submit_date, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, pos, d.Name, d.Description, d.HospitalID, d.HospitalName, d.Director, d.MemberCount, d.ProjectCount, d.SubmitDate, string(tags))
		if err != nil {
			return fmt.Errorf("failed to insert department %d: %w", d.ID, err)
		}
	}
	for pos, p := range catalog.Projects {
		tags, jerr := json.Marshal(p.Tags)
		if jerr != nil {
			err = jerr
			return fmt.Errorf("failed to encode tags of project %d: %w", p.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO projects
			(id, pos, title, description, leader, department_id, department_name, hospital_id, hospital_name,
			 status, member_count, max_members, start_date, end_date, tags, can_join, is_joined)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, pos, p.Title, p.Description, p.Leader, p.DepartmentID, p.DepartmentName, p.HospitalID, p.HospitalName,
			p.Status, p.MemberCount, p.MaxMembers, p.StartDate, p.EndDate, string(tags), p.CanJoin, p.IsJoined)
		if err != nil {
			return fmt.Errorf("failed to insert project %d: %w", p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog load: %w", err)
	}
	return nil
}

// Name returns the driver name reported by /api/health
func (s *SQLiteStore) Name() string { return DriverSQLite }

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const hospitalColumns = `id, name, description, level, location, submit_date, department_count, project_count`

const departmentColumns = `id, name, description, hospital_id, hospital_name, director,
	member_count, project_count, submit_date, tags`

const projectColumns = `id, title, description, leader, department_id, department_name, hospital_id, hospital_name,
	status, member_count, max_members, start_date, end_date, tags, can_join, is_joined`

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHospital(row rowScanner) (*models.Hospital, error) {
	h := &models.Hospital{}
	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Level, &h.Location, &h.SubmitDate, &h.DepartmentCount, &h.ProjectCount)
	return h, err
}

func scanDepartment(row rowScanner) (*models.Department, error) {
	d := &models.Department{}
	var tags string
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.HospitalID, &d.HospitalName, &d.Director,
		&d.MemberCount, &d.ProjectCount, &d.SubmitDate, &tags)
	if err != nil {
		return nil, err
	}
	if err := decodeTags(tags, &d.Tags); err != nil {
		return nil, fmt.Errorf("department %d: %w", d.ID, err)
	}
	return d, nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	p := &models.Project{}
	var tags string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Leader, &p.DepartmentID, &p.DepartmentName, &p.HospitalID, &p.HospitalName,
		&p.Status, &p.MemberCount, &p.MaxMembers, &p.StartDate, &p.EndDate, &tags, &p.CanJoin, &p.IsJoined)
	if err != nil {
		return nil, err
	}
	if err := decodeTags(tags, &p.Tags); err != nil {
		return nil, fmt.Errorf("project %d: %w", p.ID, err)
	}
	return p, nil
}

func decodeTags(raw string, out *[]string) error {
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode tags: %w", err)
	}
	if *out == nil {
		*out = []string{}
	}
	return nil
}

// getOne maps sql.ErrNoRows to ErrNotFound
func getOne[T any](row *sql.Row, scan func(rowScanner) (T, error), kind string, id int) (T, error) {
	v, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to load %s %d: %w", kind, id, err)
	}
	return v, nil
}

// listAll runs query and keeps rows accepted by match. Search matching happens
// here rather than in SQL because LIKE only folds ASCII.
func listAll[T any](ctx context.Context, db *sql.DB, scan func(rowScanner) (T, error), match func(T) bool, query string, args ...interface{}) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		if match(v) {
			out = append(out, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog rows: %w", err)
	}
	return out, nil
}

// ListHospitals returns the hospitals accepted by filter, in catalog order
func (s *SQLiteStore) ListHospitals(ctx context.Context, filter models.HospitalFilter) ([]*models.Hospital, error) {
	return listAll(ctx, s.db, scanHospital, filter.Match,
		`SELECT `+hospitalColumns+` FROM hospitals ORDER BY pos`)
}

// GetHospital returns hospital id or ErrNotFound
func (s *SQLiteStore) GetHospital(ctx context.Context, id int) (*models.Hospital, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+hospitalColumns+` FROM hospitals WHERE id = ?`, id)
	return getOne(row, scanHospital, "hospital", id)
}

// ListDepartments returns the departments accepted by filter, in catalog order
func (s *SQLiteStore) ListDepartments(ctx context.Context, filter models.DepartmentFilter) ([]*models.Department, error) {
	if filter.HospitalID != nil {
		return listAll(ctx, s.db, scanDepartment, filter.Match,
			`SELECT `+departmentColumns+` FROM departments WHERE hospital_id = ? ORDER BY pos`, *filter.HospitalID)
	}
	return listAll(ctx, s.db, scanDepartment, filter.Match,
		`SELECT `+departmentColumns+` FROM departments ORDER BY pos`)
}

// GetDepartment returns department id or ErrNotFound
func (s *SQLiteStore) GetDepartment(ctx context.Context, id int) (*models.Department, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+departmentColumns+` FROM departments WHERE id = ?`, id)
	return getOne(row, scanDepartment, "department", id)
}

// ListProjects returns the projects accepted by filter, in catalog order
func (s *SQLiteStore) ListProjects(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	if filter.DepartmentID != nil {
		return listAll(ctx, s.db, scanProject, filter.Match,
			`SELECT `+projectColumns+` FROM projects WHERE department_id = ? ORDER BY pos`, *filter.DepartmentID)
	}
	return listAll(ctx, s.db, scanProject, filter.Match,
		`SELECT `+projectColumns+` FROM projects ORDER BY pos`)
}

// GetProject returns project id or ErrNotFound
func (s *SQLiteStore) GetProject(ctx context.Context, id int) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return getOne(row, scanProject, "project", id)
}
