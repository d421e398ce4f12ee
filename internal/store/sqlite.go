package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/RichLyon/JobAppTracker/internal/model"
)

// Timestamp layout for created_at/updated_at columns.
const timeLayout = "2006-01-02 15:04:05"

// Store persists job applications and the applicant profile in SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// New opens (or creates) a SQLite database at dbPath and ensures the
// schema exists.
func New(dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS job_applications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_name TEXT NOT NULL,
			position TEXT NOT NULL,
			date_applied TEXT NOT NULL,
			job_description TEXT,
			status TEXT NOT NULL,
			salary_info TEXT,
			contact_info TEXT,
			application_url TEXT,
			notes TEXT,
			resume_path TEXT,
			cover_letter_path TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_information (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			full_name TEXT NOT NULL,
			address TEXT,
			phone TEXT,
			email TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddApplication inserts a new application and returns its ID. The four
// required fields must be non-empty; created_at and updated_at are set
// here, never by the caller.
func (s *Store) AddApplication(app model.Application) (int64, error) {
	for _, f := range []struct{ name, value string }{
		{"company_name", app.CompanyName},
		{"position", app.Position},
		{"date_applied", app.DateApplied},
		{"status", app.Status},
	} {
		if strings.TrimSpace(f.value) == "" {
			return 0, &model.ValidationError{Field: f.name}
		}
	}

	now := time.Now().Format(timeLayout)
	res, err := s.db.Exec(`INSERT INTO job_applications (
		company_name, position, date_applied, job_description, status,
		salary_info, contact_info, application_url, notes,
		resume_path, cover_letter_path, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.CompanyName, app.Position, app.DateApplied, app.JobDescription, app.Status,
		app.SalaryInfo, app.ContactInfo, app.ApplicationURL, app.Notes,
		app.ResumePath, app.CoverLetterPath, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting job application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, nil
}

// UpdateApplication applies the provided fields to an existing record and
// refreshes updated_at. Nil fields are left untouched.
func (s *Store) UpdateApplication(id int64, upd model.ApplicationUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().Format(timeLayout)}

	add := func(column string, v *string) {
		if v != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *v)
		}
	}
	add("company_name", upd.CompanyName)
	add("position", upd.Position)
	add("date_applied", upd.DateApplied)
	add("status", upd.Status)
	add("job_description", upd.JobDescription)
	add("salary_info", upd.SalaryInfo)
	add("contact_info", upd.ContactInfo)
	add("application_url", upd.ApplicationURL)
	add("notes", upd.Notes)
	add("resume_path", upd.ResumePath)
	add("cover_letter_path", upd.CoverLetterPath)

	args = append(args, id)
	res, err := s.db.Exec("UPDATE job_applications SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("updating job application %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return &model.NotFoundError{Kind: "job application", ID: id}
	}
	return nil
}

const applicationColumns = `id, company_name, position, date_applied,
	IFNULL(job_description, ''), status, IFNULL(salary_info, ''),
	IFNULL(contact_info, ''), IFNULL(application_url, ''), IFNULL(notes, ''),
	IFNULL(resume_path, ''), IFNULL(cover_letter_path, ''), created_at, updated_at`

func scanApplication(row interface{ Scan(...any) error }) (model.Application, error) {
	var app model.Application
	err := row.Scan(
		&app.ID, &app.CompanyName, &app.Position, &app.DateApplied,
		&app.JobDescription, &app.Status, &app.SalaryInfo,
		&app.ContactInfo, &app.ApplicationURL, &app.Notes,
		&app.ResumePath, &app.CoverLetterPath, &app.CreatedAt, &app.UpdatedAt,
	)
	return app, err
}

// GetApplication returns the application with the given ID.
func (s *Store) GetApplication(id int64) (model.Application, error) {
	row := s.db.QueryRow("SELECT "+applicationColumns+" FROM job_applications WHERE id = ?", id)
	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return model.Application{}, &model.NotFoundError{Kind: "job application", ID: id}
	}
	if err != nil {
		return model.Application{}, fmt.Errorf("reading job application %d: %w", id, err)
	}
	return app, nil
}

// ListApplications returns applications ordered by date_applied descending,
// optionally filtered by status and a case-insensitive search over company
// name, position and job description, then sliced by offset/limit.
func (s *Store) ListApplications(f model.ApplicationFilter) ([]model.Application, error) {
	query := "SELECT " + applicationColumns + " FROM job_applications"
	var conds []string
	var args []any

	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds, `(LOWER(company_name) LIKE ?
			OR LOWER(position) LIKE ?
			OR LOWER(IFNULL(job_description, '')) LIKE ?)`)
		args = append(args, pattern, pattern, pattern)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date_applied DESC, id DESC"

	// SQLite needs a LIMIT clause to accept OFFSET; -1 means unlimited.
	limit := f.Limit
	if limit <= 0 {
		limit = -1
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, f.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing job applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing job applications: %w", err)
	}
	return apps, nil
}

// DeleteApplication removes the record, then makes a best-effort attempt to
// remove its resume and cover-letter files. File removal failures are
// logged, not returned; the record deletion is already committed.
func (s *Store) DeleteApplication(id int64) error {
	app, err := s.GetApplication(id)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec("DELETE FROM job_applications WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting job application %d: %w", id, err)
	}

	for _, path := range []string{app.ResumePath, app.CoverLetterPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove artifact file", "path", path, "error", err)
		}
	}
	return nil
}

// SaveProfile inserts the applicant profile or overwrites the existing one.
// There is never more than one profile row.
func (s *Store) SaveProfile(p model.Profile) error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM user_information").Scan(&count); err != nil {
		return fmt.Errorf("checking for existing profile: %w", err)
	}

	now := time.Now().Format(timeLayout)
	if count > 0 {
		_, err := s.db.Exec(`UPDATE user_information
			SET full_name = ?, address = ?, phone = ?, email = ?, updated_at = ?`,
			p.FullName, p.Address, p.Phone, p.Email, now)
		if err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}
		return nil
	}

	_, err := s.db.Exec(`INSERT INTO user_information (
		full_name, address, phone, email, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?)`,
		p.FullName, p.Address, p.Phone, p.Email, now, now)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

// GetProfile returns the stored profile, or an all-empty profile if none
// has been saved yet. It never reports not-found.
func (s *Store) GetProfile() (model.Profile, error) {
	var p model.Profile
	err := s.db.QueryRow(`SELECT full_name, IFNULL(address, ''), IFNULL(phone, ''),
		IFNULL(email, ''), created_at, updated_at FROM user_information LIMIT 1`).Scan(
		&p.FullName, &p.Address, &p.Phone, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Profile{}, nil
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("reading profile: %w", err)
	}
	return p, nil
}

// Statistics computes the read-side summary over all applications.
func (s *Store) Statistics() (model.Statistics, error) {
	apps, err := s.ListApplications(model.ApplicationFilter{})
	if err != nil {
		return model.Statistics{}, err
	}

	stats := model.Statistics{
		Total:        len(apps),
		StatusCounts: make(map[string]int),
		ByMonth:      make(map[string]int),
	}
	for _, app := range apps {
		stats.StatusCounts[app.Status]++
		if len(app.DateApplied) >= 7 {
			stats.ByMonth[app.DateApplied[:7]]++
		}
	}

	// apps is already ordered by date_applied descending.
	recent := 5
	if len(apps) < recent {
		recent = len(apps)
	}
	stats.Recent = apps[:recent]
	return stats, nil
}
