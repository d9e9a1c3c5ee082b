package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an isolated in-memory SQLite database with the full
// schema migrated. Every test gets its own database, so there is no shared
// state to clean up between tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database keeps the schema visible across the
	// pooled connections gorm opens; the unique name isolates tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory test database")

	err = db.AutoMigrate(
		&domain.Project{},
		&domain.ProjectAddendum{},
		&domain.Subcontractor{},
		&domain.SubcontractorProjectAssignment{},
		&domain.Order{},
		&domain.BillingDraft{},
		&domain.ExternalInvoice{},
		&domain.Employee{},
		&domain.TimeEntry{},
		&domain.PhotoDocument{},
		&domain.User{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// CreateTestProject inserts a project with sensible defaults and returns it.
func CreateTestProject(t *testing.T, db *gorm.DB, opts ...func(*domain.Project)) *domain.Project {
	t.Helper()

	project := &domain.Project{
		Name:          "Wohnanlage Parkstrasse",
		ProjectNumber: "P-" + uuid.NewString()[:8],
		ClientName:    "Stadtwerke Musterstadt",
		City:          "Musterstadt",
		Status:        domain.ProjectStatusActive,
		NetAmount:     100000,
	}
	for _, opt := range opts {
		opt(project)
	}

	require.NoError(t, db.Create(project).Error)
	return project
}

// CreateTestSubcontractor inserts a subcontractor.
func CreateTestSubcontractor(t *testing.T, db *gorm.DB, companyName string) *domain.Subcontractor {
	t.Helper()

	sub := &domain.Subcontractor{
		CompanyName: companyName,
		TradeFocus:  "Elektro",
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

// CreateTestEmployee inserts an employee with an optional hourly rate.
func CreateTestEmployee(t *testing.T, db *gorm.DB, hourlyRate *float64) *domain.Employee {
	t.Helper()

	emp := &domain.Employee{
		FirstName:  "Max",
		LastName:   "Bauer",
		Role:       "Polier",
		HourlyRate: hourlyRate,
	}
	require.NoError(t, db.Create(emp).Error)
	return emp
}

// CreateTestUser inserts an application user with the given role and
// password hash.
func CreateTestUser(t *testing.T, db *gorm.DB, email, passwordHash string, role domain.UserRole) *domain.User {
	t.Helper()

	user := &domain.User{
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  "Test User",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateCompletedTimeEntry inserts a finished time entry with the given
// duration in minutes.
func CreateCompletedTimeEntry(t *testing.T, db *gorm.DB, projectID, employeeID uuid.UUID, minutes float64) *domain.TimeEntry {
	t.Helper()

	started := time.Now().Add(-time.Duration(minutes) * time.Minute)
	ended := time.Now()
	entry := &domain.TimeEntry{
		ProjectID:       projectID,
		EmployeeID:      employeeID,
		StartedAt:       started,
		EndedAt:         &ended,
		DurationMinutes: minutes,
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

// Float64Ptr returns a pointer to the given float.
func Float64Ptr(v float64) *float64 {
	return &v
}
