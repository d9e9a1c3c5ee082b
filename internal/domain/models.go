package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. IDs are generated application-side so the
// models work against both postgres and the sqlite test databases.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns a UUID when none was provided.
func (m *BaseModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ProjectStatus represents the lifecycle state of a construction project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusPaused    ProjectStatus = "paused"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Project is a construction project with its bill of quantities embedded as
// semi-structured JSON, the way the estimating import delivers it.
type Project struct {
	BaseModel
	Name          string        `gorm:"type:varchar(200);not null;index"`
	ProjectNumber string        `gorm:"type:varchar(50);uniqueIndex;column:project_number"`
	ClientName    string        `gorm:"type:varchar(200);column:client_name"`
	Address       string        `gorm:"type:varchar(500)"`
	City          string        `gorm:"type:varchar(100)"`
	Status        ProjectStatus `gorm:"type:varchar(50);not null;default:'planning';index"`
	NetAmount     float64       `gorm:"type:decimal(15,2);not null;default:0;column:net_amount"`
	StartDate     *time.Time    `gorm:"type:date;column:start_date"`
	EndDate       *time.Time    `gorm:"type:date;column:end_date"`
	Positions     PositionList  `gorm:"type:jsonb"`

	Addenda     []ProjectAddendum                `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Assignments []SubcontractorProjectAssignment `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// ProjectAddendum is a Nachtrag: a change order carrying its own positions
// and value. Only accepted addenda contribute to project value.
type ProjectAddendum struct {
	BaseModel
	ProjectID  uuid.UUID    `gorm:"type:uuid;not null;index;column:project_id"`
	Title      string       `gorm:"type:varchar(200);not null"`
	Status     string       `gorm:"type:varchar(50);not null;default:'ausstehend';index"`
	TotalValue float64      `gorm:"type:decimal(15,2);not null;default:0;column:total_value"`
	Positions  PositionList `gorm:"type:jsonb"`
}

// Subcontractor is a partner company taking over trades or positions.
type Subcontractor struct {
	BaseModel
	CompanyName   string `gorm:"type:varchar(200);not null;index;column:company_name"`
	ContactPerson string `gorm:"type:varchar(200);column:contact_person"`
	Email         string `gorm:"type:varchar(255)"`
	Phone         string `gorm:"type:varchar(50)"`
	TradeFocus    string `gorm:"type:varchar(100);column:trade_focus"`
}

// SubcontractorProjectAssignment links a subcontractor to a project with the
// trades it holds, embedded as JSON (whole trades or explicit position
// lists).
type SubcontractorProjectAssignment struct {
	BaseModel
	ProjectID       uuid.UUID         `gorm:"type:uuid;not null;index;column:project_id"`
	SubcontractorID uuid.UUID         `gorm:"type:uuid;not null;index;column:subcontractor_id"`
	Subcontractor   *Subcontractor    `gorm:"foreignKey:SubcontractorID"`
	Status          string            `gorm:"type:varchar(50);not null;default:'pending';index"`
	Trades          AssignedTradeList `gorm:"type:jsonb"`
}

// OrderStatus represents the state of a material order
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusOrdered   OrderStatus = "ordered"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a point-of-sale material order placed from the field, with its
// product lines embedded as JSON.
type Order struct {
	BaseModel
	ProjectID    uuid.UUID        `gorm:"type:uuid;not null;index;column:project_id"`
	OrderedByID  uuid.UUID        `gorm:"type:uuid;column:ordered_by_id"`
	SupplierName string           `gorm:"type:varchar(200);column:supplier_name"`
	Status       OrderStatus      `gorm:"type:varchar(50);not null;default:'open';index"`
	Products     OrderProductList `gorm:"type:jsonb"`
	DeliveryDate *time.Time       `gorm:"type:date;column:delivery_date"`
	Note         string           `gorm:"type:text"`
}

// BillingDraft is a subcontractor billing statement moving through review.
type BillingDraft struct {
	BaseModel
	ProjectID            uuid.UUID  `gorm:"type:uuid;not null;index;column:project_id"`
	SubcontractorID      uuid.UUID  `gorm:"type:uuid;not null;index;column:subcontractor_id"`
	Status               string     `gorm:"type:varchar(50);not null;default:'draft';index"`
	FinalAmount          float64    `gorm:"type:decimal(15,2);not null;default:0;column:final_amount"`
	ApprovedFinalAmount  *float64   `gorm:"type:decimal(15,2);column:approved_final_amount"`
	ExtraDeductionAmount float64    `gorm:"type:decimal(15,2);not null;default:0;column:extra_deduction_amount"`
	PeriodStart          *time.Time `gorm:"type:date;column:period_start"`
	PeriodEnd            *time.Time `gorm:"type:date;column:period_end"`
}

// ExternalInvoice is a third-party vendor invoice booked on a project.
type ExternalInvoice struct {
	BaseModel
	ProjectID     uuid.UUID  `gorm:"type:uuid;not null;index;column:project_id"`
	VendorName    string     `gorm:"type:varchar(200);not null;column:vendor_name"`
	InvoiceNumber string     `gorm:"type:varchar(100);column:invoice_number"`
	Amount        float64    `gorm:"type:decimal(15,2);not null;default:0"`
	InvoiceDate   *time.Time `gorm:"type:date;column:invoice_date"`
	Status        string     `gorm:"type:varchar(50);not null;default:'open'"`
}

// Employee is a field worker who records time and photos.
type Employee struct {
	BaseModel
	FirstName  string   `gorm:"type:varchar(100);not null;column:first_name"`
	LastName   string   `gorm:"type:varchar(100);not null;column:last_name"`
	Role       string   `gorm:"type:varchar(100)"`
	HourlyRate *float64 `gorm:"type:decimal(10,2);column:hourly_rate"`
}

// TimeEntry is one recorded labor span. EndedAt is nil while the employee is
// still clocked in; DurationMinutes is fixed on clock-out.
type TimeEntry struct {
	BaseModel
	ProjectID       uuid.UUID  `gorm:"type:uuid;not null;index;column:project_id"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;index;column:employee_id"`
	Employee        *Employee  `gorm:"foreignKey:EmployeeID"`
	StartedAt       time.Time  `gorm:"not null;column:started_at"`
	EndedAt         *time.Time `gorm:"column:ended_at"`
	DurationMinutes float64    `gorm:"type:decimal(10,2);not null;default:0;column:duration_minutes"`
	Note            string     `gorm:"type:text"`
}

// PhotoDocument is a project documentation photo with its capture metadata.
// The image itself lives in blob storage under StoragePath.
type PhotoDocument struct {
	BaseModel
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index;column:project_id"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;column:employee_id"`
	StoragePath string     `gorm:"type:varchar(500);not null;column:storage_path"`
	ContentType string     `gorm:"type:varchar(100);column:content_type"`
	Caption     string     `gorm:"type:varchar(500)"`
	Latitude    *float64   `gorm:"type:decimal(10,7)"`
	Longitude   *float64   `gorm:"type:decimal(10,7)"`
	TakenAt     *time.Time `gorm:"column:taken_at"`
}

// UserRole represents the access level of an application user
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleSiteManager UserRole = "site_manager"
	RoleWorker      UserRole = "worker"
)

// User is an application login, typically tied to an employee record.
type User struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null;column:password_hash"`
	DisplayName  string     `gorm:"type:varchar(200);column:display_name"`
	Role         UserRole   `gorm:"type:varchar(50);not null;default:'worker'"`
	EmployeeID   *uuid.UUID `gorm:"type:uuid;column:employee_id"`
}
