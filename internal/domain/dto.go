package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/finance"
	"github.com/hauptbau/fieldops-api/internal/lv"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CreateProjectRequest creates a project, optionally with an imported LV.
type CreateProjectRequest struct {
	Name          string        `json:"name" validate:"required,max=200"`
	ProjectNumber string        `json:"projectNumber" validate:"omitempty,max=50"`
	ClientName    string        `json:"clientName" validate:"omitempty,max=200"`
	Address       string        `json:"address" validate:"omitempty,max=500"`
	City          string        `json:"city" validate:"omitempty,max=100"`
	NetAmount     float64       `json:"netAmount" validate:"gte=0"`
	StartDate     *time.Time    `json:"startDate"`
	EndDate       *time.Time    `json:"endDate"`
	Positions     []lv.Position `json:"positions"`
}

// CreateAssignmentRequest assigns trades or positions of a project to a
// subcontractor.
type CreateAssignmentRequest struct {
	SubcontractorID uuid.UUID          `json:"subcontractorId" validate:"required"`
	Status          string             `json:"status" validate:"omitempty,oneof=pending accepted rejected"`
	Trades          []lv.AssignedTrade `json:"trades" validate:"required,min=1,dive"`
}

// UpdateAssignmentStatusRequest moves an assignment through review.
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

// CreateSubcontractorRequest registers a partner company.
type CreateSubcontractorRequest struct {
	CompanyName   string `json:"companyName" validate:"required,max=200"`
	ContactPerson string `json:"contactPerson" validate:"omitempty,max=200"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
	TradeFocus    string `json:"tradeFocus" validate:"omitempty,max=100"`
}

// CreateOrderRequest places a material order from the field.
type CreateOrderRequest struct {
	SupplierName string                 `json:"supplierName" validate:"omitempty,max=200"`
	Products     []finance.OrderProduct `json:"products" validate:"required,min=1"`
	DeliveryDate *time.Time             `json:"deliveryDate"`
	Note         string                 `json:"note" validate:"omitempty,max=2000"`
}

// UpdateOrderStatusRequest advances or cancels an order.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=open ordered delivered cancelled"`
}

// CreateExternalInvoiceRequest books a third-party vendor invoice on a
// project.
type CreateExternalInvoiceRequest struct {
	VendorName    string     `json:"vendorName" validate:"required,max=200"`
	InvoiceNumber string     `json:"invoiceNumber" validate:"omitempty,max=100"`
	Amount        float64    `json:"amount" validate:"required,gte=0"`
	InvoiceDate   *time.Time `json:"invoiceDate"`
}

// ClockInRequest starts a time entry for an employee on a project.
type ClockInRequest struct {
	EmployeeID uuid.UUID `json:"employeeId" validate:"required"`
	Note       string    `json:"note" validate:"omitempty,max=500"`
}

// CreatePhotoDocumentRequest carries the metadata of an uploaded photo; the
// image bytes travel as the multipart file part.
type CreatePhotoDocumentRequest struct {
	Caption   string     `json:"caption" validate:"omitempty,max=500"`
	Latitude  *float64   `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64   `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	TakenAt   *time.Time `json:"takenAt"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// ProjectDTO is the list/summary view of a project.
type ProjectDTO struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	ProjectNumber string        `json:"projectNumber,omitempty"`
	ClientName    string        `json:"clientName,omitempty"`
	Address       string        `json:"address,omitempty"`
	City          string        `json:"city,omitempty"`
	Status        ProjectStatus `json:"status"`
	NetAmount     float64       `json:"netAmount"`
	TotalValue    float64       `json:"totalValue"`
	PositionCount int           `json:"positionCount"`
	StartDate     string        `json:"startDate,omitempty"`
	EndDate       string        `json:"endDate,omitempty"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

// ResolvedPositionDTO is one LV position with every derived field, numbered
// within its trade group for display.
type ResolvedPositionDTO struct {
	Number           int               `json:"number"`
	ID               string            `json:"id"`
	Description      string            `json:"description"`
	CleanDescription string            `json:"cleanDescription"`
	Locations        []string          `json:"locations,omitempty"`
	Quantity         float64           `json:"quantity"`
	Unit             string            `json:"unit,omitempty"`
	UnitPrice        float64           `json:"unitPrice"`
	TotalPrice       *float64          `json:"totalPrice,omitempty"`
	Status           string            `json:"status,omitempty"`
	NachtragID       *string           `json:"nachtragId,omitempty"`
	CompanyName      string            `json:"companyName"`
	IsSubcontractor  bool              `json:"isSubcontractor"`
	AssignmentType   lv.AssignmentType `json:"assignmentType"`
	Color            string            `json:"color,omitempty"`
}

// TradeGroupDTO is one trade with its positions and subtotal.
type TradeGroupDTO struct {
	Trade     string                `json:"trade"`
	Subtotal  float64               `json:"subtotal"`
	Positions []ResolvedPositionDTO `json:"positions"`
}

// ProjectDetailDTO is the full project view: header data plus the resolved,
// grouped bill of quantities.
type ProjectDetailDTO struct {
	Project     ProjectDTO      `json:"project"`
	TradeGroups []TradeGroupDTO `json:"tradeGroups"`
	Addenda     []AddendumDTO   `json:"addenda,omitempty"`
}

// AddendumDTO summarizes a Nachtrag.
type AddendumDTO struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	TotalValue    float64   `json:"totalValue"`
	PositionCount int       `json:"positionCount"`
	CreatedAt     string    `json:"createdAt"`
}

// SubcontractorDTO is the partner company view.
type SubcontractorDTO struct {
	ID            uuid.UUID `json:"id"`
	CompanyName   string    `json:"companyName"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	TradeFocus    string    `json:"tradeFocus,omitempty"`
}

// AssignmentDTO is one subcontractor-project assignment.
type AssignmentDTO struct {
	ID              uuid.UUID          `json:"id"`
	ProjectID       uuid.UUID          `json:"projectId"`
	SubcontractorID uuid.UUID          `json:"subcontractorId"`
	CompanyName     string             `json:"companyName,omitempty"`
	Status          string             `json:"status"`
	Trades          []lv.AssignedTrade `json:"trades"`
}

// OrderDTO is one material order with its computed net value.
type OrderDTO struct {
	ID           uuid.UUID              `json:"id"`
	ProjectID    uuid.UUID              `json:"projectId"`
	SupplierName string                 `json:"supplierName,omitempty"`
	Status       OrderStatus            `json:"status"`
	Products     []finance.OrderProduct `json:"products"`
	NetAmount    float64                `json:"netAmount"`
	DeliveryDate string                 `json:"deliveryDate,omitempty"`
	Note         string                 `json:"note,omitempty"`
	CreatedAt    string                 `json:"createdAt"`
}

// TimeEntryDTO is one labor span.
type TimeEntryDTO struct {
	ID              uuid.UUID `json:"id"`
	ProjectID       uuid.UUID `json:"projectId"`
	EmployeeID      uuid.UUID `json:"employeeId"`
	EmployeeName    string    `json:"employeeName,omitempty"`
	StartedAt       string    `json:"startedAt"`
	EndedAt         string    `json:"endedAt,omitempty"`
	DurationMinutes float64   `json:"durationMinutes"`
	Note            string    `json:"note,omitempty"`
}

// LaborDetailDTO is the labor cost detail view with both formulas side by
// side: the flat placeholder rate the breakdown uses and the per-employee
// rates.
type LaborDetailDTO struct {
	Entries         []TimeEntryDTO `json:"entries"`
	TotalMinutes    float64        `json:"totalMinutes"`
	CostFlatRate    float64        `json:"costFlatRate"`
	CostPerEmployee float64        `json:"costPerEmployee"`
	FlatHourlyRate  float64        `json:"flatHourlyRate"`
}

// ExternalInvoiceDTO is one booked vendor invoice.
type ExternalInvoiceDTO struct {
	ID            uuid.UUID `json:"id"`
	ProjectID     uuid.UUID `json:"projectId"`
	VendorName    string    `json:"vendorName"`
	InvoiceNumber string    `json:"invoiceNumber,omitempty"`
	Amount        float64   `json:"amount"`
	InvoiceDate   string    `json:"invoiceDate,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     string    `json:"createdAt"`
}

// PhotoDocumentDTO is one documentation photo record.
type PhotoDocumentDTO struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	StoragePath string    `json:"storagePath"`
	ContentType string    `json:"contentType,omitempty"`
	Caption     string    `json:"caption,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	TakenAt     string    `json:"takenAt,omitempty"`
	CreatedAt   string    `json:"createdAt"`
}

// UserDTO is the authenticated user view.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName,omitempty"`
	Role        UserRole   `json:"role"`
	EmployeeID  *uuid.UUID `json:"employeeId,omitempty"`
}

// LoginResponse carries the issued token and the user it belongs to.
type LoginResponse struct {
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expiresAt"`
	User      UserDTO `json:"user"`
}

// PaginatedResponse wraps list results with paging metadata.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}
