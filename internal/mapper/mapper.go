package mapper

import (
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/finance"
	"github.com/hauptbau/fieldops-api/internal/lv"
)

const timeFormat = "2006-01-02T15:04:05Z"

// ToProjectDTO converts Project to ProjectDTO. totalValue is the net amount
// plus accepted addenda, computed by the caller.
func ToProjectDTO(project *domain.Project, totalValue float64) domain.ProjectDTO {
	dto := domain.ProjectDTO{
		ID:            project.ID,
		Name:          project.Name,
		ProjectNumber: project.ProjectNumber,
		ClientName:    project.ClientName,
		Address:       project.Address,
		City:          project.City,
		Status:        project.Status,
		NetAmount:     project.NetAmount,
		TotalValue:    totalValue,
		PositionCount: len(project.Positions),
		CreatedAt:     project.CreatedAt.Format(timeFormat),
		UpdatedAt:     project.UpdatedAt.Format(timeFormat),
	}
	if project.StartDate != nil {
		dto.StartDate = project.StartDate.Format("2006-01-02")
	}
	if project.EndDate != nil {
		dto.EndDate = project.EndDate.Format("2006-01-02")
	}
	return dto
}

// ToResolvedPositionDTO converts an enriched position. number is the 1-based
// display number within its trade group; colors assigns the subcontractor
// tag color.
func ToResolvedPositionDTO(pos lv.ResolvedPosition, number int, colors *lv.ColorMap) domain.ResolvedPositionDTO {
	dto := domain.ResolvedPositionDTO{
		Number:           number,
		ID:               pos.ID,
		Description:      pos.Description,
		CleanDescription: pos.CleanDescription,
		Locations:        pos.Locations,
		Quantity:         pos.Quantity,
		Unit:             pos.Unit,
		UnitPrice:        pos.UnitPrice,
		TotalPrice:       pos.TotalPrice,
		Status:           pos.Status,
		NachtragID:       pos.NachtragID,
		CompanyName:      pos.Resolution.CompanyName,
		IsSubcontractor:  pos.Resolution.IsSubcontractor,
		AssignmentType:   pos.Resolution.AssignmentType,
	}
	if pos.Resolution.IsSubcontractor {
		dto.Color = colors.ColorFor(pos.Resolution.CompanyName)
	}
	return dto
}

// ToTradeGroups converts enriched positions into display-ready trade groups:
// first-seen trade order, per-group 1..N numbering and subtotals, stable
// subcontractor colors across the whole list.
func ToTradeGroups(positions []lv.ResolvedPosition) []domain.TradeGroupDTO {
	groups := lv.GroupByTrade(positions)
	order := lv.TradeOrder(positions)
	colors := lv.NewColorMap()

	result := make([]domain.TradeGroupDTO, 0, len(order))
	for _, trade := range order {
		group := groups[trade]
		dtos := make([]domain.ResolvedPositionDTO, 0, len(group))
		for i, pos := range group {
			dtos = append(dtos, ToResolvedPositionDTO(pos, i+1, colors))
		}
		result = append(result, domain.TradeGroupDTO{
			Trade:     trade,
			Subtotal:  lv.GroupSubtotal(group),
			Positions: dtos,
		})
	}
	return result
}

// ToAddendumDTO converts ProjectAddendum to AddendumDTO
func ToAddendumDTO(addendum *domain.ProjectAddendum) domain.AddendumDTO {
	return domain.AddendumDTO{
		ID:            addendum.ID,
		Title:         addendum.Title,
		Status:        addendum.Status,
		TotalValue:    addendum.TotalValue,
		PositionCount: len(addendum.Positions),
		CreatedAt:     addendum.CreatedAt.Format(timeFormat),
	}
}

// ToSubcontractorDTO converts Subcontractor to SubcontractorDTO
func ToSubcontractorDTO(subcontractor *domain.Subcontractor) domain.SubcontractorDTO {
	return domain.SubcontractorDTO{
		ID:            subcontractor.ID,
		CompanyName:   subcontractor.CompanyName,
		ContactPerson: subcontractor.ContactPerson,
		Email:         subcontractor.Email,
		Phone:         subcontractor.Phone,
		TradeFocus:    subcontractor.TradeFocus,
	}
}

// ToAssignmentDTO converts SubcontractorProjectAssignment to AssignmentDTO
func ToAssignmentDTO(assignment *domain.SubcontractorProjectAssignment) domain.AssignmentDTO {
	dto := domain.AssignmentDTO{
		ID:              assignment.ID,
		ProjectID:       assignment.ProjectID,
		SubcontractorID: assignment.SubcontractorID,
		Status:          assignment.Status,
		Trades:          assignment.Trades,
	}
	if assignment.Subcontractor != nil {
		dto.CompanyName = assignment.Subcontractor.CompanyName
	}
	return dto
}

// ToOrderDTO converts Order to OrderDTO
func ToOrderDTO(order *domain.Order) domain.OrderDTO {
	dto := domain.OrderDTO{
		ID:           order.ID,
		ProjectID:    order.ProjectID,
		SupplierName: order.SupplierName,
		Status:       order.Status,
		Products:     order.Products,
		NetAmount:    finance.OrderNet(order.Products),
		Note:         order.Note,
		CreatedAt:    order.CreatedAt.Format(timeFormat),
	}
	if order.DeliveryDate != nil {
		dto.DeliveryDate = order.DeliveryDate.Format("2006-01-02")
	}
	return dto
}

// ToTimeEntryDTO converts TimeEntry to TimeEntryDTO
func ToTimeEntryDTO(entry *domain.TimeEntry) domain.TimeEntryDTO {
	dto := domain.TimeEntryDTO{
		ID:              entry.ID,
		ProjectID:       entry.ProjectID,
		EmployeeID:      entry.EmployeeID,
		StartedAt:       entry.StartedAt.Format(timeFormat),
		DurationMinutes: entry.DurationMinutes,
		Note:            entry.Note,
	}
	if entry.EndedAt != nil {
		dto.EndedAt = entry.EndedAt.Format(timeFormat)
	}
	if entry.Employee != nil {
		dto.EmployeeName = entry.Employee.FirstName + " " + entry.Employee.LastName
	}
	return dto
}

// ToExternalInvoiceDTO converts ExternalInvoice to ExternalInvoiceDTO
func ToExternalInvoiceDTO(invoice *domain.ExternalInvoice) domain.ExternalInvoiceDTO {
	dto := domain.ExternalInvoiceDTO{
		ID:            invoice.ID,
		ProjectID:     invoice.ProjectID,
		VendorName:    invoice.VendorName,
		InvoiceNumber: invoice.InvoiceNumber,
		Amount:        invoice.Amount,
		Status:        invoice.Status,
		CreatedAt:     invoice.CreatedAt.Format(timeFormat),
	}
	if invoice.InvoiceDate != nil {
		dto.InvoiceDate = invoice.InvoiceDate.Format("2006-01-02")
	}
	return dto
}

// ToPhotoDocumentDTO converts PhotoDocument to PhotoDocumentDTO
func ToPhotoDocumentDTO(photo *domain.PhotoDocument) domain.PhotoDocumentDTO {
	dto := domain.PhotoDocumentDTO{
		ID:          photo.ID,
		ProjectID:   photo.ProjectID,
		StoragePath: photo.StoragePath,
		ContentType: photo.ContentType,
		Caption:     photo.Caption,
		Latitude:    photo.Latitude,
		Longitude:   photo.Longitude,
		CreatedAt:   photo.CreatedAt.Format(timeFormat),
	}
	if photo.TakenAt != nil {
		dto.TakenAt = photo.TakenAt.Format(timeFormat)
	}
	return dto
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		EmployeeID:  user.EmployeeID,
	}
}
