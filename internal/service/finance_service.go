package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/config"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/finance"
	"github.com/hauptbau/fieldops-api/internal/mapper"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FinanceService assembles the budget breakdown of a project. The four
// cost datasets are independent, so they load in parallel; a failed fetch
// is logged and degraded to an empty list rather than failing the whole
// breakdown.
type FinanceService struct {
	projectRepo   *repository.ProjectRepository
	addendumRepo  *repository.AddendumRepository
	orderRepo     *repository.OrderRepository
	draftRepo     *repository.BillingDraftRepository
	timeEntryRepo *repository.TimeEntryRepository
	invoiceRepo   *repository.ExternalInvoiceRepository
	hourlyRate    float64
	logger        *zap.Logger
}

func NewFinanceService(
	projectRepo *repository.ProjectRepository,
	addendumRepo *repository.AddendumRepository,
	orderRepo *repository.OrderRepository,
	draftRepo *repository.BillingDraftRepository,
	timeEntryRepo *repository.TimeEntryRepository,
	invoiceRepo *repository.ExternalInvoiceRepository,
	financeCfg *config.FinanceConfig,
	logger *zap.Logger,
) *FinanceService {
	return &FinanceService{
		projectRepo:   projectRepo,
		addendumRepo:  addendumRepo,
		orderRepo:     orderRepo,
		draftRepo:     draftRepo,
		timeEntryRepo: timeEntryRepo,
		invoiceRepo:   invoiceRepo,
		hourlyRate:    financeCfg.FlatHourlyRate,
		logger:        logger,
	}
}

// Breakdown computes the five-bucket budget breakdown for a project.
func (s *FinanceService) Breakdown(ctx context.Context, projectID uuid.UUID) (*finance.Breakdown, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	inputs := s.loadInputs(ctx, projectID)
	inputs.NetAmount = project.NetAmount
	inputs.HourlyRate = s.hourlyRate

	breakdown := finance.Compute(inputs)
	return &breakdown, nil
}

// loadInputs fetches the four cost datasets concurrently. Each fetch that
// fails leaves its dataset empty; the breakdown then underreports that
// bucket instead of erroring out, which is what the field UI expects.
func (s *FinanceService) loadInputs(ctx context.Context, projectID uuid.UUID) finance.Inputs {
	var inputs finance.Inputs
	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(4)

	go func() {
		defer wg.Done()
		addenda, err := s.addendumRepo.ListByProject(ctx, projectID)
		if err != nil {
			s.logger.Warn("failed to load addenda for breakdown",
				zap.String("project_id", projectID.String()), zap.Error(err))
			return
		}
		converted := make([]finance.Addendum, 0, len(addenda))
		for _, a := range addenda {
			converted = append(converted, finance.Addendum{Status: a.Status, TotalValue: a.TotalValue})
		}
		mu.Lock()
		inputs.Addenda = converted
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		orders, err := s.orderRepo.ListByProject(ctx, projectID, nil)
		if err != nil {
			s.logger.Warn("failed to load orders for breakdown",
				zap.String("project_id", projectID.String()), zap.Error(err))
			return
		}
		converted := make([]finance.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status == domain.OrderStatusCancelled {
				continue
			}
			converted = append(converted, finance.Order{Status: string(o.Status), Products: o.Products})
		}
		mu.Lock()
		inputs.Orders = converted
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		drafts, err := s.draftRepo.ListByProject(ctx, projectID)
		if err != nil {
			s.logger.Warn("failed to load billing drafts for breakdown",
				zap.String("project_id", projectID.String()), zap.Error(err))
			return
		}
		converted := make([]finance.BillingDraft, 0, len(drafts))
		for _, d := range drafts {
			converted = append(converted, finance.BillingDraft{
				Status:               d.Status,
				FinalAmount:          d.FinalAmount,
				ApprovedFinalAmount:  d.ApprovedFinalAmount,
				ExtraDeductionAmount: d.ExtraDeductionAmount,
			})
		}
		mu.Lock()
		inputs.Drafts = converted
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		entries, err := s.timeEntryRepo.ListCompletedByProject(ctx, projectID)
		if err != nil {
			s.logger.Warn("failed to load time entries for breakdown",
				zap.String("project_id", projectID.String()), zap.Error(err))
			return
		}
		converted := make([]finance.TimeEntry, 0, len(entries))
		for _, e := range entries {
			entry := finance.TimeEntry{DurationMinutes: e.DurationMinutes}
			if e.Employee != nil {
				entry.HourlyRate = e.Employee.HourlyRate
			}
			converted = append(converted, entry)
		}
		mu.Lock()
		inputs.TimeEntries = converted
		mu.Unlock()
	}()

	wg.Wait()
	return inputs
}

// LaborDetail returns the labor cost detail with both formulas: the flat
// rate the breakdown uses and the per-employee rates.
func (s *FinanceService) LaborDetail(ctx context.Context, projectID uuid.UUID) (*domain.LaborDetailDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	entries, err := s.timeEntryRepo.ListCompletedByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}

	rate := s.hourlyRate
	if rate <= 0 {
		rate = finance.DefaultHourlyRate
	}

	var totalMinutes float64
	converted := make([]finance.TimeEntry, 0, len(entries))
	dtos := make([]domain.TimeEntryDTO, 0, len(entries))
	for i := range entries {
		totalMinutes += entries[i].DurationMinutes
		entry := finance.TimeEntry{DurationMinutes: entries[i].DurationMinutes}
		if entries[i].Employee != nil {
			entry.HourlyRate = entries[i].Employee.HourlyRate
		}
		converted = append(converted, entry)
		dtos = append(dtos, mapper.ToTimeEntryDTO(&entries[i]))
	}

	return &domain.LaborDetailDTO{
		Entries:         dtos,
		TotalMinutes:    totalMinutes,
		CostFlatRate:    finance.LaborCostFlatRate(converted, rate),
		CostPerEmployee: finance.LaborCostPerEmployee(converted),
		FlatHourlyRate:  rate,
	}, nil
}

// ListExternalInvoices returns the vendor invoices booked on a project.
// These are bookkeeping records; the breakdown's external bucket comes from
// billing draft deductions, not from this list.
func (s *FinanceService) ListExternalInvoices(ctx context.Context, projectID uuid.UUID) ([]domain.ExternalInvoiceDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	invoices, err := s.invoiceRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list external invoices: %w", err)
	}

	dtos := make([]domain.ExternalInvoiceDTO, 0, len(invoices))
	for i := range invoices {
		dtos = append(dtos, mapper.ToExternalInvoiceDTO(&invoices[i]))
	}
	return dtos, nil
}

func (s *FinanceService) CreateExternalInvoice(ctx context.Context, projectID uuid.UUID, req *domain.CreateExternalInvoiceRequest) (*domain.ExternalInvoiceDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	invoice := &domain.ExternalInvoice{
		ProjectID:     projectID,
		VendorName:    req.VendorName,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		InvoiceDate:   req.InvoiceDate,
		Status:        "open",
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create external invoice: %w", err)
	}

	s.logger.Info("external invoice booked",
		zap.String("project_id", projectID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.Float64("amount", invoice.Amount),
	)

	dto := mapper.ToExternalInvoiceDTO(invoice)
	return &dto, nil
}
