package services

import (
	"context"
	"fmt"

	"waterbill-backend/internal/models"
	"waterbill-backend/internal/repositories"
)

// ReportService aggregates the dashboard KPIs: overall bill, balance of all
// consumers, total income, cubic meters used, customer count, and the
// per-month chart series.
type ReportService struct {
	Records   *repositories.BillingRecordRepository
	Customers *repositories.CustomerRepository
}

func NewReportService(records *repositories.BillingRecordRepository, customers *repositories.CustomerRepository) *ReportService {
	return &ReportService{Records: records, Customers: customers}
}

// Summary computes the KPI totals, optionally filtered by month (1-12) and
// year; zero means unfiltered. The monthly series honors the year filter.
func (s *ReportService) Summary(ctx context.Context, month, year int) (*models.ReportSummary, error) {
	billed, outstanding, collected, cubic, err := s.Records.AggregateTotals(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate billing totals: %w", err)
	}

	count, err := s.Customers.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	series, err := s.Records.MonthlySeries(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly series: %w", err)
	}

	return &models.ReportSummary{
		TotalCustomers:   count,
		TotalBilled:      billed,
		TotalOutstanding: outstanding,
		TotalCollected:   collected,
		TotalCubicUsed:   cubic,
		Monthly:          series,
	}, nil
}
