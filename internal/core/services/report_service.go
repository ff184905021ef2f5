package services

import (
	"context"
	"fmt"
	"time"

	"leasedesk/internal/adapters/persistence/models"
	"leasedesk/internal/core/domain"

	"gorm.io/gorm"
)

// Payment-due sign filters
const (
	DuePositive = "positive"
	DueNegative = "negative"
)

// ReportFilter narrows report queries. Zero values mean "no filter";
// date bounds are inclusive on agreement_date.
type ReportFilter struct {
	From      *time.Time
	To        *time.Time
	AgentName string
	OwnerName string
	DueSign   string
}

// ReportSummary aggregates the filtered agreement set
type ReportSummary struct {
	Count          int64   `json:"count"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalNetProfit float64 `json:"total_net_profit"`
	AverageMargin  float64 `json:"average_margin"`
}

// AgentProfit is one row of the top-agent ranking
type AgentProfit struct {
	AgentName      string  `json:"agent_name"`
	Agreements     int64   `json:"agreements"`
	TotalNetProfit float64 `json:"total_net_profit"`
}

// ReportService runs read-only filtered and aggregated queries. It
// holds the database handle directly for the aggregate SQL.
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// ParseReportFilter builds a filter from raw query values
func ParseReportFilter(from, to, agentName, ownerName, dueSign string) (*ReportFilter, error) {
	filter := &ReportFilter{
		AgentName: agentName,
		OwnerName: ownerName,
	}

	if from != "" {
		t, err := time.Parse(DateLayout, from)
		if err != nil {
			return nil, fmt.Errorf("%w: from must be in %s format", domain.ErrInvalidInput, DateLayout)
		}
		filter.From = &t
	}
	if to != "" {
		t, err := time.Parse(DateLayout, to)
		if err != nil {
			return nil, fmt.Errorf("%w: to must be in %s format", domain.ErrInvalidInput, DateLayout)
		}
		filter.To = &t
	}

	switch dueSign {
	case "", DuePositive, DueNegative:
		filter.DueSign = dueSign
	default:
		return nil, fmt.Errorf("%w: due must be %q or %q", domain.ErrInvalidInput, DuePositive, DueNegative)
	}

	return filter, nil
}

// List returns the filtered agreements, newest-first
func (s *ReportService) List(ctx context.Context, filter *ReportFilter) ([]*models.Agreement, error) {
	var agreements []*models.Agreement
	err := s.scoped(ctx, filter).Order("created_at DESC, id DESC").Find(&agreements).Error
	if err != nil {
		return nil, err
	}
	return agreements, nil
}

// Summary aggregates revenue, net profit and margin over the filtered
// set
func (s *ReportService) Summary(ctx context.Context, filter *ReportFilter) (*ReportSummary, error) {
	var summary ReportSummary
	err := s.scoped(ctx, filter).
		Select("COUNT(*) AS count, " +
			"COALESCE(SUM(total_payment), 0) AS total_revenue, " +
			"COALESCE(SUM(net_profit), 0) AS total_net_profit, " +
			"COALESCE(AVG(profit_margin), 0) AS average_margin").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// TopAgents ranks agents by total net profit. Ties break on agent
// name so the ranking is deterministic.
func (s *ReportService) TopAgents(ctx context.Context, filter *ReportFilter, limit int) ([]*AgentProfit, error) {
	if limit < 1 {
		limit = 5
	}

	var rows []*AgentProfit
	err := s.scoped(ctx, filter).
		Select("agent_name, COUNT(*) AS agreements, COALESCE(SUM(net_profit), 0) AS total_net_profit").
		Where("agent_name <> ''").
		Group("agent_name").
		Order("total_net_profit DESC, agent_name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// scoped composes the filter into a parameter-bound query
func (s *ReportService) scoped(ctx context.Context, filter *ReportFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Agreement{})
	if filter == nil {
		return q
	}
	if filter.From != nil {
		q = q.Where("agreement_date >= ?", filter.From)
	}
	if filter.To != nil {
		q = q.Where("agreement_date <= ?", filter.To)
	}
	if filter.AgentName != "" {
		q = q.Where("agent_name = ?", filter.AgentName)
	}
	if filter.OwnerName != "" {
		q = q.Where("owner_name = ?", filter.OwnerName)
	}
	switch filter.DueSign {
	case DuePositive:
		q = q.Where("payment_due > 0")
	case DueNegative:
		q = q.Where("payment_due < 0")
	}
	return q
}
