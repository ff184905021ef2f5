package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"leasedesk/internal/adapters/persistence/models"
	"leasedesk/internal/core/domain"

	"gorm.io/gorm"
)

func seedAgreement(t *testing.T, db *gorm.DB, token, agent, owner, date string, total, cost, owed, paid float64) *models.Agreement {
	t.Helper()
	agreement := &models.Agreement{
		TokenNumber:   token,
		OwnerName:     owner,
		Location:      "Mumbai",
		AgentName:     agent,
		TotalPayment:  total,
		ActualCost:    cost,
		PaymentOwner:  owed,
		PaymentTenant: paid,
	}
	if date != "" {
		d, err := time.Parse(DateLayout, date)
		if err != nil {
			t.Fatalf("parse date: %v", err)
		}
		agreement.AgreementDate = &d
	}
	agreement.Recompute()
	if err := db.Create(agreement).Error; err != nil {
		t.Fatalf("seed agreement %s: %v", token, err)
	}
	return agreement
}

func TestReportDateRangeInclusive(t *testing.T) {
	db := setupTestDB(t)
	s := NewReportService(db)

	seedAgreement(t, db, "R-1", "Ravi", "Anil", "2026-01-01", 1000, 400, 0, 0)
	seedAgreement(t, db, "R-2", "Ravi", "Anil", "2026-01-15", 1000, 400, 0, 0)
	seedAgreement(t, db, "R-3", "Ravi", "Anil", "2026-02-01", 1000, 400, 0, 0)

	filter, err := ParseReportFilter("2026-01-01", "2026-01-15", "", "", "")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	rows, err := s.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want both boundary dates included", len(rows))
	}
}

func TestReportDueSignFilters(t *testing.T) {
	db := setupTestDB(t)
	s := NewReportService(db)

	seedAgreement(t, db, "D-1", "Ravi", "Anil", "2026-01-01", 1000, 0, 300, 200) // due +500
	seedAgreement(t, db, "D-2", "Ravi", "Anil", "2026-01-02", 1000, 0, 600, 400) // due 0
	seedAgreement(t, db, "D-3", "Ravi", "Anil", "2026-01-03", 1000, 0, 800, 400) // due -200

	positive, err := s.List(context.Background(), &ReportFilter{DueSign: DuePositive})
	if err != nil {
		t.Fatalf("list positive: %v", err)
	}
	if len(positive) != 1 || positive[0].TokenNumber != "D-1" {
		t.Errorf("positive rows: %d", len(positive))
	}

	negative, err := s.List(context.Background(), &ReportFilter{DueSign: DueNegative})
	if err != nil {
		t.Fatalf("list negative: %v", err)
	}
	if len(negative) != 1 || negative[0].TokenNumber != "D-3" {
		t.Errorf("negative rows: %d", len(negative))
	}
}

func TestReportFilterValidation(t *testing.T) {
	if _, err := ParseReportFilter("01/01/2026", "", "", "", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad from err = %v", err)
	}
	if _, err := ParseReportFilter("", "", "", "", "sideways"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad due sign err = %v", err)
	}
}

func TestReportSummary(t *testing.T) {
	db := setupTestDB(t)
	s := NewReportService(db)

	seedAgreement(t, db, "S-1", "Ravi", "Anil", "2026-01-01", 1000, 400, 0, 0) // net 600, margin 60
	seedAgreement(t, db, "S-2", "Ravi", "Anil", "2026-01-02", 2000, 1200, 0, 0) // net 800, margin 40

	summary, err := s.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Count != 2 {
		t.Errorf("count = %d", summary.Count)
	}
	if summary.TotalRevenue != 3000 {
		t.Errorf("total revenue = %v", summary.TotalRevenue)
	}
	if summary.TotalNetProfit != 1400 {
		t.Errorf("total net profit = %v", summary.TotalNetProfit)
	}
	if summary.AverageMargin != 50 {
		t.Errorf("average margin = %v", summary.AverageMargin)
	}
}

func TestReportSummaryEmptySet(t *testing.T) {
	db := setupTestDB(t)
	s := NewReportService(db)

	summary, err := s.Summary(context.Background(), &ReportFilter{AgentName: "nobody"})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Count != 0 || summary.TotalRevenue != 0 || summary.AverageMargin != 0 {
		t.Errorf("empty summary = %+v", summary)
	}
}

func TestTopAgentsDeterministicTieBreak(t *testing.T) {
	db := setupTestDB(t)
	s := NewReportService(db)

	seedAgreement(t, db, "T-1", "Zara", "Anil", "2026-01-01", 1000, 500, 0, 0)   // Zara net 500
	seedAgreement(t, db, "T-2", "Asha", "Anil", "2026-01-02", 1000, 500, 0, 0)   // Asha net 500
	seedAgreement(t, db, "T-3", "Ravi", "Anil", "2026-01-03", 2000, 1000, 0, 0)  // Ravi net 1000
	seedAgreement(t, db, "T-4", "", "Anil", "2026-01-04", 5000, 0, 0, 0)         // unattributed

	rows, err := s.TopAgents(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("top agents: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, unattributed agreements must be excluded", len(rows))
	}
	if rows[0].AgentName != "Ravi" || rows[0].TotalNetProfit != 1000 {
		t.Errorf("rank 1 = %+v", rows[0])
	}
	// Equal profit ranks by name
	if rows[1].AgentName != "Asha" || rows[2].AgentName != "Zara" {
		t.Errorf("tie order = %s, %s", rows[1].AgentName, rows[2].AgentName)
	}
}

func TestTopAgentsHonorsFilter(t *testing.T) {
	db := setupTestDB(t)
	s := NewReportService(db)

	seedAgreement(t, db, "F-1", "Ravi", "Anil", "2026-01-01", 1000, 400, 0, 0)
	seedAgreement(t, db, "F-2", "Ravi", "Meera", "2026-01-02", 9000, 0, 0, 0)

	rows, err := s.TopAgents(context.Background(), &ReportFilter{OwnerName: "Anil"}, 5)
	if err != nil {
		t.Fatalf("top agents: %v", err)
	}
	if len(rows) != 1 || rows[0].TotalNetProfit != 600 {
		t.Fatalf("filtered rows = %+v", rows)
	}
}
