package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"leasedesk/internal/adapters/persistence/models"
	"leasedesk/internal/adapters/persistence/repositories"
	"leasedesk/internal/core/domain"

	"gorm.io/gorm"
)

// Agreement service errors
var (
	ErrAgreementNotFound = errors.New("agreement not found")
	ErrTokenNumberExists = errors.New("token number already exists")
)

// DateLayout is the wire format for agreement dates
const DateLayout = "2006-01-02"

// AgreementService handles agreement business logic
type AgreementService struct {
	agreementRepo repositories.AgreementRepository
	activityRepo  repositories.ActivityLogRepository
}

// NewAgreementService creates a new agreement service
func NewAgreementService(
	agreementRepo repositories.AgreementRepository,
	activityRepo repositories.ActivityLogRepository,
) *AgreementService {
	return &AgreementService{
		agreementRepo: agreementRepo,
		activityRepo:  activityRepo,
	}
}

// AgreementInput represents create/update input. The derived fields
// (gross/net profit, margin, payment due) have no place here: they are
// always recomputed server-side.
type AgreementInput struct {
	TokenNumber   string `json:"token_number"`
	OwnerName     string `json:"owner_name"`
	OwnerContact  string `json:"owner_contact"`
	TenantName    string `json:"tenant_name"`
	TenantContact string `json:"tenant_contact"`
	Location      string `json:"location"`
	Email         string `json:"email"`
	CCEmail       string `json:"cc_email"`
	AgentName     string `json:"agent_name"`
	Status        string `json:"status"`

	AgreementDate string `json:"agreement_date"`
	ExpiryDate    string `json:"expiry_date"`
	ReminderDate  string `json:"reminder_date"`
	BiometricDate string `json:"biometric_date"`

	TotalPayment    float64 `json:"total_payment"`
	PaymentOwner    float64 `json:"payment_owner"`
	PaymentTenant   float64 `json:"payment_tenant"`
	ActualCost      float64 `json:"actual_cost"`
	AgentCommission float64 `json:"agent_commission"`
	OtherExpenses   float64 `json:"other_expenses"`
}

// ListAgreementsOutput represents list output
type ListAgreementsOutput struct {
	Agreements []*models.Agreement `json:"agreements"`
	Total      int64               `json:"total"`
}

// Create creates a new agreement with derived fields computed before
// persisting
func (s *AgreementService) Create(ctx context.Context, input *AgreementInput, actor, sourceAddr string) (*models.Agreement, error) {
	agreement := &models.Agreement{}
	if err := s.apply(agreement, input); err != nil {
		return nil, err
	}

	if err := s.agreementRepo.Create(ctx, agreement); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTokenNumberExists
		}
		return nil, err
	}

	s.logActivity(ctx, actor, "Agreement created", fmt.Sprintf("Agreement %s created", agreement.TokenNumber), sourceAddr)
	log.Printf("✅ Agreement created: %s", agreement.TokenNumber)

	return agreement, nil
}

// GetByID gets an agreement by ID
func (s *AgreementService) GetByID(ctx context.Context, id uint) (*models.Agreement, error) {
	agreement, err := s.agreementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgreementNotFound
		}
		return nil, err
	}
	return agreement, nil
}

// Update rewrites an agreement from the submitted inputs. Derived
// fields are recomputed unconditionally; stale values cannot survive a
// successful update.
func (s *AgreementService) Update(ctx context.Context, id uint, input *AgreementInput, actor, sourceAddr string) (*models.Agreement, error) {
	agreement, err := s.agreementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgreementNotFound
		}
		return nil, err
	}

	// Re-validate token-number uniqueness excluding this record
	exists, err := s.agreementRepo.ExistsByTokenNumber(ctx, strings.TrimSpace(input.TokenNumber), id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTokenNumberExists
	}

	if err := s.apply(agreement, input); err != nil {
		return nil, err
	}

	if err := s.agreementRepo.Update(ctx, agreement); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTokenNumberExists
		}
		return nil, err
	}

	s.logActivity(ctx, actor, "Agreement updated", fmt.Sprintf("Agreement %s updated", agreement.TokenNumber), sourceAddr)

	return agreement, nil
}

// Delete removes an agreement permanently
func (s *AgreementService) Delete(ctx context.Context, id uint, actor, sourceAddr string) error {
	agreement, err := s.agreementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAgreementNotFound
		}
		return err
	}

	if err := s.agreementRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logActivity(ctx, actor, "Agreement deleted", fmt.Sprintf("Agreement %s deleted", agreement.TokenNumber), sourceAddr)
	return nil
}

// List lists agreements newest-first
func (s *AgreementService) List(ctx context.Context, offset, limit int) (*ListAgreementsOutput, error) {
	agreements, total, err := s.agreementRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ListAgreementsOutput{Agreements: agreements, Total: total}, nil
}

// apply validates the input, copies it onto the record and recomputes
// the derived fields
func (s *AgreementService) apply(agreement *models.Agreement, input *AgreementInput) error {
	input.TokenNumber = strings.TrimSpace(input.TokenNumber)
	input.OwnerName = strings.TrimSpace(input.OwnerName)
	input.Location = strings.TrimSpace(input.Location)

	if input.OwnerName == "" {
		return fmt.Errorf("%w: owner name is required", domain.ErrInvalidInput)
	}
	if input.Location == "" {
		return fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	if input.TokenNumber == "" {
		return fmt.Errorf("%w: token number is required", domain.ErrInvalidInput)
	}

	agreementDate, err := parseDate(input.AgreementDate, "agreement_date")
	if err != nil {
		return err
	}
	expiryDate, err := parseDate(input.ExpiryDate, "expiry_date")
	if err != nil {
		return err
	}
	reminderDate, err := parseDate(input.ReminderDate, "reminder_date")
	if err != nil {
		return err
	}
	biometricDate, err := parseDate(input.BiometricDate, "biometric_date")
	if err != nil {
		return err
	}

	agreement.TokenNumber = input.TokenNumber
	agreement.OwnerName = input.OwnerName
	agreement.OwnerContact = input.OwnerContact
	agreement.TenantName = input.TenantName
	agreement.TenantContact = input.TenantContact
	agreement.Location = input.Location
	agreement.Email = input.Email
	agreement.CCEmail = input.CCEmail
	agreement.AgentName = input.AgentName
	agreement.Status = input.Status
	if agreement.Status == "" {
		agreement.Status = domain.StatusDrafted
	}
	agreement.AgreementDate = agreementDate
	agreement.ExpiryDate = expiryDate
	agreement.ReminderDate = reminderDate
	agreement.BiometricDate = biometricDate
	agreement.TotalPayment = input.TotalPayment
	agreement.PaymentOwner = input.PaymentOwner
	agreement.PaymentTenant = input.PaymentTenant
	agreement.ActualCost = input.ActualCost
	agreement.AgentCommission = input.AgentCommission
	agreement.OtherExpenses = input.OtherExpenses

	agreement.Recompute()
	return nil
}

func parseDate(value, field string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be in %s format", domain.ErrInvalidInput, field, DateLayout)
	}
	return &t, nil
}

func (s *AgreementService) logActivity(ctx context.Context, username, action, details, sourceAddr string) {
	entry := &models.ActivityLog{
		Username:      username,
		Action:        action,
		Details:       details,
		SourceAddress: sourceAddr,
	}
	if err := s.activityRepo.Append(ctx, entry); err != nil {
		log.Printf("⚠️ Activity log write failed (%s): %v", action, err)
	}
}
