package models

import (
	"time"

	"gorm.io/gorm"

	"leasedesk/internal/pkg/finance"
)

// User represents the users table. Deletes are physical: there is no
// soft-delete column, a removed user is gone.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	Role        string     `gorm:"size:20;default:'USER'" json:"role"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO — never carries the stored credential
type UserResponse struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// Agreement represents the agreements table. The four derived fields
// (gross/net profit, margin, payment due) are recomputed from the
// monetary inputs on every write and never accepted from the client.
type Agreement struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TokenNumber string `gorm:"uniqueIndex;size:50;not null" json:"token_number"`

	OwnerName     string `gorm:"size:100;not null" json:"owner_name"`
	OwnerContact  string `gorm:"size:50" json:"owner_contact"`
	TenantName    string `gorm:"size:100" json:"tenant_name"`
	TenantContact string `gorm:"size:50" json:"tenant_contact"`
	Location      string `gorm:"size:200;not null" json:"location"`
	Email         string `gorm:"size:100" json:"email"`
	CCEmail       string `gorm:"size:100" json:"cc_email"`
	AgentName     string `gorm:"size:100" json:"agent_name"`
	Status        string `gorm:"size:50;default:'Drafted'" json:"status"`

	AgreementDate *time.Time `gorm:"type:date" json:"agreement_date"`
	ExpiryDate    *time.Time `gorm:"type:date" json:"expiry_date"`
	ReminderDate  *time.Time `gorm:"type:date" json:"reminder_date"`
	BiometricDate *time.Time `gorm:"type:date" json:"biometric_date"`

	TotalPayment    float64 `gorm:"type:decimal(15,2);default:0" json:"total_payment"`
	PaymentOwner    float64 `gorm:"type:decimal(15,2);default:0" json:"payment_owner"`
	PaymentTenant   float64 `gorm:"type:decimal(15,2);default:0" json:"payment_tenant"`
	ActualCost      float64 `gorm:"type:decimal(15,2);default:0" json:"actual_cost"`
	AgentCommission float64 `gorm:"type:decimal(15,2);default:0" json:"agent_commission"`
	OtherExpenses   float64 `gorm:"type:decimal(15,2);default:0" json:"other_expenses"`

	GrossProfit  float64 `gorm:"type:decimal(15,2);default:0" json:"gross_profit"`
	NetProfit    float64 `gorm:"type:decimal(15,2);default:0" json:"net_profit"`
	ProfitMargin float64 `gorm:"type:decimal(7,2);default:0" json:"profit_margin"`
	PaymentDue   float64 `gorm:"type:decimal(15,2);default:0" json:"payment_due"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Agreement) TableName() string {
	return "agreements"
}

// Recompute overwrites the derived fields from the current inputs.
func (a *Agreement) Recompute() {
	b := finance.Derive(a.TotalPayment, a.ActualCost, a.AgentCommission, a.OtherExpenses)
	a.GrossProfit = b.GrossProfit
	a.NetProfit = b.NetProfit
	a.ProfitMargin = b.ProfitMargin
	a.PaymentDue = finance.PaymentDue(a.TotalPayment, a.PaymentOwner, a.PaymentTenant)
}

// ActivityLog represents the append-only activity_logs table.
// Rows are never updated or deleted by the application.
type ActivityLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"size:50;index" json:"username"`
	Action        string    `gorm:"size:100;not null" json:"action"`
	Details       string    `gorm:"type:text" json:"details"`
	SourceAddress string    `gorm:"size:50" json:"source_address"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Settings is the singleton operational-defaults row. Exactly one row
// exists; it is created by the seeder and only ever updated in place.
type Settings struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	CompanyName         string    `gorm:"size:100" json:"company_name"`
	DefaultCCEmail      string    `gorm:"size:100" json:"default_cc_email"`
	ReminderLeadDays    int       `gorm:"default:7" json:"reminder_lead_days"`
	DateFormat          string    `gorm:"size:20;default:'2006-01-02'" json:"date_format"`
	CurrencySymbol      string    `gorm:"size:8;default:'₹'" json:"currency_symbol"`
	SessionTimeoutHours int       `gorm:"default:24" json:"session_timeout_hours"`
	PageSize            int       `gorm:"default:20" json:"page_size"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Agreement{},
		&ActivityLog{},
		&Settings{},
	)
}
