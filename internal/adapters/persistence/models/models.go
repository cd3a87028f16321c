package models

import (
	"time"

	"nobus-loanhub/internal/core/domain"

	"gorm.io/gorm"
)

// User represents users table.
// Password is bcrypt-hashed and never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	IsStaff   bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
}

// LoanApplication represents loan_applications table.
// Status moves PENDING -> APPROVED|REJECTED exactly once, never back.
type LoanApplication struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	UserID       uint              `gorm:"index;not null" json:"user_id"`
	Amount       float64           `gorm:"type:decimal(10,2);not null" json:"amount"`
	TenureMonths int               `gorm:"not null" json:"tenure_months"`
	Purpose      string            `gorm:"type:text;not null" json:"purpose"`
	Status       domain.LoanStatus `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (LoanApplication) TableName() string {
	return "loan_applications"
}

// LoanApplicationResponse DTO
type LoanApplicationResponse struct {
	ID           uint              `json:"id"`
	UserID       uint              `json:"user_id"`
	Amount       float64           `json:"amount"`
	TenureMonths int               `json:"tenure_months"`
	Purpose      string            `json:"purpose"`
	Status       domain.LoanStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

func (l *LoanApplication) ToResponse() *LoanApplicationResponse {
	return &LoanApplicationResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		Amount:       l.Amount,
		TenureMonths: l.TenureMonths,
		Purpose:      l.Purpose,
		Status:       l.Status,
		CreatedAt:    l.CreatedAt,
	}
}

// AdminLog represents admin_logs table.
// Append-only trust ledger: the application exposes no update or delete
// path for these rows.
type AdminLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AdminID     uint      `gorm:"index;not null" json:"admin_id"`
	Action      string    `gorm:"size:255;not null" json:"action"`
	TargetID    uint      `gorm:"not null;index" json:"target_id"`
	TargetModel string    `gorm:"size:255;not null" json:"target_model"`
	Details     string    `gorm:"type:text" json:"details"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Admin *User `gorm:"foreignKey:AdminID" json:"-"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&LoanApplication{},
		&AdminLog{},
	)
}
