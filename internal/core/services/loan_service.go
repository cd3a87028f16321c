package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"nobus-loanhub/internal/adapters/persistence/models"
	"nobus-loanhub/internal/adapters/persistence/repositories"
	"nobus-loanhub/internal/core/domain"

	"gorm.io/gorm"
)

// LoanService handles loan application business logic
type LoanService struct {
	db            *gorm.DB
	loanRepo      repositories.LoanRepository
	userRepo      repositories.UserRepository
	adminLogRepo  repositories.AdminLogRepository
	notifyService *NotificationService
}

// NewLoanService creates a new loan service
func NewLoanService(
	db *gorm.DB,
	loanRepo repositories.LoanRepository,
	userRepo repositories.UserRepository,
	adminLogRepo repositories.AdminLogRepository,
	notifyService *NotificationService,
) *LoanService {
	return &LoanService{
		db:            db,
		loanRepo:      loanRepo,
		userRepo:      userRepo,
		adminLogRepo:  adminLogRepo,
		notifyService: notifyService,
	}
}

// CreateLoanInput represents loan application input
type CreateLoanInput struct {
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	TenureMonths int     `json:"tenure_months" validate:"required,gt=0"`
	Purpose      string  `json:"purpose" validate:"required,min=5"`
}

// Create creates a new loan application in PENDING status
func (s *LoanService) Create(ctx context.Context, userID uint, input *CreateLoanInput) (*models.LoanApplication, error) {
	loan := &models.LoanApplication{
		UserID:       userID,
		Amount:       input.Amount,
		TenureMonths: input.TenureMonths,
		Purpose:      input.Purpose,
		Status:       domain.LoanStatusPending,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	log.Printf("✅ Loan application created: id=%d user=%d amount=%.2f", loan.ID, userID, loan.Amount)
	return loan, nil
}

// GetByID gets a loan application. Read access is restricted to the
// owner or staff; anyone else gets ErrLoanNotFound so the loan's
// existence is not leaked.
func (s *LoanService) GetByID(ctx context.Context, id uint, requester *models.User) (*models.LoanApplication, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	if loan.UserID != requester.ID && !requester.IsStaff {
		return nil, domain.ErrLoanNotFound
	}

	return loan, nil
}

// ListByUser lists loan applications owned by a user
func (s *LoanService) ListByUser(ctx context.Context, userID uint) ([]*models.LoanApplication, error) {
	return s.loanRepo.ListByUserID(ctx, userID)
}

// ListAll lists all loan applications with pagination (staff only surface)
func (s *LoanService) ListAll(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error) {
	return s.loanRepo.List(ctx, offset, limit)
}

// UpdateStatusInput represents an admin decision on a loan
type UpdateStatusInput struct {
	Status domain.LoanStatus `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Reason string            `json:"reason,omitempty"`
}

// UpdateStatus moves a PENDING loan to a terminal status and appends
// the matching audit log entry. Both writes share one database
// transaction: either the decision and its audit record commit
// together, or neither does.
//
// The status write is a conditional UPDATE guarded on the current
// PENDING status, so of two racing decisions at most one commits; the
// loser observes the now-terminal status and fails with
// ErrInvalidTransition.
func (s *LoanService) UpdateStatus(ctx context.Context, loanID uint, admin *models.User, input *UpdateStatusInput) (*models.LoanApplication, error) {
	if !input.Status.IsDecision() {
		return nil, domain.ErrInvalidStatus
	}

	var updated models.LoanApplication

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Look up the loan
		if err := tx.First(&updated, loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}

		// 2. Conditional status write - the race arbiter
		result := tx.Model(&models.LoanApplication{}).
			Where("id = ? AND status = ?", loanID, domain.LoanStatusPending).
			Update("status", input.Status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// A concurrent decision (or an earlier one) won; report the
			// status that beat us.
			if err := tx.First(&updated, loanID).Error; err == nil {
				return fmt.Errorf("%w: loan is already %s", domain.ErrInvalidTransition, updated.Status)
			}
			return domain.ErrInvalidTransition
		}
		updated.Status = input.Status

		// 3. Append the audit log entry in the same transaction
		entry := &models.AdminLog{
			AdminID:     admin.ID,
			Action:      input.Status.AuditAction(),
			TargetID:    updated.ID,
			TargetModel: "LoanApplication",
			Details:     encodeDecisionDetails(input.Reason),
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Loan %d %s by admin %d", updated.ID, updated.Status, admin.ID)

	// Fire-and-forget approval notification
	if s.notifyService != nil && updated.Status == domain.LoanStatusApproved {
		if owner, err := s.userRepo.GetByID(ctx, updated.UserID); err == nil {
			go s.notifyService.NotifyLoanApproved(owner, &updated)
		}
	}

	return &updated, nil
}

// ListAdminLogs lists audit log entries newest first (staff only surface)
func (s *LoanService) ListAdminLogs(ctx context.Context, offset, limit int) ([]*models.AdminLog, int64, error) {
	return s.adminLogRepo.List(ctx, offset, limit)
}

// encodeDecisionDetails serializes the optional decision reason:
// JSON when present, empty string otherwise
func encodeDecisionDetails(reason string) string {
	if reason == "" {
		return ""
	}
	details, err := json.Marshal(map[string]string{"reason": reason})
	if err != nil {
		return ""
	}
	return string(details)
}
