package repositories

import (
	"context"

	"nobus-loanhub/internal/adapters/persistence/models"
	"nobus-loanhub/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListStaff(ctx context.Context) ([]*models.User, error)
}

// LoanRepository defines loan application repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.LoanApplication) error
	GetByID(ctx context.Context, id uint) (*models.LoanApplication, error)
	ListByUserID(ctx context.Context, userID uint) ([]*models.LoanApplication, error)
	List(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error)
	CountByStatus(ctx context.Context, status domain.LoanStatus) (int64, error)
}

// AdminLogRepository defines audit log repository interface.
// Append-only on purpose: no update or delete methods exist.
type AdminLogRepository interface {
	Create(ctx context.Context, entry *models.AdminLog) error
	List(ctx context.Context, offset, limit int) ([]*models.AdminLog, int64, error)
}
