package services

import (
	"context"
	"sync"
	"testing"

	"nobus-loanhub/internal/adapters/persistence/models"
	"nobus-loanhub/internal/adapters/persistence/repositories"
	"nobus-loanhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLoanService(t *testing.T) (*LoanService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewLoanService(
		db,
		repositories.NewLoanRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewAdminLogRepository(db),
		nil, // no outbound mail in tests
	)
	return svc, db
}

func countAdminLogs(t *testing.T, db *gorm.DB, targetID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.AdminLog{}).Where("target_id = ?", targetID).Count(&count).Error)
	return count
}

func TestLoanService_Create(t *testing.T) {
	svc, db := newLoanService(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@x.com", false)

	loan, err := svc.Create(ctx, owner.ID, &CreateLoanInput{
		Amount:       2500.50,
		TenureMonths: 24,
		Purpose:      "Home renovation",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusPending, loan.Status)
	assert.Equal(t, owner.ID, loan.UserID)
	assert.NotZero(t, loan.ID)
}

func TestLoanService_GetByID_AccessControl(t *testing.T) {
	svc, db := newLoanService(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@x.com", false)
	other := createTestUser(t, db, "other@x.com", false)
	staff := createTestUser(t, db, "staff@x.com", true)
	loan := createTestLoan(t, db, owner)

	got, err := svc.GetByID(ctx, loan.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, loan.ID, got.ID)

	// A stranger gets the same error as for a missing loan
	_, err = svc.GetByID(ctx, loan.ID, other)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)

	_, err = svc.GetByID(ctx, loan.ID, staff)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, 9999, owner)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestLoanService_UpdateStatus_ApproveWritesAuditEntry(t *testing.T) {
	svc, db := newLoanService(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@x.com", false)
	admin := createTestUser(t, db, "admin@x.com", true)
	loan := createTestLoan(t, db, owner)

	updated, err := svc.UpdateStatus(ctx, loan.ID, admin, &UpdateStatusInput{
		Status: domain.LoanStatusApproved,
		Reason: "ok",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusApproved, updated.Status)

	var entry models.AdminLog
	require.NoError(t, db.Where("target_id = ?", loan.ID).First(&entry).Error)
	assert.Equal(t, "APPROVED_LOAN", entry.Action)
	assert.Equal(t, admin.ID, entry.AdminID)
	assert.Equal(t, "LoanApplication", entry.TargetModel)
	assert.Contains(t, entry.Details, "ok")
}

func TestLoanService_UpdateStatus_RejectLabel(t *testing.T) {
	svc, db := newLoanService(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@x.com", false)
	admin := createTestUser(t, db, "admin@x.com", true)
	loan := createTestLoan(t, db, owner)

	updated, err := svc.UpdateStatus(ctx, loan.ID, admin, &UpdateStatusInput{
		Status: domain.LoanStatusRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusRejected, updated.Status)

	var entry models.AdminLog
	require.NoError(t, db.Where("target_id = ?", loan.ID).First(&entry).Error)
	assert.Equal(t, "REJECTED_LOAN", entry.Action)
	assert.Empty(t, entry.Details, "no reason given, details stay empty")
}

func TestLoanService_UpdateStatus_TerminalLoanCannotBeRedecided(t *testing.T) {
	svc, db := newLoanService(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@x.com", false)
	admin := createTestUser(t, db, "admin@x.com", true)
	loan := createTestLoan(t, db, owner)

	_, err := svc.UpdateStatus(ctx, loan.ID, admin, &UpdateStatusInput{Status: domain.LoanStatusApproved})
	require.NoError(t, err)

	// Re-deciding fails and reports the terminal status
	_, err = svc.UpdateStatus(ctx, loan.ID, admin, &UpdateStatusInput{Status: domain.LoanStatusRejected})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "APPROVED")

	// No second audit entry was appended
	assert.EqualValues(t, 1, countAdminLogs(t, db, loan.ID))
}

func TestLoanService_UpdateStatus_NotFound(t *testing.T) {
	svc, db := newLoanService(t)
	admin := createTestUser(t, db, "admin@x.com", true)

	_, err := svc.UpdateStatus(context.Background(), 404, admin, &UpdateStatusInput{Status: domain.LoanStatusApproved})
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestLoanService_UpdateStatus_InvalidStatus(t *testing.T) {
	svc, db := newLoanService(t)
	admin := createTestUser(t, db, "admin@x.com", true)
	loan := createTestLoan(t, db, admin)

	_, err := svc.UpdateStatus(context.Background(), loan.ID, admin, &UpdateStatusInput{Status: domain.LoanStatusPending})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.EqualValues(t, 0, countAdminLogs(t, db, loan.ID))
}

func TestLoanService_UpdateStatus_ConcurrentDecisions(t *testing.T) {
	svc, db := newLoanService(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@x.com", false)
	admin := createTestUser(t, db, "admin@x.com", true)
	loan := createTestLoan(t, db, owner)

	decisions := []domain.LoanStatus{domain.LoanStatusApproved, domain.LoanStatusRejected}
	errs := make([]error, len(decisions))

	var wg sync.WaitGroup
	for i, status := range decisions {
		wg.Add(1)
		go func(i int, status domain.LoanStatus) {
			defer wg.Done()
			_, errs[i] = svc.UpdateStatus(ctx, loan.ID, admin, &UpdateStatusInput{Status: status})
		}(i, status)
	}
	wg.Wait()

	// Exactly one decision commits; the loser fails
	committed := 0
	for _, err := range errs {
		if err == nil {
			committed++
		}
	}
	assert.Equal(t, 1, committed, "exactly one of two racing decisions must commit")

	// Exactly one audit entry exists and the loan is terminal
	assert.EqualValues(t, 1, countAdminLogs(t, db, loan.ID))

	var final models.LoanApplication
	require.NoError(t, db.First(&final, loan.ID).Error)
	assert.True(t, final.Status.IsTerminal())
}
