package services

import (
	"context"
	"log"

	"nobus-loanhub/internal/adapters/persistence/repositories"
	"nobus-loanhub/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// reminderSchedule fires every morning at 08:30
const reminderSchedule = "30 8 * * *"

// ReminderService runs the daily pending-loans reminder cron
type ReminderService struct {
	cron          *cron.Cron
	loanRepo      repositories.LoanRepository
	userRepo      repositories.UserRepository
	notifyService *NotificationService
}

// NewReminderService creates a new reminder service
func NewReminderService(
	loanRepo repositories.LoanRepository,
	userRepo repositories.UserRepository,
	notifyService *NotificationService,
) *ReminderService {
	return &ReminderService{
		cron:          cron.New(),
		loanRepo:      loanRepo,
		userRepo:      userRepo,
		notifyService: notifyService,
	}
}

// Start schedules the reminder job and starts the cron runner
func (s *ReminderService) Start() error {
	if _, err := s.cron.AddFunc(reminderSchedule, s.remindPendingLoans); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("🚀 ReminderService started (daily 08:30)")
	return nil
}

// Stop gracefully stops the cron runner
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("🛑 ReminderService stopped")
}

// remindPendingLoans mails staff when loans are still awaiting a decision
func (s *ReminderService) remindPendingLoans() {
	ctx := context.Background()

	pending, err := s.loanRepo.CountByStatus(ctx, domain.LoanStatusPending)
	if err != nil {
		log.Printf("⚠️ Pending loan count failed: %v", err)
		return
	}
	if pending == 0 {
		return
	}

	staff, err := s.userRepo.ListStaff(ctx)
	if err != nil {
		log.Printf("⚠️ Staff lookup failed: %v", err)
		return
	}

	s.notifyService.NotifyPendingLoans(staff, pending)
}
