package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"nobus-loanhub/internal/adapters/persistence/models"
	"nobus-loanhub/internal/config"
)

// NotificationService sends outbound email notifications.
// Delivery is fire-and-forget: failures are logged and swallowed, they
// never affect the operation that triggered them.
type NotificationService struct {
	cfg     config.SMTPConfig
	enabled bool
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg config.SMTPConfig) *NotificationService {
	return &NotificationService{
		cfg:     cfg,
		enabled: cfg.Host != "",
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// NotifyLoanApproved notifies the owner that their loan was approved
func (s *NotificationService) NotifyLoanApproved(owner *models.User, loan *models.LoanApplication) {
	subject := "🎉 Congratulations! Your Loan Application is Approved - Nobus Cloud"
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"We are thrilled to inform you that your loan application has been APPROVED!\n\n"+
			"Amount: $%.2f\n"+
			"Tenure: %d Months\n\n"+
			"The funds will be disbursed to your registered account shortly.\n"+
			"Thank you for choosing Nobus Cloud for your financial needs.\n",
		owner.FullName, loan.Amount, loan.TenureMonths,
	)

	if err := s.send([]string{owner.Email}, subject, body); err != nil {
		log.Printf("⚠️ Failed to send approval email to %s: %v", owner.Email, err)
		return
	}
	log.Printf("📧 Approval email sent to %s (loan %d)", owner.Email, loan.ID)
}

// NotifyPendingLoans mails staff a reminder about loans awaiting review
func (s *NotificationService) NotifyPendingLoans(staff []*models.User, pending int64) {
	if pending == 0 || len(staff) == 0 {
		return
	}

	recipients := make([]string, 0, len(staff))
	for _, admin := range staff {
		recipients = append(recipients, admin.Email)
	}

	subject := "Pending loan applications reminder - Nobus Cloud"
	body := fmt.Sprintf(
		"Hello,\n\n"+
			"There are %d loan application(s) still waiting for a decision.\n"+
			"Please review them in the admin console.\n",
		pending,
	)

	if err := s.send(recipients, subject, body); err != nil {
		log.Printf("⚠️ Failed to send pending-loans reminder: %v", err)
		return
	}
	log.Printf("📧 Pending-loans reminder sent to %d staff member(s)", len(recipients))
}

// send delivers a plain-text email via SMTP
func (s *NotificationService) send(to []string, subject, body string) error {
	if !s.enabled {
		return nil
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := s.cfg.Host + ":" + s.cfg.Port
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}

	return smtp.SendMail(addr, auth, s.cfg.From, to, []byte(msg))
}
