package domain

// LoanStatus represents the lifecycle state of a loan application
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "PENDING"
	LoanStatusApproved LoanStatus = "APPROVED"
	LoanStatusRejected LoanStatus = "REJECTED"
)

// IsTerminal reports whether no further transition is permitted
func (s LoanStatus) IsTerminal() bool {
	return s == LoanStatusApproved || s == LoanStatusRejected
}

// IsDecision reports whether the status is a valid admin decision
func (s LoanStatus) IsDecision() bool {
	return s == LoanStatusApproved || s == LoanStatusRejected
}

// AuditAction builds the audit log action label for a decision,
// e.g. "APPROVED_LOAN"
func (s LoanStatus) AuditAction() string {
	return string(s) + "_LOAN"
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
