package handlers

import (
	"errors"
	"strconv"
	"strings"

	"nobus-loanhub/internal/adapters/http/middleware"
	"nobus-loanhub/internal/adapters/persistence/models"
	"nobus-loanhub/internal/core/domain"
	"nobus-loanhub/internal/core/services"
	"nobus-loanhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan application endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoanRequest represents loan application request body
type CreateLoanRequest struct {
	Amount       float64 `json:"amount"`
	TenureMonths int     `json:"tenure_months"`
	Purpose      string  `json:"purpose"`
}

// Create handles loan application creation
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than zero")
	}
	if req.TenureMonths <= 0 {
		return response.BadRequest(c, "Tenure must be greater than zero")
	}
	if len(strings.TrimSpace(req.Purpose)) < 5 {
		return response.BadRequest(c, "Purpose must be at least 5 characters")
	}

	input := &services.CreateLoanInput{
		Amount:       req.Amount,
		TenureMonths: req.TenureMonths,
		Purpose:      strings.TrimSpace(req.Purpose),
	}

	loan, err := h.loanService.Create(c.Context(), user.ID, input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create loan application")
	}

	return response.Created(c, "Loan application created", loan.ToResponse())
}

// ListMine lists the authenticated user's own loan applications
func (h *LoanHandler) ListMine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	loans, err := h.loanService.ListByUser(c.Context(), user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loan applications")
	}

	return response.Success(c, "Loan applications retrieved", toLoanResponses(loans))
}

// GetByID gets a single loan application (owner or staff only)
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan id")
	}

	loan, err := h.loanService.GetByID(c.Context(), uint(id), user)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan application")
	}

	return response.Success(c, "Loan application retrieved", loan.ToResponse())
}

// toLoanResponses maps loan models to DTOs
func toLoanResponses(loans []*models.LoanApplication) []*models.LoanApplicationResponse {
	responses := make([]*models.LoanApplicationResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, loan.ToResponse())
	}
	return responses
}
