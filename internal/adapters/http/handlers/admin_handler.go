package handlers

import (
	"errors"
	"strconv"
	"strings"

	"nobus-loanhub/internal/adapters/http/middleware"
	"nobus-loanhub/internal/core/domain"
	"nobus-loanhub/internal/core/services"
	"nobus-loanhub/internal/pkg/pagination"
	"nobus-loanhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin-only loan and audit log endpoints
type AdminHandler struct {
	loanService *services.LoanService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(loanService *services.LoanService) *AdminHandler {
	return &AdminHandler{loanService: loanService}
}

// UpdateLoanStatusRequest represents a loan decision request body
type UpdateLoanStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// ListLoans lists all loan applications, newest first
func (h *AdminHandler) ListLoans(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	loans, total, err := h.loanService.ListAll(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loan applications")
	}

	return c.JSON(pagination.NewResponse(toLoanResponses(loans), params, total))
}

// UpdateLoanStatus approves or rejects a pending loan. The decision
// and its audit log entry commit in one transaction.
func (h *AdminHandler) UpdateLoanStatus(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)
	if admin == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan id")
	}

	var req UpdateLoanStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	status := domain.LoanStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !status.IsDecision() {
		return response.BadRequest(c, "Status must be APPROVED or REJECTED")
	}

	input := &services.UpdateStatusInput{
		Status: status,
		Reason: req.Reason,
	}

	loan, err := h.loanService.UpdateStatus(c.Context(), uint(id), admin, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			// Domain failures carry no security sensitivity - report the
			// business rule that was violated
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrInvalidStatus):
			return response.BadRequest(c, "Status must be APPROVED or REJECTED")
		default:
			return response.InternalServerError(c, "Failed to update loan status")
		}
	}

	return response.Success(c, "Loan status updated", loan.ToResponse())
}

// ListLogs lists audit log entries, newest first. The ledger is
// read-only here: no write or delete endpoint exists.
func (h *AdminHandler) ListLogs(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	entries, total, err := h.loanService.ListAdminLogs(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list admin logs")
	}

	return c.JSON(pagination.NewResponse(entries, params, total))
}
