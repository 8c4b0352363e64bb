package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/udyogjagat/job-board/internal/api/metrics"
	apimw "github.com/udyogjagat/job-board/internal/api/middleware"
	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

// AdminHandler exposes the administrator user-management surface: listing
// accounts by status and driving the approval workflow.
type AdminHandler struct {
	approvals ports.ApprovalService
	accounts  ports.AccountService
}

func NewAdminHandler(approvals ports.ApprovalService, accounts ports.AccountService) *AdminHandler {
	return &AdminHandler{approvals: approvals, accounts: accounts}
}

// ListUsers returns account summaries filtered by status (default Pending).
//
// @Summary      List accounts by status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Pending | Approved | Rejected"
// @Success      200     {object}  listUsersResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	status := domain.Status(c.QueryParam("status"))
	if status == "" {
		status = domain.StatusPending
	}

	users, err := h.accounts.ListByStatus(c.Request().Context(), status, actorFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listUsersResponse{Users: users})
}

// UpdateUser approves or rejects a pending account.
//
// @Summary      Approve or reject an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      approvalRequest  true  "Target account and action"
// @Success      200   {object}  approvalResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/users [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req approvalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := actorFrom(c)
	ctx := c.Request().Context()

	switch req.Action {
	case "approve":
		if _, err := h.approvals.Approve(ctx, req.UserID, actor); err != nil {
			metrics.ApprovalsTotal.WithLabelValues("approve", approvalResultLabel(err)).Inc()
			return err
		}
		metrics.ApprovalsTotal.WithLabelValues("approve", "ok").Inc()
	case "reject":
		if err := h.approvals.Reject(ctx, req.UserID, actor); err != nil {
			metrics.ApprovalsTotal.WithLabelValues("reject", approvalResultLabel(err)).Inc()
			return err
		}
		metrics.ApprovalsTotal.WithLabelValues("reject", "ok").Inc()
	}

	user, err := h.accounts.Profile(ctx, req.UserID)
	if err != nil {
		return err
	}

	msg := "User approved and referral code sent"
	if req.Action == "reject" {
		msg = "User rejected"
	}
	return c.JSON(http.StatusOK, approvalResponse{Message: msg, User: user})
}

// ReferralHistory returns the audit trail of codes issued to an account.
//
// @Summary      List referral codes issued to an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  referralHistoryResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/referrals [get]
func (h *AdminHandler) ReferralHistory(c echo.Context) error {
	records, err := h.approvals.ReferralHistory(c.Request().Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, referralHistoryResponse{Referrals: records})
}

func approvalResultLabel(err error) string {
	if err == domain.ErrAlreadyApproved || err == domain.ErrAlreadyRejected {
		return "conflict"
	}
	return "error"
}

// actorFrom lifts the gate-verified principal into a service-layer actor.
func actorFrom(c echo.Context) ports.Actor {
	p := apimw.PrincipalFrom(c)
	return ports.Actor{ID: p.ID, Role: p.Role}
}
