package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

// ProfileHandler exposes the caller's own account record.
type ProfileHandler struct {
	accounts ports.AccountService
}

func NewProfileHandler(accounts ports.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// Get returns the caller's profile.
//
// @Summary      Get the current user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	user, err := h.accounts.Profile(c.Request().Context(), actorFrom(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: user})
}

// Update changes the caller's editable profile fields.
//
// @Summary      Update the current user's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	update := ports.ProfileUpdate{Name: req.Name, Image: req.Image, ResumeURL: req.ResumeURL}
	if update.Empty() {
		return echo.NewHTTPError(http.StatusBadRequest, "no fields provided for update")
	}

	user, err := h.accounts.UpdateProfile(c.Request().Context(), actorFrom(c).ID, update)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "user profile not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: user})
}
