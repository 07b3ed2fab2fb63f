package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Data echoes the caller's token claims back to an admin.
//
// @Summary      Admin-only data
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminDataResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/admin/data [get]
func (h *AdminHandler) Data(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminDataResponse{
		Message: "This is sensitive admin data!",
		Claims:  claims,
	})
}
