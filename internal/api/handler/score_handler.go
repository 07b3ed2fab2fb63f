package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yol1/scoring-system/internal/core/domain"
	"github.com/yol1/scoring-system/internal/core/ports"
)

// ScoreHandler handles HTTP requests for score lookups and seeding.
type ScoreHandler struct {
	service ports.ScoreService
}

func NewScoreHandler(service ports.ScoreService) *ScoreHandler {
	return &ScoreHandler{service: service}
}

// Get returns the score bound to ?code=, generating it on first lookup. The
// code is used exactly as sent. Admins calling without a code receive every
// stored score.
//
// @Summary      Get or generate a score
// @Tags         scores
// @Produce      json
// @Security     BearerAuth
// @Param        code  query     string  false  "Score code (optional for admins)"
// @Success      200   {object}  scoreResponse
// @Success      201   {object}  scoreResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/score [get]
func (h *ScoreHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	code := c.QueryParam("code")
	if code == "" {
		if claims.Role != domain.RoleAdmin {
			return echo.NewHTTPError(http.StatusBadRequest, "Code is required to retrieve a specific score.")
		}
		return h.list(c)
	}

	res, err := h.service.GetOrCreate(c.Request().Context(), code)
	if err != nil {
		return err
	}

	if res.Created {
		return c.JSON(http.StatusCreated, scoreResponse{
			Score:   res.Value,
			Message: "Score generated and created successfully!",
		})
	}
	return c.JSON(http.StatusOK, scoreResponse{Score: res.Value})
}

func (h *ScoreHandler) list(c echo.Context) error {
	scores, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]scoreItem, 0, len(scores))
	for _, s := range scores {
		items = append(items, scoreItem{Code: s.Code, Value: s.Value})
	}
	return c.JSON(http.StatusOK, items)
}

// Seed inserts a score with an explicit value. Test-only.
//
// @Summary      Seed a score
// @Tags         scores
// @Accept       json
// @Produce      json
// @Param        body  body      seedRequest  true  "Code and value in [0,100]"
// @Success      201   {object}  seedResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/scores_seed [post]
func (h *ScoreHandler) Seed(c echo.Context) error {
	var req seedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgSeedInvalid)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	score, err := h.service.Seed(c.Request().Context(), req.Code, *req.Value)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, seedResponse{
		Message: "Score seeded successfully",
		Score:   scoreItem{Code: score.Code, Value: score.Value},
	})
}

const msgSeedInvalid = "Code and an integer value between 0 and 100 are required."
