package billing

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sagecare/practice/internal/platform/auth"
	"github.com/sagecare/practice/pkg/pagination"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/billing", auth.RequireRole("biller", "clinician"))
	g.GET("/outstanding-balance", h.OutstandingBalance)
	g.GET("/good-faith-estimates", h.ListEstimates)
	g.GET("/good-faith-estimates/:id", h.GetEstimate)
	g.POST("/good-faith-estimates", h.CreateEstimate)
	g.PUT("/good-faith-estimates/:id", h.UpdateEstimate)
	g.DELETE("/good-faith-estimates/:id", h.DeleteEstimate)
}

// OutstandingBalance serves the outstanding-balance report. Error payloads
// use the {"error": ...} shape the billing UI renders directly, not the echo
// default envelope.
func (h *Handler) OutstandingBalance(c echo.Context) error {
	q, err := ParseReportQuery(
		c.QueryParam("startDate"), c.QueryParam("endDate"),
		c.QueryParam("page"), c.QueryParam("rowsPerPage"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	items, total, err := h.svc.OutstandingBalance(c.Request().Context(), q)
	if err != nil {
		h.logger.Error().Err(err).
			Time("start_date", q.Start).
			Time("end_date", q.End).
			Msg("outstanding balance query failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":   "Failed to fetch outstanding balance report",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, q.Page))
}

// -- Good Faith Estimates --

func (h *Handler) CreateEstimate(c echo.Context) error {
	var e GoodFaithEstimate
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateEstimate(c.Request().Context(), &e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) GetEstimate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.GetEstimate(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "estimate not found")
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) ListEstimates(c echo.Context) error {
	pg := pagination.FromContext(c)
	groupID, err := uuid.Parse(c.QueryParam("clientGroupId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "clientGroupId is required")
	}
	items, total, err := h.svc.ListEstimatesByGroup(c.Request().Context(), groupID, pg.RowsPerPage, pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) UpdateEstimate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var e GoodFaithEstimate
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e.ID = id
	if err := h.svc.UpdateEstimate(c.Request().Context(), &e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteEstimate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteEstimate(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
