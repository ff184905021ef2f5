package handlers

import (
	"errors"
	"strconv"

	"leasedesk/internal/core/domain"
	"leasedesk/internal/core/services"
	"leasedesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles read-only report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// List handles GET /reports
// @Summary Filtered agreement report
// @Description Filter by inclusive date range, agent, owner and payment-due sign
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param from query string false "Start date (inclusive, 2006-01-02)"
// @Param to query string false "End date (inclusive, 2006-01-02)"
// @Param agent query string false "Agent name"
// @Param owner query string false "Owner name"
// @Param due query string false "positive or negative"
// @Success 200 {object} response.Response
// @Router /reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	agreements, err := h.reportService.List(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to run report")
	}

	summary, err := h.reportService.Summary(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to run report")
	}

	return response.Success(c, "", fiber.Map{
		"agreements": agreements,
		"summary":    summary,
	})
}

// Profit handles GET /reports/profit
func (h *ReportHandler) Profit(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	summary, err := h.reportService.Summary(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to run report")
	}

	limit, _ := strconv.Atoi(c.Query("top", "5"))
	topAgents, err := h.reportService.TopAgents(c.Context(), filter, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to run report")
	}

	return response.Success(c, "", fiber.Map{
		"summary":    summary,
		"top_agents": topAgents,
	})
}

func (h *ReportHandler) parseFilter(c *fiber.Ctx) (*services.ReportFilter, error) {
	filter, err := services.ParseReportFilter(
		c.Query("from"),
		c.Query("to"),
		c.Query("agent"),
		c.Query("owner"),
		c.Query("due"),
	)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, domain.ErrInvalidInput
	}
	return filter, nil
}
