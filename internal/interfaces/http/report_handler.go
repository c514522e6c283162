package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/reports"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

var exportContentTypes = map[string]string{
	"csv": "text/csv",
	"pdf": "application/pdf",
	"xml": "application/xml",
}

// ReportHandler handles the dashboard aggregate and document exports
// (protected).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Dashboard aggregates for a date range (defaults to the current month)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Date from (YYYY-MM-DD)"
// @Param        to    query  string  false  "Date to (YYYY-MM-DD)"
// @Success      200   {object}  dto.DashboardResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), GetCompanyID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Export a document listing as a CSV, PDF or XML download
// @Tags         reports
// @Security     Bearer
// @Produce      octet-stream
// @Param        kind      query  string  true   "Document kind"
// @Param        format    query  string  true   "csv | pdf | xml"
// @Param        party_id  query  string  false  "Filter by party"
// @Param        from      query  string  false  "Date from (YYYY-MM-DD)"
// @Param        to        query  string  false  "Date to (YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/documents [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	f := repository.DocumentFilter{
		Kind:    ledger.Kind(c.Query("kind")),
		PartyID: c.Query("party_id"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return respond(c, fiber.StatusBadRequest, "INVALID_QUERY", "from must be YYYY-MM-DD")
		}
		f.DateFrom = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return respond(c, fiber.StatusBadRequest, "INVALID_QUERY", "to must be YYYY-MM-DD")
		}
		f.DateTo = t
	}

	format := c.Query("format")
	out, filename, err := h.uc.Export(c.UserContext(), GetCompanyID(c), format, f)
	if err != nil {
		return respondError(c, err)
	}

	contentType, ok := exportContentTypes[format]
	if !ok {
		contentType = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}
