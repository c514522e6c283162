package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/documents"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/dto"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

// DocumentHandler handles every document kind through one route family:
// /documents/:kind where kind is sale, sale_return, purchase, purchase_return,
// quotation, expense_voucher, income_voucher, salary or balance_transfer.
type DocumentHandler struct {
	uc *documents.UseCase
}

// NewDocumentHandler builds the handler.
func NewDocumentHandler(uc *documents.UseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

func parseKind(c *fiber.Ctx) (ledger.Kind, bool) {
	kind := ledger.Kind(c.Params("kind"))
	return kind, kind.Valid()
}

// Create godoc
// @Summary      Create a document
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string                     true  "Document kind"
// @Param        body  body  dto.CreateDocumentRequest  true  "Document data"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documents/{kind} [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	kind, ok := parseKind(c)
	if !ok {
		return respond(c, fiber.StatusBadRequest, "INVALID_KIND", "unknown document kind")
	}
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), kind, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update a document (lines replaced, payment recorded as an adjustment)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string                     true  "Document kind"
// @Param        id    path  string                     true  "Document ID"
// @Param        body  body  dto.UpdateDocumentRequest  true  "Document data"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documents/{kind}/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	kind, ok := parseKind(c)
	if !ok {
		return respond(c, fiber.StatusBadRequest, "INVALID_KIND", "unknown document kind")
	}
	var in dto.UpdateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), kind, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a document with its lines and payment history
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "Document kind"
// @Param        id    path  string  true  "Document ID"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{kind}/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	kind, ok := parseKind(c)
	if !ok {
		return respond(c, fiber.StatusBadRequest, "INVALID_KIND", "unknown document kind")
	}
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), kind, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List documents of one kind
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        kind      path   string  true   "Document kind"
// @Param        party_id  query  string  false  "Filter by party"
// @Param        from      query  string  false  "Date from (YYYY-MM-DD)"
// @Param        to        query  string  false  "Date to (YYYY-MM-DD)"
// @Param        limit     query  int     false  "Page size"  default(20)
// @Param        offset    query  int     false  "Offset"     default(0)
// @Success      200       {object}  dto.DocumentListResponse
// @Router       /api/documents/{kind} [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	kind, ok := parseKind(c)
	if !ok {
		return respond(c, fiber.StatusBadRequest, "INVALID_KIND", "unknown document kind")
	}
	f := repository.DocumentFilter{
		Kind:    kind,
		PartyID: c.Query("party_id"),
		Limit:   c.QueryInt("limit", 20),
		Offset:  c.QueryInt("offset", 0),
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
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a document and reverse its stock and balance effects
// @Tags         documents
// @Security     Bearer
// @Param        kind  path  string  true  "Document kind"
// @Param        id    path  string  true  "Document ID"
// @Success      204   "no content"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{kind}/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	kind, ok := parseKind(c)
	if !ok {
		return respond(c, fiber.StatusBadRequest, "INVALID_KIND", "unknown document kind")
	}
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), kind, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
