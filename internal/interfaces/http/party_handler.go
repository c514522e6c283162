package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/dto"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/masterdata"
)

// partyOps is the shared surface of the customer and supplier use cases, so
// both sides of the ledger get one handler implementation.
type partyOps interface {
	Create(ctx context.Context, companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error)
	GetByID(ctx context.Context, companyID, id string) (*dto.PartyResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.CreatePartyRequest) (*dto.PartyResponse, error)
	List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.PartyListResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

var (
	_ partyOps = (*masterdata.CustomerUseCase)(nil)
	_ partyOps = (*masterdata.SupplierUseCase)(nil)
)

// PartyHandler handles customers or suppliers, depending on the use case it
// wraps (protected).
type PartyHandler struct {
	uc partyOps
}

// NewCustomerHandler builds the handler for /customers.
func NewCustomerHandler(uc *masterdata.CustomerUseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// NewSupplierHandler builds the handler for /suppliers.
func NewSupplierHandler(uc *masterdata.SupplierUseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// Create godoc
// @Summary      Create a customer or supplier
// @Tags         parties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartyRequest  true  "Party data"
// @Success      201   {object}  dto.PartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a customer or supplier
// @Tags         parties
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Party ID"
// @Success      200  {object}  dto.PartyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a customer or supplier
// @Tags         parties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Party ID"
// @Param        body  body  dto.CreatePartyRequest  true  "Party data"
// @Success      200   {object}  dto.PartyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List customers or suppliers
// @Tags         parties
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Page size"  default(20)
// @Param        offset  query  int  false  "Offset"     default(0)
// @Success      200     {object}  dto.PartyListResponse
// @Router       /api/customers [get]
func (h *PartyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query parameters")
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a customer or supplier
// @Tags         parties
// @Security     Bearer
// @Param        id  path  string  true  "Party ID"
// @Success      204  "no content"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *PartyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
