package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/catalog"
)

// CatalogHandler serves the cached reference lists that fill the console's
// dropdowns (protected).
type CatalogHandler struct {
	cache *catalog.Cache
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(cache *catalog.Cache) *CatalogHandler {
	return &CatalogHandler{cache: cache}
}

// Get godoc
// @Summary      Get one reference list for the caller's company
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "products | customers | suppliers | accounts | employees | departments | particulars"
// @Success      200   {array}   dto.CatalogItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalog/{type} [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	t, ok := catalog.ParseType(c.Params("type"))
	if !ok {
		return respond(c, fiber.StatusBadRequest, "INVALID_TYPE", "unknown catalog type")
	}
	items, err := h.cache.Get(c.UserContext(), GetCompanyID(c), t)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}
