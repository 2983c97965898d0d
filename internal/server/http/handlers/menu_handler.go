package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/server/http/dto"
)

// MenuHandler serves the live menu.
type MenuHandler struct {
	facade MenuFacade
}

// NewMenuHandler constructs MenuHandler.
func NewMenuHandler(facade MenuFacade) *MenuHandler {
	return &MenuHandler{facade: facade}
}

// List handles GET /api/menu.
func (h *MenuHandler) List(c *gin.Context) {
	categories, err := h.facade.MenuCategories(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		items := make([]dto.MenuItemResponse, 0, len(cat.Items))
		for _, item := range cat.Items {
			items = append(items, toMenuItemResponse(item))
		}
		response = append(response, dto.CategoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			Items:       items,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Specials handles GET /api/menu/specials.
func (h *MenuHandler) Specials(c *gin.Context) {
	specials, err := h.facade.MenuSpecials(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.MenuItemResponse, 0, len(specials))
	for _, item := range specials {
		response = append(response, toMenuItemResponse(item))
	}
	c.JSON(http.StatusOK, response)
}

// Toggle handles POST /api/menu/items/:id/toggle.
func (h *MenuHandler) Toggle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	item, err := h.facade.ToggleMenuItem(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toMenuItemResponse(*item))
}
