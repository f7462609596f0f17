package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/healthlog/health-backend/internal/core/ports"
)

// CategoryHandler serves user-defined categories and their items.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// categoryParam returns the decoded category name. Echo routes on the raw
// path only when it carries escapes the plain path cannot express (such as
// %2F), and only then is the parameter still escaped.
func categoryParam(c echo.Context) (string, error) {
	name := c.Param("name")
	if c.Request().URL.RawPath != "" {
		var err error
		if name, err = url.PathUnescape(name); err != nil {
			return "", echo.NewHTTPError(http.StatusBadRequest, "invalid category name")
		}
	}
	if name == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid category name")
	}
	return name, nil
}

// List returns category names in creation order.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  categoriesResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	names, err := h.service.ListCategories(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: names})
}

// Create adds an empty category.
//
// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.CreateCategory(c.Request().Context(), token, req.Name); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Delete removes a category with all of its items.
//
// @Summary      Delete category
// @Tags         categories
// @Security     BearerAuth
// @Param        name  path      string  true  "Category name"
// @Success      204
// @Failure      404   {object}  errorResponse
// @Router       /categories/{name} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	name, err := categoryParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.Request().Context(), token, name); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Items returns the items of a category in insertion order.
//
// @Summary      List category items
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Category name"
// @Success      200   {array}   domain.CategoryItem
// @Failure      404   {object}  errorResponse
// @Router       /categories/{name}/items [get]
func (h *CategoryHandler) Items(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	name, err := categoryParam(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListCategoryItems(c.Request().Context(), token, name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// AddItem appends an item to an existing category.
//
// @Summary      Add category item
// @Tags         categories
// @Accept       json
// @Security     BearerAuth
// @Param        name  path      string               true  "Category name"
// @Param        body  body      categoryItemRequest  true  "Item"
// @Success      201
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /categories/{name}/items [post]
func (h *CategoryHandler) AddItem(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	name, err := categoryParam(c)
	if err != nil {
		return err
	}
	var req categoryItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.AddCategoryItem(c.Request().Context(), token, name, req.item()); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// UpdateItem replaces the item at :index.
//
// @Summary      Update category item
// @Tags         categories
// @Accept       json
// @Security     BearerAuth
// @Param        name   path      string               true  "Category name"
// @Param        index  path      int                  true  "Zero-based position"
// @Param        body   body      categoryItemRequest  true  "Item"
// @Success      204
// @Failure      404    {object}  errorResponse
// @Router       /categories/{name}/items/{index} [put]
func (h *CategoryHandler) UpdateItem(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	name, err := categoryParam(c)
	if err != nil {
		return err
	}
	index, err := indexParam(c)
	if err != nil {
		return err
	}
	var req categoryItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateCategoryItem(c.Request().Context(), token, name, index, req.item()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteItem removes the item at :index.
//
// @Summary      Delete category item
// @Tags         categories
// @Security     BearerAuth
// @Param        name   path      string  true  "Category name"
// @Param        index  path      int     true  "Zero-based position"
// @Success      204
// @Failure      404    {object}  errorResponse
// @Router       /categories/{name}/items/{index} [delete]
func (h *CategoryHandler) DeleteItem(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	name, err := categoryParam(c)
	if err != nil {
		return err
	}
	index, err := indexParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategoryItem(c.Request().Context(), token, name, index); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
