package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/anylist/internal/alerror"
	"github.com/mdouchement/anylist/internal/server/service"
)

// item contains all item handlers, scoped to the authenticated owner.
type item struct {
	items service.ItemService
}

///// Create
////
//

// Create handler inserts a new item owned by the caller.
func (h *item) Create(c echo.Context) error {
	// Filter params
	var params service.CreateItemParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New("Could not get item params."))
	}
	if params.Name == "" {
		return c.JSON(http.StatusBadRequest, alerror.New("No name provided."))
	}

	item, err := h.items.Create(params, currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, item)
}

///// FindAll
////
//

// FindAll handler returns the caller's items matching the pagination/search queries.
func (h *item) FindAll(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New(err.Error()))
	}

	items, err := h.items.FindAll(currentUser(c), f)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

///// FindOne
////
//

// FindOne handler returns the caller's item for the given id.
func (h *item) FindOne(c echo.Context) error {
	item, err := h.items.FindOne(c.Param("id"), currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

///// Update
////
//

// Update handler merges the posted fields into the caller's item.
func (h *item) Update(c echo.Context) error {
	// Filter params
	var params service.UpdateItemParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New("Could not get item params."))
	}

	item, err := h.items.Update(c.Param("id"), params, currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

///// Delete
////
//

// Delete handler removes the caller's item and renders the removed record.
func (h *item) Delete(c echo.Context) error {
	item, err := h.items.Remove(c.Param("id"), currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}
