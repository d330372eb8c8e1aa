package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/anylist/internal/alerror"
	"github.com/mdouchement/anylist/internal/server/service"
)

// list contains all list handlers, scoped to the authenticated owner.
type list struct {
	lists service.ListService
}

// Create handler inserts a new list owned by the caller.
func (h *list) Create(c echo.Context) error {
	var params service.CreateListParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New("Could not get list params."))
	}
	if params.Name == "" {
		return c.JSON(http.StatusBadRequest, alerror.New("No name provided."))
	}

	list, err := h.lists.Create(params, currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, list)
}

// FindAll handler returns the caller's lists matching the pagination/search queries.
func (h *list) FindAll(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New(err.Error()))
	}

	lists, err := h.lists.FindAll(currentUser(c), f)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, lists)
}

// FindOne handler returns the caller's list for the given id.
func (h *list) FindOne(c echo.Context) error {
	list, err := h.lists.FindOne(c.Param("id"), currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// Update handler merges the posted fields into the caller's list.
func (h *list) Update(c echo.Context) error {
	var params service.UpdateListParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New("Could not get list params."))
	}

	list, err := h.lists.Update(c.Param("id"), params, currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// Delete handler removes the caller's list and renders the removed record.
func (h *list) Delete(c echo.Context) error {
	list, err := h.lists.Remove(c.Param("id"), currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}
