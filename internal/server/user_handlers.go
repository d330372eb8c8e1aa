package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/anylist/internal/alerror"
	"github.com/mdouchement/anylist/internal/model"
	"github.com/mdouchement/anylist/internal/server/service"
)

// user contains all user handlers, including the derived-field resolutions.
type user struct {
	users     service.UserService
	relations service.RelationService
}

///// FindAll
////
//

// FindAll handler returns the users matching the roles/pagination/search
// queries. Admin only.
func (h *user) FindAll(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New(err.Error()))
	}

	var roles []string
	if v := c.QueryParam("roles"); v != "" {
		roles = strings.Split(v, ",")
	}

	users, err := h.users.FindAll(currentUser(c), roles, f)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}

///// FindOne
////
//

// FindOne handler returns the user for the given id. Admin only.
func (h *user) FindOne(c echo.Context) error {
	user, err := h.users.FindOne(currentUser(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

///// Update
////
//

// Update handler merges the posted fields into the target user.
func (h *user) Update(c echo.Context) error {
	// Filter params
	var params service.UpdateUserParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New("Could not get user params."))
	}

	user, err := h.users.Update(c.Param("id"), params, currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

///// Block
////
//

// Block handler deactivates the target user. Admin only.
func (h *user) Block(c echo.Context) error {
	user, err := h.users.Block(c.Param("id"), currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

///// Derived fields
////
//

// Items handler resolves the items collection of the target user. Admin only.
func (h *user) Items(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New(err.Error()))
	}

	caller := currentUser(c)
	parent, err := h.users.FindOne(caller, c.Param("id"))
	if err != nil {
		return err
	}

	items, err := h.relations.Items(caller, parent, f)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

// ItemCount handler resolves the item count of the target user. Admin only.
func (h *user) ItemCount(c echo.Context) error {
	caller := currentUser(c)
	parent, err := h.users.FindOne(caller, c.Param("id"))
	if err != nil {
		return err
	}

	n, err := h.relations.ItemCount(caller, parent)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"item_count": n,
	})
}

// Lists handler resolves the lists collection of the target user. Admin only.
func (h *user) Lists(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New(err.Error()))
	}

	caller := currentUser(c)
	parent, err := h.users.FindOne(caller, c.Param("id"))
	if err != nil {
		return err
	}

	lists, err := h.relations.Lists(caller, parent, f)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, lists)
}

// ListCount handler resolves the list count of the target user. Admin only.
func (h *user) ListCount(c echo.Context) error {
	caller := currentUser(c)
	parent, err := h.users.FindOne(caller, c.Param("id"))
	if err != nil {
		return err
	}

	n, err := h.relations.ListCount(caller, parent)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"list_count": n,
	})
}

// LastUpdatedBy handler dereferences the audit pointer of the target user.
// Admin only. Renders null when the pointer is unset.
func (h *user) LastUpdatedBy(c echo.Context) error {
	caller := currentUser(c)
	parent, err := h.users.FindOne(caller, c.Param("id"))
	if err != nil {
		return err
	}

	var updater *model.User
	if updater, err = h.relations.LastUpdatedBy(parent); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"last_updated_by": updater,
	})
}
