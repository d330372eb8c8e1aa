package server_test

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/anylist/internal/database"
	"github.com/mdouchement/anylist/internal/model"
	"github.com/mdouchement/anylist/internal/server"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/stretchr/testify/assert"
)

func TestRequestHome(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func TestRequestVersion(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/version").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func setup() (engine *echo.Echo, ctrl server.Controller, r *gofight.RequestConfig, cleanup func()) {
	tmpfile, err := os.CreateTemp("", "anylist.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename)
	if err != nil {
		panic(err)
	}

	ctrl = server.Controller{
		Version:             "test",
		Database:            db,
		NoRegistration:      false,
		SigningKey:          []byte("secret"),
		TokenExpirationTime: 4 * time.Hour,
	}
	engine = server.EchoEngine(ctrl)

	return engine, ctrl, gofight.New(), func() {
		db.Close()
		os.RemoveAll(filename)
	}
}

func createUser(ctrl server.Controller, email string, roles ...string) *model.User {
	var err error

	user := model.NewUser()
	user.FullName = "George Abitbol"
	user.Email = email
	user.Password, err = argon2.GenerateFromPasswordString("password42", argon2.Default)
	if err != nil {
		panic(err)
	}
	if len(roles) > 0 {
		user.Roles = roles
	}

	if err = ctrl.Database.Save(user); err != nil {
		panic(err)
	}
	return user
}

func createAdmin(ctrl server.Controller, email string) *model.User {
	return createUser(ctrl, email, model.RoleMember, model.RoleAdmin)
}

func createItem(ctrl server.Controller, owner *model.User, name string) *model.Item {
	item := &model.Item{
		Name:          name,
		QuantityUnits: "unit",
		UserID:        owner.ID,
	}
	if err := ctrl.Database.Save(item); err != nil {
		panic(err)
	}
	return item
}

func createList(ctrl server.Controller, owner *model.User, name string) *model.List {
	list := &model.List{
		Name:   name,
		UserID: owner.ID,
	}
	if err := ctrl.Database.Save(list); err != nil {
		panic(err)
	}
	return list
}

func authorization(ctrl server.Controller, u *model.User) gofight.H {
	return gofight.H{
		"Authorization": "Bearer " + server.TokenFromUser(ctrl, u),
	}
}
