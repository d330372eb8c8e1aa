package server_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/mdouchement/anylist/internal/server"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestSignup(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	params := gofight.D{
		"full_name": "George Abitbol",
		"email":     "george.abitbol@nowhere.lan",
		"password":  "password42",
	}

	r.POST("/signup").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v struct {
			User  map[string]any `json:"user"`
			Token string         `json:"token"`
		}
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.NotEmpty(t, v.Token)
		assert.Equal(t, "george.abitbol@nowhere.lan", v.User["email"])
		assert.Equal(t, []any{"member"}, v.User["roles"])
		assert.Equal(t, true, v.User["is_active"])

		// The credential never leaves the server, hashed or not.
		assert.NotContains(t, r.Body.String(), "password")
	})

	// The stored credential is a digest, not the plaintext.
	user, err := ctrl.Database.FindUserByMail("george.abitbol@nowhere.lan")
	require.NoError(t, err)
	assert.NotEqual(t, "password42", user.Password)
	assert.NoError(t, argon2.CompareHashAndPasswordString(user.Password, "password42"))

	// Duplicate email is a conflict.
	r.POST("/signup").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusConflict, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"conflict", "message":"A record with this email already exists."}}`, r.Body.String())
	})
}

func TestRequestSignupMissingParams(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.POST("/signup").SetJSON(gofight.D{"password": "password42"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"No email provided."}}`, r.Body.String())
	})

	r.POST("/signup").SetJSON(gofight.D{"email": "george@nowhere.lan"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"No password provided."}}`, r.Body.String())
	})
}

func TestRequestLogin(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	createUser(ctrl, "george.abitbol@nowhere.lan")

	r.POST("/login").SetJSON(gofight.D{
		"email":    "george.abitbol@nowhere.lan",
		"password": "nope",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"message":"Invalid email or password."}}`, r.Body.String())
	})

	// An unknown email renders the same error as a bad password.
	r.POST("/login").SetJSON(gofight.D{
		"email":    "nobody@nowhere.lan",
		"password": "password42",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"message":"Invalid email or password."}}`, r.Body.String())
	})

	r.POST("/login").SetJSON(gofight.D{
		"email":    "george.abitbol@nowhere.lan",
		"password": "password42",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.NotEmpty(t, v.Token)
	})
}

func TestRequestLoginBlockedUser(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	user := createUser(ctrl, "george.abitbol@nowhere.lan")
	user.IsActive = false
	if err := ctrl.Database.Save(user); err != nil {
		panic(err)
	}

	r.POST("/login").SetJSON(gofight.D{
		"email":    "george.abitbol@nowhere.lan",
		"password": "password42",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"message":"User is blocked, talk with an admin."}}`, r.Body.String())
	})
}

func TestRequestRevalidate(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	r.GET("/revalidate").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
	})

	user := createUser(ctrl, "george.abitbol@nowhere.lan")
	r.GET("/revalidate").SetHeader(authorization(ctrl, user)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var v struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.NotEmpty(t, v.Token)
	})
}

func TestRequestSignupDisabled(t *testing.T) {
	_, ctrl, r, cleanup := setup()
	defer cleanup()

	ctrl.NoRegistration = true
	engine := server.EchoEngine(ctrl)

	r.POST("/signup").SetJSON(gofight.D{
		"email":    "george@nowhere.lan",
		"password": "password42",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})
}
