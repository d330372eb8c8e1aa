package server

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/anylist/internal/alerror"
	"github.com/mdouchement/anylist/internal/database"
	"github.com/mdouchement/anylist/internal/model"
	"github.com/mdouchement/anylist/internal/server/service"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
)

// auth contains all authentication handlers.
type auth struct {
	users           service.UserService
	db              database.Client
	signingKey      []byte
	tokenExpiration time.Duration
}

///// Register
////
//

// Register handler is used to register a user.
func (h *auth) Register(c echo.Context) error {
	// Filter params
	var params service.SignupParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New("Could not get signup params."))
	}

	if params.Email == "" {
		return c.JSON(http.StatusBadRequest, alerror.New("No email provided."))
	}
	if params.Password == "" {
		return c.JSON(http.StatusBadRequest, alerror.New("No password provided."))
	}

	user, err := h.users.Signup(params)
	if err != nil {
		return err
	}

	token, err := h.TokenFromUser(user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"token": token,
	})
}

///// Login
////
//

// Login handler is used to authenticate a registered user.
func (h *auth) Login(c echo.Context) error {
	// Filter params
	var params struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, alerror.New("Could not get login params."))
	}

	// Retrieve user
	user, err := h.db.FindUserByMail(params.Email)
	if err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusUnauthorized, alerror.New("Invalid email or password."))
		}
		return errors.Wrap(err, "could not get user")
	}

	// Verify password
	if err = argon2.CompareHashAndPasswordString(user.Password, params.Password); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return c.JSON(http.StatusUnauthorized, alerror.New("Invalid email or password."))
		}
		return errors.Wrap(err, "could not validate password")
	}

	if !user.IsActive {
		return c.JSON(http.StatusUnauthorized, alerror.New("User is blocked, talk with an admin."))
	}

	token, err := h.TokenFromUser(user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"token": token,
	})
}

///// Revalidate
////
//

// Revalidate handler is used to renew the token of the authenticated user.
func (h *auth) Revalidate(c echo.Context) error {
	user := currentUser(c)

	token, err := h.TokenFromUser(user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"token": token,
	})
}

// TokenFromUser returns a signed JWT for the given user.
func (h *auth) TokenFromUser(u *model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_uuid": u.ID,
		"iat":       now.Unix(),
		"exp":       now.Add(h.tokenExpiration).Unix(),
	})

	signed, err := token.SignedString(h.signingKey)
	return signed, errors.Wrap(err, "could not sign token")
}
