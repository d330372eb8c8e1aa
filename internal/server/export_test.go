package server

import "github.com/mdouchement/anylist/internal/model"

// This file is only for test purpose and is only loaded by test framework.

// TokenFromUser returns a signed JWT for the given user.
func TokenFromUser(ctrl Controller, u *model.User) string {
	a := &auth{signingKey: ctrl.SigningKey, tokenExpiration: ctrl.TokenExpirationTime}

	token, err := a.TokenFromUser(u)
	if err != nil {
		panic(err)
	}
	return token
}
