// Package service implements the operations behind the API: mutations with
// audit attribution, ownership-scoped reads and on-demand resolution of
// derived fields.
//
// Every operation authorizes its caller through the identity package before
// touching the database. This layer and the database package are the only
// ones allowed to translate persistence failures into the public error
// taxonomy; anything they do not translate is rendered as an opaque internal
// error by the HTTP error handler.
package service

import (
	"github.com/mdouchement/anylist/internal/alerror"
	"github.com/mdouchement/anylist/internal/database"
)

// translate converts a persistence failure into the public taxonomy.
// Uniqueness violations on the given field become a Conflict; anything else
// is returned as is, to be logged and rendered opaque upstream.
func translate(db database.Client, err error, field string) error {
	if err == nil {
		return nil
	}
	if db.IsAlreadyExists(err) {
		return alerror.Conflict(field)
	}
	return err
}
