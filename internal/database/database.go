package database

import (
	"github.com/mdouchement/anylist/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool
		// IsAlreadyExists returns true if err is a uniqueness violation error.
		IsAlreadyExists(err error) bool

		UserInteraction
		ItemInteraction
		ListInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByMail returns the user for the given email.
		FindUserByMail(email string) (*model.User, error)
		// FindUsersByParams returns all the users matching the given filter.
		// When roles is not empty, only users holding at least one of the
		// given roles are returned.
		FindUsersByParams(roles []string, f Filter) ([]*model.User, error)
	}

	// An ItemInteraction defines all the methods used to interact with item record(s).
	// All reads and deletes are scoped by the owning user; an ownership
	// mismatch is indistinguishable from an absent record.
	ItemInteraction interface {
		// FindItemByUserID returns the item for the given id and owner id (UUID).
		FindItemByUserID(id, userID string) (*model.Item, error)
		// FindItemsByUserID returns all the items owned by the given user,
		// shaped by the given filter. Records follow creation order; no sort
		// by any exposed field is guaranteed.
		FindItemsByUserID(userID string, f Filter) ([]*model.Item, error)
		// CountItemsByUserID returns the number of items owned by the given
		// user. It uses the same ownership predicate as FindItemsByUserID
		// but never applies a filter.
		CountItemsByUserID(userID string) (int, error)
		// DeleteItem deletes the item matching the given id and owner id.
		DeleteItem(id, userID string) error
	}

	// A ListInteraction defines all the methods used to interact with list record(s).
	// Scoping rules are the same as ItemInteraction.
	ListInteraction interface {
		// FindListByUserID returns the list for the given id and owner id (UUID).
		FindListByUserID(id, userID string) (*model.List, error)
		// FindListsByUserID returns all the lists owned by the given user,
		// shaped by the given filter.
		FindListsByUserID(userID string, f Filter) ([]*model.List, error)
		// CountListsByUserID returns the number of lists owned by the given user.
		CountListsByUserID(userID string) (int, error)
		// DeleteList deletes the list matching the given id and owner id.
		DeleteList(id, userID string) error
	}
)
