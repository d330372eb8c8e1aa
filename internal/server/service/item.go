package service

import (
	"github.com/mdouchement/anylist/internal/alerror"
	"github.com/mdouchement/anylist/internal/database"
	"github.com/mdouchement/anylist/internal/identity"
	"github.com/mdouchement/anylist/internal/model"
	"github.com/pkg/errors"
)

type (
	// An ItemService handles items within the scope of their owner. No
	// operation of this service can reach another user's items.
	ItemService interface {
		// Create inserts a new item owned by the given user. The owner is
		// fixed at creation and immutable afterward.
		Create(params CreateItemParams, owner *model.User) (*model.Item, error)
		// FindAll returns the owner's items shaped by the given filter.
		FindAll(owner *model.User, f database.Filter) ([]*model.Item, error)
		// FindOne returns the owner's item for the given id.
		FindOne(id string, owner *model.User) (*model.Item, error)
		// Update merges the given params into the owner's item.
		Update(id string, params UpdateItemParams, owner *model.User) (*model.Item, error)
		// Remove deletes the owner's item and returns it.
		Remove(id string, owner *model.User) (*model.Item, error)
	}

	// CreateItemParams are used to create an item.
	CreateItemParams struct {
		Name          string `json:"name"`
		QuantityUnits string `json:"quantity_units"`
	}

	// UpdateItemParams are used to update an item.
	// Absent fields are left untouched.
	UpdateItemParams struct {
		Name          *string `json:"name"`
		QuantityUnits *string `json:"quantity_units"`
	}

	itemService struct {
		db database.Client
	}
)

// NewItem returns a new ItemService.
func NewItem(db database.Client) ItemService {
	return &itemService{db: db}
}

func (s *itemService) Create(params CreateItemParams, owner *model.User) (*model.Item, error) {
	if _, err := identity.Require(owner); err != nil {
		return nil, err
	}

	item := &model.Item{
		Name:          params.Name,
		QuantityUnits: params.QuantityUnits,
		UserID:        owner.ID,
	}

	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "could not persist item")
	}
	return item, nil
}

func (s *itemService) FindAll(owner *model.User, f database.Filter) ([]*model.Item, error) {
	if _, err := identity.Require(owner); err != nil {
		return nil, err
	}

	items, err := s.db.FindItemsByUserID(owner.ID, f)
	return items, errors.Wrap(err, "could not find items")
}

func (s *itemService) FindOne(id string, owner *model.User) (*model.Item, error) {
	if _, err := identity.Require(owner); err != nil {
		return nil, err
	}

	item, err := s.db.FindItemByUserID(id, owner.ID)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, alerror.NotFound(id)
		}
		return nil, errors.Wrap(err, "could not find item")
	}
	return item, nil
}

func (s *itemService) Update(id string, params UpdateItemParams, owner *model.User) (*model.Item, error) {
	item, err := s.FindOne(id, owner)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		item.Name = *params.Name
	}
	if params.QuantityUnits != nil {
		item.QuantityUnits = *params.QuantityUnits
	}

	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "could not persist item")
	}
	return item, nil
}

func (s *itemService) Remove(id string, owner *model.User) (*model.Item, error) {
	item, err := s.FindOne(id, owner)
	if err != nil {
		return nil, err
	}

	// TODO: turn this into a soft delete (deletedAt flag) so list-item
	// associations referencing the record keep their integrity.
	if err := s.db.DeleteItem(id, owner.ID); err != nil {
		return nil, errors.Wrap(err, "could not delete item")
	}
	return item, nil
}
