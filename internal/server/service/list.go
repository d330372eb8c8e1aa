package service

import (
	"github.com/mdouchement/anylist/internal/alerror"
	"github.com/mdouchement/anylist/internal/database"
	"github.com/mdouchement/anylist/internal/identity"
	"github.com/mdouchement/anylist/internal/model"
	"github.com/pkg/errors"
)

type (
	// A ListService handles lists within the scope of their owner, with the
	// same scoping rules as ItemService.
	ListService interface {
		// Create inserts a new list owned by the given user.
		Create(params CreateListParams, owner *model.User) (*model.List, error)
		// FindAll returns the owner's lists shaped by the given filter.
		FindAll(owner *model.User, f database.Filter) ([]*model.List, error)
		// FindOne returns the owner's list for the given id.
		FindOne(id string, owner *model.User) (*model.List, error)
		// Update merges the given params into the owner's list.
		Update(id string, params UpdateListParams, owner *model.User) (*model.List, error)
		// Remove deletes the owner's list and returns it.
		Remove(id string, owner *model.User) (*model.List, error)
	}

	// CreateListParams are used to create a list.
	CreateListParams struct {
		Name string `json:"name"`
	}

	// UpdateListParams are used to update a list.
	UpdateListParams struct {
		Name *string `json:"name"`
	}

	listService struct {
		db database.Client
	}
)

// NewList returns a new ListService.
func NewList(db database.Client) ListService {
	return &listService{db: db}
}

func (s *listService) Create(params CreateListParams, owner *model.User) (*model.List, error) {
	if _, err := identity.Require(owner); err != nil {
		return nil, err
	}

	list := &model.List{
		Name:   params.Name,
		UserID: owner.ID,
	}

	if err := s.db.Save(list); err != nil {
		return nil, errors.Wrap(err, "could not persist list")
	}
	return list, nil
}

func (s *listService) FindAll(owner *model.User, f database.Filter) ([]*model.List, error) {
	if _, err := identity.Require(owner); err != nil {
		return nil, err
	}

	lists, err := s.db.FindListsByUserID(owner.ID, f)
	return lists, errors.Wrap(err, "could not find lists")
}

func (s *listService) FindOne(id string, owner *model.User) (*model.List, error) {
	if _, err := identity.Require(owner); err != nil {
		return nil, err
	}

	list, err := s.db.FindListByUserID(id, owner.ID)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, alerror.NotFound(id)
		}
		return nil, errors.Wrap(err, "could not find list")
	}
	return list, nil
}

func (s *listService) Update(id string, params UpdateListParams, owner *model.User) (*model.List, error) {
	list, err := s.FindOne(id, owner)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		list.Name = *params.Name
	}

	if err := s.db.Save(list); err != nil {
		return nil, errors.Wrap(err, "could not persist list")
	}
	return list, nil
}

func (s *listService) Remove(id string, owner *model.User) (*model.List, error) {
	list, err := s.FindOne(id, owner)
	if err != nil {
		return nil, err
	}

	if err := s.db.DeleteList(id, owner.ID); err != nil {
		return nil, errors.Wrap(err, "could not delete list")
	}
	return list, nil
}
