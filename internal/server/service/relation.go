package service

import (
	"github.com/mdouchement/anylist/internal/database"
	"github.com/mdouchement/anylist/internal/identity"
	"github.com/mdouchement/anylist/internal/model"
	"github.com/pkg/errors"
)

type (
	// A RelationService resolves the derived fields of a user on demand:
	// counts and child collections are computed per parent when requested,
	// never eagerly joined, re-entering the ownership-scoped queries of the
	// database package.
	//
	// Every derived field is gated on an administrative role. The fields
	// cross user boundaries, so even resolving them on oneself requires
	// admin rights.
	RelationService interface {
		// ItemCount returns the number of items owned by the parent user.
		ItemCount(caller, parent *model.User) (int, error)
		// Items returns the parent's items shaped by the given filter.
		Items(caller, parent *model.User, f database.Filter) ([]*model.Item, error)
		// ListCount returns the number of lists owned by the parent user.
		ListCount(caller, parent *model.User) (int, error)
		// Lists returns the parent's lists shaped by the given filter.
		Lists(caller, parent *model.User, f database.Filter) ([]*model.List, error)
		// LastUpdatedBy dereferences the parent's audit pointer with an
		// explicit lookup. It returns nil when the pointer is unset.
		LastUpdatedBy(parent *model.User) (*model.User, error)
	}

	relationService struct {
		db database.Client
	}
)

// NewRelation returns a new RelationService.
func NewRelation(db database.Client) RelationService {
	return &relationService{db: db}
}

func (s *relationService) ItemCount(caller, parent *model.User) (int, error) {
	if _, err := identity.RequireAdmin(caller); err != nil {
		return 0, err
	}

	n, err := s.db.CountItemsByUserID(parent.ID)
	return n, errors.Wrap(err, "could not count items")
}

func (s *relationService) Items(caller, parent *model.User, f database.Filter) ([]*model.Item, error) {
	if _, err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}

	items, err := s.db.FindItemsByUserID(parent.ID, f)
	return items, errors.Wrap(err, "could not find items")
}

func (s *relationService) ListCount(caller, parent *model.User) (int, error) {
	if _, err := identity.RequireAdmin(caller); err != nil {
		return 0, err
	}

	n, err := s.db.CountListsByUserID(parent.ID)
	return n, errors.Wrap(err, "could not count lists")
}

func (s *relationService) Lists(caller, parent *model.User, f database.Filter) ([]*model.List, error) {
	if _, err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}

	lists, err := s.db.FindListsByUserID(parent.ID, f)
	return lists, errors.Wrap(err, "could not find lists")
}

func (s *relationService) LastUpdatedBy(parent *model.User) (*model.User, error) {
	if parent.LastUpdatedByID == "" {
		return nil, nil
	}

	user, err := s.db.FindUser(parent.LastUpdatedByID)
	if err != nil {
		if s.db.IsNotFound(err) {
			// A dangling audit pointer renders as unset.
			return nil, nil
		}
		return nil, errors.Wrap(err, "could not find user")
	}
	return user, nil
}
