// Package seed loads a fixture dataset used for development and demos.
package seed

import (
	"github.com/mdouchement/anylist/internal/database"
	"github.com/mdouchement/anylist/internal/model"
	"github.com/mdouchement/anylist/internal/server/service"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// A Service orchestrates the seeding. It is a thin caller of the regular
// services; it owns no query or mutation logic of its own.
type Service struct {
	db          database.Client
	environment string
}

// New returns a new seeding Service.
func New(db database.Client, environment string) *Service {
	return &Service{
		db:          db,
		environment: environment,
	}
}

// Execute loads the fixture users and their items and lists.
// It refuses to run on a production environment. The caller is responsible
// for starting from an empty database.
func (s *Service) Execute() error {
	if s.environment == "prod" {
		return errors.New("seeding cannot run on a prod environment")
	}

	users, err := s.loadUsers()
	if err != nil {
		return err
	}

	return s.loadRecords(users)
}

func (s *Service) loadUsers() ([]*model.User, error) {
	svc := service.NewUser(s.db)

	users := make([]*model.User, 0, len(fixtureUsers))
	for _, fixture := range fixtureUsers {
		user, err := svc.Signup(fixture.signupParams())
		if err != nil {
			return nil, errors.Wrapf(err, "could not seed user %s", fixture.Email)
		}

		if len(fixture.Roles) > 0 {
			user.Roles = fixture.Roles
			if err := s.db.Save(user); err != nil {
				return nil, errors.Wrapf(err, "could not assign roles to %s", fixture.Email)
			}
		}

		logrus.WithField("email", user.Email).Info("user seeded")
		users = append(users, user)
	}

	return users, nil
}

// loadRecords creates the items and lists concurrently. Every create targets
// a distinct row so no ordering is needed between them.
func (s *Service) loadRecords(users []*model.User) error {
	items := service.NewItem(s.db)
	lists := service.NewList(s.db)

	var g errgroup.Group

	for i, fixture := range fixtureItems {
		owner := users[i%len(users)]
		params := fixture
		g.Go(func() error {
			_, err := items.Create(params, owner)
			return errors.Wrapf(err, "could not seed item %s", params.Name)
		})
	}

	for i, name := range fixtureLists {
		owner := users[i%len(users)]
		params := service.CreateListParams{Name: name}
		g.Go(func() error {
			_, err := lists.Create(params, owner)
			return errors.Wrapf(err, "could not seed list %s", params.Name)
		})
	}

	return g.Wait()
}

func (f fixtureUser) signupParams() service.SignupParams {
	return service.SignupParams{
		FullName: f.FullName,
		Email:    f.Email,
		Password: f.Password,
	}
}
