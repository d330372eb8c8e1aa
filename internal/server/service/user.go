package service

import (
	"github.com/mdouchement/anylist/internal/alerror"
	"github.com/mdouchement/anylist/internal/database"
	"github.com/mdouchement/anylist/internal/identity"
	"github.com/mdouchement/anylist/internal/model"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
)

type (
	// A UserService handles the user lifecycle: signup, administrative
	// queries and mutations, and the one-way block gate.
	UserService interface {
		// Signup registers a new user. It is the only unauthenticated
		// mutation of the API.
		Signup(params SignupParams) (*model.User, error)
		// FindAll returns the users matching the given role set and filter.
		// Admin only. An empty role set applies no role filtering.
		FindAll(caller *model.User, roles []string, f database.Filter) ([]*model.User, error)
		// FindOne returns the user for the given id. Admin only.
		FindOne(caller *model.User, id string) (*model.User, error)
		// Update merges the given params into the target user.
		// Admins can update anyone and any field, and are stamped as
		// lastUpdatedBy. Other callers can only update themselves and a
		// restricted field set.
		Update(id string, params UpdateUserParams, acting *model.User) (*model.User, error)
		// Block deactivates a user. Admin only, idempotent. No operation
		// brings a blocked user back.
		Block(id string, acting *model.User) (*model.User, error)
	}

	// SignupParams are used to register a user.
	SignupParams struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// UpdateUserParams are used to update a user.
	// Absent fields are left untouched.
	UpdateUserParams struct {
		FullName *string  `json:"full_name"`
		Email    *string  `json:"email"`
		Password *string  `json:"password"`
		Roles    []string `json:"roles"`
		IsActive *bool    `json:"is_active"`
	}

	userService struct {
		db database.Client
	}
)

// NewUser returns a new UserService.
func NewUser(db database.Client) UserService {
	return &userService{db: db}
}

func (s *userService) Signup(params SignupParams) (*model.User, error) {
	// Check if the email is free to use.
	u, err := s.db.FindUserByMail(params.Email)
	if err != nil && !s.db.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not get access to database")
	}
	if u != nil {
		return nil, alerror.Conflict("email")
	}

	user := model.NewUser()
	user.FullName = params.FullName
	user.Email = params.Email

	// The raw password is hashed before the model ever reaches the
	// database and is never logged nor rendered.
	user.Password, err = argon2.GenerateFromPasswordString(params.Password, argon2.Default)
	if err != nil {
		return nil, errors.Wrap(err, "could not store user password safe")
	}

	if err := translate(s.db, s.db.Save(user), "email"); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) FindAll(caller *model.User, roles []string, f database.Filter) ([]*model.User, error) {
	if _, err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}

	users, err := s.db.FindUsersByParams(roles, f)
	return users, errors.Wrap(err, "could not find users")
}

func (s *userService) FindOne(caller *model.User, id string) (*model.User, error) {
	if _, err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}

	user, err := s.db.FindUser(id)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, alerror.NotFound(id)
		}
		return nil, errors.Wrap(err, "could not find user")
	}
	return user, nil
}

func (s *userService) Update(id string, params UpdateUserParams, acting *model.User) (*model.User, error) {
	if _, err := identity.Require(acting); err != nil {
		return nil, err
	}

	if identity.IsAdmin(acting) {
		return s.adminUpdate(id, params, acting)
	}

	// A non-admin scope is the caller itself; any other target must be
	// indistinguishable from a missing record.
	if id != acting.ID {
		return nil, alerror.NotFound(id)
	}
	if params.Roles != nil || params.IsActive != nil {
		return nil, alerror.Unauthorized("Only an admin can change roles or active status.")
	}

	return s.save(acting, params)
}

func (s *userService) adminUpdate(id string, params UpdateUserParams, acting *model.User) (*model.User, error) {
	user, err := s.db.FindUser(id)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, alerror.NotFound(id)
		}
		return nil, errors.Wrap(err, "could not find user")
	}

	if params.Roles != nil {
		user.Roles = params.Roles
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}
	user.LastUpdatedByID = acting.ID

	return s.save(user, params)
}

func (s *userService) save(user *model.User, params UpdateUserParams) (*model.User, error) {
	if params.FullName != nil {
		user.FullName = *params.FullName
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Password != nil {
		pw, err := argon2.GenerateFromPasswordString(*params.Password, argon2.Default)
		if err != nil {
			return nil, errors.Wrap(err, "could not store user password safe")
		}
		user.Password = pw
	}

	if err := translate(s.db, s.db.Save(user), "email"); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Block(id string, acting *model.User) (*model.User, error) {
	if _, err := identity.RequireAdmin(acting); err != nil {
		return nil, err
	}

	user, err := s.db.FindUser(id)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, alerror.NotFound(id)
		}
		return nil, errors.Wrap(err, "could not find user")
	}

	// active -> blocked is a one-way gate. Blocking an already blocked
	// user only refreshes the audit pointer.
	user.IsActive = false
	user.LastUpdatedByID = acting.ID

	if err := s.db.Save(user); err != nil {
		return nil, errors.Wrap(err, "could not persist user")
	}
	return user, nil
}
