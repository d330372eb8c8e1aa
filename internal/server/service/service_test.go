package service_test

import (
	"os"
	"testing"

	"github.com/mdouchement/anylist/internal/database"
	"github.com/mdouchement/anylist/internal/model"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (client database.Client, cleanup func()) {
	tmpfile, err := os.CreateTemp("", "anylist.*.db")
	require.NoError(t, err)
	filename := tmpfile.Name()
	tmpfile.Close()

	client, err = database.StormOpen(filename)
	require.NoError(t, err)

	return client, func() {
		client.Close()
		os.RemoveAll(filename)
	}
}

func createUser(t *testing.T, client database.Client, email string, roles ...string) *model.User {
	user := model.NewUser()
	user.FullName = "George Abitbol"
	user.Email = email
	user.Password = "argon2id$digest"
	if len(roles) > 0 {
		user.Roles = roles
	}
	require.NoError(t, client.Save(user))
	return user
}
