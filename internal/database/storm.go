package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/mdouchement/anylist/internal/model"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.Init(&model.User{}); err != nil {
		return errors.Wrap(err, "could not init user index")
	}

	if err := db.Init(&model.Item{}); err != nil {
		return errors.Wrap(err, "could not init item index")
	}

	err = db.Init(&model.List{})
	return errors.Wrap(err, "could not init list index")
}

// StormReIndex reindex Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.ReIndex(&model.User{}); err != nil {
		return errors.Wrap(err, "could not ReIndex users")
	}

	if err := db.ReIndex(&model.Item{}); err != nil {
		return errors.Wrap(err, "could not ReIndex items")
	}

	err = db.ReIndex(&model.List{})
	return errors.Wrap(err, "could not ReIndex lists")
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// IsAlreadyExists returns true if err is a uniqueness violation error.
func (c *strm) IsAlreadyExists(err error) bool {
	return errors.Cause(err) == storm.ErrAlreadyExists
}

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.db.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByMail returns the user for the given email.
func (c *strm) FindUserByMail(email string) (*model.User, error) {
	var user model.User
	if err := c.db.One("Email", email, &user); err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return &user, nil
}

// FindUsersByParams returns all the users matching the given filter.
func (c *strm) FindUsersByParams(roles []string, f Filter) ([]*model.User, error) {
	query := []q.Matcher{}

	if len(roles) > 0 {
		query = append(query, IntersectsAny("Roles", roles))
	}

	if f.Search != "" {
		query = append(query, ContainsFold("FullName", f.Search))
	}

	users := make([]*model.User, 0)
	err := c.paginate(c.db.Select(query...), f).Find(&users)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find users")
	}
	return users, nil
}

// FindItemByUserID returns the item for the given id and owner id (UUID).
func (c *strm) FindItemByUserID(id, userID string) (*model.Item, error) {
	var item model.Item
	err := c.db.Select(q.Eq("ID", id), q.Eq("UserID", userID)).First(&item)
	if err != nil {
		return nil, errors.Wrap(err, "could not find item by user id")
	}
	return &item, nil
}

// FindItemsByUserID returns all the items owned by the given user.
func (c *strm) FindItemsByUserID(userID string, f Filter) ([]*model.Item, error) {
	query := []q.Matcher{q.Eq("UserID", userID)}

	if f.Search != "" {
		query = append(query, ContainsFold("Name", f.Search))
	}

	items := make([]*model.Item, 0)
	err := c.paginate(c.db.Select(query...), f).Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items")
	}
	return items, nil
}

// CountItemsByUserID returns the number of items owned by the given user.
func (c *strm) CountItemsByUserID(userID string) (int, error) {
	n, err := c.db.Select(q.Eq("UserID", userID)).Count(&model.Item{})
	return n, errors.Wrap(err, "could not count items")
}

// DeleteItem deletes the item matching the given id and owner id.
func (c *strm) DeleteItem(id, userID string) error {
	err := c.db.Select(q.Eq("ID", id), q.Eq("UserID", userID)).Delete(&model.Item{})
	return errors.Wrap(err, "could not delete item")
}

// FindListByUserID returns the list for the given id and owner id (UUID).
func (c *strm) FindListByUserID(id, userID string) (*model.List, error) {
	var list model.List
	err := c.db.Select(q.Eq("ID", id), q.Eq("UserID", userID)).First(&list)
	if err != nil {
		return nil, errors.Wrap(err, "could not find list by user id")
	}
	return &list, nil
}

// FindListsByUserID returns all the lists owned by the given user.
func (c *strm) FindListsByUserID(userID string, f Filter) ([]*model.List, error) {
	query := []q.Matcher{q.Eq("UserID", userID)}

	if f.Search != "" {
		query = append(query, ContainsFold("Name", f.Search))
	}

	lists := make([]*model.List, 0)
	err := c.paginate(c.db.Select(query...), f).Find(&lists)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find lists")
	}
	return lists, nil
}

// CountListsByUserID returns the number of lists owned by the given user.
func (c *strm) CountListsByUserID(userID string) (int, error) {
	n, err := c.db.Select(q.Eq("UserID", userID)).Count(&model.List{})
	return n, errors.Wrap(err, "could not count lists")
}

// DeleteList deletes the list matching the given id and owner id.
func (c *strm) DeleteList(id, userID string) error {
	err := c.db.Select(q.Eq("ID", id), q.Eq("UserID", userID)).Delete(&model.List{})
	return errors.Wrap(err, "could not delete list")
}

// paginate applies the filter's window to the query.
// Records are iterated in CreatedAt index order so consecutive windows over
// an unchanging dataset are exhaustive and duplicate-free.
func (c *strm) paginate(stmt storm.Query, f Filter) storm.Query {
	stmt = stmt.OrderBy("CreatedAt")
	if f.Offset > 0 {
		stmt = stmt.Skip(f.Offset)
	}
	if f.Limit > 0 {
		stmt = stmt.Limit(f.Limit)
	}
	return stmt
}
