package model

// A List represents a database record and the rendered API response.
type List struct {
	Base `msgpack:",inline" storm:"inline"`

	Name string `json:"name" msgpack:"name" storm:"index"`

	// UserID is the owning user. Set once at creation, immutable afterward.
	UserID string `json:"user_uuid" msgpack:"user_id" storm:"index"`
}
