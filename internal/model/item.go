package model

// An Item represents a database record and the rendered API response.
type Item struct {
	Base `msgpack:",inline" storm:"inline"`

	Name          string `json:"name"                     msgpack:"name"           storm:"index"`
	QuantityUnits string `json:"quantity_units,omitempty" msgpack:"quantity_units"`

	// UserID is the owning user. Set once at creation, immutable afterward.
	UserID string `json:"user_uuid" msgpack:"user_id" storm:"index"`
}
