package adapter

import "github.com/oklog/ulid/v2"

// IDGenerator issues record identifiers. Ids are unique and sort by creation time.
type IDGenerator interface {
	NewID() ulid.ULID
}
