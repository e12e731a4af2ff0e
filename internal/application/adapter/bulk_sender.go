package adapter

import (
	"context"
	"time"
)

// BulkRecord is a normalized transaction sent to the bulk import endpoint.
type BulkRecord struct {
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Category    *string   `json:"category"`
}

// BulkReceipt is the server's acknowledgement of one submitted chunk.
type BulkReceipt struct {
	Imported int
	Rejected int
	IDs      []string
}

// BulkSender submits one chunk of records to the bulk import endpoint.
type BulkSender interface {
	SendBulk(ctx context.Context, records []BulkRecord) (*BulkReceipt, error)
}

// Cursor records how far a chunked upload got so a rerun can skip committed chunks.
type Cursor struct {
	Fingerprint      string    `json:"fingerprint"`
	ChunkSize        int       `json:"chunkSize"`
	TotalRecords     int       `json:"totalRecords"`
	CommittedChunks  int       `json:"committedChunks"`
	CommittedRecords int       `json:"committedRecords"`
	AcceptedIDs      []string  `json:"acceptedIds"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CursorStore persists upload cursors. Load returns nil, nil when nothing is stored.
type CursorStore interface {
	Load(ctx context.Context) (*Cursor, error)
	Save(ctx context.Context, cursor *Cursor) error
	Clear(ctx context.Context) error
}
