package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bizledger/backend/internal/application/adapter"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// DefaultChunkSize is the number of records per bulk request.
const DefaultChunkSize = 500

// ChunkProgress is reported after every chunk, committed or skipped.
type ChunkProgress struct {
	Chunk       int
	TotalChunks int
	Submitted   int
	Total       int
	Skipped     bool
}

// SubmitOptions configures a chunked submission.
type SubmitOptions struct {
	ChunkSize int
	// Fingerprint identifies the upload for resumption. When empty it is
	// derived from the records and the chunk size.
	Fingerprint string
	OnProgress  func(ChunkProgress)
}

// SubmitResult summarizes a chunked submission.
type SubmitResult struct {
	Total         int
	Submitted     int
	Imported      int
	Rejected      int
	ChunksSent    int
	ChunksSkipped int
	IDs           []string
	Resumed       bool
}

// ChunkFailedError reports the chunk that the server refused. Earlier chunks stay committed.
type ChunkFailedError struct {
	Chunk  int
	Offset int
	Err    error
}

// Error implements the error interface.
func (e *ChunkFailedError) Error() string {
	return fmt.Sprintf("chunk %d failed after %d records were submitted: %v", e.Chunk, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *ChunkFailedError) Unwrap() error {
	return e.Err
}

// ChunkSubmitter sends normalized records to the server in sequential chunks.
// It stops at the first failed chunk and never retries.
type ChunkSubmitter struct {
	sender  adapter.BulkSender
	cursors adapter.CursorStore
	now     func() time.Time
}

// NewChunkSubmitter creates a submitter. cursors may be nil to disable resumption.
func NewChunkSubmitter(sender adapter.BulkSender, cursors adapter.CursorStore) *ChunkSubmitter {
	return &ChunkSubmitter{
		sender:  sender,
		cursors: cursors,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Submit sends the records. If a stored cursor matches the fingerprint and chunk
// size, the chunks it lists as committed are skipped.
func (s *ChunkSubmitter) Submit(ctx context.Context, records []adapter.BulkRecord, opts SubmitOptions) (*SubmitResult, error) {
	if len(records) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNoValidTransactions,
			"No valid transactions found (check amounts and headers).",
			domainerror.ErrNoValidTransactions,
		)
	}

	size := opts.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	fingerprint := opts.Fingerprint
	if fingerprint == "" {
		fp, err := RecordsFingerprint(records, size)
		if err != nil {
			return nil, err
		}
		fingerprint = fp
	}

	totalChunks := (len(records) + size - 1) / size
	result := &SubmitResult{Total: len(records)}

	cursor, err := s.resume(ctx, fingerprint, size)
	if err != nil {
		return nil, err
	}
	if cursor.CommittedChunks > 0 {
		result.Resumed = true
		result.Submitted = cursor.CommittedRecords
		result.ChunksSkipped = cursor.CommittedChunks
		result.IDs = append(result.IDs, cursor.AcceptedIDs...)
		slog.Info("Resuming chunked import",
			"fingerprint", fingerprint,
			"committed_chunks", cursor.CommittedChunks,
			"committed_records", cursor.CommittedRecords,
		)
	}
	cursor.TotalRecords = len(records)

	for i := 0; i < totalChunks; i++ {
		start := i * size
		end := min(start+size, len(records))

		if i < cursor.CommittedChunks {
			s.report(opts, ChunkProgress{Chunk: i + 1, TotalChunks: totalChunks, Submitted: end, Total: len(records), Skipped: true})
			continue
		}

		if err := ctx.Err(); err != nil {
			return result, err
		}

		receipt, err := s.sender.SendBulk(ctx, records[start:end])
		if err != nil {
			return result, &ChunkFailedError{Chunk: i + 1, Offset: start, Err: err}
		}

		result.ChunksSent++
		result.Submitted = end
		result.Imported += receipt.Imported
		result.Rejected += receipt.Rejected
		result.IDs = append(result.IDs, receipt.IDs...)

		cursor.CommittedChunks = i + 1
		cursor.CommittedRecords = end
		cursor.AcceptedIDs = append(cursor.AcceptedIDs, receipt.IDs...)
		cursor.UpdatedAt = s.now()
		if s.cursors != nil {
			if err := s.cursors.Save(ctx, cursor); err != nil {
				return result, fmt.Errorf("failed to save upload cursor: %w", err)
			}
		}

		s.report(opts, ChunkProgress{Chunk: i + 1, TotalChunks: totalChunks, Submitted: end, Total: len(records)})
	}

	if s.cursors != nil {
		if err := s.cursors.Clear(ctx); err != nil {
			slog.Warn("Failed to clear upload cursor", "error", err)
		}
	}
	return result, nil
}

// resume returns the stored cursor when it belongs to this upload, or a fresh one.
func (s *ChunkSubmitter) resume(ctx context.Context, fingerprint string, size int) (*adapter.Cursor, error) {
	fresh := &adapter.Cursor{Fingerprint: fingerprint, ChunkSize: size}
	if s.cursors == nil {
		return fresh, nil
	}
	stored, err := s.cursors.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load upload cursor: %w", err)
	}
	if stored == nil || stored.Fingerprint != fingerprint || stored.ChunkSize != size {
		return fresh, nil
	}
	return stored, nil
}

func (s *ChunkSubmitter) report(opts SubmitOptions, p ChunkProgress) {
	if opts.OnProgress != nil {
		opts.OnProgress(p)
	}
}

// RecordsFingerprint hashes the records together with the chunk size.
func RecordsFingerprint(records []adapter.BulkRecord, chunkSize int) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return "", fmt.Errorf("failed to fingerprint records: %w", err)
		}
	}
	h.Write([]byte(strconv.Itoa(chunkSize)))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ContentFingerprint hashes raw upload bytes, the mapping, the rule table and
// the chunk size. Unlike RecordsFingerprint it does not depend on defaulted dates.
func ContentFingerprint(content []byte, mapping valueobject.ColumnMapping, rules valueobject.RuleTable, chunkSize int) string {
	h := sha256.New()
	h.Write(content)
	for _, field := range valueobject.ImportFields {
		fmt.Fprintf(h, "\x00%s=%s", field, mapping[field])
	}
	// Category rules change the normalized records without touching the mapping.
	h.Write([]byte{0})
	_ = json.NewEncoder(h).Encode(rules)
	fmt.Fprintf(h, "\x00chunk=%d", chunkSize)
	return hex.EncodeToString(h.Sum(nil))
}
