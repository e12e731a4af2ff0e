package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/application/adapter"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

type fakeSender struct {
	calls  [][]adapter.BulkRecord
	failAt map[int]error // 1-based call number
	nextID int
}

func (s *fakeSender) SendBulk(_ context.Context, records []adapter.BulkRecord) (*adapter.BulkReceipt, error) {
	s.calls = append(s.calls, records)
	if err, ok := s.failAt[len(s.calls)]; ok {
		return nil, err
	}
	ids := make([]string, len(records))
	for i := range records {
		s.nextID++
		ids[i] = fmt.Sprintf("id-%03d", s.nextID)
	}
	return &adapter.BulkReceipt{Imported: len(records), IDs: ids}, nil
}

type memoryCursorStore struct {
	cursor  *adapter.Cursor
	saves   int
	cleared bool
}

func (m *memoryCursorStore) Load(context.Context) (*adapter.Cursor, error) {
	if m.cursor == nil {
		return nil, nil
	}
	c := *m.cursor
	c.AcceptedIDs = append([]string(nil), m.cursor.AcceptedIDs...)
	return &c, nil
}

func (m *memoryCursorStore) Save(_ context.Context, c *adapter.Cursor) error {
	copied := *c
	copied.AcceptedIDs = append([]string(nil), c.AcceptedIDs...)
	m.cursor = &copied
	m.saves++
	return nil
}

func (m *memoryCursorStore) Clear(context.Context) error {
	m.cursor = nil
	m.cleared = true
	return nil
}

func makeRecords(n int) []adapter.BulkRecord {
	records := make([]adapter.BulkRecord, n)
	for i := range records {
		records[i] = adapter.BulkRecord{
			Description: fmt.Sprintf("item %d", i),
			Amount:      float64(i + 1),
			Type:        "expense",
			Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return records
}

func TestChunkSubmitter_SendsSequentialChunks(t *testing.T) {
	sender := &fakeSender{}
	store := &memoryCursorStore{}
	var progress []ChunkProgress

	result, err := NewChunkSubmitter(sender, store).Submit(context.Background(), makeRecords(7), SubmitOptions{
		ChunkSize:  3,
		OnProgress: func(p ChunkProgress) { progress = append(progress, p) },
	})
	require.NoError(t, err)

	require.Len(t, sender.calls, 3)
	assert.Len(t, sender.calls[0], 3)
	assert.Len(t, sender.calls[2], 1)
	assert.Equal(t, "item 6", sender.calls[2][0].Description)

	assert.Equal(t, 7, result.Imported)
	assert.Equal(t, 3, result.ChunksSent)
	assert.Len(t, result.IDs, 7)
	assert.False(t, result.Resumed)

	require.Len(t, progress, 3)
	assert.Equal(t, ChunkProgress{Chunk: 3, TotalChunks: 3, Submitted: 7, Total: 7}, progress[2])

	assert.Equal(t, 3, store.saves)
	assert.True(t, store.cleared)
	assert.Nil(t, store.cursor, "a completed upload leaves no cursor")
}

func TestChunkSubmitter_StopsAtFailedChunk(t *testing.T) {
	sender := &fakeSender{failAt: map[int]error{2: errors.New("server returned 500")}}
	store := &memoryCursorStore{}

	result, err := NewChunkSubmitter(sender, store).Submit(context.Background(), makeRecords(9), SubmitOptions{ChunkSize: 3})
	require.Error(t, err)

	var chunkErr *ChunkFailedError
	require.True(t, errors.As(err, &chunkErr))
	assert.Equal(t, 2, chunkErr.Chunk)
	assert.Equal(t, 3, chunkErr.Offset)
	assert.Contains(t, err.Error(), "server returned 500")

	assert.Len(t, sender.calls, 2, "chunk 3 is never sent")
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 3, result.Submitted)

	require.NotNil(t, store.cursor)
	assert.Equal(t, 1, store.cursor.CommittedChunks)
	assert.Equal(t, 3, store.cursor.CommittedRecords)
	assert.Equal(t, []string{"id-001", "id-002", "id-003"}, store.cursor.AcceptedIDs)
	assert.False(t, store.cleared)
}

func TestChunkSubmitter_ResumesFromCursor(t *testing.T) {
	records := makeRecords(9)
	store := &memoryCursorStore{}

	first := &fakeSender{failAt: map[int]error{3: errors.New("timeout")}}
	_, err := NewChunkSubmitter(first, store).Submit(context.Background(), records, SubmitOptions{ChunkSize: 3})
	require.Error(t, err)
	require.Equal(t, 2, store.cursor.CommittedChunks)

	second := &fakeSender{nextID: 100}
	var skipped int
	result, err := NewChunkSubmitter(second, store).Submit(context.Background(), records, SubmitOptions{
		ChunkSize: 3,
		OnProgress: func(p ChunkProgress) {
			if p.Skipped {
				skipped++
			}
		},
	})
	require.NoError(t, err)

	require.Len(t, second.calls, 1, "only the uncommitted chunk is sent")
	assert.Equal(t, "item 6", second.calls[0][0].Description)
	assert.True(t, result.Resumed)
	assert.Equal(t, 2, result.ChunksSkipped)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, 9, result.Submitted)
	assert.Len(t, result.IDs, 9)
	assert.Equal(t, "id-101", result.IDs[6])
	assert.Nil(t, store.cursor)
}

func TestChunkSubmitter_IgnoresForeignCursor(t *testing.T) {
	store := &memoryCursorStore{cursor: &adapter.Cursor{Fingerprint: "other", ChunkSize: 3, CommittedChunks: 2, CommittedRecords: 6}}
	sender := &fakeSender{}

	result, err := NewChunkSubmitter(sender, store).Submit(context.Background(), makeRecords(4), SubmitOptions{ChunkSize: 3})
	require.NoError(t, err)
	assert.Len(t, sender.calls, 2)
	assert.False(t, result.Resumed)
}

func TestChunkSubmitter_ChunkSizeChangeRestarts(t *testing.T) {
	records := makeRecords(6)
	store := &memoryCursorStore{}
	fp := "upload-1"

	_, err := NewChunkSubmitter(&fakeSender{failAt: map[int]error{2: errors.New("boom")}}, store).
		Submit(context.Background(), records, SubmitOptions{ChunkSize: 3, Fingerprint: fp})
	require.Error(t, err)

	sender := &fakeSender{}
	_, err = NewChunkSubmitter(sender, store).Submit(context.Background(), records, SubmitOptions{ChunkSize: 2, Fingerprint: fp})
	require.NoError(t, err)
	assert.Len(t, sender.calls, 3, "a cursor for another chunk size is not reused")
}

func TestChunkSubmitter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sender := &fakeSender{}

	_, err := NewChunkSubmitter(sender, nil).Submit(ctx, makeRecords(6), SubmitOptions{
		ChunkSize: 2,
		OnProgress: func(p ChunkProgress) {
			if p.Chunk == 1 {
				cancel()
			}
		},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, sender.calls, 1)
}

func TestChunkSubmitter_NoRecords(t *testing.T) {
	_, err := NewChunkSubmitter(&fakeSender{}, nil).Submit(context.Background(), nil, SubmitOptions{})
	assert.ErrorIs(t, err, domainerror.ErrNoValidTransactions)
}

func TestChunkSubmitter_DefaultChunkSize(t *testing.T) {
	sender := &fakeSender{}
	_, err := NewChunkSubmitter(sender, nil).Submit(context.Background(), makeRecords(DefaultChunkSize+1), SubmitOptions{})
	require.NoError(t, err)
	require.Len(t, sender.calls, 2)
	assert.Len(t, sender.calls[0], DefaultChunkSize)
}

func TestFingerprints(t *testing.T) {
	records := makeRecords(3)

	a, err := RecordsFingerprint(records, 500)
	require.NoError(t, err)
	b, err := RecordsFingerprint(makeRecords(3), 500)
	require.NoError(t, err)
	c, err := RecordsFingerprint(records, 100)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)

	mapping := valueobject.ColumnMapping{valueobject.FieldDescription: "Name", valueobject.FieldAmount: "Amount"}
	content := []byte("Name,Amount\nRent,500\n")
	rules := valueobject.DefaultRuleTable()
	x := ContentFingerprint(content, mapping, rules, 500)
	assert.Equal(t, x, ContentFingerprint(content, mapping, valueobject.DefaultRuleTable(), 500))
	assert.NotEqual(t, x, ContentFingerprint(content, mapping.Merge(map[valueobject.ImportField]string{valueobject.FieldAmount: "Value"}), rules, 500))
	assert.NotEqual(t, x, ContentFingerprint(content, mapping, rules, 250))

	recategorized := valueobject.DefaultRuleTable()
	recategorized.Categories = append(recategorized.Categories, valueobject.CategoryRule{Category: "Housing", Contains: []string{"rent"}})
	assert.NotEqual(t, x, ContentFingerprint(content, mapping, recategorized, 500))

	renamedFallback := valueobject.DefaultRuleTable()
	renamedFallback.FallbackCategory = "Misc"
	assert.NotEqual(t, x, ContentFingerprint(content, mapping, renamedFallback, 500))
}
