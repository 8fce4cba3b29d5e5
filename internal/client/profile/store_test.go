package profile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/portal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/portal/internal/client/storage"
	"github.com/dmitrijs2005/portal/internal/common"
	"github.com/dmitrijs2005/portal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, *metadata.SQLiteRepository) {
	t.Helper()
	db, err := storage.Open(context.Background(), "file:"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := metadata.NewSQLiteRepository(db)
	return NewStore(repo, logging.Nop()), repo
}

type failingRepo struct {
	getErr, setErr, delErr error
}

func (f *failingRepo) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.getErr }
func (f *failingRepo) Set(context.Context, string, []byte) error         { return f.setErr }
func (f *failingRepo) Delete(context.Context, string) error              { return f.delErr }

func TestWriteThenRead_RoundTripsWithFreshTimestamp(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	before := time.Now()
	require.True(t, s.Write(ctx, "Rick", "Scientist"))

	p := s.Read(ctx)
	require.NotNil(t, p)
	assert.Equal(t, "Rick", p.Username)
	assert.Equal(t, "Scientist", p.JobTitle)
	assert.False(t, p.UpdatedAt.Before(before.Truncate(time.Microsecond)), "updatedAt %v must not precede %v", p.UpdatedAt, before)
	assert.True(t, s.Exists(ctx))
}

func TestWrite_ReplacesWholesale(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	require.True(t, s.Write(ctx, "Rick", "Scientist"))

	later := fixed.Add(time.Hour)
	s.now = func() time.Time { return later }
	require.True(t, s.Write(ctx, "Morty", "Sidekick"))

	p := s.Read(ctx)
	require.NotNil(t, p)
	assert.Equal(t, "Morty", p.Username)
	assert.Equal(t, "Sidekick", p.JobTitle)
	assert.True(t, p.UpdatedAt.Equal(later))
}

func TestWrite_RejectsBlankFields(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	assert.False(t, s.Write(ctx, "   ", "Scientist"))
	assert.False(t, s.Write(ctx, "Rick", ""))
	assert.Nil(t, s.Read(ctx))
}

func TestRemove_ThenReadIsAbsent(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	assert.True(t, s.Remove(ctx), "removing an absent profile still succeeds")

	require.True(t, s.Write(ctx, "Rick", "Scientist"))
	assert.True(t, s.Remove(ctx))
	assert.Nil(t, s.Read(ctx))
	assert.False(t, s.Exists(ctx))

	assert.True(t, s.Remove(ctx))
}

func TestRead_MalformedPayloadsAreAbsent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `{{{`},
		{name: "missing username", payload: `{"jobTitle":"Scientist","updatedAt":"2025-01-01T00:00:00.000Z"}`},
		{name: "missing job title", payload: `{"username":"Rick"}`},
		{name: "blank username", payload: `{"username":"  ","jobTitle":"Scientist"}`},
		{name: "wrong types", payload: `{"username":1,"jobTitle":true}`},
		{name: "bad timestamp", payload: `{"username":"Rick","jobTitle":"Scientist","updatedAt":"yesterday"}`},
		{name: "json null", payload: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newStore(t)
			ctx := context.Background()
			require.NoError(t, repo.Set(ctx, common.ProfileStorageKey, []byte(tt.payload)))

			require.NotPanics(t, func() {
				assert.Nil(t, s.Read(ctx))
			})
			assert.False(t, s.Exists(ctx))
		})
	}
}

func TestRead_AcceptsBrowserStyleTimestamp(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, common.ProfileStorageKey,
		[]byte(`{"username":"Rick","jobTitle":"Scientist","updatedAt":"2025-06-01T12:00:00.000Z"}`)))

	p := s.Read(ctx)
	require.NotNil(t, p)
	assert.Equal(t, 2025, p.UpdatedAt.Year())
}

func TestStorageFailuresAreSoft(t *testing.T) {
	boom := errors.New("disk full")
	s := NewStore(&failingRepo{getErr: boom, setErr: boom, delErr: boom}, logging.Nop())
	ctx := context.Background()

	assert.Nil(t, s.Read(ctx))
	assert.False(t, s.Write(ctx, "Rick", "Scientist"))
	assert.False(t, s.Remove(ctx))
	assert.False(t, s.Exists(ctx))
}
