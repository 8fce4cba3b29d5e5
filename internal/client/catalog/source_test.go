package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op   string
	vars map[string]any
}

// fakeQuerier answers with canned JSON "data" payloads per operation.
type fakeQuerier struct {
	mu    sync.Mutex
	calls []call
	data  map[string]string
	err   error
}

func (f *fakeQuerier) Query(_ context.Context, op, _ string, vars map[string]any, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: op, vars: vars})
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.data[op]), out)
}

func (f *fakeQuerier) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

const pageJSON = `{"characters":{"info":{"count":826,"pages":42,"next":3,"prev":1},
"results":[{"id":"21","name":"Aqua Morty","status":"unknown","species":"Humanoid","type":"Fish-Person","gender":"Male",
"image":"https://rickandmortyapi.com/api/character/avatar/21.jpeg","origin":{"id":null,"name":"unknown"},"location":{"id":"3","name":"Citadel of Ricks"}}]}}`

const detailJSON = `{"character":{"id":"1","name":"Rick Sanchez","status":"Alive","species":"Human","type":"","gender":"Male",
"image":"https://rickandmortyapi.com/api/character/avatar/1.jpeg",
"origin":{"id":"1","name":"Earth (C-137)","type":"Planet","dimension":"Dimension C-137"},
"location":{"id":"3","name":"Citadel of Ricks","type":"Space station","dimension":"unknown"},
"episode":[{"id":"1","name":"Pilot","episode":"S01E01","air_date":"December 2, 2013"}],
"created":"2017-11-04T18:48:46.250Z"}}`

func TestSource_ListPage(t *testing.T) {
	q := &fakeQuerier{data: map[string]string{opGetCharacters: pageJSON}}
	s := NewSource(q, time.Minute, logging.Nop())
	ctx := context.Background()

	res := s.ListPage(ctx, 2)
	require.NoError(t, res.Err)

	next, prev := 3, 1
	want := models.PageInfo{Count: 826, Pages: 42, Next: &next, Prev: &prev}
	if diff := cmp.Diff(want, res.Data.Info); diff != "" {
		t.Errorf("page info mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, res.Data.Results, 1)
	assert.Equal(t, "Aqua Morty", res.Data.Results[0].Name)
	assert.Equal(t, "Fish-Person", res.Data.Results[0].Type)

	again := s.ListPage(ctx, 2)
	assert.True(t, again.Cached)
	assert.Len(t, q.Calls(), 1)
	assert.Equal(t, res.Data, again.Data)
}

func TestSource_ListPage_PassesPageVerbatim(t *testing.T) {
	q := &fakeQuerier{data: map[string]string{opGetCharacters: `{"characters":{"info":{"count":0,"pages":0},"results":[]}}`}}
	s := NewSource(q, time.Minute, logging.Nop())

	for _, page := range []int{999, 0, -4} {
		s.ListPage(context.Background(), page)
	}

	calls := q.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, 999, calls[0].vars["page"])
	assert.Equal(t, 0, calls[1].vars["page"])
	assert.Equal(t, -4, calls[2].vars["page"])
}

func TestSource_ListPage_NullCharacters(t *testing.T) {
	q := &fakeQuerier{data: map[string]string{opGetCharacters: `{"characters":null}`}}
	s := NewSource(q, time.Minute, logging.Nop())

	res := s.ListPage(context.Background(), 1)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Data.Results)
}

func TestSource_ListPage_ErrorAlongsideCachedData(t *testing.T) {
	q := &fakeQuerier{data: map[string]string{opGetCharacters: pageJSON}}
	s := NewSource(q, time.Minute, logging.Nop())
	ctx := context.Background()

	ok := s.ListPage(ctx, 2)
	require.NoError(t, ok.Err)

	q.mu.Lock()
	q.err = ErrUnavailable
	q.mu.Unlock()

	res := s.RefreshPage(ctx, 2)
	assert.ErrorIs(t, res.Err, ErrUnavailable)
	assert.True(t, res.HasData)
	assert.Equal(t, ok.Data, res.Data)
}

func TestSource_GetDetail(t *testing.T) {
	q := &fakeQuerier{data: map[string]string{opGetCharacter: detailJSON}}
	s := NewSource(q, time.Minute, logging.Nop())

	res := s.GetDetail(context.Background(), " 1 ")
	require.NoError(t, res.Err)
	assert.Equal(t, "Rick Sanchez", res.Data.Name)
	assert.Equal(t, "Dimension C-137", res.Data.Origin.Dimension)
	require.Len(t, res.Data.Episodes, 1)
	assert.Equal(t, "S01E01", res.Data.Episodes[0].Code)
	assert.Equal(t, "1", q.Calls()[0].vars["id"])
}

func TestSource_GetDetail_SkipsEmptyID(t *testing.T) {
	q := &fakeQuerier{}
	s := NewSource(q, time.Minute, logging.Nop())

	res := s.GetDetail(context.Background(), "  ")
	assert.ErrorIs(t, res.Err, ErrSkipped)
	assert.False(t, IsRemote(res.Err))

	res = s.RefreshDetail(context.Background(), "")
	assert.ErrorIs(t, res.Err, ErrSkipped)

	assert.Empty(t, q.Calls())
}

func TestSource_GetDetail_NotFound(t *testing.T) {
	q := &fakeQuerier{data: map[string]string{opGetCharacter: `{"character":null}`}}
	s := NewSource(q, time.Minute, logging.Nop())

	res := s.GetDetail(context.Background(), "9999")
	assert.True(t, errors.Is(res.Err, ErrNotFound))
	assert.False(t, res.HasData)
}

func TestSource_OnPageRefreshed(t *testing.T) {
	q := &fakeQuerier{data: map[string]string{opGetCharacters: pageJSON}}
	s := NewSource(q, 0, logging.Nop())

	var mu sync.Mutex
	var refreshed []int
	s.OnPageRefreshed(func(page int, _ models.CharacterPage) {
		mu.Lock()
		refreshed = append(refreshed, page)
		mu.Unlock()
	})

	ctx := context.Background()
	s.ListPage(ctx, 4)
	s.ListPage(ctx, 4)
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{4}, refreshed)
}
