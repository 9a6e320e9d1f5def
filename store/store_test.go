package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/younginvestor"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleSnapshot returns the state of a game after a first trade.
func sampleSnapshot(t *testing.T) younginvestor.Snapshot {
	t.Helper()
	c, err := younginvestor.DefaultCatalog()
	require.NoError(t, err)
	g := younginvestor.NewGame(c,
		younginvestor.WithCash(younginvestor.M(1000)),
		younginvestor.WithPlayerName("Noa"),
	)
	_, err = g.Buy("solar", 5)
	require.NoError(t, err)
	return g.Snapshot()
}

// assertSameSnapshot compares snapshots through their JSON form.
func assertSameSnapshot(t *testing.T, want, got younginvestor.Snapshot) {
	t.Helper()
	w, err := json.Marshal(want)
	require.NoError(t, err)
	g, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(w), string(g))
}

// exercise runs the behaviour every backend shares.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	snap := sampleSnapshot(t)

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = s.Load(ctx, "default")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, s.Save(ctx, "default", snap))
	require.NoError(t, s.Save(ctx, "alt", younginvestor.Snapshot{PlayerName: "Alt"}))

	got, err := s.Load(ctx, "default")
	require.NoError(t, err)
	assertSameSnapshot(t, snap, got)
	assert.Equal(t, "Noa", got.PlayerName)
	assert.Equal(t, int64(5), got.Portfolio["solar"].Shares)

	// overwrite
	snap.PlayerName = "Dana"
	require.NoError(t, s.Save(ctx, "default", snap))
	got, err = s.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "Dana", got.PlayerName)

	names, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alt", "default"}, names)

	require.NoError(t, s.Delete(ctx, "alt"))
	assert.ErrorIs(t, s.Delete(ctx, "alt"), fs.ErrNotExist)
	names, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names)

	assert.Error(t, s.Save(ctx, "", snap))
	assert.Error(t, s.Save(ctx, "../escape", snap))

	require.NoError(t, s.Close())
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestMemory_LoadIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Save(ctx, "default", sampleSnapshot(t)))

	a, err := s.Load(ctx, "default")
	require.NoError(t, err)
	a.Portfolio["solar"] = younginvestor.Holding{Shares: 99}

	b, err := s.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, int64(5), b.Portfolio["solar"].Shares)
}

func TestFile(t *testing.T) {
	for name, c := range map[string]codec{"json": jsonCodec, "msgpack": msgpackCodec, "gzip": gzipCodec} {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "saves")
			exercise(t, NewFile(dir, c))
			assert.FileExists(t, filepath.Join(dir, "default"+c.ext))
		})
	}
}

func TestFile_ReadsBrowserSave(t *testing.T) {
	dir := t.TempDir()
	s := NewFile(dir, jsonCodec)
	save := `{"playerName":"Yael","language":"en","cash":250,"assets":260,"destination":10000,
	"portfolio":{"koogle":{"shares":4,"avgPrice":60}},"stockPrices":{"koogle":65},
	"turn":2,"currentScene":"Bank","hasComputer":false,"computerPrice":0,
	"bankAccountOpened":true,"barMitzvahComplete":false,"guruMeetingComplete":false,
	"lessonsCompleted":[1],"miniGamesCompleted":["percents"],"tradesCompleted":1}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "browser.json"), []byte(save), 0o644))

	snap, err := s.Load(context.Background(), "browser")
	require.NoError(t, err)
	assert.Equal(t, "Yael", snap.PlayerName)
	assert.True(t, snap.Cash.Equal(younginvestor.M(250)))
	assert.Equal(t, []string{"percents"}, snap.MiniGamesCompleted)
}

func TestFile_CorruptSave(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))
	_, err := NewFile(dir, jsonCodec).Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(context.Background(), filepath.Join(t.TempDir(), "db", "saves.db"))
	require.NoError(t, err)
	exercise(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		spec string
		want any
	}{
		{"memory", &Memory{}},
		{"file:" + dir, &File{}},
		{"msgpack:" + dir, &File{}},
		{"gzip:" + dir, &File{}},
		{dir, &File{}},
		{"sqlite:" + filepath.Join(dir, "saves.db"), &SQLite{}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			s, err := Open(ctx, tt.spec)
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
		})
	}

	_, err := Open(ctx, "redis:localhost")
	assert.Error(t, err)
	_, err = Open(ctx, "s3:")
	assert.Error(t, err)
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec, backend, arg string
	}{
		{"", "file", ".younginvestor"},
		{"memory", "memory", ""},
		{"SQLite:saves.db", "sqlite", "saves.db"},
		{"s3:bucket/games/kids", "s3", "bucket/games/kids"},
		{"saves", "file", "saves"},
		{"gzip", "gzip", ""},
	}
	for _, tt := range tests {
		backend, arg := parseSpec(tt.spec)
		assert.Equal(t, tt.backend, backend, tt.spec)
		assert.Equal(t, tt.arg, arg, tt.spec)
	}
}

func TestAutosave(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	c, err := younginvestor.DefaultCatalog()
	require.NoError(t, err)
	g := younginvestor.NewGame(c, younginvestor.WithCash(younginvestor.M(500)))
	g.Subscribe(Autosave(ctx, s, "auto", zerolog.Nop()))

	_, err = g.Buy("koogle", 2)
	require.NoError(t, err)

	snap, err := s.Load(ctx, "auto")
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap.Portfolio["koogle"].Shares)
	assertSameSnapshot(t, g.Snapshot(), snap)
}

func TestAutosave_LogsFailures(t *testing.T) {
	var logs bytes.Buffer
	save := Autosave(context.Background(), NewMemory(), "", zerolog.New(&logs))
	save(younginvestor.Snapshot{})
	assert.Contains(t, logs.String(), "failed to save game")
}
