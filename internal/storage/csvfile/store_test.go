package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"example.com/registro/internal/domain"
	"example.com/registro/internal/storage"
)

var testNow = time.Date(2026, 10, 17, 12, 30, 45, 0, time.Local)

func anaRecord() domain.Record {
	return domain.NewRecord(domain.Form{
		Name:    "Ana",
		Alias:   "AnaGamer",
		Channel: "https://twitch.tv/anagamer",
		Email:   "ana@example.com",
	}, testNow)
}

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = 11
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestStore_AppendCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registros.csv")
	s := New(path, true)

	require.NoError(t, s.Append(context.Background(), anaRecord()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "2026-10-17 12:30:45,Ana,AnaGamer,,https://twitch.tv/anagamer,,0,,,,ana@example.com\n", string(data))
}

func TestStore_AppendNeverOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registros.csv")
	require.NoError(t, os.WriteFile(path, []byte("previo,a,b,c,d,e,1,f,g,h,i@j.com\n"), 0o644))
	s := New(path, false)

	require.NoError(t, s.Append(context.Background(), anaRecord()))
	require.NoError(t, s.Append(context.Background(), anaRecord()))

	rows := readRecords(t, path)
	require.Len(t, rows, 3)
	require.Equal(t, "previo", rows[0][0])
	require.Equal(t, "Ana", rows[2][1])
}

func TestStore_QuotesSpecialFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registros.csv")
	s := New(path, true)

	rec := anaRecord()
	rec.Goal = "jugar, streamear\ny crecer"
	rec.Schedule = ` noches`
	require.NoError(t, s.Append(context.Background(), rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"jugar, streamear`+"\n"+`y crecer"`)
	require.Contains(t, string(data), `" noches"`)

	rows := readRecords(t, path)
	require.Len(t, rows, 1)
	require.Equal(t, rec.Fields(), rows[0])
}

func TestStore_ConcurrentAppendsKeepLinesIntact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registros.csv")
	s := New(path, true)

	const writers = 40
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := anaRecord()
			rec.Goal = strings.Repeat("objetivo largo, ", 64)
			assert.NoError(t, s.Append(context.Background(), rec))
		}()
	}
	wg.Wait()

	rows := readRecords(t, path)
	require.Len(t, rows, writers)
	for _, row := range rows {
		require.Equal(t, "ana@example.com", row[10])
	}
}

func TestStore_UnavailableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "registros.csv")
	s := New(path, true)

	err := s.Append(context.Background(), anaRecord())
	require.Error(t, err)
	require.True(t, errors.Is(err, storage.ErrUnavailable))
	require.True(t, errors.Is(err, os.ErrNotExist))

	var se *storage.StoreError
	require.ErrorAs(t, err, &se)
	require.Equal(t, path, se.Path)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "no file should be created")
}

func TestStore_Ready(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registros.csv")
	s := New(path, true)

	require.NoError(t, s.Ready(context.Background()))
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "Ready must not create the file")

	require.NoError(t, s.Append(context.Background(), anaRecord()))
	require.NoError(t, s.Ready(context.Background()))

	missing := New(filepath.Join(dir, "nope", "registros.csv"), true)
	err = missing.Ready(context.Background())
	require.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestEncodeLine_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fields := make([]string, 11)
		for i := range fields {
			raw := rapid.StringMatching(`[a-zA-Z0-9 ,"'<>&\n]{0,24}`).Draw(t, "field")
			fields[i] = domain.Clean(raw)
		}

		line, err := encodeLine(fields)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if !strings.HasSuffix(string(line), "\n") {
			t.Fatalf("line %q does not end in newline", line)
		}

		got, err := csv.NewReader(strings.NewReader(string(line))).Read()
		if err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		for i := range fields {
			if got[i] != fields[i] {
				t.Fatalf("field %d: got %q want %q", i, got[i], fields[i])
			}
		}
	})
}
