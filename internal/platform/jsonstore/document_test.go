package jsonstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestDocument(t *testing.T) *Document[record] {
	t.Helper()
	return New[record](filepath.Join(t.TempDir(), "data", "records.json"), nil)
}

func TestEnsure_CreatesEmptyDocument(t *testing.T) {
	doc := newTestDocument(t)

	require.NoError(t, doc.Ensure())

	data, err := os.ReadFile(doc.Path())
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestEnsure_KeepsExistingDocument(t *testing.T) {
	doc := newTestDocument(t)
	require.NoError(t, doc.Save(context.Background(), []record{{ID: "1", Name: "kept"}}))

	require.NoError(t, doc.Ensure())

	require.Equal(t, []record{{ID: "1", Name: "kept"}}, doc.Load(context.Background()))
}

func TestLoad_MissingDocumentIsEmpty(t *testing.T) {
	doc := newTestDocument(t)

	records := doc.Load(context.Background())
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestLoad_MalformedDocumentIsEmptyAndMovedAside(t *testing.T) {
	doc := newTestDocument(t)
	doc.now = func() time.Time { return time.Unix(1700000000, 0) }
	require.NoError(t, os.MkdirAll(filepath.Dir(doc.Path()), 0o700))
	require.NoError(t, os.WriteFile(doc.Path(), []byte("{not json"), 0o600))

	records := doc.Load(context.Background())
	require.Empty(t, records)

	backup, err := os.ReadFile(doc.Path() + ".corrupt-1700000000")
	require.NoError(t, err)
	require.Equal(t, "{not json", string(backup))
	_, err = os.Stat(doc.Path())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_NullDocumentIsEmpty(t *testing.T) {
	doc := newTestDocument(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(doc.Path()), 0o700))
	require.NoError(t, os.WriteFile(doc.Path(), []byte("null"), 0o600))

	records := doc.Load(context.Background())
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestSave_WritesPrettyPrintedJSON(t *testing.T) {
	doc := newTestDocument(t)

	require.NoError(t, doc.Save(context.Background(), []record{{ID: "1", Name: "a"}}))

	data, err := os.ReadFile(doc.Path())
	require.NoError(t, err)
	require.Equal(t, "[\n  {\n    \"id\": \"1\",\n    \"name\": \"a\"\n  }\n]", string(data))
}

func TestSave_LoadRoundTripIsIdempotent(t *testing.T) {
	doc := newTestDocument(t)
	ctx := context.Background()
	require.NoError(t, doc.Save(ctx, []record{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}))
	before, err := os.ReadFile(doc.Path())
	require.NoError(t, err)

	require.NoError(t, doc.Save(ctx, doc.Load(ctx)))

	after, err := os.ReadFile(doc.Path())
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestSave_FailedRenameKeepsPreviousContent(t *testing.T) {
	doc := newTestDocument(t)
	ctx := context.Background()
	require.NoError(t, doc.Save(ctx, []record{{ID: "1", Name: "original"}}))

	doc.rename = func(string, string) error { return errors.New("disk full") }
	err := doc.Save(ctx, []record{{ID: "2", Name: "replacement"}})
	require.ErrorIs(t, err, ErrWrite)

	require.Equal(t, []record{{ID: "1", Name: "original"}}, doc.Load(ctx))
	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(doc.Path()), "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, leftovers)
}

func TestSave_TargetIsDirectory(t *testing.T) {
	doc := newTestDocument(t)
	require.NoError(t, os.MkdirAll(filepath.Join(doc.Path(), "occupied"), 0o700))

	err := doc.Save(context.Background(), []record{{ID: "1"}})
	require.ErrorIs(t, err, ErrWrite)
	require.Empty(t, doc.Load(context.Background()))
}

func TestUpdate_FnErrorSkipsWrite(t *testing.T) {
	doc := newTestDocument(t)
	ctx := context.Background()
	require.NoError(t, doc.Save(ctx, []record{{ID: "1"}}))
	sentinel := errors.New("not found")

	err := doc.Update(ctx, func(records []record) ([]record, error) {
		return append(records, record{ID: "2"}), sentinel
	})

	require.ErrorIs(t, err, sentinel)
	require.Equal(t, []record{{ID: "1"}}, doc.Load(ctx))
}

func TestUpdate_ConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	doc := newTestDocument(t)
	ctx := context.Background()
	require.NoError(t, doc.Ensure())

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := doc.Update(ctx, func(records []record) ([]record, error) {
				return append(records, record{ID: "x"}), nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, doc.Load(ctx), writers)
}
