package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/portfolio-api/internal/domains/projects/domain"
	"github.com/Apurer/portfolio-api/internal/domains/projects/ports"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	repo := NewRepository(path, nil)
	require.NoError(t, repo.Ensure())
	return repo, path
}

func seedProject(t *testing.T, repo *Repository, id, title string) *domain.Project {
	t.Helper()
	project, err := domain.NewProject(id, domain.Details{Title: title, Description: "desc", Image: "/img.png"},
		time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	saved, err := repo.Create(context.Background(), project)
	require.NoError(t, err)
	return saved
}

func TestRepository_CreatePreservesOrder(t *testing.T) {
	repo, _ := newTestRepository(t)
	for _, id := range []string{"a", "b", "c"} {
		seedProject(t, repo, id, "Project "+id)
	}

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "a", list[0].ID)
	require.Equal(t, "b", list[1].ID)
	require.Equal(t, "c", list[2].ID)
}

func TestRepository_DeleteKeepsRemainingOrder(t *testing.T) {
	repo, _ := newTestRepository(t)
	for _, id := range []string{"a", "b", "c"} {
		seedProject(t, repo, id, "Project "+id)
	}

	require.NoError(t, repo.Delete(context.Background(), "b"))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a", list[0].ID)
	require.Equal(t, "c", list[1].ID)
}

func TestRepository_UnknownIDIsNotFound(t *testing.T) {
	repo, _ := newTestRepository(t)
	seedProject(t, repo, "a", "A")

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.ErrorIs(t, repo.Delete(context.Background(), "missing"), ports.ErrNotFound)
	_, err = repo.Update(context.Background(), &domain.Project{ID: "missing"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpdateReplacesInPlace(t *testing.T) {
	repo, path := newTestRepository(t)
	seedProject(t, repo, "a", "A")
	project := seedProject(t, repo, "b", "B")
	seedProject(t, repo, "c", "C")

	require.NoError(t, project.Apply(domain.Details{Title: "B2", Description: "new", Image: "/b2.png"},
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	_, err := repo.Update(context.Background(), project)
	require.NoError(t, err)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "B2", list[1].Title)
	require.NotNil(t, list[1].UpdatedAt)

	var raw []map[string]any
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, "2024-02-01T00:00:00Z", raw[1]["updatedAt"])
	require.NotContains(t, raw[0], "updatedAt")
	require.Equal(t, "2024-01-02T03:04:05Z", raw[0]["createdAt"])
}

func TestRepository_WriteFailureIsPersistenceError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocked"), 0o700))
	repo := NewRepository(path, nil)

	project, err := domain.NewProject("a", domain.Details{Title: "A", Description: "d", Image: "/i.png"}, time.Now())
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), project)
	require.ErrorIs(t, err, ports.ErrPersistence)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestRepository_ReadsExistingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`[
  {
    "id": "1718000000000",
    "title": "Legacy",
    "description": "From disk",
    "image": "/legacy.png",
    "liveLink": "",
    "githubLink": "https://github.com/x/y",
    "caseStudy": "",
    "createdAt": "2024-06-10T06:13:20.000Z"
  }
]`), 0o600))

	list, err := NewRepository(path, nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "1718000000000", list[0].ID)
	require.Equal(t, "https://github.com/x/y", list[0].GithubLink)
	require.Nil(t, list[0].UpdatedAt)
}
