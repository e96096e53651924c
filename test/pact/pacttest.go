//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "portfolio-api"
	ConsumerName = "portfolio-web"

	StateProjectsSeeded = "one project is stored"
	StateProjectsEmpty  = "no projects are stored"
	StateContactsEmpty  = "no contacts are stored"
)

const (
	MissingProjectID = "missing-project"

	exampleProjectID = "0190a3c2-7d1e-7b4a-9c55-1f2e3d4c5b6a"
	exampleCreatedAt = "2024-06-12T10:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the portfolio web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProject is the project the provider seeds for StateProjectsSeeded.
func ExampleProject() map[string]any {
	return map[string]any{
		"id":          exampleProjectID,
		"title":       "Portfolio Site",
		"description": "Personal site with a project gallery",
		"image":       "/images/portfolio.png",
		"liveLink":    "https://example.dev",
		"githubLink":  "https://github.com/example/portfolio",
		"caseStudy":   "",
		"createdAt":   exampleCreatedAt,
	}
}

// ExampleContact is a valid contact-form submission.
func ExampleContact() map[string]any {
	return map[string]any{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"subject": "Collaboration",
		"message": "Would love to work together.",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
