package affiliate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegisterFromFile(t *testing.T) {
	content := `links:
  - keyword: laptop
    url: https://example.com/laptop
    platform: amazon
  - keyword: standing desk
    url: https://example.com/desk
    active: false
`
	path := filepath.Join(t.TempDir(), "links.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	repo := &fakeLinkRepo{}
	registered, err := RegisterFromFile(path, repo)
	if err != nil {
		t.Fatal(err)
	}

	if registered != 2 {
		t.Errorf("Expected 2 registered links, got %d", registered)
	}
	if len(repo.links) != 2 {
		t.Fatalf("Expected 2 links in repository, got %d", len(repo.links))
	}
	if repo.links[0].Keyword != "laptop" || repo.links[0].Platform != "amazon" {
		t.Errorf("Unexpected first link: %+v", repo.links[0])
	}
	if !repo.links[0].Active {
		t.Error("Expected active to default to true")
	}
	if repo.links[1].Active {
		t.Error("Expected explicit active: false to be honored")
	}
}

func TestRegisterFromFileMissing(t *testing.T) {
	repo := &fakeLinkRepo{}
	registered, err := RegisterFromFile(filepath.Join(t.TempDir(), "absent.yml"), repo)
	if err != nil {
		t.Fatalf("Expected missing file to be tolerated, got %v", err)
	}
	if registered != 0 {
		t.Errorf("Expected 0 registered links, got %d", registered)
	}
}

func TestRegisterFromFileRejectsIncompleteEntry(t *testing.T) {
	content := `links:
  - keyword: laptop
`
	path := filepath.Join(t.TempDir(), "links.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := RegisterFromFile(path, &fakeLinkRepo{}); err == nil {
		t.Error("Expected error for entry without url")
	}
}
