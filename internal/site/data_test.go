package site

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDataFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func TestLoadDataFiles_MissingDirReturnsEmpty(t *testing.T) {
	data, err := LoadDataFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("LoadDataFiles() error = %v", err)
	}
	if len(data) != 0 {
		t.Errorf("LoadDataFiles() on a missing dir = %v, want empty map", data)
	}
}

func TestLoadDataFiles_TopLevelYAML(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "authors.yaml", "alice:\n  role: editor\n")

	data, err := LoadDataFiles(dir)
	if err != nil {
		t.Fatalf("LoadDataFiles() error = %v", err)
	}

	authors, ok := data["authors"].(map[string]any)
	if !ok {
		t.Fatalf("data[\"authors\"] = %T, want map[string]any", data["authors"])
	}
	alice, ok := authors["alice"].(map[string]any)
	if !ok {
		t.Fatalf("authors[\"alice\"] = %T, want map[string]any", authors["alice"])
	}
	if alice["role"] != "editor" {
		t.Errorf("alice.role = %v, want editor", alice["role"])
	}
}

func TestLoadDataFiles_NestedDirectoriesNest(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "people/team.json", `{"name": "Core Team"}`)

	data, err := LoadDataFiles(dir)
	if err != nil {
		t.Fatalf("LoadDataFiles() error = %v", err)
	}

	people, ok := data["people"].(map[string]any)
	if !ok {
		t.Fatalf("data[\"people\"] = %T, want map[string]any", data["people"])
	}
	team, ok := people["team"].(map[string]any)
	if !ok {
		t.Fatalf("people[\"team\"] = %T, want map[string]any", people["team"])
	}
	if team["name"] != "Core Team" {
		t.Errorf("team.name = %v, want \"Core Team\"", team["name"])
	}
}

func TestLoadDataFiles_TOML(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "settings.toml", "title = \"My Data\"\n")

	data, err := LoadDataFiles(dir)
	if err != nil {
		t.Fatalf("LoadDataFiles() error = %v", err)
	}
	settings, ok := data["settings"].(map[string]any)
	if !ok {
		t.Fatalf("data[\"settings\"] = %T, want map[string]any", data["settings"])
	}
	if settings["title"] != "My Data" {
		t.Errorf("settings.title = %v, want \"My Data\"", settings["title"])
	}
}

func TestLoadDataFiles_IgnoresUnsupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "notes.txt", "plain text, not a data file")

	data, err := LoadDataFiles(dir)
	if err != nil {
		t.Fatalf("LoadDataFiles() error = %v", err)
	}
	if _, ok := data["notes"]; ok {
		t.Error("LoadDataFiles() should skip non-yaml/toml/json files")
	}
}
