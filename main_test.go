package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadSeedFile(t *testing.T) {
	yamlPath := writeFile(t, "projects.yaml", `
projects:
  - id: homelab
    title: Homelab
    description: Proxmox cluster
    category: devops
    status: in-progress
    difficulty: 3
    technologies: [Proxmox, Ansible]
    isReal: true
`)
	projects, err := readSeedFile(yamlPath)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "homelab" || len(projects[0].Technologies) != 2 {
		t.Errorf("yaml: got %+v", projects)
	}

	jsonPath := writeFile(t, "projects.json", `{"projects":[{"id":"etl","title":"ETL","description":"d","category":"data","status":"completed","difficulty":2,"technologies":["Airflow"]}]}`)
	projects, err = readSeedFile(jsonPath)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(projects) != 1 || projects[0].Technologies[0] != "Airflow" {
		t.Errorf("json: got %+v", projects)
	}
}

func TestReadSeedFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		check   func(error) bool
	}{
		{"malformed json", "bad.json", `{"projects":`, errs.IsMalformedPayloadError},
		{"invalid record", "invalid.json", `{"projects":[{"id":"x","title":"X","category":"web","status":"planned","difficulty":9}]}`, errs.IsInvalidFieldError},
		{"unknown extension", "projects.txt", "x", func(err error) bool { return err != nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readSeedFile(writeFile(t, tt.file, tt.content))
			if !tt.check(err) {
				t.Errorf("got %v", err)
			}
		})
	}

	if _, err := readSeedFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: got nil error")
	}
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	defer func(l zerolog.Logger) { log.Logger = l }(log.Logger)

	setupLogging("debug", false)
	if got := zerolog.GlobalLevel(); got != zerolog.DebugLevel {
		t.Errorf("debug: got %v, want %v", got, zerolog.DebugLevel)
	}

	setupLogging("nonsense", true)
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Errorf("fallback: got %v, want %v", got, zerolog.InfoLevel)
	}
}
