package migrations

import (
	"io/fs"
	"slices"
	"strings"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		t.Fatal("expected migrations to be embedded")
	}
	slices.Sort(files)
	if files[0] != "001_rolls.sql" {
		t.Fatalf("expected first migration 001_rolls.sql, got %s", files[0])
	}
}
