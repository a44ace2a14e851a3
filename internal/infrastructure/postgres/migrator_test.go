package postgres

import (
	"strings"
	"testing"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}

	if len(entries) == 0 {
		t.Fatal("no migration files embedded")
	}

	ups := map[string]bool{}
	downs := map[string]bool{}

	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %q", name)
		}
	}

	for base := range ups {
		if !downs[base] {
			t.Errorf("migration %q has no down counterpart", base)
		}
	}

	for base := range downs {
		if !ups[base] {
			t.Errorf("migration %q has no up counterpart", base)
		}
	}
}

func TestRunMigrationsInvalidURL(t *testing.T) {
	if err := RunMigrations("not-a-url"); err == nil {
		t.Fatal("expected error for invalid database URL")
	}
}
