package db

import "testing"

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"postgres://u:p@localhost:5432/finance?sslmode=disable", "pgx5://u:p@localhost:5432/finance?sslmode=disable"},
		{"postgresql://localhost/finance", "pgx5://localhost/finance"},
		{"pgx5://localhost/finance", "pgx5://localhost/finance"},
	}
	for _, tt := range tests {
		if got := migrationURL(tt.in); got != tt.want {
			t.Fatalf("migrationURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected up and down migrations, got %d files", len(entries))
	}
}
