package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{name: "memory", dsn: "sqlite://:memory:", want: ":memory:"},
		{name: "absolute", dsn: "sqlite:///var/lib/leeter.db", want: "/var/lib/leeter.db"},
		{name: "relative dot", dsn: "sqlite://./leeter.db", want: "./leeter.db"},
		{name: "bare relative", dsn: "sqlite://leeter.db", want: "./leeter.db"},
		{name: "escaped path", dsn: "sqlite://my%20logs.db", want: "./my logs.db"},
		{name: "query kept", dsn: "sqlite://leeter.db?_pragma=foreign_keys(1)", want: "./leeter.db?_pragma=foreign_keys(1)"},
		{name: "wrong scheme", dsn: "postgres://localhost/leeter", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDSN(tt.dsn)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func TestParseDSNHome(t *testing.T) {
	t.Setenv("HOME", "/home/cmdr")
	got, err := parseDSN("sqlite://~/leeter.db")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/home/cmdr/leeter.db" {
		t.Fatalf("expected home path, got %q", got)
	}

	if _, err := parseDSN("sqlite://"); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
