package database

import "testing"

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "bare dsn gets both params",
			dsn:  "user:pass@tcp(localhost:3306)/sweets",
			want: "user:pass@tcp(localhost:3306)/sweets?parseTime=true&loc=UTC",
		},
		{
			name: "existing params are appended to",
			dsn:  "user:pass@tcp(localhost:3306)/sweets?charset=utf8mb4",
			want: "user:pass@tcp(localhost:3306)/sweets?charset=utf8mb4&parseTime=true&loc=UTC",
		},
		{
			name: "explicit parseTime is respected",
			dsn:  "user:pass@tcp(localhost:3306)/sweets?parseTime=false",
			want: "user:pass@tcp(localhost:3306)/sweets?parseTime=false&loc=UTC",
		},
		{
			name: "explicit location is respected",
			dsn:  "user:pass@tcp(localhost:3306)/sweets?parseTime=true&loc=Local",
			want: "user:pass@tcp(localhost:3306)/sweets?parseTime=true&loc=Local",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeDSN(tt.dsn); got != tt.want {
				t.Errorf("normalizeDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}
