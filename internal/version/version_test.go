package version

import (
	"strings"
	"testing"
)

func TestCalculateBuildID(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{
			name:     "epoch date",
			date:     "2021-01-01",
			expected: 0,
		},
		{
			name:     "next day after epoch",
			date:     "2021-01-02",
			expected: 1,
		},
		{
			name:     "one year later",
			date:     "2022-01-01",
			expected: 365,
		},
		{
			name:     "leap day included",
			date:     "2025-01-01",
			expected: 1461,
		},
		{
			name:      "invalid format",
			date:      "invalid",
			wantError: true,
		},
		{
			name:      "empty date",
			date:      "",
			wantError: true,
		},
		{
			name:      "before epoch",
			date:      "2020-12-31",
			wantError: true,
		},
	}

	old := BuildDate
	defer func() { BuildDate = old }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			BuildDate = tt.date

			got, err := CalculateBuildID()

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (id=%d)", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("CalculateBuildID() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()

	BuildDate = ""
	if s := String(); !strings.HasPrefix(s, ServiceName+" build unknown") {
		t.Errorf("String() = %q", s)
	}

	BuildDate = "2021-01-11"
	s := String()
	if !strings.Contains(s, "build 10 (2021-01-11)") || !strings.Contains(s, "ci[local]") {
		t.Errorf("String() = %q", s)
	}
	if info := Info(); !info.Calculated || info.Service != ServiceName {
		t.Errorf("Info() = %+v", info)
	}
}
