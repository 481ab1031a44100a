package identity

import (
	"testing"
	"time"
)

func TestResolveFullDate(t *testing.T) {
	january2025 := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	november2024 := time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		partial string
		period  time.Time
		want    string
		wantErr bool
	}{
		{
			// A January statement showing December belongs to the
			// previous year.
			name:    "year rollover",
			partial: "28/DIC",
			period:  january2025,
			want:    "2024-12-28",
		},
		{
			name:    "same month",
			partial: "11/NOV",
			period:  november2024,
			want:    "2024-11-11",
		},
		{
			name:    "earlier month same year",
			partial: "05/ENE",
			period:  november2024,
			want:    "2024-01-05",
		},
		{
			name:    "lowercase month accepted",
			partial: "15/mar",
			period:  november2024,
			want:    "2024-03-15",
		},
		{
			name:    "unknown month",
			partial: "15/XYZ",
			period:  november2024,
			wantErr: true,
		},
		{
			name:    "missing slash",
			partial: "15MAR",
			period:  november2024,
			wantErr: true,
		},
		{
			name:    "day out of range",
			partial: "45/MAR",
			period:  november2024,
			wantErr: true,
		},
		{
			name:    "empty",
			partial: "",
			period:  november2024,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFullDate(tt.partial, tt.period)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveFullDate(%q) error = %v, wantErr %v", tt.partial, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ResolveFullDate(%q) = %s, want %s", tt.partial, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestValidateTransactionDate(t *testing.T) {
	period := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"same month", time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), true},
		{"previous month", time.Date(2024, time.December, 28, 0, 0, 0, 0, time.UTC), true},
		{"two months back", time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), true},
		{"three months back", time.Date(2024, time.October, 31, 0, 0, 0, 0, time.UTC), false},
		{"a year ahead", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTransactionDate(tt.date, period); got != tt.want {
				t.Errorf("ValidateTransactionDate(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}
