package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testScope(t *testing.T) Scope {
	t.Helper()
	return Scope{
		UserID:      uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		AccountID:   uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		StatementID: uuid.MustParse("33333333-3333-3333-3333-333333333333"),
	}
}

func TestFingerprintIsDeterministic(t *testing.T) {
	scope := testScope(t)
	date := time.Date(2024, time.December, 4, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("1500.00")

	a := Fingerprint(scope, date, "SPEI RECIBIDO BANAMEX", amount, 0)
	b := Fingerprint(scope, date, "SPEI RECIBIDO BANAMEX", amount, 0)

	if a != b {
		t.Errorf("same inputs must hash identically: %s vs %s", a, b)
	}
	if !ValidFingerprint(a) {
		t.Errorf("fingerprint %q is not a valid SHA-256 hex digest", a)
	}
}

func TestFingerprintNormalizesInputs(t *testing.T) {
	scope := testScope(t)
	date := time.Date(2024, time.December, 4, 0, 0, 0, 0, time.UTC)

	a := Fingerprint(scope, date, "SPEI RECIBIDO BANAMEX", decimal.RequireFromString("1500.00"), 0)
	b := Fingerprint(scope, date, "  spei recibido banamex ", decimal.RequireFromString("1500"), 0)

	if a != b {
		t.Error("case, surrounding space and amount representation must not change the hash")
	}
}

func TestFingerprintDistinguishes(t *testing.T) {
	scope := testScope(t)
	date := time.Date(2024, time.December, 4, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("1500.00")
	base := Fingerprint(scope, date, "SPEI RECIBIDO", amount, 0)

	otherScope := testScope(t)
	otherScope.AccountID = uuid.MustParse("44444444-4444-4444-4444-444444444444")

	variants := map[string]string{
		"different account":    Fingerprint(otherScope, date, "SPEI RECIBIDO", amount, 0),
		"different date":       Fingerprint(scope, date.AddDate(0, 0, 1), "SPEI RECIBIDO", amount, 0),
		"different desc":       Fingerprint(scope, date, "SPEI ENVIADO", amount, 0),
		"different amount":     Fingerprint(scope, date, "SPEI RECIBIDO", decimal.RequireFromString("1500.01"), 0),
		"different occurrence": Fingerprint(scope, date, "SPEI RECIBIDO", amount, 1),
	}

	for name, got := range variants {
		if got == base {
			t.Errorf("%s must change the fingerprint", name)
		}
	}
}

func TestOccurrenceCounter(t *testing.T) {
	var c OccurrenceCounter
	amount := decimal.RequireFromString("100.00")

	if got := c.Next("04/DIC", "RETIRO CAJERO", amount); got != 0 {
		t.Errorf("first occurrence = %d, want 0", got)
	}
	if got := c.Next("04/DIC", "RETIRO CAJERO", amount); got != 1 {
		t.Errorf("second occurrence = %d, want 1", got)
	}
	if got := c.Next("05/DIC", "RETIRO CAJERO", amount); got != 0 {
		t.Errorf("different date should start its own count, got %d", got)
	}
}

func TestValidFingerprint(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want bool
	}{
		{"valid", "a3f5b8c9d2e1f4a7b6c5d4e3f2a1b0c9d8e7f6a5b4c3d2e1f0a9b8c7d6e5f4a3", true},
		{"too short", "a3f5b8", false},
		{"non hex", "zzf5b8c9d2e1f4a7b6c5d4e3f2a1b0c9d8e7f6a5b4c3d2e1f0a9b8c7d6e5f4a3", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidFingerprint(tt.s); got != tt.want {
				t.Errorf("ValidFingerprint(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}
