package cards

import (
	"errors"
	"testing"
)

func TestCalculateDelta(t *testing.T) {
	tests := []struct {
		limitType string
		limitTime int64
		want      int64
		wantErr   bool
	}{
		{"transaction", 0, 0, false},
		{"transaction", 99, 0, false},
		{"seconds", 30, 30, false},
		{"minutes", 2, 120, false},
		{"hours", 2, 7200, false},
		{"days", 1, 86400, false},
		{"weeks", 1, 604800, false},
		{"months", 1, 2592000, false},
		{"years", 1, 31536000, false},
		{"days", 0, 0, true},
		{"hours", -1, 0, true},
		{"fortnights", 1, 0, true},
	}
	for _, tt := range tests {
		got, err := CalculateDelta(tt.limitType, tt.limitTime)
		if tt.wantErr {
			if err == nil {
				t.Errorf("CalculateDelta(%q, %d): expected an error", tt.limitType, tt.limitTime)
			}
			continue
		}
		if err != nil {
			t.Errorf("CalculateDelta(%q, %d): %v", tt.limitType, tt.limitTime, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CalculateDelta(%q, %d) = %d, want %d", tt.limitType, tt.limitTime, got, tt.want)
		}
	}
}

func TestCalculateDeltaNonPositiveTime(t *testing.T) {
	if _, err := CalculateDelta("seconds", 0); !errors.Is(err, ErrNonPositiveTime) {
		t.Errorf("err = %v, want ErrNonPositiveTime", err)
	}
}
