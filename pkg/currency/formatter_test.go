package currency

import "testing"

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0 €"},
		{100, "100 €"},
		{600, "600 €"},
		{1200, "1.200 €"},
		{3000000, "3.000.000 €"},
		{99.6, "100 €"},
		{-1500, "-1.500 €"},
	}
	for _, tt := range tests {
		if got := FormatEUR(tt.amount); got != tt.want {
			t.Errorf("FormatEUR(%v): got %q want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(2500, "EUR"); got != "2.500 €" {
		t.Errorf("EUR: got %q", got)
	}
	if got := Format(2500, ""); got != "2.500 €" {
		t.Errorf("default: got %q", got)
	}
	if got := Format(2500, "GBP"); got != "GBP 2.500" {
		t.Errorf("GBP: got %q", got)
	}
}
