package upi

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildPayLink(t *testing.T) {
	amount, _ := decimal.NewFromString("200.00")
	link := BuildPayLink("store@upi", "Mobster Merch", amount, "TMP-ABC123")

	if !strings.HasPrefix(link, "upi://pay?") {
		t.Fatalf("expected upi://pay scheme, got %s", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	q := parsed.Query()

	tests := []struct {
		param, want string
	}{
		{"pa", "store@upi"},
		{"pn", "Mobster Merch"},
		{"am", "200"},
		{"cu", "INR"},
		{"tn", "TMP-ABC123"},
	}
	for _, tt := range tests {
		if got := q.Get(tt.param); got != tt.want {
			t.Errorf("param %s = %q, want %q", tt.param, got, tt.want)
		}
	}
}

func TestBuildPayLinkAmountTrimsZeros(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"200.00", "200"},
		{"199.50", "199.5"},
		{"0.99", "0.99"},
		{"1234.56", "1234.56"},
	}

	for _, tt := range tests {
		amount, _ := decimal.NewFromString(tt.in)
		link := BuildPayLink("store@upi", "Shop", amount, "")
		parsed, _ := url.Parse(link)
		if got := parsed.Query().Get("am"); got != tt.want {
			t.Errorf("amount %s rendered as am=%s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestBuildPayLinkOmitsEmptyNote(t *testing.T) {
	link := BuildPayLink("store@upi", "Shop", decimal.NewFromInt(10), "")
	if strings.Contains(link, "tn=") {
		t.Errorf("expected no tn param, got %s", link)
	}
}
