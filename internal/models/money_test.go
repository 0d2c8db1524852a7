package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoneyStripsFormatting(t *testing.T) {
	cases := []struct {
		input string
		kobo  int64
	}{
		{"₦50,000", 5_000_000},
		{"50000", 5_000_000},
		{"₦1,250.50", 125_050},
		{" NGN 2,000 ", 200_000},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.input)
		if err != nil {
			t.Fatalf("ParseMoney(%q) failed: %v", tc.input, err)
		}
		if got.Kobo() != tc.kobo {
			t.Fatalf("ParseMoney(%q) want %d kobo got %d", tc.input, tc.kobo, got.Kobo())
		}
	}
}

func TestParseMoneyRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "  ", "N/A", "₦", "abc", "-100"} {
		if _, err := ParseMoney(input); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("ParseMoney(%q) want ErrInvalidAmount got %v", input, err)
		}
	}
}

func TestMoneyMulRateRoundsHalfUp(t *testing.T) {
	// 90 kobo * 0.075 = 6.75 kobo -> 7
	got := NewMoneyFromKobo(90).MulRate(decimal.New(75, -3))
	if got.Kobo() != 7 {
		t.Fatalf("want 7 kobo got %d", got.Kobo())
	}
	// 85 kobo * 0.10 = 8.5 kobo -> 9
	got = NewMoneyFromKobo(85).MulRate(decimal.New(10, -2))
	if got.Kobo() != 9 {
		t.Fatalf("want 9 kobo got %d", got.Kobo())
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		kobo int64
		want string
	}{
		{5_000_000, "₦50,000"},
		{10_750_000, "₦107,500"},
		{125_050, "₦1,250.50"},
		{0, "₦0"},
		{500, "₦5"},
	}
	for _, tc := range cases {
		if got := NewMoneyFromKobo(tc.kobo).Format(); got != tc.want {
			t.Fatalf("Format(%d) want %q got %q", tc.kobo, tc.want, got)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(NewMoneyFromNaira(5_000))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != "500000" {
		t.Fatalf("marshal want 500000 got %s", raw)
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte("500000"), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if fromNumber.Kobo() != 500_000 {
		t.Fatalf("unmarshal number want 500000 got %d", fromNumber.Kobo())
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"₦5,000"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if fromString.Kobo() != 500_000 {
		t.Fatalf("unmarshal string want 500000 got %d", fromString.Kobo())
	}
}
