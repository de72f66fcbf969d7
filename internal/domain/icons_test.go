package domain_test

import (
	"testing"

	"pousada_manicaca/internal/domain"
)

func TestParseIcon(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Icon
	}{
		{"wifi", domain.IconWifi},
		{"WiFi", domain.IconWifi},
		{"📶", domain.IconWifi},
		{"🌊", domain.IconWaves},
		{" tv ", domain.IconTV},
		{"✨", domain.IconDefault},
		{"jacuzzi", domain.IconDefault},
		{"", domain.IconDefault},
	}
	for _, c := range cases {
		if got := domain.ParseIcon(c.in); got != c.want {
			t.Errorf("ParseIcon(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAmenitySymbolFallback(t *testing.T) {
	a := domain.Amenity{Name: "Hidromassagem", Icon: "🛁"}
	if a.Symbol() != domain.IconDefault {
		t.Fatalf("unknown emoji must fall back to default, got %v", a.Symbol())
	}
}
