package catalog

import "testing"

func TestBaseSKU(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"ET5771-Grau", "ET5771"},
		{"ET471", "ET471"},
		{"ET5771-Racing-Weiss", "ET5771"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := BaseSKU(Product{ID: tc.id}); got != tc.want {
			t.Errorf("BaseSKU(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestBaseProductName(t *testing.T) {
	t.Run("strips exact color suffix", func(t *testing.T) {
		p := Product{Name: "Elektro Kinderauto Mercedes - Grau", Color: "Grau"}
		if got := BaseProductName(p); got != "Elektro Kinderauto Mercedes" {
			t.Fatalf("got %q", got)
		}
	})
	t.Run("no color is a no-op", func(t *testing.T) {
		p := Product{Name: "Elektro Kinderauto Mercedes"}
		if got := BaseProductName(p); got != p.Name {
			t.Fatalf("got %q", got)
		}
	})
	t.Run("color set but suffix absent is a no-op", func(t *testing.T) {
		p := Product{Name: "Mercedes Grau Edition", Color: "Grau"}
		if got := BaseProductName(p); got != p.Name {
			t.Fatalf("got %q", got)
		}
	})
}

func TestShortProductName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{
			"quoted model name preferred",
			`Elektro Kinderauto "Lamborghini Huracan STO Drift" mit Fernbedienung`,
			52,
			"Lamborghini Huracan STO Drift",
		},
		{
			"first separator part without quotes",
			"Elektro Kindermotorrad 888 - mit Stützrädern - Grau",
			52,
			"Elektro Kindermotorrad 888",
		},
		{
			"color suffix stripped first",
			"Kinderquad Racer - Grau",
			52,
			"Kinderquad Racer",
		},
		{
			"long name truncated with ellipsis",
			"Elektrisches Riesenfahrzeug mit allem erdenklichen Zubehoer und noch mehr Text",
			20,
			"Elektrisches Riesen…",
		},
		{
			"blank input returned unchanged",
			"   ",
			52,
			"   ",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShortProductName(tc.in, tc.max); got != tc.want {
				t.Fatalf("ShortProductName(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestStripLicenseMarker(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Mercedes G63 (mit Lizenz)", "Mercedes G63"},
		{"Mercedes (mit Lizenz) G63", "Mercedes G63"},
		{"Mercedes G63", "Mercedes G63"},
	}
	for _, tc := range cases {
		if got := StripLicenseMarker(tc.in); got != tc.want {
			t.Errorf("StripLicenseMarker(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
