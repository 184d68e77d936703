package credits

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		amount int
		want   string
	}{
		{0, "Cr0"},
		{50, "Cr50"},
		{500, "Cr500"},
		{1500, "Cr1,500"},
		{12345, "Cr12,345"},
		{1234567, "Cr1,234,567"},
		{-2000, "-Cr2,000"},
	}
	for _, tc := range cases {
		if got := Format(tc.amount); got != tc.want {
			t.Errorf("Format(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		price string
		want  int
	}{
		{"Cr12,345", 12345},
		{"Cr500", 500},
		{"500", 500},
		{" Cr1,000 ", 1000},
	}
	for _, tc := range cases {
		got, err := Parse(tc.price)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tc.price, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.price, got, tc.want)
		}
	}

	if _, err := Parse("Crfree"); err == nil {
		t.Error("non-numeric price should fail")
	}
	if _, err := Parse(""); err == nil {
		t.Error("empty price should fail")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, amount := range []int{0, 7, 999, 1000, 250000} {
		back, err := Parse(Format(amount))
		if err != nil {
			t.Fatalf("round trip %d: %v", amount, err)
		}
		if back != amount {
			t.Errorf("round trip %d came back as %d", amount, back)
		}
	}
}
