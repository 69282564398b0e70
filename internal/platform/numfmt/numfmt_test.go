package numfmt_test

import (
	"testing"

	"fittrack/internal/platform/numfmt"
)

func TestCount(t *testing.T) {
	t.Parallel()
	cases := map[int]string{0: "0", 1: "1", 999: "999", 1000: "1,000", 10000: "10,000", 1234567: "1,234,567", -2500: "-2,500"}
	for in, want := range cases {
		if got := numfmt.Count(in); got != want {
			t.Fatalf("Count(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestPounds(t *testing.T) {
	t.Parallel()
	if got := numfmt.Pounds(5); got != "5.0" {
		t.Fatalf("expected 5.0, got %s", got)
	}
	if got := numfmt.Pounds(2.26); got != "2.3" {
		t.Fatalf("expected 2.3, got %s", got)
	}
}

func TestPlural(t *testing.T) {
	t.Parallel()
	if numfmt.Plural(1, "cup", "cups") != "cup" || numfmt.Plural(2, "cup", "cups") != "cups" || numfmt.Plural(0, "cup", "cups") != "cups" {
		t.Fatalf("unexpected pluralization")
	}
}
