package dates

import (
	"testing"
	"time"
)

func TestParseEquivalentFormats(t *testing.T) {
	// Same instant written RFC-1123 style and ISO-8601 style.
	a, err := Parse("Mon, 02 Jan 2006 15:04:05 +0000")
	if err != nil {
		t.Fatalf("Parse RFC-1123: %v", err)
	}
	b, err := Parse("2006-01-02T15:04:05+00:00")
	if err != nil {
		t.Fatalf("Parse ISO: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("expected same instant, got %v and %v", a, b)
	}
}

func TestParseZuluOffset(t *testing.T) {
	// The default Atom <updated> form: literal Z for UTC.
	z, err := Parse("2024-05-01T10:00:00Z")
	if err != nil {
		t.Fatalf("Parse Z-suffixed ISO: %v", err)
	}
	numeric, err := Parse("2024-05-01T10:00:00+00:00")
	if err != nil {
		t.Fatalf("Parse numeric-offset ISO: %v", err)
	}
	if !z.Equal(numeric) {
		t.Errorf("Z and +00:00 should be the same instant, got %v and %v", z, numeric)
	}
	if z.Equal(Epoch) {
		t.Error("Z-dated entry must not fall back to the epoch sentinel")
	}

	frac, err := Parse("2024-05-01T10:00:00.5Z")
	if err != nil {
		t.Fatalf("Parse fractional Z-suffixed ISO: %v", err)
	}
	if frac.Nanosecond() != 500000000 {
		t.Errorf("fractional Z form lost its fraction: %d ns", frac.Nanosecond())
	}
}

func TestParseColonOffset(t *testing.T) {
	got, err := Parse("2023-06-15T08:30:00+08:00")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := time.Date(2023, 6, 15, 8, 30, 0, 0, time.FixedZone("", 8*3600))
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseFractionalSeconds(t *testing.T) {
	got, err := Parse("2023-06-15T08:30:00.123456+0000")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Nanosecond() != 123456000 {
		t.Errorf("expected fractional seconds preserved, got %d ns", got.Nanosecond())
	}
}

func TestParseNamedZone(t *testing.T) {
	if _, err := Parse("Mon, 02 Jan 2006 15:04:05 GMT"); err != nil {
		t.Errorf("named zone should parse: %v", err)
	}
}

func TestParseUnrecognized(t *testing.T) {
	got, err := Parse("not a date at all")
	if err == nil {
		t.Fatal("expected error for garbage input")
	}
	if !got.Equal(Epoch) {
		t.Errorf("expected epoch sentinel, got %v", got)
	}
	if Timestamp(got) != 0 {
		t.Errorf("sentinel timestamp should be 0, got %d", Timestamp(got))
	}
}

func TestParseOrEpoch(t *testing.T) {
	if got := ParseOrEpoch("garbage"); !got.Equal(Epoch) {
		t.Errorf("expected epoch, got %v", got)
	}
	if got := ParseOrEpoch("2006-01-02T15:04:05+0000"); got.Equal(Epoch) {
		t.Error("valid date should not map to epoch")
	}
}

func TestTimestampOrdering(t *testing.T) {
	older := ParseOrEpoch("Mon, 02 Jan 2006 15:04:05 +0000")
	newer := ParseOrEpoch("Tue, 03 Jan 2006 15:04:05 +0000")
	if Timestamp(newer) <= Timestamp(older) {
		t.Error("later date should have larger timestamp")
	}
}
