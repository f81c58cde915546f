package config

import (
	"slices"
	"testing"
	"time"
)

func TestKey_PrefixesAccumulate(t *testing.T) {
	ocr := New().Prefix("CORE_").Prefix("OCR_")
	if got := ocr.Key("THRESHOLD"); got != "CORE_OCR_THRESHOLD" {
		t.Fatalf("Key = %q", got)
	}
	if got := New().Key("LOG_LEVEL"); got != "LOG_LEVEL" {
		t.Fatalf("root Key = %q", got)
	}
}

func TestMayString(t *testing.T) {
	c := New().Prefix("CORE_OCR_")
	t.Setenv("CORE_OCR_LANG", "  spa+eng ")
	t.Setenv("CORE_OCR_BIN", "   ")

	if got := c.MayString("LANG", "eng"); got != "spa+eng" {
		t.Fatalf("set: %q", got)
	}
	if got := c.MayString("BIN", "tesseract"); got != "tesseract" {
		t.Fatalf("blank: %q", got)
	}
	if got := c.MayString("UNSET", "x"); got != "x" {
		t.Fatalf("unset: %q", got)
	}
}

func TestMayNumbers(t *testing.T) {
	c := New().Prefix("CORE_")
	t.Setenv("CORE_OCR_WORKERS", "8")
	t.Setenv("CORE_BAD_INT", "eight")
	t.Setenv("CORE_RATIO", "0.45")
	t.Setenv("CORE_BAD_RATIO", "high")

	if got := c.MayInt("OCR_WORKERS", 4); got != 8 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BAD_INT", 4); got != 4 {
		t.Fatalf("MayInt invalid = %d", got)
	}
	if got := c.MayFloat64("RATIO", 0); got != 0.45 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if got := c.MayFloat64("BAD_RATIO", 0.3); got != 0.3 {
		t.Fatalf("MayFloat64 invalid = %v", got)
	}
}

func TestMayUnit(t *testing.T) {
	c := New().Prefix("CORE_OCR_")
	cases := map[string]float64{
		"":     0.3,
		"0":    0,
		"1":    1,
		"0.55": 0.55,
		"1.5":  0.3,
		"-0.1": 0.3,
		"abc":  0.3,
	}
	for in, want := range cases {
		t.Setenv("CORE_OCR_THRESHOLD", in)
		if got := c.MayUnit("THRESHOLD", 0.3); got != want {
			t.Fatalf("MayUnit(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("CORE_OCR_")
	cases := []struct {
		in   string
		def  bool
		want bool
	}{
		{"", true, true},
		{"1", false, true},
		{"false", true, false},
		{"T", false, true},
		{"yes", false, false},
	}
	for _, tc := range cases {
		t.Setenv("CORE_OCR_PREPROCESS", tc.in)
		if got := c.MayBool("PREPROCESS", tc.def); got != tc.want {
			t.Fatalf("MayBool(%q, %v) = %v", tc.in, tc.def, got)
		}
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("CORE_ARTIFACTS_")
	t.Setenv("CORE_ARTIFACTS_MAX_AGE", "72h")
	t.Setenv("CORE_ARTIFACTS_SWEEP_EVERY", "hourly")

	if got := c.MayDuration("MAX_AGE", 0); got != 72*time.Hour {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("SWEEP_EVERY", time.Hour); got != time.Hour {
		t.Fatalf("MayDuration invalid = %v", got)
	}
}

func TestMayBytes(t *testing.T) {
	c := New().Prefix("CORE_UPLOAD_")
	const def = 16 << 20
	cases := map[string]int64{
		"":       def,
		"1024":   1024,
		"16MiB":  16 << 20,
		"2 MB":   2_000_000,
		"512kib": 512 << 10,
		"0":      def,
		"lots":   def,
	}
	for in, want := range cases {
		t.Setenv("CORE_UPLOAD_MAX_BYTES", in)
		if got := c.MayBytes("MAX_BYTES", def); got != want {
			t.Fatalf("MayBytes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CORE_API_")
	def := []string{"*"}

	t.Setenv("CORE_API_CORS_ORIGINS", " https://a.example , ,https://b.example ")
	if got := c.MayCSV("CORS_ORIGINS", def); !slices.Equal(got, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("MayCSV = %v", got)
	}

	t.Setenv("CORE_API_CORS_ORIGINS", " , ")
	if got := c.MayCSV("CORS_ORIGINS", def); !slices.Equal(got, def) {
		t.Fatalf("MayCSV blanks = %v", got)
	}
	if got := c.MayCSV("UNSET", nil); got != nil {
		t.Fatalf("MayCSV unset = %v", got)
	}
}
