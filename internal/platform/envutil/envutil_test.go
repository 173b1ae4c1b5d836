package envutil

import (
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "abc")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 7 {
		t.Fatalf("Int garbage: want=7 got=%d", got)
	}
	t.Setenv("ENVUTIL_TEST_INT", " 12 ")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 12 {
		t.Fatalf("Int: want=12 got=%d", got)
	}
}

func TestBool(t *testing.T) {
	cases := []struct {
		raw  string
		def  bool
		want bool
	}{
		{raw: "", def: true, want: true},
		{raw: "on", def: false, want: true},
		{raw: "No", def: true, want: false},
		{raw: "maybe", def: false, want: false},
	}
	for _, tc := range cases {
		t.Setenv("ENVUTIL_TEST_BOOL", tc.raw)
		if got := Bool("ENVUTIL_TEST_BOOL", tc.def); got != tc.want {
			t.Fatalf("Bool(%q, %v)=%v want %v", tc.raw, tc.def, got, tc.want)
		}
	}
}

func TestSeconds(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_SECS", "-3")
	if got := Seconds("ENVUTIL_TEST_SECS", time.Minute); got != time.Minute {
		t.Fatalf("Seconds negative: got=%s", got)
	}
	t.Setenv("ENVUTIL_TEST_SECS", "45")
	if got := Seconds("ENVUTIL_TEST_SECS", time.Minute); got != 45*time.Second {
		t.Fatalf("Seconds: got=%s", got)
	}
}
