package config

import "testing"

func TestGetPrefersEnvironment(t *testing.T) {
	t.Setenv("WELLNEXUS_TEST_KEY", "from-env")
	if got := Get("WELLNEXUS_TEST_KEY", "fallback"); got != "from-env" {
		t.Fatalf("Get() = %q, want %q", got, "from-env")
	}
}

func TestGetFallsBackWhenUnset(t *testing.T) {
	t.Setenv("WELLNEXUS_TEST_KEY", "")
	if got := Get("WELLNEXUS_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("Get() = %q, want %q", got, "fallback")
	}
}
