package env

import "testing"

func TestLoadDefaults(t *testing.T) {
	Load()

	if Values.SERVER_PORT != 8081 {
		t.Errorf("SERVER_PORT = %d, want 8081", Values.SERVER_PORT)
	}
	if Values.PORTAL_PORT != 8080 {
		t.Errorf("PORTAL_PORT = %d, want 8080", Values.PORTAL_PORT)
	}
	if Values.BACKEND_TIMEOUT_MS != 12000 {
		t.Errorf("BACKEND_TIMEOUT_MS = %d", Values.BACKEND_TIMEOUT_MS)
	}
	if !Values.TRAFFIC_GEN_ENABLED {
		t.Error("TRAFFIC_GEN_ENABLED default = false, want true")
	}
	if Values.SLOW_QUERY_RATE != 0.10 {
		t.Errorf("SLOW_QUERY_RATE = %v", Values.SLOW_QUERY_RATE)
	}
	if Values.CORE_BANKING_URL != "http://localhost:9001" {
		t.Errorf("CORE_BANKING_URL = %q", Values.CORE_BANKING_URL)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("TRAFFIC_GEN_ENABLED", "false")
	t.Setenv("KYC_MATCH_RATE", "0.5")
	t.Setenv("REDIS_ADDR", "redis:6380")

	Load()

	if Values.SERVER_PORT != 9999 {
		t.Errorf("SERVER_PORT = %d, want 9999", Values.SERVER_PORT)
	}
	if Values.TRAFFIC_GEN_ENABLED {
		t.Error("TRAFFIC_GEN_ENABLED not overridden")
	}
	if Values.KYC_MATCH_RATE != 0.5 {
		t.Errorf("KYC_MATCH_RATE = %v", Values.KYC_MATCH_RATE)
	}
	if Values.REDIS_ADDR != "redis:6380" {
		t.Errorf("REDIS_ADDR = %q", Values.REDIS_ADDR)
	}
}

func TestLoadIgnoresUnparsable(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")

	Load()

	// Parse failures keep the previous value rather than zeroing the field.
	if Values.SERVER_PORT == 0 {
		t.Error("unparsable value zeroed the field")
	}
}
