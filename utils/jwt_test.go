package utils

import (
	"reflect"
	"testing"
	"time"

	"hotelops/config"
)

func TestStaffTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	token, err := GenerateStaffToken("staff-1", []string{"folio:read", "folio:post"}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := ParseStaffToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "staff-1" {
		t.Fatalf("expected subject staff-1, got %s", claims.Subject)
	}
	if !reflect.DeepEqual(claims.Caps, []string{"folio:read", "folio:post"}) {
		t.Fatalf("unexpected caps %v", claims.Caps)
	}
}

func TestParseStaffTokenRejects(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	expired, err := GenerateStaffToken("staff-1", nil, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseStaffToken(expired); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}

	other, _ := GenerateStaffToken("staff-1", nil, time.Hour)
	config.AppConfig.JWTSecret = "rotated"
	if _, err := ParseStaffToken(other); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}

	config.AppConfig.JWTSecret = ""
	if _, err := GenerateStaffToken("staff-1", nil, time.Hour); err == nil {
		t.Fatalf("expected error without a configured secret")
	}
}

func TestParseLevel(t *testing.T) {
	if got := parseLevel("WARN", 0); got.String() != "warn" {
		t.Fatalf("expected warn, got %s", got)
	}
	if got := parseLevel("verbose", 0); got.String() != "info" {
		t.Fatalf("expected fallback info, got %s", got)
	}
}
