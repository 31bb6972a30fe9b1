package token

import (
	"context"
	"testing"
	"time"
)

func TestIssueParseRoundTrip(t *testing.T) {
	m := New("test-secret", "equip-catalog", time.Minute)

	raw, issued, err := m.Issue(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parsed, err := m.Parse(context.Background(), raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Subject != "client-1" || parsed.JTI != issued.JTI {
		t.Fatalf("claims mismatch: %+v vs %+v", parsed, issued)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := New("secret-a", "equip-catalog", time.Minute)
	other := New("secret-b", "equip-catalog", time.Minute)

	raw, _, err := m.Issue(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Parse(context.Background(), raw); err == nil {
		t.Fatalf("token signed with another secret accepted")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	m := New("test-secret", "equip-catalog", -time.Minute)

	raw, _, err := m.Issue(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Parse(context.Background(), raw); err == nil {
		t.Fatalf("expired token accepted")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	m := New("test-secret", "equip-catalog", time.Minute)
	if _, err := m.Parse(context.Background(), "not-a-jwt"); err == nil {
		t.Fatalf("garbage token accepted")
	}
}
