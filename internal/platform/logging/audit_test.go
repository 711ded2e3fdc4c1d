package logging

import (
	"testing"
)

func TestLogAuditEvent(t *testing.T) {
	ctx, logs := observedContext()

	LogAuditEvent(ctx, "create", "a@x.com", "profile", "a@x.com", AuditSuccess, nil)

	entries := logs.FilterMessage("audit event").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	expected := map[string]string{
		"audit.action":        "create",
		"audit.actor":         "a@x.com",
		"audit.resource_type": "profile",
		"audit.resource_id":   "a@x.com",
		"audit.result":        "success",
	}
	for k, v := range expected {
		if fields[k] != v {
			t.Errorf("expected %s=%s, got %v", k, v, fields[k])
		}
	}
	if _, ok := fields["audit.details"]; ok {
		t.Error("expected no details field when details are nil")
	}
}

func TestLogAuditEventWithDetails(t *testing.T) {
	ctx, logs := observedContext()

	LogAuditEvent(ctx, "delete", "a@x.com", "profile", "a@x.com", AuditFailure,
		map[string]any{"error": "not_found"})

	fields := logs.All()[0].ContextMap()
	details, ok := fields["audit.details"].(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", fields["audit.details"])
	}
	if details["error"] != "not_found" {
		t.Fatalf("expected error not_found, got %v", details["error"])
	}
}
