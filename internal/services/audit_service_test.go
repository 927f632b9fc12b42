package services

import (
	"context"
	"testing"

	"expensehub/internal/models"
	"expensehub/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	tenant, user := testutil.CreateTestTenantWithOwner(t, db)

	svc.Log(context.Background(), tenant.ID, user.ID, "CREATE_EXPENSE", "expense", "e-1", "10.0.0.1",
		map[string]interface{}{"amount": 12.5})

	var entries []models.AuditLog
	if err := db.Find(&entries).Error; err != nil {
		t.Fatalf("failed to read audit log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.TenantID != tenant.ID || e.Action != "CREATE_EXPENSE" || e.ResourceID != "e-1" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Changes != `{"amount":12.5}` {
		t.Errorf("unexpected changes %s", e.Changes)
	}
}
