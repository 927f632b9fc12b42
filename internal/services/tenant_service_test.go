package services

import (
	"context"
	"sync"
	"testing"

	"expensehub/internal/models"
	"expensehub/internal/testutil"
	"expensehub/internal/uuid"
)

func newTestTenantService(t *testing.T) (TenantServicer, func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewTenantService(db, NewMembershipService(db)), func() { testutil.TeardownTestDB(t, db) }
}

func TestCreateTenant(t *testing.T) {
	t.Run("creator_becomes_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		members := NewMembershipService(db)
		svc := NewTenantService(db, members)
		user := testutil.CreateTestUser(t, db)
		ctx := context.Background()

		tenant, err := svc.CreateTenant(ctx, user.ID, "  Household ", "")
		testutil.AssertNoError(t, err)
		if tenant.Name != "Household" {
			t.Errorf("expected trimmed name, got %q", tenant.Name)
		}
		if tenant.Plan != models.DefaultPlan {
			t.Errorf("expected default plan, got %q", tenant.Plan)
		}

		m, err := members.MembershipOf(ctx, tenant.ID, user.ID)
		testutil.AssertNoError(t, err)
		if m == nil || m.Role != models.RoleOwner {
			t.Fatalf("expected owner membership, got %+v", m)
		}
	})

	t.Run("plan_label_kept", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTenantService(db, NewMembershipService(db))
		user := testutil.CreateTestUser(t, db)

		tenant, err := svc.CreateTenant(context.Background(), user.ID, "Startup", "pro")
		testutil.AssertNoError(t, err)
		if tenant.Plan != "pro" {
			t.Errorf("expected plan pro, got %q", tenant.Plan)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		svc, teardown := newTestTenantService(t)
		defer teardown()

		_, err := svc.CreateTenant(context.Background(), uuid.New(), " ", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListUserTenants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTenantService(db, NewMembershipService(db))
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db)
	owned, err := svc.CreateTenant(ctx, user.ID, "Mine", "")
	testutil.AssertNoError(t, err)

	other, _ := testutil.CreateTestTenantWithOwner(t, db)
	_, err = svc.JoinTenant(ctx, user.ID, other.ID)
	testutil.AssertNoError(t, err)

	testutil.CreateTestTenantWithOwner(t, db)

	tenants, err := svc.ListUserTenants(ctx, user.ID)
	testutil.AssertNoError(t, err)
	if len(tenants) != 2 {
		t.Fatalf("expected 2 tenants, got %d", len(tenants))
	}
	roles := map[string]models.Role{}
	for _, tw := range tenants {
		roles[tw.ID] = tw.Role
	}
	if roles[owned.ID] != models.RoleOwner || roles[other.ID] != models.RoleMember {
		t.Errorf("unexpected roles %v", roles)
	}

	t.Run("no_tenants", func(t *testing.T) {
		loner := testutil.CreateTestUser(t, db)
		tenants, err := svc.ListUserTenants(ctx, loner.ID)
		testutil.AssertNoError(t, err)
		if tenants == nil || len(tenants) != 0 {
			t.Errorf("expected empty non-nil list, got %v", tenants)
		}
	})
}

func TestJoinTenant(t *testing.T) {
	t.Run("joins_as_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		members := NewMembershipService(db)
		svc := NewTenantService(db, members)
		tenant, _ := testutil.CreateTestTenantWithOwner(t, db)
		user := testutil.CreateTestUser(t, db)
		ctx := context.Background()

		joined, err := svc.JoinTenant(ctx, user.ID, tenant.ID)
		testutil.AssertNoError(t, err)
		if joined.ID != tenant.ID {
			t.Errorf("expected tenant %s, got %s", tenant.ID, joined.ID)
		}

		m, _ := members.MembershipOf(ctx, tenant.ID, user.ID)
		if m == nil || m.Role != models.RoleMember {
			t.Fatalf("expected member role, got %+v", m)
		}
	})

	t.Run("unknown_tenant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTenantService(db, NewMembershipService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.JoinTenant(context.Background(), user.ID, uuid.New())
		testutil.AssertAppError(t, err, "TENANT_NOT_FOUND")

		_, err = svc.JoinTenant(context.Background(), user.ID, "garbage")
		testutil.AssertAppError(t, err, "TENANT_NOT_FOUND")
	})

	t.Run("already_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTenantService(db, NewMembershipService(db))
		tenant, owner := testutil.CreateTestTenantWithOwner(t, db)

		_, err := svc.JoinTenant(context.Background(), owner.ID, tenant.ID)
		testutil.AssertAppError(t, err, "ALREADY_MEMBER")
	})

	t.Run("concurrent_joins_create_one_membership", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTenantService(db, NewMembershipService(db))
		tenant, _ := testutil.CreateTestTenantWithOwner(t, db)
		user := testutil.CreateTestUser(t, db)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.JoinTenant(context.Background(), user.ID, tenant.ID)
			}(i)
		}
		wg.Wait()

		failures := 0
		for _, err := range errs {
			if err != nil {
				testutil.AssertAppError(t, err, "ALREADY_MEMBER")
				failures++
			}
		}
		if failures != 1 {
			t.Errorf("expected exactly one ALREADY_MEMBER, got %d", failures)
		}

		var count int64
		db.Model(&models.Membership{}).Where("tenant_id = ? AND user_id = ?", tenant.ID, user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 membership, got %d", count)
		}
	})
}

func TestListMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTenantService(db, NewMembershipService(db))
	ctx := context.Background()

	tenant, owner := testutil.CreateTestTenantWithOwner(t, db)
	member := testutil.CreateTestUser(t, db)
	testutil.CreateTestMembership(t, db, tenant.ID, member.ID, models.RoleMember)

	t.Run("member_sees_everyone", func(t *testing.T) {
		members, err := svc.ListMembers(ctx, member.ID, tenant.ID)
		testutil.AssertNoError(t, err)
		if len(members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(members))
		}
		first := members[0]
		if first.UserID != owner.ID || first.Role != models.RoleOwner {
			t.Errorf("expected owner first, got %+v", first)
		}
		if first.UserName == nil || *first.UserName != owner.Name {
			t.Errorf("expected user name %q, got %v", owner.Name, first.UserName)
		}
		if first.UserEmail == nil || *first.UserEmail != owner.Email {
			t.Errorf("expected user email %q, got %v", owner.Email, first.UserEmail)
		}
	})

	t.Run("outsider_denied", func(t *testing.T) {
		outsider := testutil.CreateTestUser(t, db)
		_, err := svc.ListMembers(ctx, outsider.ID, tenant.ID)
		testutil.AssertAppError(t, err, "TENANT_ACCESS_DENIED")
	})
}

func TestDeleteTenant(t *testing.T) {
	t.Run("owner_deletes_everything", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTenantService(db, NewMembershipService(db))
		tenant, owner := testutil.CreateTestTenantWithOwner(t, db)
		category := testutil.CreateTestCategory(t, db, tenant.ID, models.CategoryTypeExpense)
		group := testutil.CreateTestGroup(t, db, tenant.ID, models.GroupTypeFamily)
		testutil.CreateTestExpense(t, db, tenant.ID, owner.ID, 10, testutil.InGroup(group.ID), testutil.InCategory(category.ID))
		testutil.CreateTestExpense(t, db, tenant.ID, owner.ID, 5)

		survivor, survivorOwner := testutil.CreateTestTenantWithOwner(t, db)
		testutil.CreateTestExpense(t, db, survivor.ID, survivorOwner.ID, 7)

		err := svc.DeleteTenant(context.Background(), owner.ID, tenant.ID)
		testutil.AssertNoError(t, err)

		for _, model := range []interface{}{&models.Expense{}, &models.Group{}, &models.Category{}, &models.Membership{}} {
			var count int64
			db.Model(model).Where("tenant_id = ?", tenant.ID).Count(&count)
			if count != 0 {
				t.Errorf("expected no %T rows left, got %d", model, count)
			}
		}
		var tenants int64
		db.Model(&models.Tenant{}).Where("id = ?", tenant.ID).Count(&tenants)
		if tenants != 0 {
			t.Error("expected tenant row to be deleted")
		}

		var kept int64
		db.Model(&models.Expense{}).Where("tenant_id = ?", survivor.ID).Count(&kept)
		if kept != 1 {
			t.Errorf("expected other tenant's expense to survive, got %d", kept)
		}
	})

	t.Run("member_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTenantService(db, NewMembershipService(db))
		tenant, _ := testutil.CreateTestTenantWithOwner(t, db)
		member := testutil.CreateTestUser(t, db)
		testutil.CreateTestMembership(t, db, tenant.ID, member.ID, models.RoleAdmin)

		err := svc.DeleteTenant(context.Background(), member.ID, tenant.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("outsider_denied", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTenantService(db, NewMembershipService(db))
		tenant, _ := testutil.CreateTestTenantWithOwner(t, db)
		outsider := testutil.CreateTestUser(t, db)

		err := svc.DeleteTenant(context.Background(), outsider.ID, tenant.ID)
		testutil.AssertAppError(t, err, "TENANT_ACCESS_DENIED")
	})
}
