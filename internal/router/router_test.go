package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"expensehub/internal/auth"
	"expensehub/internal/logger"
	"expensehub/internal/metrics"
	"expensehub/internal/models"
	"expensehub/internal/testutil"
	"expensehub/internal/validator"
)

// testApp holds the full application stack for flow tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	tokens := auth.NewTokenManager("router-test-secret", time.Hour)
	router := New(NewDeps(db, tokens, metrics.New(), []string{"*"}))
	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token, tenantID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if tenantID != "" {
		req.Header.Set("X-Tenant-ID", tenantID)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// expectStatus fails the test when rec does not carry want.
func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// registerUser registers a user with a first tenant and returns the token, user ID and tenant ID.
func (app *testApp) registerUser(t *testing.T, email, tenantName string) (token, userID, tenantID string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Test User","email":%q,"password":"pw","tenant_name":%q}`, email, tenantName)
	rec := app.request("POST", "/api/v1/auth/register", body, "", "")
	expectStatus(t, rec, http.StatusCreated)

	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	tenant := result["tenant"].(map[string]interface{})
	return result["access_token"].(string), user["id"].(string), tenant["id"].(string)
}

// create posts body and returns the id of the object under key.
func (app *testApp) create(t *testing.T, path, body, token, tenantID, key string) string {
	t.Helper()
	rec := app.request("POST", path, body, token, tenantID)
	expectStatus(t, rec, http.StatusCreated)
	return parseJSON(t, rec)[key].(map[string]interface{})["id"].(string)
}

func (app *testApp) getExpense(t *testing.T, id, token, tenantID string) (map[string]interface{}, int) {
	t.Helper()
	rec := app.request("GET", "/api/v1/expenses/"+id, "", token, tenantID)
	if rec.Code != http.StatusOK {
		return nil, rec.Code
	}
	return parseJSON(t, rec)["expense"].(map[string]interface{}), rec.Code
}

func TestHealthAndMetrics(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/health", "", "", "")
	expectStatus(t, rec, http.StatusOK)

	rec = app.request("GET", "/metrics", "", "", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "expensehub_http_requests_total") {
		t.Error("expected request counter in metrics output")
	}
}

func TestAuthFlow_RegisterLoginRoundTrip(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/auth/register", `{"name":"Ann","email":"a@b.com","password":"pw"}`, "", "")
	expectStatus(t, rec, http.StatusCreated)
	registered := parseJSON(t, rec)["user"].(map[string]interface{})["id"].(string)

	rec = app.request("POST", "/api/v1/auth/login", `{"email":"a@b.com","password":"pw"}`, "", "")
	expectStatus(t, rec, http.StatusOK)
	token := parseJSON(t, rec)["access_token"].(string)

	rec = app.request("GET", "/api/v1/auth/me", "", token, "")
	expectStatus(t, rec, http.StatusOK)
	me := parseJSON(t, rec)["user"].(map[string]interface{})
	if me["id"] != registered {
		t.Errorf("token resolves to %v, registered %s", me["id"], registered)
	}

	rec = app.request("POST", "/api/v1/auth/login", `{"email":"a@b.com","password":"nope"}`, "", "")
	expectStatus(t, rec, http.StatusUnauthorized)
	if code := errorCode(t, rec); code != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %s", code)
	}

	rec = app.request("POST", "/api/v1/auth/login", `{"email":"A@B.com","password":"pw"}`, "", "")
	expectStatus(t, rec, http.StatusUnauthorized)

	rec = app.request("POST", "/api/v1/auth/register", `{"name":"Ann","email":"a@b.com","password":"pw"}`, "", "")
	expectStatus(t, rec, http.StatusConflict)

	rec = app.request("GET", "/api/v1/auth/me", "", "not-a-token", "")
	expectStatus(t, rec, http.StatusUnauthorized)
	if code := errorCode(t, rec); code != "INVALID_TOKEN" {
		t.Errorf("expected INVALID_TOKEN, got %s", code)
	}
}

func TestTenantResolution(t *testing.T) {
	app := setupApp(t)
	tokenA, _, tenantA := app.registerUser(t, "a@test.com", "Alpha")
	tokenB, _, tenantB := app.registerUser(t, "b@test.com", "Beta")

	t.Run("missing header", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/categories", "", tokenA, "")
		expectStatus(t, rec, http.StatusBadRequest)
		if code := errorCode(t, rec); code != "MISSING_TENANT_SELECTOR" {
			t.Errorf("expected MISSING_TENANT_SELECTOR, got %s", code)
		}
	})

	t.Run("unknown tenant", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/categories", "", tokenA, "0190a1b2-c3d4-7e5f-8a6b-7c8d9e0f1a2b")
		expectStatus(t, rec, http.StatusNotFound)
		if code := errorCode(t, rec); code != "TENANT_NOT_FOUND" {
			t.Errorf("expected TENANT_NOT_FOUND, got %s", code)
		}
	})

	t.Run("tenant of someone else", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/categories", "", tokenA, tenantB)
		expectStatus(t, rec, http.StatusForbidden)
		if code := errorCode(t, rec); code != "TENANT_ACCESS_DENIED" {
			t.Errorf("expected TENANT_ACCESS_DENIED, got %s", code)
		}
	})

	t.Run("auth runs before tenant resolution", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/categories", "", "", tenantA)
		expectStatus(t, rec, http.StatusUnauthorized)
	})

	t.Run("own tenant", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/categories", "", tokenB, tenantB)
		expectStatus(t, rec, http.StatusOK)
	})
}

func TestTenantIsolation(t *testing.T) {
	app := setupApp(t)
	tokenA, _, tenantA := app.registerUser(t, "a@test.com", "Alpha")
	tokenB, _, tenantB := app.registerUser(t, "b@test.com", "Beta")

	categoryA := app.create(t, "/api/v1/categories", `{"name":"Food"}`, tokenA, tenantA, "category")
	groupA := app.create(t, "/api/v1/groups", `{"name":"Trip","type":"trip"}`, tokenA, tenantA, "group")
	expenseA := app.create(t, "/api/v1/expenses", `{"amount":10}`, tokenA, tenantA, "expense")

	for _, path := range []string{
		"/api/v1/categories/" + categoryA,
		"/api/v1/groups/" + groupA,
		"/api/v1/expenses/" + expenseA,
	} {
		for _, method := range []string{"GET", "PUT", "DELETE"} {
			body := ""
			if method == "PUT" {
				body = `{"name":"x"}`
				if strings.Contains(path, "expenses") {
					body = `{"amount":1}`
				}
			}
			rec := app.request(method, path, body, tokenB, tenantB)
			if rec.Code != http.StatusNotFound {
				t.Errorf("%s %s from another tenant: expected 404, got %d", method, path, rec.Code)
			}
		}
	}

	// Cross-tenant references are rejected as not found.
	rec := app.request("POST", "/api/v1/expenses", `{"amount":5,"group_id":"`+groupA+`"}`, tokenB, tenantB)
	expectStatus(t, rec, http.StatusNotFound)
	if code := errorCode(t, rec); code != "GROUP_NOT_FOUND" {
		t.Errorf("expected GROUP_NOT_FOUND, got %s", code)
	}
	rec = app.request("POST", "/api/v1/expenses", `{"amount":5,"category_id":"`+categoryA+`"}`, tokenB, tenantB)
	expectStatus(t, rec, http.StatusNotFound)

	// Lists only show the caller's tenant.
	rec = app.request("GET", "/api/v1/expenses", "", tokenB, tenantB)
	expectStatus(t, rec, http.StatusOK)
	if total := parseJSON(t, rec)["total_items"]; total != float64(0) {
		t.Errorf("expected no expenses in tenant B, got %v", total)
	}

	// Tenant A's data is untouched.
	if _, code := app.getExpense(t, expenseA, tokenA, tenantA); code != http.StatusOK {
		t.Errorf("expected tenant A expense to survive, got %d", code)
	}
}

func TestDeleteCascades(t *testing.T) {
	app := setupApp(t)
	token, _, tenantID := app.registerUser(t, "owner@test.com", "Home")

	categoryID := app.create(t, "/api/v1/categories", `{"name":"Food"}`, token, tenantID, "category")
	groupID := app.create(t, "/api/v1/groups", `{"name":"Family"}`, token, tenantID, "group")
	inGroup := app.create(t, "/api/v1/expenses",
		`{"amount":30,"group_id":"`+groupID+`","category_id":"`+categoryID+`"}`, token, tenantID, "expense")
	personal := app.create(t, "/api/v1/expenses",
		`{"amount":12,"category_id":"`+categoryID+`"}`, token, tenantID, "expense")

	t.Run("deleting a category clears references", func(t *testing.T) {
		rec := app.request("DELETE", "/api/v1/categories/"+categoryID, "", token, tenantID)
		expectStatus(t, rec, http.StatusNoContent)

		expense, code := app.getExpense(t, personal, token, tenantID)
		if code != http.StatusOK {
			t.Fatalf("expected expense to survive, got %d", code)
		}
		if expense["category_id"] != nil || expense["category_name"] != nil {
			t.Errorf("expected cleared category, got %v / %v", expense["category_id"], expense["category_name"])
		}
	})

	t.Run("deleting a group deletes its expenses", func(t *testing.T) {
		rec := app.request("DELETE", "/api/v1/groups/"+groupID, "", token, tenantID)
		expectStatus(t, rec, http.StatusNoContent)

		if _, code := app.getExpense(t, inGroup, token, tenantID); code != http.StatusNotFound {
			t.Errorf("expected group expense to be gone, got %d", code)
		}
		if _, code := app.getExpense(t, personal, token, tenantID); code != http.StatusOK {
			t.Errorf("expected personal expense to remain, got %d", code)
		}
	})
}

func TestExpenseFlow_PartialUpdate(t *testing.T) {
	app := setupApp(t)
	token, userID, tenantID := app.registerUser(t, "p@test.com", "Home")
	groupID := app.create(t, "/api/v1/groups", `{"name":"Family"}`, token, tenantID, "group")

	id := app.create(t, "/api/v1/expenses",
		`{"amount":20,"description":"lunch","date":"2024-02-20","group_id":"`+groupID+`"}`, token, tenantID, "expense")

	rec := app.request("PUT", "/api/v1/expenses/"+id, `{"amount":25}`, token, tenantID)
	expectStatus(t, rec, http.StatusOK)

	expense, _ := app.getExpense(t, id, token, tenantID)
	if expense["amount"] != float64(25) {
		t.Errorf("expected amount 25, got %v", expense["amount"])
	}
	if expense["description"] != "lunch" {
		t.Errorf("expected description to stay lunch, got %v", expense["description"])
	}
	if expense["date"] != "2024-02-20" {
		t.Errorf("expected date to stay 2024-02-20, got %v", expense["date"])
	}
	if expense["group_name"] != "Family" || expense["user_name"] != "Test User" || expense["user_id"] != userID {
		t.Errorf("unexpected joined names %v", expense)
	}

	rec = app.request("PUT", "/api/v1/expenses/"+id, `{"group_id":null,"description":null}`, token, tenantID)
	expectStatus(t, rec, http.StatusOK)
	expense, _ = app.getExpense(t, id, token, tenantID)
	if expense["group_id"] != nil || expense["description"] != nil {
		t.Errorf("expected cleared group and description, got %v", expense)
	}

	rec = app.request("PUT", "/api/v1/expenses/"+id, `{"amount":null}`, token, tenantID)
	expectStatus(t, rec, http.StatusBadRequest)

	rec = app.request("GET", "/api/v1/expenses?personal=true", "", token, tenantID)
	expectStatus(t, rec, http.StatusOK)
	if total := parseJSON(t, rec)["total_items"]; total != float64(1) {
		t.Errorf("expected the expense to be personal now, got %v", total)
	}
}

func TestDashboardFlow(t *testing.T) {
	app := setupApp(t)
	token, _, tenantID := app.registerUser(t, "d@test.com", "Home")

	categoryID := app.create(t, "/api/v1/categories", `{"name":"Food"}`, token, tenantID, "category")
	groupID := app.create(t, "/api/v1/groups", `{"name":"Trip","type":"trip"}`, token, tenantID, "group")
	app.create(t, "/api/v1/expenses", `{"amount":40,"category_id":"`+categoryID+`"}`, token, tenantID, "expense")
	app.create(t, "/api/v1/expenses", `{"amount":60,"group_id":"`+groupID+`"}`, token, tenantID, "expense")
	app.create(t, "/api/v1/expenses", `{"amount":7,"date":"2001-01-01"}`, token, tenantID, "expense")

	rec := app.request("GET", "/api/v1/dashboard/stats", "", token, tenantID)
	expectStatus(t, rec, http.StatusOK)
	stats := parseJSON(t, rec)

	total := stats["total"].(float64)
	personal := stats["personal_total"].(float64)
	group := stats["group_total"].(float64)
	if total != 107 || personal != 47 || group != 60 {
		t.Errorf("unexpected totals total=%v personal=%v group=%v", total, personal, group)
	}
	if personal+group != total {
		t.Errorf("personal + group must equal total")
	}
	if stats["current_month_total"] != float64(100) {
		t.Errorf("expected current month 100, got %v", stats["current_month_total"])
	}

	byCategory := stats["by_category"].([]interface{})
	if len(byCategory) != 1 || byCategory[0].(map[string]interface{})["amount"] != float64(40) {
		t.Errorf("unexpected by_category %v", byCategory)
	}

	trend := stats["monthly_trend"].([]interface{})
	if len(trend) != 6 {
		t.Fatalf("expected 6 trend buckets, got %d", len(trend))
	}
	last := trend[5].(map[string]interface{})
	if last["month"] != time.Now().Month().String()[:3] || last["amount"] != float64(100) {
		t.Errorf("unexpected current bucket %v", last)
	}
}

func TestTenantFlow_JoinAndDelete(t *testing.T) {
	app := setupApp(t)
	ownerToken, _, tenantID := app.registerUser(t, "owner@test.com", "Shared")
	memberToken, _, _ := app.registerUser(t, "member@test.com", "Own")

	rec := app.request("POST", "/api/v1/tenants/join", `{"tenant_id":"`+tenantID+`"}`, memberToken, "")
	expectStatus(t, rec, http.StatusOK)

	rec = app.request("GET", "/api/v1/tenants", "", memberToken, "")
	expectStatus(t, rec, http.StatusOK)
	if n := len(parseJSON(t, rec)["tenants"].([]interface{})); n != 2 {
		t.Errorf("expected member in 2 tenants, got %d", n)
	}

	rec = app.request("GET", "/api/v1/tenants/"+tenantID+"/users", "", memberToken, "")
	expectStatus(t, rec, http.StatusOK)
	if n := len(parseJSON(t, rec)["members"].([]interface{})); n != 2 {
		t.Errorf("expected 2 members, got %d", n)
	}

	// Members share the tenant's data.
	app.create(t, "/api/v1/expenses", `{"amount":3}`, memberToken, tenantID, "expense")

	rec = app.request("DELETE", "/api/v1/tenants/"+tenantID, "", memberToken, "")
	expectStatus(t, rec, http.StatusForbidden)

	rec = app.request("DELETE", "/api/v1/tenants/"+tenantID, "", ownerToken, "")
	expectStatus(t, rec, http.StatusNoContent)

	rec = app.request("GET", "/api/v1/expenses", "", memberToken, tenantID)
	expectStatus(t, rec, http.StatusNotFound)

	var remaining int64
	app.DB.Model(&models.Expense{}).Where("tenant_id = ?", tenantID).Count(&remaining)
	if remaining != 0 {
		t.Errorf("expected tenant expenses to be deleted, found %d", remaining)
	}
}

func TestTenantFlow_ConcurrentJoin(t *testing.T) {
	app := setupApp(t)
	_, _, tenantID := app.registerUser(t, "owner@test.com", "Shared")
	token, _, _ := app.registerUser(t, "joiner@test.com", "Own")

	const attempts = 5
	codes := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = app.request("POST", "/api/v1/tenants/join", `{"tenant_id":"`+tenantID+`"}`, token, "").Code
		}(i)
	}
	wg.Wait()

	ok, conflict := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
			conflict++
		}
	}
	if ok != 1 || conflict != attempts-1 {
		t.Errorf("expected one join and %d conflicts, got codes %v", attempts-1, codes)
	}

	var rows int64
	app.DB.Model(&models.Membership{}).Where("tenant_id = ?", tenantID).Count(&rows)
	if rows != 2 {
		t.Errorf("expected owner plus one member, got %d memberships", rows)
	}
}
