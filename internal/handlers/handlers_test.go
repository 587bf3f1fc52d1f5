package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"leave-manager/internal/config"
	"leave-manager/internal/database"
	"leave-manager/internal/export"
	"leave-manager/internal/repositories"
	"leave-manager/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewConnection(context.Background(), config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		DSN:             "file:" + filepath.Join(t.TempDir(), "api.db") + "?_foreign_keys=on&_busy_timeout=5000",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	userRepo := repositories.NewUserRepository(db)
	leaveRepo := repositories.NewLeaveRepository(db)
	h := NewAppHandler(
		services.NewUserService(userRepo, leaveRepo),
		services.NewLeaveService(leaveRepo),
		db,
	)

	r := gin.New()
	RegisterRoutes(r, h)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
	return out
}

func createUser(t *testing.T, r http.Handler, email string) float64 {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/adduser", map[string]string{
		"email": email, "password": "x", "name": "A",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create user: %d %s", w.Code, w.Body.String())
	}
	return decode(t, w)["id"].(float64)
}

func createLeave(t *testing.T, r http.Handler, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/addleave", body)
	if w.Code != http.StatusOK {
		t.Fatalf("create leave: %d %s", w.Code, w.Body.String())
	}
	return decode(t, w)
}

func TestUserRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	id := createUser(t, r, "a@b.com")

	w := doJSON(t, r, http.MethodGet, "/user/"+ftoa(id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get user: %d %s", w.Code, w.Body.String())
	}
	got := decode(t, w)
	if got["email"] != "a@b.com" || got["name"] != "A" || got["role"] != "employee" {
		t.Errorf("unexpected user %v", got)
	}
	if _, ok := got["password"]; ok {
		t.Error("password must not be serialized")
	}
	if len(got) != 4 {
		t.Errorf("expected exactly id/email/name/role, got %v", got)
	}
}

func TestCreateUserMissingField(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/adduser", map[string]string{"email": "a@b.com", "password": "x"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	msg, ok := decode(t, w)["message"].(map[string]interface{})
	if !ok || msg["name"] != msgMissing {
		t.Errorf("message = %v", decode(t, w)["message"])
	}

	w = doJSON(t, r, http.MethodGet, "/users", nil)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("user persisted despite validation error: %s", w.Body.String())
	}
}

func TestCreateUserEmptyBody(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/adduser", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	msg := decode(t, w)["message"].(map[string]interface{})
	for _, f := range []string{"email", "password", "name"} {
		if msg[f] != msgMissing {
			t.Errorf("field %s: %v", f, msg[f])
		}
	}
}

func TestCreateUserFromForm(t *testing.T) {
	r := newTestRouter(t)
	form := url.Values{"email": {"f@b.com"}, "password": {"x"}, "name": {"F"}, "role": {"admin"}}
	req := httptest.NewRequest(http.MethodPost, "/adduser", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
	if decode(t, w)["role"] != "admin" {
		t.Errorf("role = %v", decode(t, w)["role"])
	}
}

func TestCreateUserConstraints(t *testing.T) {
	r := newTestRouter(t)
	createUser(t, r, "a@b.com")

	w := doJSON(t, r, http.MethodPost, "/adduser", map[string]string{
		"email": "m@b.com", "password": "x", "name": "M", "role": "manager",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid role: status = %d %s", w.Code, w.Body.String())
	}
	if _, ok := decode(t, w)["message"].(map[string]interface{})["role"]; !ok {
		t.Errorf("role error not reported per field: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/adduser", map[string]string{
		"email": "a@b.com", "password": "x", "name": "Dup",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate email: status = %d", w.Code)
	}
}

func TestUserNotFound(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/user/999", "/user/abc", "/user/0"} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d", path, w.Code)
			continue
		}
		if decode(t, w)["message"] != "User not found" {
			t.Errorf("%s: body = %s", path, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodPut, "/user/999", map[string]string{"email": "e@b.com", "password": "p", "name": "n"})
	if w.Code != http.StatusNotFound {
		t.Errorf("put: status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/user/999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete: status = %d", w.Code)
	}
}

func TestUpdateUserFullReplace(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/adduser", map[string]string{
		"email": "a@b.com", "password": "x", "name": "A", "role": "admin",
	})
	id := decode(t, w)["id"].(float64)

	w = doJSON(t, r, http.MethodPut, "/user/"+ftoa(id), map[string]string{
		"email": "b@b.com", "password": "y", "name": "B",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("put: %d %s", w.Code, w.Body.String())
	}
	got := decode(t, doJSON(t, r, http.MethodGet, "/user/"+ftoa(id), nil))
	if got["role"] != "employee" || got["email"] != "b@b.com" {
		t.Errorf("after full replace: %v", got)
	}
}

func TestDeleteUserReturnsRowAndGuardsLeaves(t *testing.T) {
	r := newTestRouter(t)
	id := createUser(t, r, "a@b.com")
	leave := createLeave(t, r, map[string]interface{}{
		"date_from": "2024-01-01", "date_to": "2024-01-02", "reason": "r", "user_id": id,
	})

	w := doJSON(t, r, http.MethodDelete, "/user/"+ftoa(id), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("delete with leaves: status = %d", w.Code)
	}

	doJSON(t, r, http.MethodDelete, "/leave/"+ftoa(leave["id"].(float64)), nil)
	w = doJSON(t, r, http.MethodDelete, "/user/"+ftoa(id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	if decode(t, w)["email"] != "a@b.com" {
		t.Errorf("deleted body = %s", w.Body.String())
	}
	if w = doJSON(t, r, http.MethodGet, "/user/"+ftoa(id), nil); w.Code != http.StatusNotFound {
		t.Errorf("user still readable: %d", w.Code)
	}
}

func TestLeaveLifecycle(t *testing.T) {
	r := newTestRouter(t)
	uid := createUser(t, r, "a@b.com")

	// end before start is accepted
	leave := createLeave(t, r, map[string]interface{}{
		"date_from": "2024-01-10", "date_to": "2024-01-05", "reason": "trip", "user_id": uid,
	})
	if leave["status"] != "Pending" || leave["date_from"] != "2024-01-10" || leave["date_to"] != "2024-01-05" {
		t.Errorf("created leave = %v", leave)
	}
	path := "/leave/" + ftoa(leave["id"].(float64))

	w := doJSON(t, r, http.MethodPut, path, map[string]interface{}{
		"date_from": "2024-01-10", "date_to": "2024-01-12", "reason": "trip", "status": "Approved", "user_id": uid,
	})
	if w.Code != http.StatusOK || decode(t, w)["status"] != "Approved" {
		t.Fatalf("approve: %d %s", w.Code, w.Body.String())
	}

	// status omitted resets to Pending
	w = doJSON(t, r, http.MethodPut, path, map[string]interface{}{
		"date_from": "2024-01-10", "date_to": "2024-01-12", "reason": "trip", "user_id": uid,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("put: %d %s", w.Code, w.Body.String())
	}
	got := decode(t, doJSON(t, r, http.MethodGet, path, nil))
	if got["status"] != "Pending" || got["date_to"] != "2024-01-12" {
		t.Errorf("after full replace: %v", got)
	}

	var list []map[string]interface{}
	w = doJSON(t, r, http.MethodGet, "/user/"+ftoa(uid)+"/leaves", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Errorf("user leaves = %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, path, nil)
	if w.Code != http.StatusOK || decode(t, w)["reason"] != "trip" {
		t.Errorf("delete: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, path, nil)
	if w.Code != http.StatusNotFound || decode(t, w)["message"] != "Leave application not found" {
		t.Errorf("after delete: %d %s", w.Code, w.Body.String())
	}
}

func TestCreateLeaveValidation(t *testing.T) {
	r := newTestRouter(t)
	uid := createUser(t, r, "a@b.com")

	w := doJSON(t, r, http.MethodPost, "/addleave", map[string]interface{}{
		"date_from": "10.01.2024", "reason": "trip", "user_id": uid,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	msg := decode(t, w)["message"].(map[string]interface{})
	if msg["date_from"] != services.MsgInvalidDate || msg["date_to"] != msgMissing {
		t.Errorf("message = %v", msg)
	}

	w = doJSON(t, r, http.MethodPost, "/addleave", map[string]interface{}{
		"date_from": "2024-01-01", "date_to": "2024-01-02", "reason": "trip", "status": "Maybe", "user_id": uid,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid status: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/addleave", map[string]interface{}{
		"date_from": "2024-01-01", "date_to": "2024-01-02", "reason": "trip", "user_id": 999,
	})
	if w.Code != http.StatusConflict {
		t.Errorf("unknown user: %d %s", w.Code, w.Body.String())
	}
}

func TestListLeavesFilterAndExport(t *testing.T) {
	r := newTestRouter(t)
	a := createUser(t, r, "a@b.com")
	b := createUser(t, r, "b@b.com")
	for _, uid := range []float64{a, a, b} {
		createLeave(t, r, map[string]interface{}{
			"date_from": "2024-02-01", "date_to": "2024-02-02", "reason": "r", "user_id": uid,
		})
	}

	var list []map[string]interface{}
	w := doJSON(t, r, http.MethodGet, "/leaves?user_id="+ftoa(a), nil)
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 2 {
		t.Errorf("filtered list = %s", w.Body.String())
	}
	if w = doJSON(t, r, http.MethodGet, "/leaves?user_id=x", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad filter: %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/leaves/export", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != export.ContentType {
		t.Fatalf("export: %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("export is not a workbook: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(export.SheetName)
	if len(rows) != 4 {
		t.Errorf("export rows = %d, want 4", len(rows))
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	if w := doJSON(t, r, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("health: %d", w.Code)
	}
}

func ftoa(f float64) string {
	return strconv.FormatInt(int64(f), 10)
}
