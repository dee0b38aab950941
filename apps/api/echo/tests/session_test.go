package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/escolaexpress/backend/apps/api/echo"
	"github.com/escolaexpress/backend/core/guardian"
	testutil "github.com/escolaexpress/backend/tests"
)

func Test_sessionApi_enterAdmin(t *testing.T) {
	resetDB(t)

	t.Run("wrong code", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"access_code": "000000"})
		req, rec := newRequest(http.MethodPost, "/v1/session/admin", body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("missing code", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/session/admin", marchallObj(t, map[string]string{}))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v, want 400", rec.Code)
		}
	})

	t.Run("right code opens the admin portal", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"access_code": adminAccessCode})
		req, rec := newRequest(http.MethodPost, "/v1/session/admin", body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, body %s", rec.Code, rec.Body.String())
		}
		var res struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decoding response: %v", err)
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/admin/partners", res.Token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("admin token refused: code = %v", rec.Code)
		}
	})
}

func Test_sessionApi_switchRole(t *testing.T) {
	resetDB(t)
	sch, master := createFamily(t)

	t.Run("master toggles to operator and back", func(t *testing.T) {
		token := getToken(t, master, ViewGuardian)

		var res struct {
			Token string `json:"token"`
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/session/switch", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		operatorToken := res.Token

		// operator routes open, guardian routes close
		req, rec = newAuthRequest(http.MethodGet, "/v1/queue", operatorToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET /v1/queue with switched token: code = %v", rec.Code)
		}
		req, rec = newAuthRequest(http.MethodGet, "/v1/me", operatorToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("GET /v1/me with operator token: code = %v, want 403", rec.Code)
		}

		// and back again
		req, rec = newAuthRequest(http.MethodPost, "/v1/session/switch", operatorToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("switch back: code = %v", rec.Code)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		req, rec = newAuthRequest(http.MethodGet, "/v1/me", res.Token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET /v1/me after switching back: code = %v", rec.Code)
		}
	})

	t.Run("authorized adult cannot switch", func(t *testing.T) {
		vo := testutil.CreateGuardian(t, gRepo, sch.ID, "Carlos Silva", "15350946056",
			guardian.RelationshipGrandparent, "654321",
			append([]guardian.StudentInfo(nil), master.Students...))

		req, rec := newAuthRequest(http.MethodPost, "/v1/session/switch", getToken(t, vo, ViewGuardian))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %v, want 403; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/session/switch")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})
}
