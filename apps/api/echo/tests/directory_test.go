package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/escolaexpress/backend/apps/api/echo"
	"github.com/escolaexpress/backend/core/directory"
	"github.com/escolaexpress/backend/core/guardian"
)

func Test_directoryApi_guardianAds(t *testing.T) {
	resetDB(t)
	sch, master := createFamily(t) // region "Centro ⭐"
	token := getToken(t, master, ViewGuardian)

	if err := dRepo.SaveAds([]directory.Ad{
		{ID: "1", Title: "Natação", Region: "Centro ⭐"},
		{ID: "2", Title: "Reforço", Region: directory.RegionAll},
		{ID: "3", Title: "Judô", Region: "Uvaranas ⭐"},
	}); err != nil {
		t.Fatalf("SaveAds() failed: %v", err)
	}

	req, rec := newAuthRequest(http.MethodGet, "/v1/ads", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v", rec.Code)
	}
	var ads []directory.Ad
	if err := json.Unmarshal(rec.Body.Bytes(), &ads); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(ads) != 2 {
		t.Errorf("ads = %+v, want the regional ad plus the city-wide one", ads)
	}
	for _, ad := range ads {
		if ad.Region != sch.Region && ad.Region != directory.RegionAll {
			t.Errorf("leaked ad for region %q", ad.Region)
		}
	}
}

func Test_directoryApi_guardianTips(t *testing.T) {
	resetDB(t)
	_, master := createFamily(t)

	req, rec := newAuthRequest(http.MethodGet, "/v1/tips", getToken(t, master, ViewGuardian))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, directory.DefaultSecurityTips)}, rec)
}

func Test_directoryApi_admin(t *testing.T) {
	resetDB(t)
	_, master := createFamily(t)
	adminToken := getAdminToken(t)

	t.Run("guardian token refused", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/ads", getToken(t, master, ViewGuardian))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/admin/ads")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("curate ads", func(t *testing.T) {
		body := marchallList(t, directory.Ad{Title: "Natação", Region: "Centro ⭐"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/admin/ads", adminToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, body %s", rec.Code, rec.Body.String())
		}
		var ads []directory.Ad
		if err := json.Unmarshal(rec.Body.Bytes(), &ads); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(ads) != 1 || ads[0].ID == "" {
			t.Errorf("ads = %+v, want one with an id", ads)
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/admin/ads", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, ads)}, rec)
	})

	t.Run("curate partners", func(t *testing.T) {
		body := marchallList(t, directory.Partner{Name: "Papelaria Central", Region: "Centro ⭐"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/admin/partners", adminToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, body %s", rec.Code, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/admin/partners", adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v", rec.Code)
		}
		var partners []directory.Partner
		if err := json.Unmarshal(rec.Body.Bytes(), &partners); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(partners) != 1 || partners[0].Name != "Papelaria Central" {
			t.Errorf("partners = %+v", partners)
		}
	})

	t.Run("curate tips", func(t *testing.T) {
		body := marchallList(t, directory.SecurityTip{Text: "Estacione apenas nas vagas demarcadas.", Category: "safety"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/admin/tips", adminToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, body %s", rec.Code, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/admin/tips", adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v", rec.Code)
		}
		var tips []directory.SecurityTip
		if err := json.Unmarshal(rec.Body.Bytes(), &tips); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(tips) != 1 || tips[0].Text != "Estacione apenas nas vagas demarcadas." {
			t.Errorf("tips = %+v", tips)
		}
	})

	t.Run("reset wipes everything", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/reset", adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, body %s", rec.Code, rec.Body.String())
		}

		// collections are gone, guardians included
		if _, err := gRepo.GetGuardianByID(master.ID); err != guardian.ErrNotFound {
			t.Errorf("guardian survived the reset: %v", err)
		}
		schools, err := schRepo.QueryAllSchools()
		if err != nil {
			t.Fatalf("QueryAllSchools() failed: %v", err)
		}
		if len(schools) != 0 {
			t.Errorf("schools survived the reset: %+v", schools)
		}
	})
}
