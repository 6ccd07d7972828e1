// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/escrutinio/calc"
	"github.com/danielhkuo/escrutinio/models"
	"github.com/danielhkuo/escrutinio/testutil"
)

func getResults(h *ResultsHandler, slug string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("GET", "/results/"+slug, nil, nil)
	req.SetPathValue("slug", slug)
	w := httptest.NewRecorder()
	h.GetResults(w, req)
	return w
}

func TestGetResults(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	contests := NewContestHandler(conn, cfg)
	results := NewResultsHandler(conn, cfg)
	seedCatalog(t, conn)

	contestID, adminKey, shareSlug := testutil.CreateTestContest(t, conn, cfg, diputados())
	testutil.AssertStatus(t, uploadVotes(t, contests, contestID, adminKey, votesCSV), http.StatusOK)

	t.Run("before first calculation", func(t *testing.T) {
		w := getResults(results, shareSlug)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("unknown slug", func(t *testing.T) {
		w := getResults(results, "doesnotexist")
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	testutil.AssertStatus(t, calculate(t, contests, contestID, adminKey, ""), http.StatusOK)

	t.Run("after calculation", func(t *testing.T) {
		w := getResults(results, shareSlug)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PublicResultsResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.Year != 2023 || resp.Category != "nacional" || resp.Phase != models.PhaseGeneral {
			t.Errorf("Unexpected contest identity: %+v", resp)
		}
		if resp.Snapshot.ContestID != contestID {
			t.Errorf("Expected snapshot of %s, got %s", contestID, resp.Snapshot.ContestID)
		}
		if resp.Snapshot.Outcome.Assignment == nil || resp.Snapshot.Outcome.Assignment.TotalSeats() != 35 {
			t.Errorf("Expected 35 seats in the public snapshot, got %+v", resp.Snapshot.Outcome.Assignment)
		}
		if resp.Snapshot.Groups["501"] != "FRENTE A" {
			t.Errorf("Expected group names, got %v", resp.Snapshot.Groups)
		}
		if resp.Snapshot.Outcome.Others.Blank != 40 {
			t.Errorf("Expected blank votes carried, got %+v", resp.Snapshot.Outcome.Others)
		}
	})

	t.Run("latest calculation wins", func(t *testing.T) {
		testutil.AssertStatus(t, calculate(t, contests, contestID, adminKey, "?method=mayoria-simple"), http.StatusOK)

		w := getResults(results, shareSlug)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PublicResultsResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Snapshot.Method != string(calc.MethodMayoriaSimple) {
			t.Errorf("Expected the latest method, got %s", resp.Snapshot.Method)
		}
		if resp.Snapshot.Outcome.Assignment == nil || resp.Snapshot.Outcome.Assignment.Meta.Winner != "501" {
			t.Errorf("Expected 501 to win, got %+v", resp.Snapshot.Outcome.Assignment)
		}
	})
}

func TestListMethods(t *testing.T) {
	w := httptest.NewRecorder()
	ListMethods(w, testutil.MakeRequest("GET", "/methods", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var methods []calc.MethodInfo
	testutil.AssertJSON(t, w, &methods)
	if len(methods) != 5 {
		t.Fatalf("Expected 5 methods, got %d", len(methods))
	}
	if methods[0].Name != calc.MethodBalotaje {
		t.Errorf("Expected %s first, got %s", calc.MethodBalotaje, methods[0].Name)
	}
}
