package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cattle-records/internal/router"
)

type user struct {
	id   string
	role string
}

var (
	anonymous = user{}
	worker    = user{id: "worker-1", role: "worker"}
	admin     = user{id: "admin-1", role: "admin"}
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Now: func() time.Time { return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC) },
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_BirthFlow(t *testing.T) {
	ts := newServer(t)

	// 1) Sin identidad no hay API
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals", anonymous, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 anonymous, got %d", st)
		}
	}

	// 2) Worker da de alta la vaca
	cowID := createID(t, ts.URL, "/animals", worker, map[string]any{
		"tag":           "cow-1",
		"gender":        "female",
		"breed":         "Angus",
		"date_of_birth": "2020-03-10",
	})

	// 3) Caravana repetida (normalizada) => 409
	{
		st, body := doReq(t, ts.URL, "POST", "/animals", worker, map[string]any{
			"tag":           " COW-1",
			"gender":        "female",
			"breed":         "Angus",
			"date_of_birth": "2021-01-01",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate tag, got %d body=%s", st, string(body))
		}
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &e)
		if e.Error != "duplicate_key" {
			t.Fatalf("expected duplicate_key, got %q", e.Error)
		}
	}

	// 4) Ciclo con preñez confirmada
	eventID := createID(t, ts.URL, "/reproduction", worker, map[string]any{
		"mother_id":                cowID,
		"mating_date":              "2023-09-01",
		"pregnancy_confirmed_date": "2023-11-01",
		"expected_due_date":        "2024-06-10",
	})

	// 5) Parto con dos crías
	{
		st, body := doReq(t, ts.URL, "POST", "/reproduction/"+eventID+"/birth", worker, map[string]any{
			"birth_date":       "2024-06-08",
			"number_of_calves": 2,
			"calves": []map[string]any{
				{"gender": "male", "tag": "calf-1"},
				{"gender": "female", "tag": "calf-2"},
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 birth, got %d body=%s", st, string(body))
		}
		var ev struct {
			State       string `json:"state"`
			CalfDetails []struct {
				Tag string `json:"tag"`
			} `json:"calf_details"`
		}
		_ = json.Unmarshal(body, &ev)
		if ev.State != "closed" || len(ev.CalfDetails) != 2 {
			t.Fatalf("unexpected event after birth: %s", string(body))
		}
	}

	// 6) Segundo parto => 409
	{
		st, body := doReq(t, ts.URL, "POST", "/reproduction/"+eventID+"/birth", worker, map[string]any{
			"birth_date":       "2024-06-09",
			"number_of_calves": 1,
			"calves":           []map[string]any{{"gender": "male", "tag": "calf-3"}},
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 second birth, got %d body=%s", st, string(body))
		}
	}

	// 7) Crías visibles como hijas de la madre
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+cowID+"/offspring", worker, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 offspring, got %d body=%s", st, string(body))
		}
		var kids []map[string]any
		_ = json.Unmarshal(body, &kids)
		if len(kids) != 2 {
			t.Fatalf("expected 2 offspring, got %d body=%s", len(kids), string(body))
		}
	}

	// 8) Baja: worker no puede, admin choca con la historia
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/animals/"+cowID, worker, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 retire by worker, got %d", st)
		}
		st, body := doReq(t, ts.URL, "DELETE", "/animals/"+cowID, admin, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 retire with history, got %d body=%s", st, string(body))
		}
	}

	// 9) Dashboard
	{
		st, body := doReq(t, ts.URL, "GET", "/reports/dashboard?as_of=2024-06-15", worker, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
		}
		var d struct {
			Totals struct {
				All    int `json:"all"`
				Active int `json:"active"`
			} `json:"totals"`
			Pregnant       int `json:"pregnant"`
			BirthsThisYear int `json:"births_this_year"`
		}
		_ = json.Unmarshal(body, &d)
		if d.Totals.All != 3 || d.Totals.Active != 3 {
			t.Fatalf("unexpected totals: %s", string(body))
		}
		if d.Pregnant != 0 || d.BirthsThisYear != 1 {
			t.Fatalf("unexpected reproduction counts: %s", string(body))
		}
	}

	// 10) Métricas del parto
	{
		st, body := doReq(t, ts.URL, "GET", "/metrics", anonymous, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 metrics, got %d", st)
		}
		if !strings.Contains(string(body), "cattle_births_recorded_total 1") {
			t.Fatalf("births counter missing from metrics")
		}
		if !strings.Contains(string(body), "cattle_calves_registered_total 2") {
			t.Fatalf("calves counter missing from metrics")
		}
	}
}

func TestHTTP_StatusChange_AdminOnlyAndTerminal(t *testing.T) {
	ts := newServer(t)

	steerID := createID(t, ts.URL, "/animals", worker, map[string]any{
		"tag":           "steer-1",
		"gender":        "male",
		"breed":         "Hereford",
		"date_of_birth": "2022-01-01",
	})

	st, _ := doReq(t, ts.URL, "POST", "/animals/"+steerID+"/status", worker, map[string]any{"status": "sold"})
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 status change by worker, got %d", st)
	}
	st, body := doReq(t, ts.URL, "POST", "/animals/"+steerID+"/status", admin, map[string]any{"status": "sold"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 sold, got %d body=%s", st, string(body))
	}
	st, _ = doReq(t, ts.URL, "POST", "/animals/"+steerID+"/status", admin, map[string]any{"status": "active"})
	if st != http.StatusConflict && st != http.StatusBadRequest {
		t.Fatalf("expected sold to be terminal, got %d", st)
	}
}

func TestHTTP_Validation(t *testing.T) {
	ts := newServer(t)

	tests := []struct {
		name string
		path string
		body any
	}{
		{"bad gender", "/animals", map[string]any{"tag": "x-1", "gender": "other", "breed": "Angus", "date_of_birth": "2020-01-01"}},
		{"bad date", "/animals", map[string]any{"tag": "x-2", "gender": "male", "breed": "Angus", "date_of_birth": "01/02/2020"}},
		{"unknown field", "/animals", map[string]any{"tag": "x-3", "colour": "red"}},
		{"missing mother", "/reproduction", map[string]any{"method": "natural"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "POST", tc.path, worker, tc.body)
			if st != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", st, string(body))
			}
		})
	}

	st, _ := doReq(t, ts.URL, "GET", "/reports/monthly?entity=animal&field=weight&year=2024", worker, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown monthly field, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "GET", "/animals/does-not-exist", worker, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
}

func TestHTTP_Reports_DefaultAsOfIsToday(t *testing.T) {
	ts := newServer(t)

	cowID := createID(t, ts.URL, "/animals", worker, map[string]any{
		"tag":           "cow-7",
		"gender":        "female",
		"breed":         "Angus",
		"date_of_birth": "2020-03-10",
	})
	// vence hoy según el reloj del server (2024-06-15 09:00)
	{
		st, body := doReq(t, ts.URL, "POST", "/vaccinations", worker, map[string]any{
			"animal_id":      cowID,
			"vaccine_name":   "Aftosa",
			"injection_date": "2024-01-15",
			"next_due_date":  "2024-06-15",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 vaccination, got %d body=%s", st, string(body))
		}
		var v struct {
			CreatedAt time.Time `json:"created_at"`
		}
		_ = json.Unmarshal(body, &v)
		if !v.CreatedAt.Equal(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected created_at from router clock, got %s", v.CreatedAt)
		}
	}

	count := func(path string) int {
		t.Helper()
		st, body := doReq(t, ts.URL, "GET", path, worker, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 %s, got %d body=%s", path, st, string(body))
		}
		var items []map[string]any
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("decode %s: %v body=%s", path, err, string(body))
		}
		return len(items)
	}

	for _, suffix := range []string{"", "?as_of=2024-06-15"} {
		if n := count("/reports/vaccinations/overdue" + suffix); n != 0 {
			t.Fatalf("overdue%s: due today must not be overdue, got %d", suffix, n)
		}
		if n := count("/reports/vaccinations/upcoming" + suffix); n != 1 {
			t.Fatalf("upcoming%s: expected 1, got %d", suffix, n)
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/reports/dashboard", worker, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
	}
	var d struct {
		OverdueVaccinations  int `json:"overdue_vaccinations"`
		UpcomingVaccinations int `json:"upcoming_vaccinations"`
	}
	_ = json.Unmarshal(body, &d)
	if d.OverdueVaccinations != 0 || d.UpcomingVaccinations != 1 {
		t.Fatalf("unexpected dashboard vaccination counts: %s", string(body))
	}
}

func TestHTTP_HealthAndDocs(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", anonymous, nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", st, string(body))
	}
	st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", anonymous, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 swagger doc, got %d", st)
	}
	if !strings.Contains(string(body), "/reports/dashboard") {
		t.Fatalf("swagger doc without reports paths")
	}
}

func createID(t *testing.T, baseURL, path string, u user, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, u, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 POST %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("POST %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, u user, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if u.id != "" {
		req.Header.Set("X-Debug-User-ID", u.id)
		req.Header.Set("X-Debug-User-Role", u.role)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
