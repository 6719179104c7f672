package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripform/internal/catalog"
	"github.com/dharmasatrya/tripform/internal/form"
	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/internal/ratelimit"
	"github.com/dharmasatrya/tripform/internal/session"
	"github.com/dharmasatrya/tripform/internal/store"
	"github.com/dharmasatrya/tripform/internal/timezone"
)

var testNow = time.Date(2026, 10, 16, 10, 0, 0, 0, timezone.CET)

type testServer struct {
	echo    *echo.Echo
	limiter *ratelimit.SessionLimiter
}

func newTestServer(t *testing.T, limits ratelimit.RateLimitConfig) *testServer {
	t.Helper()

	cat := catalog.Default()
	limiter := ratelimit.NewSessionLimiter(limits)
	registry := session.NewRegistry(cat, session.Config{
		FormOptions: form.Options{
			Now:      func() time.Time { return testNow },
			Location: timezone.CET,
		},
		OnEvict: limiter.Forget,
	})
	s := store.NewMemoryStore()

	e := echo.New()
	e.Validator = NewRequestValidator()

	api := e.Group("/api/v1")
	NewFormHandler(registry, s, limiter).Register(api)
	NewLookupHandler(cat, s).Register(api)
	e.GET("/health", HealthHandler)

	return &testServer{echo: e, limiter: limiter}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: got %d want %d, body %s", rec.Code, want, rec.Body.String())
	}
}

func (s *testServer) createForm(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/forms", "")
	expectStatus(t, rec, http.StatusCreated)
	view := decode[models.FormView](t, rec)
	if view.ID == "" {
		t.Fatal("created form has no id")
	}
	return view.ID
}

func (s *testServer) setField(t *testing.T, id, name, value string) models.FormView {
	t.Helper()
	rec := s.do(t, http.MethodPut, "/api/v1/forms/"+id+"/fields/"+name, `{"value":`+value+`}`)
	expectStatus(t, rec, http.StatusOK)
	return decode[models.FormView](t, rec)
}

func (s *testServer) setPassenger(t *testing.T, id string, index int, name, value string) {
	t.Helper()
	path := "/api/v1/forms/" + id + "/passengers/" + strconv.Itoa(index) + "/fields/" + name
	rec := s.do(t, http.MethodPut, path, `{"value":`+value+`}`)
	expectStatus(t, rec, http.StatusOK)
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	rec := s.do(t, http.MethodGet, "/health", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]string](t, rec)["status"]; got != "ok" {
		t.Errorf("status: got %q", got)
	}
}

func TestCreateForm_InitialView(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	rec := s.do(t, http.MethodPost, "/api/v1/forms", "")
	expectStatus(t, rec, http.StatusCreated)

	view := decode[models.FormView](t, rec)
	if view.Valid {
		t.Error("empty form must be invalid")
	}
	if len(view.Passengers) != 1 {
		t.Errorf("passengers: got %d want 1", len(view.Passengers))
	}
	if got := len(view.FilteredDestinations); got != 6 {
		t.Errorf("destinations: got %d want 6", got)
	}
	name := view.Fields[form.FieldFullName]
	if name.Touched || name.Invalid {
		t.Errorf("untouched field must not be flagged invalid: %+v", name)
	}
	if len(name.Errors) == 0 || name.Errors[0].Kind != models.ErrorRequired {
		t.Errorf("fullName errors: %+v", name.Errors)
	}
}

func TestSetField_UpdatesDerivedState(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	id := s.createForm(t)

	s.setField(t, id, form.FieldTravelClass, `"business"`)
	view := s.setField(t, id, form.FieldNumberOfPeople, `3`)

	if len(view.Passengers) != 3 {
		t.Errorf("passengers: got %d want 3", len(view.Passengers))
	}
	if view.TotalPrice.Amount != 600 || view.TotalPrice.Currency != "EUR" {
		t.Errorf("price: %+v", view.TotalPrice)
	}
	if view.TotalPrice.Formatted != "600 €" {
		t.Errorf("formatted: got %q", view.TotalPrice.Formatted)
	}
}

func TestTouchField_ShowsError(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	id := s.createForm(t)

	s.setField(t, id, form.FieldNationalID, `"12345678A"`)
	rec := s.do(t, http.MethodPost, "/api/v1/forms/"+id+"/fields/"+form.FieldNationalID+"/touch", "")
	expectStatus(t, rec, http.StatusOK)

	field := decode[models.FormView](t, rec).Fields[form.FieldNationalID]
	if !field.Touched || !field.Invalid {
		t.Errorf("field: %+v", field)
	}
	if field.ErrorMessage == "" {
		t.Error("expected an error message")
	}
}

func TestSetField_Errors(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	id := s.createForm(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown field", http.MethodPut, "/api/v1/forms/" + id + "/fields/nope", `{"value":"x"}`, http.StatusBadRequest},
		{"wrong value type", http.MethodPut, "/api/v1/forms/" + id + "/fields/" + form.FieldAcceptTerms, `{"value":[1,2]}`, http.StatusBadRequest},
		{"unknown form", http.MethodPut, "/api/v1/forms/missing/fields/" + form.FieldEmail, `{"value":"a@b.com"}`, http.StatusNotFound},
		{"bad passenger field", http.MethodPut, "/api/v1/forms/" + id + "/passengers/0/fields/shoeSize", `{"value":42}`, http.StatusBadRequest},
		{"passenger index out of range", http.MethodPut, "/api/v1/forms/" + id + "/passengers/5/fields/age", `{"value":42}`, http.StatusBadRequest},
		{"negative passenger index", http.MethodPut, "/api/v1/forms/" + id + "/passengers/-1/fields/age", `{"value":42}`, http.StatusBadRequest},
		{"non-numeric passenger index", http.MethodDelete, "/api/v1/forms/" + id + "/passengers/x", "", http.StatusBadRequest},
		{"malformed body", http.MethodPut, "/api/v1/forms/" + id + "/fields/" + form.FieldEmail, `{"value":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)
			expectStatus(t, rec, tt.want)
			resp := decode[models.ErrorResponse](t, rec)
			if resp.Code != tt.want || resp.Error == "" {
				t.Errorf("error body: %+v", resp)
			}
		})
	}
}

func TestSetField_CountOutOfRange(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	id := s.createForm(t)
	s.setField(t, id, form.FieldTravelClass, `"tourist"`)

	view := s.setField(t, id, form.FieldNumberOfPeople, `12`)
	if len(view.Passengers) != 12 {
		t.Errorf("passengers: got %d want 12", len(view.Passengers))
	}
	if errs := view.Fields[form.FieldNumberOfPeople].Errors; len(errs) != 1 || errs[0].Kind != models.ErrorMax {
		t.Errorf("count 12 errors: %+v", errs)
	}
	s.setPassenger(t, id, 11, "age", `40`)

	view = s.setField(t, id, form.FieldNumberOfPeople, `1e19`)
	if errs := view.Fields[form.FieldNumberOfPeople].Errors; len(errs) != 1 || errs[0].Kind != models.ErrorPattern {
		t.Errorf("count 1e19 errors: %+v", errs)
	}
	if view.TotalPrice.Amount != 0 || len(view.Passengers) != 0 {
		t.Errorf("count 1e19: price %v rows %d", view.TotalPrice.Amount, len(view.Passengers))
	}
}

func TestPassengers_RemoveAndTouch(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	id := s.createForm(t)
	s.setField(t, id, form.FieldNumberOfPeople, `3`)
	s.setPassenger(t, id, 1, "fullName", `"Luis García"`)

	rec := s.do(t, http.MethodPost, "/api/v1/forms/"+id+"/passengers/1/fields/fullName/touch", "")
	expectStatus(t, rec, http.StatusOK)
	view := decode[models.FormView](t, rec)
	if f := view.Passengers[1].Fields["fullName"]; !f.ValidAndTouched {
		t.Errorf("passenger 1 fullName: %+v", f)
	}
	kept := view.Passengers[1].ID

	rec = s.do(t, http.MethodDelete, "/api/v1/forms/"+id+"/passengers/0", "")
	expectStatus(t, rec, http.StatusOK)
	view = decode[models.FormView](t, rec)
	if len(view.Passengers) != 2 || view.Passengers[0].ID != kept {
		t.Errorf("after removal: %+v", view.Passengers)
	}
	if got := view.Fields[form.FieldNumberOfPeople].Value; got != float64(2) {
		t.Errorf("numberOfPeople: got %v want 2", got)
	}
}

func TestSearch(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	id := s.createForm(t)

	rec := s.do(t, http.MethodPut, "/api/v1/forms/"+id+"/search", `{"query":"BARC"}`)
	expectStatus(t, rec, http.StatusOK)
	view := decode[models.FormView](t, rec)
	if len(view.FilteredDestinations) != 1 || view.FilteredDestinations[0] != "Barcelona" {
		t.Errorf("filtered: %v", view.FilteredDestinations)
	}

	rec = s.do(t, http.MethodPut, "/api/v1/forms/"+id+"/search", `{"query":"zzz"}`)
	view = decode[models.FormView](t, rec)
	if !view.NoResults || len(view.FilteredDestinations) != 0 {
		t.Errorf("no results: %+v", view)
	}

	long := strings.Repeat("a", 101)
	rec = s.do(t, http.MethodPut, "/api/v1/forms/"+id+"/search", `{"query":"`+long+`"}`)
	expectStatus(t, rec, http.StatusBadRequest)
}

func fillValid(t *testing.T, s *testServer, id string) {
	t.Helper()
	s.setField(t, id, form.FieldFullName, `"Ana García"`)
	s.setField(t, id, form.FieldNationalID, `"12345678Z"`)
	s.setField(t, id, form.FieldEmail, `"ana@example.com"`)
	s.setField(t, id, form.FieldPhone, `"612345678"`)
	s.setField(t, id, form.FieldBirthDate, `"1990-05-20"`)
	s.setField(t, id, form.FieldAcceptTerms, `true`)
	s.setField(t, id, form.FieldDestination, `"Madrid"`)
	s.setField(t, id, form.FieldDepartureDate, `"2026-11-10"`)
	s.setField(t, id, form.FieldTripType, `"round-trip"`)
	s.setField(t, id, form.FieldReturnDate, `"2026-11-17"`)
	s.setField(t, id, form.FieldTravelClass, `"tourist"`)
	s.setField(t, id, form.FieldNumberOfPeople, `1`)
	s.setPassenger(t, id, 0, "fullName", `"Luis García"`)
	s.setPassenger(t, id, 0, "age", `34`)
	s.setPassenger(t, id, 0, "relation", `"spouse"`)
}

func TestSubmit_Invalid(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	id := s.createForm(t)

	rec := s.do(t, http.MethodPost, "/api/v1/forms/"+id+"/submit", "")
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	view := decode[models.FormView](t, rec)
	if view.ID != id || view.Valid {
		t.Errorf("view: id %q valid %v", view.ID, view.Valid)
	}
}

func TestSubmit_StoresReservation(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	id := s.createForm(t)
	fillValid(t, s, id)

	rec := s.do(t, http.MethodPost, "/api/v1/forms/"+id+"/submit", "")
	expectStatus(t, rec, http.StatusCreated)
	sub := decode[models.Submission](t, rec)
	if sub.ID == "" {
		t.Fatal("submission has no id")
	}
	if sub.Snapshot.TotalPrice.Amount != 100 {
		t.Errorf("price: %+v", sub.Snapshot.TotalPrice)
	}
	if len(sub.Snapshot.Passengers) != 1 || sub.Snapshot.Passengers[0].FullName != "Luis García" {
		t.Errorf("passengers: %+v", sub.Snapshot.Passengers)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/reservations/"+sub.ID, "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Submission](t, rec); got.Snapshot.Fields[form.FieldEmail] != "ana@example.com" {
		t.Errorf("stored fields: %+v", got.Snapshot.Fields)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/reservations/unknown", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestReset(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	id := s.createForm(t)
	fillValid(t, s, id)

	rec := s.do(t, http.MethodPost, "/api/v1/forms/"+id+"/reset", "")
	expectStatus(t, rec, http.StatusOK)
	view := decode[models.FormView](t, rec)
	if view.Valid {
		t.Error("reset form must be invalid")
	}
	if f := view.Fields[form.FieldFullName]; f.Touched || f.Value != "" {
		t.Errorf("fullName after reset: %+v", f)
	}
	if len(view.Passengers) != 1 {
		t.Errorf("passengers after reset: %d", len(view.Passengers))
	}
}

func TestDeleteForm(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())
	id := s.createForm(t)

	expectStatus(t, s.do(t, http.MethodDelete, "/api/v1/forms/"+id, ""), http.StatusNoContent)
	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/forms/"+id, ""), http.StatusNotFound)
	expectStatus(t, s.do(t, http.MethodDelete, "/api/v1/forms/"+id, ""), http.StatusNotFound)
	if s.limiter.Len() != 0 {
		t.Errorf("limiter kept %d sessions", s.limiter.Len())
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, ratelimit.RateLimitConfig{EventsPerSecond: 0.001, BurstSize: 2})
	id := s.createForm(t)

	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/forms/"+id, ""), http.StatusOK)
	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/forms/"+id, ""), http.StatusOK)
	rec := s.do(t, http.MethodGet, "/api/v1/forms/"+id, "")
	expectStatus(t, rec, http.StatusTooManyRequests)

	other := s.createForm(t)
	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/forms/"+other, ""), http.StatusOK)
}

func TestCatalogAndEmailLookup(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultConfig())

	rec := s.do(t, http.MethodGet, "/api/v1/catalog", "")
	expectStatus(t, rec, http.StatusOK)
	cat := decode[models.CatalogResponse](t, rec)
	if len(cat.Destinations) != 6 || cat.Prices["first"] != 300 {
		t.Errorf("catalog: %+v", cat)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/emails/exists?address=TEST@test.com", "")
	expectStatus(t, rec, http.StatusOK)
	if !decode[models.EmailExistsResponse](t, rec).Exists {
		t.Error("test@test.com should exist")
	}

	rec = s.do(t, http.MethodGet, "/api/v1/emails/exists?address=new@example.com", "")
	if decode[models.EmailExistsResponse](t, rec).Exists {
		t.Error("new@example.com should not exist")
	}

	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/emails/exists", ""), http.StatusBadRequest)
}
