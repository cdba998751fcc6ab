package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"heating_panel/internal/models"
)

func TestListDispatches(t *testing.T) {
	hist := &mockHistory{records: []models.DispatchRecord{
		{ID: "b", Path: "command/ch/off", Outcome: models.OutcomeSuppressed},
		{ID: "a", Path: "command/hw/on/90", Outcome: models.OutcomeSent},
	}}
	s := newTestServices(&mockMonitoring{}, &mockCommands{}, &mockModes{})
	s.History = hist
	r := newTestRouter(s)

	w := doJSON(r, http.MethodGet, "/api/v1/dispatches?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out []models.DispatchRecord
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 || out[0].ID != "b" {
		t.Fatalf("unexpected records: %+v", out)
	}
	if hist.lastLimit != 5 {
		t.Fatalf("limit not forwarded: %d", hist.lastLimit)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/dispatches", "")
	if w.Code != http.StatusOK || hist.lastLimit != 0 {
		t.Fatalf("default limit: status=%d limit=%d", w.Code, hist.lastLimit)
	}

	for _, bad := range []string{"-1", "ten"} {
		w = doJSON(r, http.MethodGet, "/api/v1/dispatches?limit="+bad, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("limit=%s: expected 400, got %d", bad, w.Code)
		}
	}
}

func TestGetDispatch(t *testing.T) {
	s := newTestServices(&mockMonitoring{}, &mockCommands{}, &mockModes{})
	s.History = &mockHistory{records: []models.DispatchRecord{{ID: "req-7", Outcome: models.OutcomeFailed, Error: "timeout"}}}
	r := newTestRouter(s)

	w := doJSON(r, http.MethodGet, "/api/v1/dispatches/req-7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var rec models.DispatchRecord
	_ = json.Unmarshal(w.Body.Bytes(), &rec)
	if rec.Outcome != models.OutcomeFailed || rec.Error != "timeout" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/dispatches/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
