package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"heating_panel/internal/models"
	"heating_panel/internal/service"

	"github.com/gin-gonic/gin"
)

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(newTestServices(&mockMonitoring{}, &mockCommands{}, &mockModes{}))
	w := doJSON(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), statusOK) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestGetView(t *testing.T) {
	mon := &mockMonitoring{view: models.View{
		Controls: []models.ControlView{
			{Subsystem: models.Power, ElementID: "mainpowerbut", Checked: true},
			{Subsystem: models.Heating, ElementID: "chbut", OffTimeElementID: "chofftime", OffTime: models.OffTimeUnknown},
		},
		Testing: true,
	}}
	r := newTestRouter(newTestServices(mon, &mockCommands{}, &mockModes{}))

	w := doJSON(r, http.MethodGet, "/api/v1/view", "")
	if w.Code != http.StatusOK {
		t.Fatalf("view status=%d body=%s", w.Code, w.Body.String())
	}
	var v models.View
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if len(v.Controls) != 2 || !v.Controls[0].Checked || !v.Testing {
		t.Fatalf("unexpected view: %+v", v)
	}
	if c, ok := v.Control(models.Heating); !ok || c.OffTime != models.OffTimeUnknown {
		t.Fatalf("heating control missing or wrong: %+v", c)
	}
}

func TestToggleSubsystem(t *testing.T) {
	cmds := &mockCommands{result: service.DispatchResult{RequestID: "req-1"}}
	mon := &mockMonitoring{}
	r := newTestRouter(newTestServices(mon, cmds, &mockModes{}))

	w := doJSON(r, http.MethodPost, "/api/v1/subsystems/ch/toggle", `{"state":false}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("toggle status=%d body=%s", w.Code, w.Body.String())
	}
	if len(cmds.cmds) != 1 || cmds.cmds[0].Path() != "command/ch/off" {
		t.Fatalf("unexpected commands: %+v", cmds.cmds)
	}
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["status"] != statusDispatched || resp["path"] != "command/ch/off" || resp["request_id"] != "req-1" {
		t.Fatalf("unexpected response: %v", resp)
	}

	// the psu alias addresses the power supply
	w = doJSON(r, http.MethodPost, "/api/v1/subsystems/psu/toggle", `{"state":true}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("psu toggle status=%d body=%s", w.Code, w.Body.String())
	}
	if got := cmds.cmds[1].Path(); got != "command/power/on" {
		t.Fatalf("expected command/power/on, got %s", got)
	}
}

func TestToggleSubsystem_DuplicateTogglesAreBothDispatched(t *testing.T) {
	cmds := &mockCommands{}
	r := newTestRouter(newTestServices(&mockMonitoring{}, cmds, &mockModes{}))

	for i := 0; i < 2; i++ {
		w := doJSON(r, http.MethodPost, "/api/v1/subsystems/hw/toggle", `{"state":true}`)
		if w.Code != http.StatusAccepted {
			t.Fatalf("toggle %d status=%d", i, w.Code)
		}
	}
	if len(cmds.cmds) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(cmds.cmds))
	}
}

func TestToggleSubsystem_BadRequests(t *testing.T) {
	cases := []struct {
		name string
		path string
		body string
	}{
		{"unknown subsystem", "/api/v1/subsystems/pool/toggle", `{"state":true}`},
		{"missing state", "/api/v1/subsystems/ch/toggle", `{}`},
		{"not json", "/api/v1/subsystems/ch/toggle", `state=on`},
		{"wrong type", "/api/v1/subsystems/ch/toggle", `{"state":"on"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmds := &mockCommands{}
			r := newTestRouter(newTestServices(&mockMonitoring{}, cmds, &mockModes{}))
			w := doJSON(r, http.MethodPost, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
			}
			if len(cmds.cmds) != 0 {
				t.Fatalf("nothing should be dispatched, got %+v", cmds.cmds)
			}
		})
	}
}

func TestSetSubsystemOnFor(t *testing.T) {
	cmds := &mockCommands{}
	r := newTestRouter(newTestServices(&mockMonitoring{}, cmds, &mockModes{}))

	w := doJSON(r, http.MethodPost, "/api/v1/subsystems/hw/on-for", `{"minutes":90}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("on-for status=%d body=%s", w.Code, w.Body.String())
	}
	if len(cmds.intents) != 1 {
		t.Fatalf("expected one intent, got %d", len(cmds.intents))
	}
	in, ok := cmds.intents[0].(models.SetSubsystemOnFor)
	if !ok || in.Subsystem != models.HotWater || in.Minutes != 90 {
		t.Fatalf("unexpected intent: %#v", cmds.intents[0])
	}
	if got := cmds.cmds[0].Path(); got != "command/hw/on/90" {
		t.Fatalf("expected command/hw/on/90, got %s", got)
	}
}

func TestSetSubsystemOnFor_Rejected(t *testing.T) {
	cases := []struct {
		name string
		path string
		body string
	}{
		{"power has no timed on", "/api/v1/subsystems/power/on-for", `{"minutes":30}`},
		{"negative minutes", "/api/v1/subsystems/ch/on-for", `{"minutes":-5}`},
		{"zero minutes", "/api/v1/subsystems/ch/on-for", `{"minutes":0}`},
		{"missing minutes", "/api/v1/subsystems/ch/on-for", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmds := &mockCommands{}
			r := newTestRouter(newTestServices(&mockMonitoring{}, cmds, &mockModes{}))
			w := doJSON(r, http.MethodPost, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
			}
			if len(cmds.cmds) != 0 {
				t.Fatalf("nothing should be dispatched, got %+v", cmds.cmds)
			}
		})
	}
}

func TestDispatch_SuppressedInTestingMode(t *testing.T) {
	cmds := &mockCommands{result: service.DispatchResult{Suppressed: true}}
	r := newTestRouter(newTestServices(&mockMonitoring{}, cmds, &mockModes{enabled: true}))

	w := doJSON(r, http.MethodPost, "/api/v1/subsystems/ch/on-for", `{"minutes":120}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["status"] != statusSuppressed || resp["path"] != "command/ch/on/120" {
		t.Fatalf("unexpected response: %v", resp)
	}
	if _, ok := resp["request_id"]; ok {
		t.Fatalf("suppressed dispatch must not carry a request id: %v", resp)
	}
}

func TestDispatch_NetworkFailureIsBadGateway(t *testing.T) {
	mon := &mockMonitoring{view: models.View{Controls: []models.ControlView{{Subsystem: models.Heating, Checked: false}}}}
	cmds := &mockCommands{err: errors.New("connection refused")}
	r := newTestRouter(newTestServices(mon, cmds, &mockModes{}))

	w := doJSON(r, http.MethodPost, "/api/v1/subsystems/ch/toggle", `{"state":true}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != errDispatch {
		t.Fatalf("unexpected error body: %v", resp)
	}

	// the view is untouched until a poll says otherwise
	w = doJSON(r, http.MethodGet, "/api/v1/view", "")
	var v models.View
	_ = json.Unmarshal(w.Body.Bytes(), &v)
	if c, _ := v.Control(models.Heating); c.Checked {
		t.Fatalf("failed dispatch must not change the view: %+v", v)
	}
}

func TestTestingMode_GetAndSet(t *testing.T) {
	modes := &mockModes{}
	r := newTestRouter(newTestServices(&mockMonitoring{}, &mockCommands{}, modes))

	w := doJSON(r, http.MethodGet, "/api/v1/testing", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"enabled":false`) {
		t.Fatalf("get testing: status=%d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPut, "/api/v1/testing", `{"enabled":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("put testing status=%d body=%s", w.Code, w.Body.String())
	}
	if len(modes.sets) != 1 || !modes.sets[0] || !modes.Testing() {
		t.Fatalf("testing flag not set: %+v", modes.sets)
	}

	w = doJSON(r, http.MethodPut, "/api/v1/testing", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing enabled, got %d", w.Code)
	}
	if len(modes.sets) != 1 {
		t.Fatalf("bad request must not change the flag: %+v", modes.sets)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(newTestServices(&mockMonitoring{}, &mockCommands{}, &mockModes{}))
	w := doJSON(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", w.Code)
	}
}

func TestSubsystemParam(t *testing.T) {
	h := NewHandler(newTestServices(&mockMonitoring{}, &mockCommands{}, &mockModes{}), nil, nil, nil)
	gin.SetMode(gin.TestMode)

	for raw, want := range map[string]models.Subsystem{"power": models.Power, "ch": models.Heating, "hw": models.HotWater} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "subsystem", Value: raw}}
		got, ok := h.subsystemParam(c)
		if !ok || got != want {
			t.Fatalf("subsystemParam(%q) = %q, %v", raw, got, ok)
		}
	}
}
