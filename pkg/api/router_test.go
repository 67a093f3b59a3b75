package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/urmzd/aqarai/pkg/aqara"
	"github.com/urmzd/aqarai/pkg/schema"
)

// fakeService serves fixed data so routes can be exercised end to end
// through the gin engine.
type fakeService struct {
	statusErr error
	controls  []string
	cleared   int
}

func (f *fakeService) ListDevices(ctx context.Context, page, size int) (*aqara.Page[aqara.Device], error) {
	return &aqara.Page[aqara.Device]{
		Data:       []aqara.Device{{DID: "lumi.1", Name: "Desk Lamp", Online: true}},
		TotalCount: 1,
	}, nil
}

func (f *fakeService) GetDeviceStatus(ctx context.Context, did string) ([]aqara.ResourceValue, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return []aqara.ResourceValue{{SubjectID: did, ResourceID: "4.1.85", Value: "1"}}, nil
}

func (f *fakeService) ControlDevice(ctx context.Context, did, resourceID string, value any) error {
	f.controls = append(f.controls, did+"/"+resourceID)
	return nil
}

func (f *fakeService) ListScenes(ctx context.Context, page, size int) (*aqara.Page[aqara.Scene], error) {
	return &aqara.Page[aqara.Scene]{
		Data:       []aqara.Scene{{SceneID: "s1", Name: "Movie Night", Enable: true}},
		TotalCount: 1,
	}, nil
}

func (f *fakeService) ExecuteScene(ctx context.Context, sceneID string) error { return nil }

func (f *fakeService) DeviceHistory(ctx context.Context, q aqara.HistoryQuery) (*aqara.Page[aqara.HistoryPoint], error) {
	return &aqara.Page[aqara.HistoryPoint]{}, nil
}

func (f *fakeService) FilterDevices(ctx context.Context, page, size int, onlineOnly bool, modelType int) ([]aqara.Device, error) {
	return []aqara.Device{{DID: "lumi.1", Online: true}}, nil
}

func (f *fakeService) ClearCache() { f.cleared++ }

func (f *fakeService) CacheLen() int { return 0 }

func newTestRouter(service aqara.Service) *Router {
	return NewRouter(service, schema.NewValidator(), aqara.Config{
		AppID: "app", AppKey: "key", KeyID: "kid", AppSecret: "secret", Region: "usa",
	})
}

func doRequest(t *testing.T, r *Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := doRequest(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["region"] != "usa" {
		t.Errorf("unexpected health body: %v", out)
	}
}

func TestRouter_ListDevices(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := doRequest(t, r, http.MethodGet, "/api/v1/devices?page=1&page_size=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "lumi.1") {
		t.Errorf("expected device in body: %s", w.Body.String())
	}
}

func TestRouter_ControlValidatesBody(t *testing.T) {
	service := &fakeService{}
	r := newTestRouter(service)

	// Non-scalar value rejected by the schema before dispatch
	w := doRequest(t, r, http.MethodPost, "/api/v1/devices/lumi.1/control",
		`{"resourceId":"4.1.85","value":{"nested":true}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if len(service.controls) != 0 {
		t.Error("invalid payload must not reach the service")
	}

	w = doRequest(t, r, http.MethodPost, "/api/v1/devices/lumi.1/control",
		`{"resourceId":"4.1.85","value":"1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(service.controls) != 1 || service.controls[0] != "lumi.1/4.1.85" {
		t.Errorf("unexpected dispatches: %v", service.controls)
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"vendor rejection", &aqara.APIError{Code: 108, Message: "token expired"}, http.StatusBadGateway},
		{"timeout", &aqara.TransportError{Kind: aqara.TransportTimeout, Detail: "deadline"}, http.StatusGatewayTimeout},
		{"connectivity", &aqara.TransportError{Kind: aqara.TransportConnection, Detail: "refused"}, http.StatusBadGateway},
		{"validation", &aqara.ValidationError{Field: "deviceId", Detail: "must not be empty"}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		r := newTestRouter(&fakeService{statusErr: tc.err})
		w := doRequest(t, r, http.MethodGet, "/api/v1/devices/lumi.1/status", "")
		if w.Code != tc.code {
			t.Errorf("%s: expected %d, got %d (%s)", tc.name, tc.code, w.Code, w.Body.String())
		}
	}
}

func TestRouter_ClearCache(t *testing.T) {
	service := &fakeService{}
	r := newTestRouter(service)

	w := doRequest(t, r, http.MethodDelete, "/api/v1/cache", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if service.cleared != 1 {
		t.Errorf("expected one clear, got %d", service.cleared)
	}
}

func TestRouter_RunScene(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := doRequest(t, r, http.MethodPost, "/api/v1/scenes/s1/run", "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
}
