package aqara

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// vendorDouble is a scripted stand-in for the vendor endpoint. It records
// every intent it receives and serves canned envelope bodies.
type vendorDouble struct {
	t       *testing.T
	calls   atomic.Int64
	intents chan string
	respond func(intent string, data json.RawMessage) string
}

func newVendorDouble(t *testing.T, respond func(intent string, data json.RawMessage) string) *vendorDouble {
	return &vendorDouble{t: t, intents: make(chan string, 64), respond: respond}
}

func (v *vendorDouble) handler(w http.ResponseWriter, r *http.Request) {
	v.calls.Add(1)

	if r.URL.Path != apiPath {
		v.t.Errorf("unexpected path %s", r.URL.Path)
	}
	for _, h := range []string{"Appid", "Keyid", "Nonce", "Time", "Sign"} {
		if r.Header.Get(h) == "" {
			v.t.Errorf("request missing header %s", h)
		}
	}

	body, _ := io.ReadAll(r.Body)
	var req struct {
		Intent string          `json:"intent"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		v.t.Errorf("unreadable request body: %v", err)
	}
	v.intents <- req.Intent

	_, _ = w.Write([]byte(v.respond(req.Intent, req.Data)))
}

func okEnvelope(result string) string {
	return `{"code":0,"requestId":"req-1","message":"Success","result":` + result + `}`
}

func newTestClient(t *testing.T, respond func(intent string, data json.RawMessage) string) (*Client, *vendorDouble) {
	t.Helper()

	double := newVendorDouble(t, respond)
	srv := httptest.NewServer(http.HandlerFunc(double.handler))
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.AccessToken = "tok"
	client, err := NewClient(cfg,
		WithBaseURL(srv.URL),
		WithLimiter(NewLimiter(WithMinSpacing(time.Millisecond))),
	)
	if err != nil {
		t.Fatal(err)
	}
	return client, double
}

func TestNewClient_RejectsIncompleteConfig(t *testing.T) {
	_, err := NewClient(Config{AppID: "only"})
	if !errors.Is(err, ErrMissingConfig) {
		t.Errorf("expected ErrMissingConfig, got %v", err)
	}
}

func TestListDevices_DecodesAndCaches(t *testing.T) {
	client, double := newTestClient(t, func(intent string, data json.RawMessage) string {
		return okEnvelope(`{"data":[{"did":"lumi.1","name":"Desk Lamp","model":"lumi.light","modelType":1,"online":true}],"totalCount":1}`)
	})

	page, err := client.ListDevices(context.Background(), 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalCount != 1 || len(page.Data) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Data[0].DID != "lumi.1" || !page.Data[0].Online {
		t.Errorf("unexpected device: %+v", page.Data[0])
	}

	// Second read must come from cache
	if _, err := client.ListDevices(context.Background(), 1, 50); err != nil {
		t.Fatal(err)
	}
	if n := double.calls.Load(); n != 1 {
		t.Errorf("expected 1 network call, got %d", n)
	}

	// A different page is a different key
	if _, err := client.ListDevices(context.Background(), 2, 50); err != nil {
		t.Fatal(err)
	}
	if n := double.calls.Load(); n != 2 {
		t.Errorf("expected 2 network calls after new page, got %d", n)
	}
}

func TestGetDeviceStatus_DataFallback(t *testing.T) {
	// Envelope carries the payload in data instead of result; both are
	// accepted.
	client, _ := newTestClient(t, func(intent string, data json.RawMessage) string {
		return `{"code":0,"requestId":"req-2","message":"Success","data":[{"subjectId":"lumi.1","resourceId":"4.1.85","value":"1"}]}`
	})

	values, err := client.GetDeviceStatus(context.Background(), "lumi.1")
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 1 || values[0].ResourceID != "4.1.85" {
		t.Errorf("unexpected values: %+v", values)
	}
}

func TestControlDevice_InvalidatesStatusCache(t *testing.T) {
	client, double := newTestClient(t, func(intent string, data json.RawMessage) string {
		if intent == IntentResourceValue {
			return okEnvelope(`[{"subjectId":"lumi.1","resourceId":"4.1.85","value":"0"}]`)
		}
		return okEnvelope(`null`)
	})

	if _, err := client.GetDeviceStatus(context.Background(), "lumi.1"); err != nil {
		t.Fatal(err)
	}
	if n := double.calls.Load(); n != 1 {
		t.Fatalf("expected 1 call, got %d", n)
	}

	if err := client.ControlDevice(context.Background(), "lumi.1", "4.1.85", "1"); err != nil {
		t.Fatal(err)
	}

	// The pre-control status entry must be gone: this read refetches.
	if _, err := client.GetDeviceStatus(context.Background(), "lumi.1"); err != nil {
		t.Fatal(err)
	}
	if n := double.calls.Load(); n != 3 {
		t.Errorf("expected 3 calls (status, control, fresh status), got %d", n)
	}
}

func TestControlDevice_ValueTypes(t *testing.T) {
	client, _ := newTestClient(t, func(intent string, data json.RawMessage) string {
		return okEnvelope(`null`)
	})

	for _, v := range []any{"on", float64(42), true} {
		if err := client.ControlDevice(context.Background(), "lumi.1", "4.1.85", v); err != nil {
			t.Errorf("value %v (%T) should be accepted: %v", v, v, err)
		}
	}

	err := client.ControlDevice(context.Background(), "lumi.1", "4.1.85", []string{"no"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for non-scalar value, got %v", err)
	}
}

func TestListScenes_Caches(t *testing.T) {
	client, double := newTestClient(t, func(intent string, data json.RawMessage) string {
		return okEnvelope(`{"data":[{"sceneId":"s1","name":"Movie Night","enable":true}],"totalCount":1}`)
	})

	first, err := client.ListScenes(context.Background(), 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if first.Data[0].SceneID != "s1" {
		t.Errorf("unexpected scene: %+v", first.Data[0])
	}

	if _, err := client.ListScenes(context.Background(), 1, 50); err != nil {
		t.Fatal(err)
	}
	if n := double.calls.Load(); n != 1 {
		t.Errorf("expected cached second read, got %d calls", n)
	}
}

func TestExecuteScene_NotCached(t *testing.T) {
	client, double := newTestClient(t, func(intent string, data json.RawMessage) string {
		return okEnvelope(`null`)
	})

	for i := 0; i < 2; i++ {
		if err := client.ExecuteScene(context.Background(), "s1"); err != nil {
			t.Fatal(err)
		}
	}
	if n := double.calls.Load(); n != 2 {
		t.Errorf("scene runs must never be served from cache, got %d calls", n)
	}
}

func TestClearCache_ForcesRefetch(t *testing.T) {
	client, double := newTestClient(t, func(intent string, data json.RawMessage) string {
		return okEnvelope(`{"data":[],"totalCount":0}`)
	})

	if _, err := client.ListDevices(context.Background(), 1, 50); err != nil {
		t.Fatal(err)
	}
	client.ClearCache()
	if _, err := client.ListDevices(context.Background(), 1, 50); err != nil {
		t.Fatal(err)
	}

	if n := double.calls.Load(); n != 2 {
		t.Errorf("expected refetch after clear, got %d calls", n)
	}
}

func TestDeviceHistory_RejectsNonISOBeforeNetwork(t *testing.T) {
	client, double := newTestClient(t, func(intent string, data json.RawMessage) string {
		return okEnvelope(`{"data":[],"totalCount":0}`)
	})

	_, err := client.DeviceHistory(context.Background(), HistoryQuery{
		DID:        "lumi.1",
		ResourceID: "4.1.85",
		StartTime:  "not-a-date",
		EndTime:    "2024-01-02T00:00:00Z",
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "startTime" {
		t.Errorf("expected startTime rejection, got field %q", verr.Field)
	}
	if n := double.calls.Load(); n != 0 {
		t.Errorf("validation must happen before any network call, saw %d", n)
	}
}

func TestDeviceHistory_ForwardsISOVerbatim(t *testing.T) {
	var sent json.RawMessage
	client, _ := newTestClient(t, func(intent string, data json.RawMessage) string {
		sent = data
		return okEnvelope(`{"data":[{"time":1704067200000,"value":"21.5","resourceId":"0.1.85"}],"totalCount":1}`)
	})

	page, err := client.DeviceHistory(context.Background(), HistoryQuery{
		DID:        "lumi.1",
		ResourceID: "0.1.85",
		StartTime:  "2024-01-01T00:00:00Z",
		EndTime:    "2024-01-02T00:00:00Z",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Data) != 1 || page.Data[0].ResourceID != "0.1.85" {
		t.Errorf("unexpected history: %+v", page)
	}

	var body map[string]any
	if err := json.Unmarshal(sent, &body); err != nil {
		t.Fatal(err)
	}
	if body["startTime"] != "2024-01-01T00:00:00Z" {
		t.Errorf("startTime must be forwarded verbatim, got %v", body["startTime"])
	}
}

func TestFilterDevices(t *testing.T) {
	client, double := newTestClient(t, func(intent string, data json.RawMessage) string {
		return okEnvelope(`{"data":[
			{"did":"a","name":"A","model":"lumi.plug","modelType":1,"online":true},
			{"did":"b","name":"B","model":"lumi.light","modelType":2,"online":false},
			{"did":"c","name":"C","model":"lumi.light","modelType":2,"online":true}
		],"totalCount":3}`)
	})

	online, err := client.FilterDevices(context.Background(), 1, 50, true, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(online) != 2 {
		t.Errorf("expected 2 online devices, got %d", len(online))
	}

	lights, err := client.FilterDevices(context.Background(), 1, 50, true, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(lights) != 1 || lights[0].DID != "c" {
		t.Errorf("unexpected filter result: %+v", lights)
	}

	// Filtering reuses the ListDevices cache
	if n := double.calls.Load(); n != 1 {
		t.Errorf("expected a single underlying fetch, got %d", n)
	}
}

func TestCall_NonzeroCodeIsAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(intent string, data json.RawMessage) string {
		return `{"code":108,"requestId":"req-9","message":"token expired","msgDetails":"renew the access token"}`
	})

	_, err := client.ListDevices(context.Background(), 1, 50)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != 108 || apiErr.Message != "token expired" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
	if apiErr.Details != "renew the access token" || apiErr.RequestID != "req-9" {
		t.Errorf("details/requestId not carried: %+v", apiErr)
	}
}

func TestCall_MalformedBodyIsTransportError(t *testing.T) {
	for name, body := range map[string]string{"empty": "", "garbage": "<html>oops"} {
		client, _ := newTestClient(t, func(intent string, data json.RawMessage) string {
			return body
		})

		_, err := client.ListDevices(context.Background(), 1, 50)

		var terr *TransportError
		if !errors.As(err, &terr) {
			t.Fatalf("%s: expected TransportError, got %v", name, err)
		}
		if terr.Kind != TransportMalformed {
			t.Errorf("%s: expected malformed kind, got %s", name, terr.Kind)
		}
	}
}

func TestCall_ConnectionRefusedIsTransportError(t *testing.T) {
	cfg := testConfig()
	client, err := NewClient(cfg,
		WithBaseURL("http://127.0.0.1:1"),
		WithLimiter(NewLimiter(WithMinSpacing(time.Millisecond))),
	)
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.ListDevices(context.Background(), 1, 50)

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.Kind != TransportConnection {
		t.Errorf("expected connection kind, got %s", terr.Kind)
	}
}

func TestCall_TimeoutIsTransportError(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()

	client, err := NewClient(testConfig(),
		WithBaseURL(slow.URL),
		WithHTTPClient(&http.Client{Timeout: 30 * time.Millisecond}),
		WithLimiter(NewLimiter(WithMinSpacing(time.Millisecond))),
	)
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.ListDevices(context.Background(), 1, 50)

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.Kind != TransportTimeout {
		t.Errorf("expected timeout kind, got %s", terr.Kind)
	}
}
