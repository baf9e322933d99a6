// Copyright (c) 2025 BVK Chaitanya

package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pricemon/pricemon/api"
	"github.com/pricemon/pricemon/extract"
	"github.com/shopspring/decimal"
)

func newTestServer(t *testing.T, extractor extract.Extractor) (*Service, *httptest.Server) {
	t.Helper()

	s, _ := newTestService(t, extractor)
	mux := http.NewServeMux()
	for pattern, handler := range s.HandlerMap() {
		mux.Handle(pattern, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return s, server
}

func postJSON[RESP any](t *testing.T, url string, req any) (*RESP, int) {
	t.Helper()

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode
	}
	v := new(RESP)
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
	return v, resp.StatusCode
}

func TestHTTPProductLifecycle(t *testing.T) {
	_, server := newTestServer(t, fixedPrice("10"))

	add, code := postJSON[api.ProductAddResponse](t, server.URL+api.ProductAddPath, &api.ProductAddRequest{
		Name:        "Headphones",
		URL:         "https://www.example.com/dp/B0TEST",
		TargetPrice: decimal.RequireFromString("50"),
	})
	if code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	if add.Index != 0 || add.TotalProducts != 1 {
		t.Fatalf("unexpected add response: %#v", add)
	}

	// Invalid products are rejected before touching the list.
	if _, code := postJSON[api.ProductAddResponse](t, server.URL+api.ProductAddPath, &api.ProductAddRequest{
		Name:        "Bad",
		URL:         "ftp://example.com/x",
		TargetPrice: decimal.RequireFromString("50"),
	}); code != http.StatusBadRequest {
		t.Fatalf("want 400 for bad url, got %d", code)
	}

	list, _ := postJSON[api.ProductListResponse](t, server.URL+api.ProductListPath, &api.ProductListRequest{})
	if len(list.Products) != 1 || list.Products[0].Name != "Headphones" {
		t.Fatalf("unexpected list response: %#v", list)
	}

	if _, code := postJSON[api.ProductDeleteResponse](t, server.URL+api.ProductDeletePath, &api.ProductDeleteRequest{Index: 5}); code != http.StatusNotFound {
		t.Fatalf("want 404 for out-of-range delete, got %d", code)
	}

	// Negative indexes are not-found, same as past-the-end indexes.
	if _, code := postJSON[api.ProductDeleteResponse](t, server.URL+api.ProductDeletePath, &api.ProductDeleteRequest{Index: -1}); code != http.StatusNotFound {
		t.Fatalf("want 404 for negative delete index, got %d", code)
	}
	if _, code := postJSON[api.ProductUpdateResponse](t, server.URL+api.ProductUpdatePath, &api.ProductUpdateRequest{Index: -1}); code != http.StatusNotFound {
		t.Fatalf("want 404 for negative update index, got %d", code)
	}

	// An update with no fields is a no-op returning the unchanged product.
	noop, code := postJSON[api.ProductUpdateResponse](t, server.URL+api.ProductUpdatePath, &api.ProductUpdateRequest{Index: 0})
	if code != http.StatusOK {
		t.Fatalf("want 200 for empty update, got %d", code)
	}
	if noop.Product.Name != "Headphones" || !noop.Product.TargetPrice.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("empty update must not change the product: %#v", noop.Product)
	}

	del, _ := postJSON[api.ProductDeleteResponse](t, server.URL+api.ProductDeletePath, &api.ProductDeleteRequest{Index: 0})
	if del.TotalProducts != 0 {
		t.Fatalf("want 0 products, got %d", del.TotalProducts)
	}
}

func TestHTTPStartStopStatus(t *testing.T) {
	_, server := newTestServer(t, fixedPrice("10"))

	status, _ := postJSON[api.StatusResponse](t, server.URL+api.StatusPath, &api.StatusRequest{})
	if status.IsRunning {
		t.Fatalf("new monitor must not be running")
	}
	if status.LastCheck != nil {
		t.Fatalf("stopped monitor must report no last check time")
	}
	if status.ServerPID == 0 {
		t.Fatalf("status must report the server pid")
	}

	if _, code := postJSON[api.MonitorStartResponse](t, server.URL+api.MonitorStartPath, &api.MonitorStartRequest{}); code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	if _, code := postJSON[api.MonitorStartResponse](t, server.URL+api.MonitorStartPath, &api.MonitorStartRequest{}); code != http.StatusBadRequest {
		t.Fatalf("second start must fail with 400, got %d", code)
	}

	status, _ = postJSON[api.StatusResponse](t, server.URL+api.StatusPath, &api.StatusRequest{})
	if !status.IsRunning {
		t.Fatalf("monitor must be running after start")
	}
	if status.LastCheck == nil {
		t.Fatalf("running monitor must report a last check time")
	}

	if _, code := postJSON[api.MonitorStopResponse](t, server.URL+api.MonitorStopPath, &api.MonitorStopRequest{}); code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	if _, code := postJSON[api.MonitorStopResponse](t, server.URL+api.MonitorStopPath, &api.MonitorStopRequest{}); code != http.StatusBadRequest {
		t.Fatalf("second stop must fail with 400, got %d", code)
	}
}

func TestHTTPCheckNow(t *testing.T) {
	s, server := newTestServer(t, fixedPrice("45.99"))
	addProduct(t, s, "Headphones", "https://www.example.com/dp/B0TEST", "50")

	resp, code := postJSON[api.MonitorCheckNowResponse](t, server.URL+api.MonitorCheckNowPath, &api.MonitorCheckNowRequest{})
	if code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("want 1 result, got %d", len(resp.Results))
	}
	r := resp.Results[0]
	if r.CurrentPrice == nil || !r.CurrentPrice.Equal(decimal.RequireFromString("45.99")) {
		t.Fatalf("unexpected current price: %v", r.CurrentPrice)
	}
	if !r.PriceMet {
		t.Fatalf("price 45.99 with target 50 must be met")
	}

	hist, _ := postJSON[api.HistoryGetResponse](t, server.URL+api.HistoryGetPath, &api.HistoryGetRequest{})
	if len(hist.History["https://www.example.com/dp/B0TEST"]) != 1 {
		t.Fatalf("check-now must record history")
	}
}

func TestHTTPConfigUpdate(t *testing.T) {
	_, server := newTestServer(t, fixedPrice("10"))

	bad := 10
	if _, code := postJSON[api.ConfigUpdateResponse](t, server.URL+api.ConfigUpdatePath, &api.ConfigUpdateRequest{
		CheckIntervalMinutes: &bad,
	}); code != http.StatusBadRequest {
		t.Fatalf("want 400 for out-of-range interval, got %d", code)
	}

	good := 90
	resp, code := postJSON[api.ConfigUpdateResponse](t, server.URL+api.ConfigUpdatePath, &api.ConfigUpdateRequest{
		CheckIntervalMinutes: &good,
	})
	if code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	if resp.Config.CheckIntervalMinutes != 90 {
		t.Fatalf("want 90, got %d", resp.Config.CheckIntervalMinutes)
	}

	get, _ := postJSON[api.ConfigGetResponse](t, server.URL+api.ConfigGetPath, &api.ConfigGetRequest{})
	if get.Config.CheckIntervalMinutes != 90 {
		t.Fatalf("config get must reflect the update")
	}
}

func TestWebsocketUpdates(t *testing.T) {
	ctx := context.Background()

	s, server := newTestServer(t, fixedPrice("45.99"))
	addProduct(t, s, "Headphones", "https://www.example.com/dp/B0TEST", "50")

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + api.MonitorUpdatesPath
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// Give the stream handler a moment to subscribe before publishing.
	time.Sleep(100 * time.Millisecond)
	s.CheckAll(ctx)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	event := new(api.CheckEvent)
	if err := conn.ReadJSON(event); err != nil {
		t.Fatal(err)
	}
	if event.Result == nil || event.Result.Name != "Headphones" {
		t.Fatalf("unexpected event: %#v", event)
	}
	if len(event.ID) == 0 || event.At.IsZero() {
		t.Fatalf("event must carry an id and timestamp")
	}
}
