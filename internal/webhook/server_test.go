package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/tkwang/quoteline/internal/dispatch"
	"github.com/tkwang/quoteline/internal/line"
	"github.com/tkwang/quoteline/internal/quote"
)

// mockProcessor is a mock implementation of EventProcessor for testing.
type mockProcessor struct {
	processFn func(ctx context.Context, events []line.Event) []dispatch.Outcome
	calls     int
}

func (m *mockProcessor) Process(ctx context.Context, events []line.Event) []dispatch.Outcome {
	m.calls++
	if m.processFn != nil {
		return m.processFn(ctx, events)
	}
	return nil
}

// recordingGateway records reply calls in order.
type recordingGateway struct {
	mu      sync.Mutex
	replies []recordedReply
	err     error
}

type recordedReply struct {
	ReplyToken string
	Text       string
}

func (g *recordingGateway) Reply(ctx context.Context, replyToken, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies = append(g.replies, recordedReply{ReplyToken: replyToken, Text: text})
	return g.err
}

// fixedSource returns one fixed price for every symbol.
type fixedSource struct {
	price float64
	err   error
}

func (s *fixedSource) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	return s.price, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestServer(secret string, gateway dispatch.ReplyGateway, source quote.Source) *Server {
	logger := testLogger()
	d := dispatch.New(gateway, quote.NewLookup(source, logger), logger)
	return New(Config{Listen: "127.0.0.1:0", Secret: secret}, d, logger)
}

func postCallback(s *Server, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/callback", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(line.SignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	s.handleCallback(rec, req)
	return rec
}

func TestHandleCallbackEndToEnd(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"events":[` +
		`{"type":"message","replyToken":"tok1","message":{"type":"text","text":"hello"}},` +
		`{"type":"message","replyToken":"tok2","message":{"type":"text","text":"查股價 TSLA"}}]}`)

	gateway := &recordingGateway{}
	s := newTestServer(secret, gateway, &fixedSource{price: 251.25})

	rec := postCallback(s, body, computeSignature(body, secret))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", rec.Body.String())
	}

	if len(gateway.replies) != 2 {
		t.Fatalf("gateway calls = %d, want 2", len(gateway.replies))
	}
	if gateway.replies[0].ReplyToken != "tok1" || gateway.replies[0].Text != "你說了：hello" {
		t.Errorf("first reply = %+v, want echo for tok1", gateway.replies[0])
	}
	if gateway.replies[1].ReplyToken != "tok2" || gateway.replies[1].Text != "📈 TSLA 最新價格：$251.25" {
		t.Errorf("second reply = %+v, want TSLA price for tok2", gateway.replies[1])
	}
}

func TestHandleCallbackQuoteSourceDownStill200(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"events":[{"type":"message","replyToken":"tok1","message":{"type":"text","text":"查股價 TSLA"}}]}`)

	gateway := &recordingGateway{}
	s := newTestServer(secret, gateway, &fixedSource{err: quote.ErrNoData})

	rec := postCallback(s, body, computeSignature(body, secret))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(gateway.replies) != 1 {
		t.Fatalf("gateway calls = %d, want 1", len(gateway.replies))
	}
	if !strings.Contains(gateway.replies[0].Text, "TSLA") || !strings.Contains(gateway.replies[0].Text, "找不到") {
		t.Errorf("reply = %q, want a not-found message naming TSLA", gateway.replies[0].Text)
	}
}

func TestHandleCallbackDeliveryFailureStill200(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"events":[{"type":"message","replyToken":"tok1","message":{"type":"text","text":"hello"}}]}`)

	gateway := &recordingGateway{err: &line.DeliveryError{StatusCode: 500, Body: "upstream down"}}
	s := newTestServer(secret, gateway, &fixedSource{})

	rec := postCallback(s, body, computeSignature(body, secret))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d despite delivery failure", rec.Code, http.StatusOK)
	}
}

func TestHandleCallbackTamperedBody(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"events":[{"type":"message","replyToken":"tok1","message":{"type":"text","text":"hello"}}]}`)
	signature := computeSignature(body, secret)

	// Flip a single byte versus the signed body.
	tampered := make([]byte, len(body))
	copy(tampered, body)
	tampered[len(tampered)/2] ^= 0x01

	mp := &mockProcessor{
		processFn: func(ctx context.Context, events []line.Event) []dispatch.Outcome {
			t.Fatal("Process should not be called with an invalid signature")
			return nil
		},
	}
	s := New(Config{Listen: "127.0.0.1:0", Secret: secret}, mp, testLogger())

	rec := postCallback(s, tampered, signature)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "invalid signature" {
		t.Errorf("error = %q, want invalid signature", resp.Error)
	}
}

func TestHandleCallbackMissingSignature(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"events":[]}`)

	mp := &mockProcessor{}
	s := New(Config{Listen: "127.0.0.1:0", Secret: secret}, mp, testLogger())

	rec := postCallback(s, body, "")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if mp.calls != 0 {
		t.Errorf("Process calls = %d, want 0", mp.calls)
	}
}

func TestHandleCallbackMalformedEnvelope(t *testing.T) {
	secret := "channel-secret"

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{"events":`},
		{"missing events array", `{"destination":"U123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mp := &mockProcessor{}
			s := New(Config{Listen: "127.0.0.1:0", Secret: secret}, mp, testLogger())

			// Correctly signed, so the failure is decode, not verification.
			body := []byte(tt.body)
			rec := postCallback(s, body, computeSignature(body, secret))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error != "invalid request body" {
				t.Errorf("error = %q, want invalid request body", resp.Error)
			}
			if mp.calls != 0 {
				t.Errorf("Process calls = %d, want 0", mp.calls)
			}
		})
	}
}

func TestHandleCallbackPayloadTooLarge(t *testing.T) {
	secret := "channel-secret"
	body := bytes.Repeat([]byte("a"), 2048)

	mp := &mockProcessor{}
	s := New(Config{Listen: "127.0.0.1:0", Secret: secret, MaxBodySize: 1024}, mp, testLogger())

	rec := postCallback(s, body, computeSignature(body, secret))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestHealthz(t *testing.T) {
	s := New(Config{Listen: "127.0.0.1:0", Secret: "x"}, &mockProcessor{}, testLogger())
	router := s.setupRoutes()

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCallbackRouteRegistered(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"events":[]}`)

	mp := &mockProcessor{}
	s := New(Config{Listen: "127.0.0.1:0", Secret: secret}, mp, testLogger())
	router := s.setupRoutes()

	req := httptest.NewRequest("POST", "/callback", bytes.NewReader(body))
	req.Header.Set(line.SignatureHeader, computeSignature(body, secret))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if mp.calls != 1 {
		t.Errorf("Process calls = %d, want 1", mp.calls)
	}
}
