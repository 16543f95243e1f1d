package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Amity808/crypt-bappgift/providers"
	"github.com/Amity808/crypt-bappgift/providers/chain"
	"github.com/Amity808/crypt-bappgift/services/draft"
	"github.com/Amity808/crypt-bappgift/services/monitoring/logging"
	"github.com/Amity808/crypt-bappgift/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)
	logger := &logging.Logger{Logger: log}

	s := &Server{
		router: gin.New(),
		config: &utils.Config{
			BaseURL:       "https://gift.example.com",
			SigningKey:    "test-signing-key",
			TokenDecimals: 6,
		},
		logger:   logger,
		chain:    chain.NewFakeClient(1),
		provider: providers.NewProviderService(),
		drafts:   draft.NewService(logger, nil),
	}

	GiftCard{}.router(s)
	return s
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("could not marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("could not decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestListNetworksRoute(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/giftcard/networks", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeResponse(t, w)
	networks, ok := body["data"].([]interface{})
	if !ok || len(networks) != 1 {
		t.Fatalf("unexpected networks payload: %v", body["data"])
	}
	first := networks[0].(map[string]interface{})
	if first["chain_id"].(float64) != 5115 {
		t.Fatalf("chain_id = %v, want 5115", first["chain_id"])
	}
}

func TestDraftRoutes(t *testing.T) {
	s := newTestServer(t)

	// open
	w := doRequest(t, s, http.MethodPost, "/api/v1/giftcard/draft", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("open status = %d, want 201: %s", w.Code, w.Body.String())
	}
	body := decodeResponse(t, w)
	data := body["data"].(map[string]interface{})
	sessionID, _ := data["session_id"].(string)
	if sessionID == "" {
		t.Fatal("open returned no session id")
	}
	d := data["draft"].(map[string]interface{})
	if d["amount"] != "1" || d["currency"] != "CBTC" || d["theme"] != "blue" {
		t.Fatalf("unexpected defaults: %v", d)
	}

	// update a field
	w = doRequest(t, s, http.MethodPatch, "/api/v1/giftcard/draft/"+sessionID, map[string]string{
		"field": "recipient_name",
		"value": "Ada",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200: %s", w.Code, w.Body.String())
	}

	// read it back
	w = doRequest(t, s, http.MethodGet, "/api/v1/giftcard/draft/"+sessionID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", w.Code)
	}
	body = decodeResponse(t, w)
	d = body["data"].(map[string]interface{})["draft"].(map[string]interface{})
	if d["recipient_name"] != "Ada" {
		t.Fatalf("recipient_name = %v, want Ada", d["recipient_name"])
	}

	// invalid field value
	w = doRequest(t, s, http.MethodPatch, "/api/v1/giftcard/draft/"+sessionID, map[string]string{
		"field": "currency",
		"value": "USDC",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad currency status = %d, want 400", w.Code)
	}

	// malformed body
	w = doRequest(t, s, http.MethodPatch, "/api/v1/giftcard/draft/"+sessionID, map[string]string{
		"value": "no field key",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing field status = %d, want 400", w.Code)
	}

	// close, then the session is gone
	w = doRequest(t, s, http.MethodDelete, "/api/v1/giftcard/draft/"+sessionID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("close status = %d, want 200", w.Code)
	}
	w = doRequest(t, s, http.MethodGet, "/api/v1/giftcard/draft/"+sessionID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after close status = %d, want 404", w.Code)
	}
}

func TestDraftRoutesUnknownSession(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/giftcard/draft/ghost", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	w = doRequest(t, s, http.MethodPatch, "/api/v1/giftcard/draft/ghost", map[string]string{
		"field": "recipient_name",
		"value": "Ada",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCreateRouteUnknownSession(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/giftcard/create", map[string]string{
		"session_id": "1b671a64-40d5-491e-99b0-da01ff1f3341",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", w.Code, w.Body.String())
	}
}

func TestCreateRouteRejectsBadSessionID(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/giftcard/create", map[string]string{
		"session_id": "not-a-uuid",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGenerateMessageRouteWithoutCredential(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/giftcard/message", map[string]string{
		"prompt": "birthday wishes",
	})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503: %s", w.Code, w.Body.String())
	}
}

func TestListByEmailRouteRejectsBadEmail(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/giftcard/by-email?email=not-an-email", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, s, http.MethodGet, "/api/v1/giftcard/by-email", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing email status = %d, want 400", w.Code)
	}
}

func TestClaimRouteRejectsBadToken(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/giftcard/card/1/claim", map[string]string{
		"claim_token": "garbage",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, s, http.MethodPost, "/api/v1/giftcard/card/1/claim", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing token status = %d, want 400", w.Code)
	}
}
