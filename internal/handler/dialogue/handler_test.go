package dialogue

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/aokiyuki/cocoro/backend/internal/lexicon"
	engineservice "github.com/aokiyuki/cocoro/backend/internal/service/engine"
	"github.com/aokiyuki/cocoro/backend/internal/service/session"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	store := session.NewStore(10, 0)
	t.Cleanup(store.Close)

	eng := engineservice.New(lexicon.Seed(), store, nil, rand.New(rand.NewSource(3)))
	handler := New(eng)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestStartSession(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/sessions", map[string]string{"userId": "u1"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var started struct {
		SessionID      string `json:"sessionId"`
		OpeningMessage string `json:"openingMessage"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &started); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if started.SessionID == "" || started.OpeningMessage == "" {
		t.Fatalf("incomplete start payload: %+v", started)
	}
}

func TestStartSessionMissingUser(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/sessions", map[string]string{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSubmitMessage(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/sessions/s1/messages", map[string]string{
		"userId":  "u1",
		"message": "明日のプレゼンが不安で眠れません",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var reply struct {
		ResponseText   string `json:"responseText"`
		EmotionLabel   string `json:"emotionLabel"`
		CrisisDetected bool   `json:"crisisDetected"`
		Stage          string `json:"stage"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if reply.CrisisDetected {
		t.Fatal("unexpected crisis detection")
	}
	if reply.EmotionLabel != "anxiety" {
		t.Fatalf("expected anxiety, got %s", reply.EmotionLabel)
	}
	if reply.Stage != "opening" {
		t.Fatalf("expected opening stage, got %s", reply.Stage)
	}
}

func TestSubmitEmptyMessage(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/sessions/s1/messages", map[string]string{"userId": "u1", "message": ""})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestEndSessionFlow(t *testing.T) {
	r := setupRouter(t)

	if resp := postJSON(t, r, "/sessions/s1/messages", map[string]string{"userId": "u1", "message": "疲れました"}); resp.Code != http.StatusOK {
		t.Fatalf("submit failed: %d", resp.Code)
	}

	resp := postJSON(t, r, "/sessions/s1/end", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	// Further messages are rejected on the closed session.
	resp = postJSON(t, r, "/sessions/s1/messages", map[string]string{"userId": "u1", "message": "もう一言"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}

	// Ending twice reports the same conflict.
	resp = postJSON(t, r, "/sessions/s1/end", nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestEndUnknownSession(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/sessions/never-seen/end", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
