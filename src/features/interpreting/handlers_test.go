package interpreting

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func postInterpret(t *testing.T, completer Completer, path, body string) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	RegisterRoutes(app, NewService(completer, nil))

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return resp.StatusCode, payload
}

func TestInterpretHandler_Success(t *testing.T) {
	completer := &MockCompleter{text: "Sure!\n```json\n[{\"comment\":\"Anthem\",\"searchTerm\":\"Hotel California Eagles\"}]\n```"}
	status, payload := postInterpret(t, completer, "/interpret", `{"transcript":"Hotel California"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	songs, ok := payload["songs"].([]any)
	if !ok || len(songs) != 1 {
		t.Fatalf("expected one song, got %v", payload)
	}
	song := songs[0].(map[string]any)
	if song["comment"] != "Anthem" || song["searchTerm"] != "Hotel California Eagles" {
		t.Errorf("unexpected song %v", song)
	}
}

func TestInterpretHandler_InvalidShapeIsBadRequest(t *testing.T) {
	status, payload := postInterpret(t, &MockCompleter{text: "[]"}, "/api/claude", `{"transcript":"weather"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if payload["error"] != "No songs found or invalid response" {
		t.Errorf("unexpected payload %v", payload)
	}
}

func TestInterpretHandler_UpstreamFailureIsServerError(t *testing.T) {
	status, payload := postInterpret(t, &MockCompleter{err: errors.New("boom")}, "/interpret", `{"transcript":"jazz"}`)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if msg, _ := payload["error"].(string); !strings.Contains(msg, "boom") {
		t.Errorf("expected upstream message, got %v", payload)
	}
}

func TestInterpretHandler_UnparseableCompletionIsServerError(t *testing.T) {
	status, _ := postInterpret(t, &MockCompleter{text: "no idea"}, "/interpret", `{"transcript":"jazz"}`)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
}

func TestInterpretHandler_BadRequests(t *testing.T) {
	completer := &MockCompleter{}
	for _, body := range []string{`not json`, `{"transcript":""}`} {
		status, payload := postInterpret(t, completer, "/interpret", body)
		if status != fiber.StatusBadRequest {
			t.Errorf("%q: expected 400, got %d", body, status)
		}
		if _, ok := payload["error"]; !ok {
			t.Errorf("%q: expected error payload, got %v", body, payload)
		}
	}
	if completer.calls != 0 {
		t.Errorf("expected no LLM calls, got %d", completer.calls)
	}
}
