package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/domain"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
)

// chatResponse mirrors the minimal OpenAI-compatible chat completion response.
type chatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func newChatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var req struct {
			Model          string `json:"model"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ResponseFormat.Type != "json_object" {
			t.Errorf("response_format = %q, want json_object", req.ResponseFormat.Type)
		}
		if len(req.Messages) != 2 || req.Messages[1].Content == "" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
			return
		}
		resp := chatResponse{ID: "c1", Object: "chat.completion", Model: req.Model}
		if content != "" {
			resp.Choices = make([]struct {
				Index   int `json:"index"`
				Message struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"message"`
				FinishReason string `json:"finish_reason"`
			}, 1)
			resp.Choices[0].Message.Role = "assistant"
			resp.Choices[0].Message.Content = content
			resp.Choices[0].FinishReason = "stop"
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClassifier(url string) *Classifier {
	return NewClassifier(&Config{
		APIKey:   "test-key",
		BaseURL:  url,
		Model:    "test-model",
		Provider: "test",
		Logger:   zap.NewNop(),
	})
}

func TestClassifier_Classify(t *testing.T) {
	content := `{"category":"resource","sub_category":"mods","explanation":"wants mods",
		"keywords":["모드"," "],"filters":{"tags":["fabric"]},"sort":"popularity"}`
	server := newChatServer(t, content, http.StatusOK)
	defer server.Close()

	in, err := newTestClassifier(server.URL).Classify(context.Background(), "인기 모드")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if in.Category != intent.Resource {
		t.Errorf("category = %q, want RESOURCE", in.Category)
	}
	if in.SubCategory != "MODS" {
		t.Errorf("sub_category = %q, want MODS", in.SubCategory)
	}
	if in.Sort != mode.Popularity {
		t.Errorf("sort = %q, want POPULARITY", in.Sort)
	}
	if len(in.Keywords) != 1 || in.Keywords[0] != "모드" {
		t.Errorf("keywords = %v", in.Keywords)
	}
	if len(in.Filters.Tags) != 1 || in.Filters.Tags[0] != "fabric" {
		t.Errorf("tags = %v", in.Filters.Tags)
	}
}

func TestClassifier_MalformedOutput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "I think this is a server query"},
		{"missing category", `{"keywords":["a"]}`},
		{"empty choices", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := newChatServer(t, tc.content, http.StatusOK)
			defer server.Close()

			_, err := newTestClassifier(server.URL).Classify(context.Background(), "q")
			if !errors.Is(err, domain.ErrClassifierUnavailable) {
				t.Errorf("expected ErrClassifierUnavailable, got %v", err)
			}
		})
	}
}

func TestClassifier_APIError(t *testing.T) {
	server := newChatServer(t, "", http.StatusTooManyRequests)
	defer server.Close()

	_, err := newTestClassifier(server.URL).Classify(context.Background(), "q")
	if !errors.Is(err, domain.ErrClassifierUnavailable) {
		t.Errorf("expected ErrClassifierUnavailable, got %v", err)
	}
}

func TestParseAPIError_KeepsTransportError(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:443: connection refused")
	err := parseAPIError(cause)
	if !errors.Is(err, domain.ErrClassifierUnavailable) {
		t.Errorf("expected ErrClassifierUnavailable, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected the transport error to be wrapped, got %v", err)
	}
}

func TestParseIntent_FencedJSON(t *testing.T) {
	in, err := parseIntent("```json\n{\"category\":\"GUIDE\",\"sort\":\"bogus\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Category != intent.Guide {
		t.Errorf("category = %q", in.Category)
	}
	if in.Sort != mode.Unset {
		t.Errorf("unknown sort should be dropped, got %q", in.Sort)
	}
	if in.Keywords == nil || in.Filters.Tags == nil {
		t.Error("expected non-nil slices")
	}
}

func TestParseIntent_UnknownCategory(t *testing.T) {
	in, err := parseIntent(`{"category":"SHOPPING"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Category != intent.General {
		t.Errorf("category = %q, want GENERAL", in.Category)
	}
}

func TestClassifier_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	}))
	defer server.Close()

	if err := newTestClassifier(server.URL).HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}
