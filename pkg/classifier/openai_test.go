package classifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3"
	openaioption "github.com/openai/openai-go/v3/option"
)

func newOpenAITestServer(t *testing.T, reply string, capture *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if capture != nil {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			*capture = body
		}
		resp := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": reply},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func createOpenAITestClient(baseURL string) *openai.Client {
	c := openai.NewClient(
		openaioption.WithAPIKey("test-key"),
		openaioption.WithBaseURL(baseURL),
	)
	return &c
}

func testPrompts() Prompts {
	return Prompts{
		System: "You judge treat offers.",
		Text:   "Judge this message: '{message}'",
		Image:  "Judge these images.",
	}
}

func TestOpenAIClassifyText(t *testing.T) {
	var captured map[string]any
	server := newOpenAITestServer(t, "Yes, 95%", &captured)
	defer server.Close()

	c := NewOpenAIClientWithClient(createOpenAITestClient(server.URL), "gpt-4o-mini", testPrompts(), 300)

	result, err := c.ClassifyText(t.Context(), "There is cake in the kitchen")
	if err != nil {
		t.Fatalf("ClassifyText() error: %v", err)
	}
	if result.Verdict != Affirmative || result.Confidence != 95 {
		t.Errorf("result = %v, want yes/95", result)
	}

	// The message text must be embedded in the instruction template.
	raw, _ := json.Marshal(captured)
	if !strings.Contains(string(raw), "There is cake in the kitchen") {
		t.Errorf("request body missing message text: %s", raw)
	}
	if strings.Contains(string(raw), "{message}") {
		t.Errorf("placeholder not substituted: %s", raw)
	}
}

func TestOpenAIClassifyImages(t *testing.T) {
	var captured map[string]any
	server := newOpenAITestServer(t, "yes, 88%", &captured)
	defer server.Close()

	c := NewOpenAIClientWithClient(createOpenAITestClient(server.URL), "gpt-4o-mini", testPrompts(), 300)

	result, err := c.ClassifyImages(t.Context(), []Image{
		{MimeType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}},
		{MimeType: "image/png", Data: []byte{0x89, 0x50}},
	})
	if err != nil {
		t.Fatalf("ClassifyImages() error: %v", err)
	}
	if result.Verdict != Affirmative || result.Confidence != 88 {
		t.Errorf("result = %v, want yes/88", result)
	}

	// Images must travel as self-contained data URLs, not platform URLs.
	raw, _ := json.Marshal(captured)
	if !strings.Contains(string(raw), "data:image/jpeg;base64,") {
		t.Errorf("request body missing jpeg data URL: %s", truncateForLog(string(raw)))
	}
	if !strings.Contains(string(raw), "data:image/png;base64,") {
		t.Errorf("request body missing png data URL: %s", truncateForLog(string(raw)))
	}
}

func TestOpenAIClassifyTextServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewOpenAIClientWithClient(createOpenAITestClient(server.URL), "gpt-4o-mini", testPrompts(), 300)

	result, err := c.ClassifyText(t.Context(), "cake")
	if err == nil {
		t.Fatal("ClassifyText() expected error for 500 response")
	}
	if result.Verdict != Unparseable || result.Confidence != 0 {
		t.Errorf("result = %v, want unparseable/0", result)
	}
}

func TestOpenAIClassifyTextGarbageReply(t *testing.T) {
	server := newOpenAITestServer(t, "I like turtles", nil)
	defer server.Close()

	c := NewOpenAIClientWithClient(createOpenAITestClient(server.URL), "gpt-4o-mini", testPrompts(), 300)

	result, err := c.ClassifyText(t.Context(), "cake")
	if err != nil {
		t.Fatalf("ClassifyText() error: %v", err)
	}
	if result.Verdict != Unparseable {
		t.Errorf("verdict = %v, want unparseable", result.Verdict)
	}
}

func TestDataURL(t *testing.T) {
	got := DataURL(Image{MimeType: "image/png", Data: []byte("ab")})
	if got != "data:image/png;base64,YWI=" {
		t.Errorf("DataURL() = %q", got)
	}
	if !strings.HasPrefix(DataURL(Image{Data: []byte{1}}), "data:image/png;base64,") {
		t.Error("DataURL() should default to image/png")
	}
}

func truncateForLog(s string) string {
	if len(s) > 500 {
		return s[:500] + "..."
	}
	return s
}
