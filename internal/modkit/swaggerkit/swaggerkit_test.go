package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"itinerary/internal/platform/config"
	phttp "itinerary/internal/platform/net/http"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestMount_ServesDecoratedDoc(t *testing.T) {
	t.Setenv("CORE_API_DOCS_TITLE_SUFFIX", "staging")
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), config.New().Prefix("CORE_API_"), true)

	rr := get(t, mux, "/api/docs/doc.json")
	if rr.Code != http.StatusOK {
		t.Fatalf("doc.json %d", rr.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if title := spec["info"].(map[string]any)["title"]; title != "Itinerary API (staging)" {
		t.Fatalf("title %v", title)
	}
	if _, ok := spec["definitions"].(map[string]any)["httpkit.Envelope"]; !ok {
		t.Fatal("envelope definition missing")
	}
	upload := spec["paths"].(map[string]any)["/itineraries/upload"].(map[string]any)["post"].(map[string]any)
	resps := upload["responses"].(map[string]any)
	for _, code := range []string{"413", "500"} {
		r, ok := resps[code].(map[string]any)
		if !ok || r["schema"] == nil {
			t.Fatalf("response %s not decorated: %v", code, resps[code])
		}
	}
	if resps["200"].(map[string]any)["schema"].(map[string]any)["$ref"] != "#/definitions/domain.Result" {
		t.Fatalf("success schema replaced: %v", resps["200"])
	}

	if rr := get(t, mux, "/api/docs"); rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect %d", rr.Code)
	}
	if rr := get(t, mux, "/api/docs/index.html"); rr.Code != http.StatusOK {
		t.Fatalf("ui %d", rr.Code)
	}
}

func TestMount_Disabled(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), config.New(), false)
	if rr := get(t, mux, "/api/docs/doc.json"); rr.Code != http.StatusNotFound {
		t.Fatalf("disabled %d", rr.Code)
	}
}

func TestServeDocJSON_InvalidDoc(t *testing.T) {
	orig := readDoc
	readDoc = func() string { return "{" }
	t.Cleanup(func() { readDoc = orig })

	if rr := get(t, serveDocJSON(config.New()), "/"); rr.Code != http.StatusInternalServerError {
		t.Fatalf("code %d", rr.Code)
	}
}
