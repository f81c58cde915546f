package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"itinerary/internal/platform/config"
	docs "itinerary/internal/services/api/docs"
)

// envelopeSchema mirrors pnet.Envelope for error responses
var envelopeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
		"job_id":      map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status"},
}

// readDoc is swapped in tests
var readDoc = func() string { return docs.SwaggerInfo.ReadDoc() }

// serveDocJSON serves the generated swagger document with the error envelope
// definition attached to every error response and a 500 on every operation.
// CORE_API_DOCS_TITLE_SUFFIX is appended to the title (e.g. "staging")
func serveDocJSON(cfg config.Conf) http.HandlerFunc {
	suffix := cfg.MayString("DOCS_TITLE_SUFFIX", "")
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(readDoc()), &spec); err != nil {
			http.Error(w, "swagger document is not valid JSON", http.StatusInternalServerError)
			return
		}
		decorate(spec, suffix)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

func decorate(spec map[string]any, suffix string) {
	if info, ok := spec["info"].(map[string]any); ok && suffix != "" {
		if title, ok := info["title"].(string); ok {
			info["title"] = title + " (" + suffix + ")"
		}
	}

	defs, ok := spec["definitions"].(map[string]any)
	if !ok {
		defs = map[string]any{}
		spec["definitions"] = defs
	}
	defs["httpkit.Envelope"] = envelopeSchema
	ref := map[string]any{"$ref": "#/definitions/httpkit.Envelope"}

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			if _, ok := resps["500"]; !ok {
				resps["500"] = map[string]any{"description": "Internal Server Error"}
			}
			for code, r := range resps {
				resp, ok := r.(map[string]any)
				if !ok || !(strings.HasPrefix(code, "4") || strings.HasPrefix(code, "5")) {
					continue
				}
				if _, ok := resp["schema"]; !ok {
					resp["schema"] = ref
				}
			}
		}
	}
}
