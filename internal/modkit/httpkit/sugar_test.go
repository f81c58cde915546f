package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "itinerary/internal/platform/errors"
	phttp "itinerary/internal/platform/net/http"
)

type vesselIn struct {
	Name string `json:"name" validate:"required"`
}

func call(t *testing.T, h http.Handler, method, path, body string) (int, Envelope) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	var env Envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr.Code, env
}

func TestMountAPI_Sugar(t *testing.T) {
	mux := chi.NewRouter()
	var scoped bool
	mw := []func(http.Handler) http.Handler{func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scoped = true
			next.ServeHTTP(w, r)
		})
	}}
	MountAPIV1(phttp.AdaptChi(mux), mw, func(api Router) {
		Get(api, "/vessels/{name}", func(r *http.Request) (any, error) {
			if Param(r, "name") == "ghost" {
				return nil, perr.NotFoundf("vessel %q not found", "ghost")
			}
			return map[string]string{"name": Param(r, "name")}, nil
		})
		Post(api, "/vessels", func(*http.Request) (any, error) {
			return Response{Status: http.StatusCreated, Body: "ok"}, nil
		})
		PostJSON(api, "/vessels/check", 32, func(_ *http.Request, in vesselIn) (any, error) {
			return OK(in.Name), nil
		})
	})

	code, env := call(t, mux, http.MethodGet, "/api/v1/vessels/aurora", "")
	if code != http.StatusOK || env.Data.(map[string]any)["name"] != "aurora" || !scoped {
		t.Fatalf("get: %d %+v scoped=%v", code, env, scoped)
	}
	if code, env := call(t, mux, http.MethodGet, "/api/v1/vessels/ghost", ""); code != http.StatusNotFound || env.Code != perr.ErrorCodeNotFound {
		t.Fatalf("missing: %d %+v", code, env)
	}
	if code, _ := call(t, mux, http.MethodPost, "/api/v1/vessels", ""); code != http.StatusCreated {
		t.Fatalf("post: %d", code)
	}
	if code, env := call(t, mux, http.MethodPost, "/api/v1/vessels/check", `{"name":"Ever Given"}`); code != http.StatusOK || env.Data != "Ever Given" {
		t.Fatalf("json: %d %+v", code, env)
	}
	if code, _ := call(t, mux, http.MethodPost, "/api/v1/vessels/check", `{"name":"`+strings.Repeat("x", 64)+`"}`); code != http.StatusRequestEntityTooLarge {
		t.Fatalf("json limit: %d", code)
	}
	if code, _ := call(t, mux, http.MethodGet, "/vessels/aurora", ""); code != http.StatusNotFound {
		t.Fatalf("unversioned: %d", code)
	}
}

func TestMountAPI_TrimsVersion(t *testing.T) {
	mux := chi.NewRouter()
	MountAPI(phttp.AdaptChi(mux), "/v2/", nil, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})
	if code, env := call(t, mux, http.MethodGet, "/api/v2/ping", ""); code != http.StatusOK || env.Data != "pong" {
		t.Fatalf("got %d %+v", code, env)
	}
}
