package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary/internal/core/ocr"
	"itinerary/internal/core/rulepack"
	modkit "itinerary/internal/modkit"
	"itinerary/internal/modkit/module"
	"itinerary/internal/platform/config"
	phttp "itinerary/internal/platform/net/http"
	"itinerary/internal/platform/store"
	"itinerary/internal/services/api/itineraries/domain"
)

type noOCR struct{}

func (noOCR) Recognize(context.Context, string) ([]ocr.Fragment, error) { return nil, nil }

func TestFromConfig_Defaults(t *testing.T) {
	o := FromConfig(config.New().Prefix("CORE_"))
	assert.Equal(t, "tesseract", o.OCRBin)
	assert.Equal(t, "spa+eng", o.OCRLang)
	assert.InDelta(t, 0.3, o.OCRThreshold, 1e-9)
	assert.False(t, o.LooseDedup)
	assert.EqualValues(t, 16<<20, o.UploadMaxBytes)
	assert.Equal(t, "/api/v1", o.APIBase)
}

func TestFromConfig_Env(t *testing.T) {
	t.Setenv("CORE_OCR_BIN", "/usr/local/bin/tesseract")
	t.Setenv("CORE_OCR_THRESHOLD", "0.5")
	t.Setenv("CORE_OCR_PREPROCESS", "true")
	t.Setenv("CORE_OCR_TIMEOUT", "15s")
	t.Setenv("CORE_EXTRACT_LOOSE_DEDUP", "true")
	t.Setenv("CORE_UPLOAD_MAX_BYTES", "1 KiB")

	o := FromConfig(config.New().Prefix("CORE_"))
	assert.Equal(t, "/usr/local/bin/tesseract", o.OCRBin)
	assert.InDelta(t, 0.5, o.OCRThreshold, 1e-9)
	assert.True(t, o.OCRPreprocess)
	assert.Equal(t, 15*time.Second, o.OCRTimeout)
	assert.True(t, o.LooseDedup)
	assert.EqualValues(t, 1024, o.UploadMaxBytes)
}

func TestModule_TextRoundTrip(t *testing.T) {
	pack, err := rulepack.Load()
	require.NoError(t, err)
	fs, err := store.NewFS(t.TempDir(), nil)
	require.NoError(t, err)

	o := FromConfig(config.New().Prefix("CORE_"))
	m := New(modkit.Deps{Artifacts: fs}, pack, noOCR{}, o)
	assert.Equal(t, "itineraries", m.Name())
	_, ok := module.PortsOf[domainPort](m)
	assert.True(t, ok)

	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Route("/api/v1", func(api phttp.Router) { m.MountRoutes(api) })

	body := `{"text":"NAVIERA MAERSK\nPOL: San Antonio\nETD: 05/03/2024","name":"booking"}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries/text", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var env struct {
		Data domain.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "MAERSK", env.Data.Record.Carrier)
	require.Contains(t, env.Data.Artifacts, "xlsx")
	require.Contains(t, env.Data.Artifacts, "pdf")
	assert.Equal(t, "booking_datos.pdf", env.Data.Artifacts["pdf"].Name)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, env.Data.Artifacts["pdf"].Href, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "%PDF-"))
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
}

type domainPort interface {
	FromText(ctx context.Context, in domain.TextInput) (domain.Result, error)
}
