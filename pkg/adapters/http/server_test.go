package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/viterbi"
	adapter "github.com/aretw0/viterbi/pkg/adapters/http"
	"github.com/aretw0/viterbi/pkg/adapters/memory"
	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/aretw0/viterbi/pkg/hmm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...adapter.Option) *httptest.Server {
	t.Helper()
	engine := viterbi.New(memory.NewStore(domain.Builtins()...))
	srv := httptest.NewServer(adapter.NewHandler(engine, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestServer_Health(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_Info(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/info", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info map[string]string
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, "viterbi-http", info["app"])
	assert.Equal(t, strings.TrimSpace(viterbi.Version), info["version"])
	assert.Equal(t, "1.0.0", info["api_version"])
}

func TestServer_OpenAPIDocument(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/models/{name}/decode")

	resp, body = do(t, http.MethodGet, srv.URL+"/swagger", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "swagger-ui")
}

func TestServer_Preflight(t *testing.T) {
	srv := newServer(t)

	resp, _ := do(t, http.MethodOptions, srv.URL+"/models", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PUT")
}

func TestServer_ListModels(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/models", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list adapter.ModelList
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, []string{domain.CasinoModel, domain.WeatherModel}, list.Models)
}

func TestServer_GetModel(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/models/"+domain.WeatherModel, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var def domain.Definition
	require.NoError(t, json.Unmarshal(body, &def))
	assert.Equal(t, domain.WeatherSensor().States, def.States)
	assert.Equal(t, domain.WeatherSensor().Emission, def.Emission)

	resp, body = do(t, http.MethodGet, srv.URL+"/models/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "model not found")
}

func TestServer_Decode(t *testing.T) {
	srv := newServer(t)
	url := srv.URL + "/models/" + domain.WeatherModel + "/decode"

	t.Run("Success", func(t *testing.T) {
		resp, body := do(t, http.MethodPost, url, `{"observations":["HOT","HOT","COLD","COLD","COLD"]}`)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		var res domain.Result
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, domain.WeatherModel, res.Model)
		assert.Equal(t, []string{"SUNNY", "SUNNY", "BLIZZARD", "BLIZZARD", "BLIZZARD"}, res.States)
		assert.Equal(t, []int{0, 0, 2, 2, 2}, res.Indices)
		assert.InDelta(t, 0.0085073034375, res.Score, 1e-12)
	})

	t.Run("Unknown Symbol", func(t *testing.T) {
		resp, body := do(t, http.MethodPost, url, `{"observations":["HOT","WARM"]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, string(body), "WARM")
	})

	t.Run("Empty Observations", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, url, `{"observations":[]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, url, `{"observations":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown Field", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, url, `{"symbols":["HOT"]}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing Model", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, srv.URL+"/models/missing/decode", `{"observations":["HOT"]}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

const coinJSON = `{
	"name": "ignored",
	"states": ["FAIR", "BIASED"],
	"symbols": ["H", "T"],
	"initial": {"FAIR": 1},
	"transition": {
		"FAIR": {"FAIR": 0.9, "BIASED": 0.1},
		"BIASED": {"FAIR": 0.1, "BIASED": 0.9}
	},
	"emission": {
		"FAIR": {"H": 0.5, "T": 0.5},
		"BIASED": {"H": 0.9, "T": 0.1}
	}
}`

func TestServer_PutAndDeleteModel(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, http.MethodPut, srv.URL+"/models/coin", coinJSON)
	require.Equal(t, http.StatusNoContent, resp.StatusCode, string(body))

	// The path name replaces the one in the body.
	resp, body = do(t, http.MethodGet, srv.URL+"/models/coin", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var def domain.Definition
	require.NoError(t, json.Unmarshal(body, &def))
	assert.Equal(t, "coin", def.Name)

	resp, _ = do(t, http.MethodGet, srv.URL+"/models/ignored", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, http.MethodPost, srv.URL+"/models/coin/decode", `{"observations":["T","H","H"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var res domain.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "FAIR", res.States[0])

	resp, _ = do(t, http.MethodDelete, srv.URL+"/models/coin", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/models/coin", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_PutInvalidModel(t *testing.T) {
	srv := newServer(t)

	invalid := strings.Replace(coinJSON, `"FAIR": {"H": 0.5, "T": 0.5}`, `"FAIR": {"H": 0.5, "T": 0.2}`, 1)
	resp, body := do(t, http.MethodPut, srv.URL+"/models/coin", invalid)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var errResp adapter.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	require.Len(t, errResp.Violations, 1)
	v := errResp.Violations[0]
	assert.Equal(t, hmm.TableEmission, v.Table)
	assert.Equal(t, 0, v.Row)
	assert.Equal(t, -1, v.Column)
	require.NotNil(t, v.Deviation)
	assert.InDelta(t, 0.3, *v.Deviation, 1e-9)

	resp, _ = do(t, http.MethodGet, srv.URL+"/models/coin", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_PutUndeclaredState(t *testing.T) {
	srv := newServer(t)

	invalid := strings.Replace(coinJSON, `"initial": {"FAIR": 1}`, `"initial": {"LOADED": 1}`, 1)
	resp, body := do(t, http.MethodPut, srv.URL+"/models/coin", invalid)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "undeclared state")
}

type readOnlyLoader struct {
	inner *memory.Store
}

func (r readOnlyLoader) Get(ctx context.Context, name string) (*domain.Definition, error) {
	return r.inner.Get(ctx, name)
}

func (r readOnlyLoader) List(ctx context.Context) ([]string, error) {
	return r.inner.List(ctx)
}

func TestServer_ReadOnly(t *testing.T) {
	engine := viterbi.New(readOnlyLoader{inner: memory.NewStore(domain.Builtins()...)})
	srv := httptest.NewServer(adapter.NewHandler(engine))
	t.Cleanup(srv.Close)

	resp, _ := do(t, http.MethodPut, srv.URL+"/models/coin", coinJSON)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/models/"+domain.CasinoModel, "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_EventsUnsupported(t *testing.T) {
	srv := newServer(t)

	resp, _ := do(t, http.MethodGet, srv.URL+"/events", "")
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_requests_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	srv := newServer(t, adapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	resp, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "test_requests_total 1")
}

func TestServer_NoMetricsByDefault(t *testing.T) {
	srv := newServer(t)

	resp, _ := do(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"NotFound", domain.ErrModelNotFound, http.StatusNotFound},
		{"ReadOnly", domain.ErrReadOnly, http.StatusMethodNotAllowed},
		{"InvalidDefinition", domain.ErrInvalidDefinition, http.StatusUnprocessableEntity},
		{"UnknownSymbol", &domain.UnknownSymbolError{Symbol: "X"}, http.StatusUnprocessableEntity},
		{"InvalidObservation", &hmm.InvalidObservationError{Err: hmm.ErrEmptyObservations}, http.StatusUnprocessableEntity},
		{"ModelValidation", &hmm.ModelValidationError{Table: hmm.TableInitial}, http.StatusUnprocessableEntity},
		{"Other", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.StatusFor(tt.err))
		})
	}
}
