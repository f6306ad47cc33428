package rest

import (
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemanja-m/mrlabs/internal/catalog"
	"github.com/nemanja-m/mrlabs/internal/shared/config"
)

func newTestMux() *http.ServeMux {
	api := NewAPI(catalog.Default(), newMockLogger())
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	return mux
}

func serve(t *testing.T, mux http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestListExperiments(t *testing.T) {
	w := serve(t, newTestMux(), "/api/experiments")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ListExperimentsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	require.Equal(t, 3, resp.Total)
	names := make([]string, 0, len(resp.Experiments))
	for _, e := range resp.Experiments {
		names = append(names, e.Name)
	}
	assert.Equal(t, catalog.Default().Names(), names)

	wordCount := resp.Experiments[1]
	assert.Equal(t, "mapper_reducer_wordcount.sh", wordCount.Filename)
	assert.Equal(t, "/api/experiments/MapReduce%20Word%20Count", wordCount.Links.Self)
	assert.Equal(t, "/api/experiments/MapReduce%20Word%20Count/script", wordCount.Links.Script)
	assert.Equal(t, "/api/experiments/MapReduce%20Word%20Count/sample", wordCount.Links.Sample)
}

func TestGetExperiment(t *testing.T) {
	w := serve(t, newTestMux(), "/api/experiments/Hadoop%20command%20lines")
	require.Equal(t, http.StatusOK, w.Code)

	var resp GetExperimentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	exp, err := catalog.Default().Get("Hadoop command lines")
	require.NoError(t, err)

	assert.Equal(t, exp.Name, resp.Name)
	assert.Equal(t, exp.Filename, resp.Filename)
	assert.Equal(t, exp.Code, resp.Code)
	assert.Equal(t, exp.ExecutionCommand, resp.ExecutionCommand)
	assert.Equal(t, "newfile.txt", resp.SampleFile)
	assert.True(t, resp.SampleAvailable)
}

func TestGetExperimentNotFound(t *testing.T) {
	w := serve(t, newTestMux(), "/api/experiments/nonexistent")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "experiment not found", resp.Error)
	assert.Equal(t, "nonexistent", resp.Message)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDownloadScript(t *testing.T) {
	mux := newTestMux()
	exp, err := catalog.Default().Get("MapReduce Word Count")
	require.NoError(t, err)

	first := serve(t, mux, "/api/experiments/MapReduce%20Word%20Count/script")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "application/bash", first.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=mapper_reducer_wordcount.sh`, first.Header().Get("Content-Disposition"))
	assert.Equal(t, exp.Code, first.Body.String())

	second := serve(t, mux, "/api/experiments/MapReduce%20Word%20Count/script")
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}

func TestDownloadSample(t *testing.T) {
	w := serve(t, newTestMux(), "/api/experiments/MapReduce%20Rank%20Movies%20by%20Popularity/sample")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=movies.txt`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "1,Movie A,100\n2,Movie B,90\n3,Movie C,110\n", w.Body.String())
}

func TestDownloadSampleUnavailable(t *testing.T) {
	src := &fixedSource{exp: catalog.Experiment{
		Name:             "bare",
		Filename:         "bare.sh",
		Code:             "ls",
		ExecutionCommand: "sh bare.sh",
		SampleFile:       "data.csv",
	}}
	api := NewAPI(src, newMockLogger())
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	w := serve(t, mux, "/api/experiments/bare/sample")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "no sample available", resp.Error)
	assert.Equal(t, "data.csv", resp.Message)
}

func TestPageDefault(t *testing.T) {
	w := serve(t, newTestMux(), "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "<title>MapReduce Experiments</title>")
	assert.Contains(t, body, "<h1>Hadoop command lines</h1>")
	assert.Contains(t, body, `<option value="Hadoop command lines" selected>`)
	assert.Contains(t, body, `<option value="MapReduce Word Count">`)
}

func TestPageSelected(t *testing.T) {
	w := serve(t, newTestMux(), "/?experiment=MapReduce+Word+Count")
	require.Equal(t, http.StatusOK, w.Code)

	exp, err := catalog.Default().Get("MapReduce Word Count")
	require.NoError(t, err)

	body := w.Body.String()
	assert.Contains(t, body, `<option value="MapReduce Word Count" selected>`)
	assert.Contains(t, body, `href="/api/experiments/MapReduce%20Word%20Count/script"`)
	assert.Contains(t, body, `href="/api/experiments/MapReduce%20Word%20Count/sample"`)
	assert.Contains(t, body, "<h3>Download mapper_reducer_wordcount.sh</h3>")
	assert.Contains(t, body, "<h3>Sample File: wordfile.txt</h3>")

	unescaped := html.UnescapeString(body)
	assert.Contains(t, unescaped, exp.Code)
	assert.Contains(t, unescaped, exp.ExecutionCommand)
}

func TestPageUnknownExperiment(t *testing.T) {
	w := serve(t, newTestMux(), "/?experiment=nonexistent")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	w := serve(t, newTestMux(), "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNewServer(t *testing.T) {
	logger := newMockLogger()
	cfg := config.RESTConfig{
		Addr:         ":0",
		ReadTimeout:  time.Second,
		WriteTimeout: 2 * time.Second,
		IdleTimeout:  3 * time.Second,
	}

	srv := NewServer(cfg, catalog.Default(), logger)
	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)

	w := serve(t, srv.Handler, "/api/experiments/MapReduce%20Word%20Count/sample")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello world this is a test\nAnother line with words\n", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	output := logger.getOutput()
	assert.True(t, strings.Contains(output, "path=/api/experiments/MapReduce Word Count/sample"), output)
}

type fixedSource struct {
	exp catalog.Experiment
}

func (s *fixedSource) Get(name string) (catalog.Experiment, error) {
	if name != s.exp.Name {
		return catalog.Experiment{}, &catalog.NotFoundError{Name: name}
	}
	return s.exp, nil
}

func (s *fixedSource) Names() []string {
	return []string{s.exp.Name}
}
