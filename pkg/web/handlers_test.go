package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlabs/weft/pkg/dependency"
	"github.com/weftlabs/weft/pkg/pipeline"
	"github.com/weftlabs/weft/pkg/transform"
	"github.com/weftlabs/weft/pkg/web"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	executor := transform.NewExecutor(nil)
	handlers := web.NewAPIHandlers(
		executor,
		pipeline.NewRunner(executor, nil),
		dependency.NewFilter(nil),
		validator.New(validator.WithRequiredStructEnabled()),
		nil,
	)

	app := fiber.New()
	handlers.Register(app)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(payload) > 0 {
		require.NoError(t, json.Unmarshal(payload, &decoded))
	}

	return resp, decoded
}

func TestApplyTransformation(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, body := postJSON(t, app, "/transformations/apply", map[string]any{
		"data": map[string]any{"name": "ada"},
		"transformation": map[string]any{
			"id": "up", "type": "format", "source_field": "name", "operation": "uppercase",
		},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ADA", body["data"].(map[string]any)["name"])
}

func TestApplyTransformation_UnsupportedType(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, body := postJSON(t, app, "/transformations/apply", map[string]any{
		"data":           map[string]any{},
		"transformation": map[string]any{"id": "x", "type": "teleport"},
	})

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "unsupported_transformation", body["type"])
}

func TestApplyTransformation_MissingTransformation(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, _ := postJSON(t, app, "/transformations/apply", map[string]any{
		"data": map[string]any{},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestApplyPipeline_PartialFailure(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, body := postJSON(t, app, "/pipelines/apply", map[string]any{
		"data": map[string]any{"name": "ada"},
		"pipeline": map[string]any{
			"id": "p",
			"transformations": []any{
				map[string]any{"id": "up", "type": "format", "source_field": "name", "operation": "uppercase", "priority": 1},
				map[string]any{"id": "boom", "type": "aggregate", "operation": "sum", "priority": 2},
			},
		},
	})

	// Pipelines report partial failure in the body, not the status code.
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Len(t, body["errors"], 1)
	assert.Equal(t, "ADA", body["data"].(map[string]any)["name"])
}

func TestFilterData(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, body := postJSON(t, app, "/data/filter", map[string]any{
		"data": map[string]any{
			"A": map[string]any{"v": 1},
			"B": map[string]any{"ref": map[string]any{"nodeId": "A"}},
			"C": map[string]any{"v": 3},
		},
		"relevant_ids": []string{"B"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Contains(t, data, "A")
	assert.Contains(t, data, "B")
	assert.NotContains(t, data, "C")
}

func TestMergeData(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, body := postJSON(t, app, "/data/merge", map[string]any{
		"sources":  []any{map[string]any{"x": 1}, map[string]any{"x": 2}},
		"strategy": "combine",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{float64(1), float64(2)}, body["data"].(map[string]any)["x"])
}

func TestMergeData_UnknownStrategy(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, _ := postJSON(t, app, "/data/merge", map[string]any{
		"sources":  []any{map[string]any{}, map[string]any{}},
		"strategy": "zip",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
