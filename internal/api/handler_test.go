package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrafin/statement-engine/internal/classifier"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	h := &Handler{
		Rules:       classifier.DefaultRules(),
		MaxUploadMB: 1,
		Log:         zerolog.Nop(),
	}
	h.Register(app)
	return app
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/parse", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeResponse(t *testing.T, resp *http.Response) ParseResponse {
	t.Helper()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed ParseResponse
	require.NoError(t, json.Unmarshal(data, &parsed))
	return parsed
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestParseRequiresFile(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/parse", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	parsed := decodeResponse(t, resp)
	assert.False(t, parsed.Success)
	assert.Contains(t, parsed.Error, "no file uploaded")
	assert.NotNil(t, parsed.Transactions, "the API promises an array, not null")
}

func TestParseRejectsNonPDF(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(uploadRequest(t, "statement.txt", []byte("plain text")))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	parsed := decodeResponse(t, resp)
	assert.False(t, parsed.Success)
	assert.Contains(t, parsed.Error, "only PDF files")
}

func TestParseRejectsOversizedUpload(t *testing.T) {
	app := newTestApp(t)

	// One byte past the 1MB limit configured for the test handler.
	payload := bytes.Repeat([]byte{'a'}, 1<<20+1)
	resp, err := app.Test(uploadRequest(t, "statement.pdf", payload))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	parsed := decodeResponse(t, resp)
	assert.Contains(t, parsed.Error, "file too large")
}

func TestParseRejectsUnreadableDocument(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(uploadRequest(t, "statement.pdf", []byte("not actually pdf bytes")))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	parsed := decodeResponse(t, resp)
	assert.False(t, parsed.Success)
	assert.Contains(t, parsed.Error, "extraction failed")
	assert.NotContains(t, parsed.Error, "/tmp", "errors must not leak filesystem paths")
}
