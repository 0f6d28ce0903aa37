package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"doc-collab-be/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func appWithError(err error) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(nopLogger{}))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App) (int, ApiResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed ApiResponse
	require.NoError(t, json.Unmarshal(body, &parsed))
	return resp.StatusCode, parsed
}

func TestErrorHandler_MapsClassesToStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.NewValidationError("document_id is required"), fiber.StatusBadRequest},
		{"session not found", apperrors.NewSessionNotFound("abc"), fiber.StatusNotFound},
		{"session creation", apperrors.NewSessionCreationFailed(errors.New("insert failed")), fiber.StatusInternalServerError},
		{"retrieval unavailable", apperrors.NewRetrievalUnavailable(errors.New("index down")), fiber.StatusServiceUnavailable},
		{"generation failed", apperrors.NewGenerationFailed(errors.New("upstream 500")), fiber.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, parsed := doRequest(t, appWithError(tc.err))
			assert.Equal(t, tc.status, status)
			assert.False(t, parsed.Success)
		})
	}
}

func TestErrorHandler_HidesWrappedCauseFromResponse(t *testing.T) {
	cause := errors.New("openai returned status 500: internal key rotation")
	status, parsed := doRequest(t, appWithError(apperrors.NewGenerationFailed(cause)))

	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "answer generation failed", parsed.Message)
	assert.NotContains(t, parsed.Message, "key rotation")
}

func TestErrorHandler_FiberErrorKeepsItsCode(t *testing.T) {
	status, parsed := doRequest(t, appWithError(fiber.ErrMethodNotAllowed))

	assert.Equal(t, fiber.StatusMethodNotAllowed, status)
	assert.False(t, parsed.Success)
}
