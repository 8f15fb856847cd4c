package http

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/manyinyire/Outleads-sub001/internal/observability"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	return app
}

var errDSN = errors.New("pgx: connect failed for host db.internal:5432")

func TestRequestTimeoutCancelsHandlerContext(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 50*time.Millisecond)

	canceled := false
	app.Get("/slow", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if _, ok := ctx.Deadline(); !ok {
			t.Error("handler context carries no deadline")
		}
		select {
		case <-ctx.Done():
			canceled = true
			return apperrors.NewInternalError(ctx.Err())
		case <-time.After(300 * time.Millisecond):
			return c.SendString("finished")
		}
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/slow", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if !canceled {
		t.Fatal("slow handler ran past the deadline; request context was never canceled")
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestFailedRequestsCountWithRealStatus(t *testing.T) {
	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 5*time.Second)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("name is required", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	if got := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/boom", "400")); got != 1 {
		t.Errorf("http_requests_total{status=\"400\"} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/boom", "200")); got != 0 {
		t.Errorf("http_requests_total{status=\"200\"} = %v; failure counted as success", got)
	}
}

func TestErrorEnvelopeIsFlat(t *testing.T) {
	app := newTestApp()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("name is required", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "VALIDATION_FAILED" {
		t.Errorf("error = %v, want VALIDATION_FAILED", body["error"])
	}
	if body["message"] != "name is required" {
		t.Errorf("message = %v", body["message"])
	}
	if _, nested := body["error"].(map[string]any); nested {
		t.Error("error field is nested, want flat string code")
	}
}

func TestPanicBecomesGeneric500(t *testing.T) {
	app := newTestApp()
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom: secret detail")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "internal server error" {
		t.Errorf("message = %v; internal detail must not leak", body["message"])
	}
}

func TestUnexpectedErrorDetailNeverLeaks(t *testing.T) {
	app := newTestApp()
	app.Get("/db", func(c *fiber.Ctx) error {
		return apperrors.NewInternalError(errDSN)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/db", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "internal server error" {
		t.Errorf("message = %v, want generic", body["message"])
	}
}

func TestFiberErrorsKeepTheirStatus(t *testing.T) {
	app := newTestApp()
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusTeapot {
		t.Errorf("status = %d, want 418", resp.StatusCode)
	}
}

func TestValidationDetailsSurface(t *testing.T) {
	app := newTestApp()
	app.Get("/partial", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("batch contains leads that cannot be assigned",
			map[string]any{"offending_leads": 2})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/partial", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	details, ok := body["details"].(map[string]any)
	if !ok {
		t.Fatalf("details missing: %v", body)
	}
	if details["offending_leads"] != float64(2) {
		t.Errorf("offending_leads = %v, want 2", details["offending_leads"])
	}
}
