package handler

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/PritamDhobale/data-entry-webapp/internal/dto"
	"github.com/PritamDhobale/data-entry-webapp/internal/schema"
	"github.com/PritamDhobale/data-entry-webapp/internal/service"
)

type stubPageClient struct {
	body   string
	status int
}

func (s *stubPageClient) Do(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header:     make(http.Header),
	}, nil
}

type stubMXResolver struct{}

func (stubMXResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	return []*net.MX{{Host: "mx." + domain}}, nil
}

func autofillContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/autofill", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	authenticate(c, schema.RoleDataEntry)
	return c, rec
}

func TestAutofillHandler_Extract(t *testing.T) {
	e := echo.New()
	c, rec := autofillContext(e, `{"website": "acme.example"}`)

	page := `<html><head><title>Acme Widgets | Home</title></head>` +
		`<body><a href="mailto:info@acme.example">email</a></body></html>`
	svc := service.NewAutofillService("US",
		service.WithHTTPClient(&stubPageClient{body: page, status: http.StatusOK}),
		service.WithDNSResolver(stubMXResolver{}))

	handler := NewAutofillHandler(svc)
	_ = handler.Extract(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data dto.AutofillResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.CompanyName != "Acme Widgets" {
		t.Fatalf("unexpected company name %q", envelope.Data.CompanyName)
	}
	if len(envelope.Data.Emails) != 1 || envelope.Data.Emails[0] != "info@acme.example" {
		t.Fatalf("unexpected emails: %v", envelope.Data.Emails)
	}
}

func TestAutofillHandler_MissingWebsite(t *testing.T) {
	e := echo.New()
	c, rec := autofillContext(e, `{"website": "  "}`)

	handler := NewAutofillHandler(service.NewAutofillService("US"))
	_ = handler.Extract(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAutofillHandler_UpstreamFailure(t *testing.T) {
	e := echo.New()
	c, rec := autofillContext(e, `{"website": "acme.example"}`)

	svc := service.NewAutofillService("US",
		service.WithHTTPClient(&stubPageClient{status: http.StatusServiceUnavailable}),
		service.WithDNSResolver(stubMXResolver{}))

	handler := NewAutofillHandler(svc)
	_ = handler.Extract(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unreachable site, got %d", rec.Code)
	}
}
