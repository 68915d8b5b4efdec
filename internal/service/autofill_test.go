package service

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
)

type stubDNSResolver struct {
	mx map[string]bool
}

func (s *stubDNSResolver) LookupMX(_ context.Context, domain string) ([]*net.MX, error) {
	if s.mx == nil {
		return nil, errors.New("no mx")
	}
	if ok := s.mx[domain]; ok {
		return []*net.MX{{Host: "mail." + domain, Pref: 10}}, nil
	}
	return nil, errors.New("no mx")
}

type stubHTTPClient struct {
	pages  map[string]string
	status int
	err    error
}

func (c *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if c.err != nil {
		return nil, c.err
	}
	body := c.pages[req.URL.String()]
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title>Acme Widgets | Industrial Widgets Since 1952</title>
<meta name="description" content="Acme makes industrial widgets." />
<meta property="og:site_name" content="Acme Widgets Inc" />
</head>
<body>
<a href="mailto:sales@acme.com">sales@acme.com</a>
<a href="tel:+1 415 555 1234">Call us</a>
<p>Support: info@acme.com or bad@nomx.example</p>
<img src="logo@2x.png" alt="hero@banner.png">
<a href="https://www.linkedin.com/company/acme?utm_source=site">LinkedIn</a>
<a href="https://www.facebook.com/acmewidgets">Facebook</a>
<a href="https://www.google.com/maps/place/Acme">Directions</a>
<a href="https://example.com/partner">Partner</a>
</body>
</html>`

func TestAutofillExtractsContactDetails(t *testing.T) {
	resolver := &stubDNSResolver{mx: map[string]bool{"acme.com": true}}
	client := &stubHTTPClient{pages: map[string]string{"https://acme.com": samplePage}}
	svc := NewAutofillService("US", WithDNSResolver(resolver), WithHTTPClient(client))

	result, err := svc.Autofill(context.Background(), "acme.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Website != "https://acme.com" {
		t.Fatalf("unexpected website: %s", result.Website)
	}
	if result.CompanyName != "Acme Widgets Inc" {
		t.Fatalf("expected og:site_name company, got %q", result.CompanyName)
	}
	if result.Description != "Acme makes industrial widgets." {
		t.Fatalf("unexpected description: %q", result.Description)
	}
	if len(result.Emails) != 2 || result.Emails[0] != "info@acme.com" || result.Emails[1] != "sales@acme.com" {
		t.Fatalf("unexpected emails: %#v", result.Emails)
	}
	if len(result.Phones) != 1 || result.Phones[0] != "+14155551234" {
		t.Fatalf("unexpected phones: %#v", result.Phones)
	}
	if result.Social.LinkedIn != "https://www.linkedin.com/company/acme" {
		t.Fatalf("linkedin not cleaned: %s", result.Social.LinkedIn)
	}
	if result.Social.Facebook != "https://www.facebook.com/acmewidgets" {
		t.Fatalf("facebook missing: %s", result.Social.Facebook)
	}
	if result.Social.GoogleMaps != "https://www.google.com/maps/place/Acme" {
		t.Fatalf("google maps missing: %s", result.Social.GoogleMaps)
	}
	if result.FetchedAt.IsZero() {
		t.Fatalf("expected fetch timestamp")
	}
}

func TestAutofillCompanyNameFallsBackToTitle(t *testing.T) {
	page := `<html><head><title>Umbrella Corp - Home</title></head><body></body></html>`
	client := &stubHTTPClient{pages: map[string]string{"https://umbrella.example": page}}
	svc := NewAutofillService("US", WithDNSResolver(&stubDNSResolver{}), WithHTTPClient(client))

	result, err := svc.Autofill(context.Background(), "umbrella.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CompanyName != "Umbrella Corp" {
		t.Fatalf("expected title-derived name, got %q", result.CompanyName)
	}
}

func TestAutofillRejectsBadInput(t *testing.T) {
	svc := NewAutofillService("US", WithHTTPClient(&stubHTTPClient{}))

	var vErr ValidationError
	if _, err := svc.Autofill(context.Background(), "   "); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for blank url, got %v", err)
	}

	unreachable := NewAutofillService("US", WithHTTPClient(&stubHTTPClient{err: errors.New("dial timeout")}))
	if _, err := unreachable.Autofill(context.Background(), "acme.com"); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unreachable site, got %v", err)
	}

	notFound := NewAutofillService("US", WithHTTPClient(&stubHTTPClient{status: http.StatusNotFound}))
	if _, err := notFound.Autofill(context.Background(), "acme.com"); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for non-200 response, got %v", err)
	}
}

func TestCleanEmailsValidatesSyntaxAndMX(t *testing.T) {
	resolver := &stubDNSResolver{mx: map[string]bool{"example.com": true}}
	svc := NewAutofillService("US", WithDNSResolver(resolver), WithHTTPClient(&stubHTTPClient{}))

	emails := []string{
		"Test@Example.com",
		"test@example.com",
		"user@missingmx.com",
		"logo@2x.png",
	}

	got := svc.cleanEmails(context.Background(), emails)
	if len(got) != 1 || got[0] != "test@example.com" {
		t.Fatalf("expected only normalized valid email, got %#v", got)
	}
}

func TestExtractPhonesDeduplicates(t *testing.T) {
	svc := NewAutofillService("US", WithHTTPClient(&stubHTTPClient{}))
	page := `tel:(415) 555-1234 and call +1 415 555 1234 or 12345`
	phones := svc.extractPhones(page)
	if len(phones) != 1 || phones[0] != "+14155551234" {
		t.Fatalf("unexpected normalized phones: %#v", phones)
	}
}

func TestSocialHostMatching(t *testing.T) {
	tests := map[string]struct {
		host string
		path string
		want string
		ok   bool
	}{
		"linkedin":         {host: "www.linkedin.com", path: "/company/x", want: "linkedin", ok: true},
		"yelp":             {host: "yelp.com", path: "/biz/x", want: "yelp", ok: true},
		"maps subdomain":   {host: "maps.google.com", path: "/place/x", want: "google_maps", ok: true},
		"maps path":        {host: "www.google.com", path: "/maps/place/x", want: "google_maps", ok: true},
		"plain google":     {host: "www.google.com", path: "/search", ok: false},
		"lookalike domain": {host: "linkedin.com.evil.example", path: "/", ok: false},
		"unrelated":        {host: "example.com", path: "/", ok: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := socialHost(tt.host, tt.path)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSanitizeURLForcesHTTPS(t *testing.T) {
	u, err := sanitizeURL("http://acme.com/contact?utm_source=ads&page=2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stripTracking(u)
	if u.String() != "https://acme.com/contact?page=2" {
		t.Fatalf("unexpected sanitized url: %s", u.String())
	}

	if _, err := sanitizeURL(""); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
