package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/PritamDhobale/data-entry-webapp/internal/dto"
)

var (
	emailPattern     = regexp.MustCompile(`[a-zA-Z0-9._%+\-']+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	hrefPattern      = regexp.MustCompile(`href\s*=\s*["']([^"']+)["']`)
	telPattern       = regexp.MustCompile(`(?i)tel:([+0-9().\-\s]{7,20})`)
	titlePattern     = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaTagPattern   = regexp.MustCompile(`(?is)<meta\s[^>]*>`)
	metaAttrPattern  = regexp.MustCompile(`(?is)(name|property|content)\s*=\s*["']([^"']*)["']`)
	phoneTextPattern = regexp.MustCompile(`\+?\d[\d().\-\s]{8,16}\d`)
	idnaProfile      = idna.Lookup
)

const (
	trackingPrefix     = "utm_"
	defaultPhoneRegion = "US"
	defaultHTTPTimeout = 10 * time.Second
	maxPageBytes       = 2 << 20
	maxExtracted       = 5
)

var socialDomains = map[string]string{
	"linkedin.com":    "linkedin",
	"facebook.com":    "facebook",
	"instagram.com":   "instagram",
	"yelp.com":        "yelp",
	"maps.google.com": "google_maps",
	"goo.gl":          "google_maps",
}

// DNSResolver abstracts DNS lookups to simplify testing.
type DNSResolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

// HTTPClient abstracts HTTP requests so tests can stub the network.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// AutofillService fetches a company website and extracts contact details to
// pre-populate the entry form. Extraction is best-effort: anything that fails
// a check is dropped rather than guessed at.
type AutofillService struct {
	DefaultRegion string
	dnsResolver   DNSResolver
	httpClient    HTTPClient
}

// AutofillOption configures optional dependencies.
type AutofillOption func(*AutofillService)

// WithDNSResolver overrides the default DNS resolver.
func WithDNSResolver(resolver DNSResolver) AutofillOption {
	return func(s *AutofillService) {
		s.dnsResolver = resolver
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPClient) AutofillOption {
	return func(s *AutofillService) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// NewAutofillService builds a service with sensible defaults.
func NewAutofillService(defaultRegion string, opts ...AutofillOption) *AutofillService {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	s := &AutofillService{
		DefaultRegion: region,
		dnsResolver:   systemDNSResolver{},
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Autofill fetches the given website and extracts structured contact data.
func (s *AutofillService) Autofill(ctx context.Context, website string) (dto.AutofillResult, error) {
	target, err := sanitizeURL(website)
	if err != nil {
		return dto.AutofillResult{}, ValidationError{Message: "invalid website url"}
	}

	page, err := s.fetchPage(ctx, target.String())
	if err != nil {
		return dto.AutofillResult{}, err
	}

	meta := parseMetaTags(page)
	title := extractTitle(page)

	result := dto.AutofillResult{
		Website:     target.String(),
		Title:       title,
		Description: firstNonEmpty(meta["description"], meta["og:description"]),
		CompanyName: companyNameFrom(meta, title, target.Hostname()),
		Emails:      s.cleanEmails(ctx, emailPattern.FindAllString(page, -1)),
		Phones:      s.extractPhones(page),
		Social:      extractSocial(page),
		FetchedAt:   time.Now().UTC(),
	}
	return result, nil
}

func (s *AutofillService) fetchPage(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build autofill request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; data-entry-autofill/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", ValidationError{Message: "website could not be reached"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ValidationError{Message: fmt.Sprintf("website returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read website body: %w", err)
	}
	return string(body), nil
}

func (s *AutofillService) cleanEmails(ctx context.Context, emails []string) []string {
	if len(emails) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(emails))
	domainCache := make(map[string]bool)
	valid := make([]string, 0, len(emails))

	for _, raw := range emails {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" {
			continue
		}
		parts := strings.SplitN(email, "@", 2)
		if len(parts) != 2 || !isDomainValid(parts[1]) {
			continue
		}
		asciiDomain, err := idnaProfile.ToASCII(parts[1])
		if err != nil || asciiDomain == "" {
			continue
		}
		// Image filenames and asset paths often match the email shape.
		if hasAssetSuffix(asciiDomain) {
			continue
		}
		if ok, cached := domainCache[asciiDomain]; cached {
			if !ok {
				continue
			}
		} else {
			hasMX := s.hasMXRecord(ctx, asciiDomain)
			domainCache[asciiDomain] = hasMX
			if !hasMX {
				continue
			}
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		valid = append(valid, email)
		if len(valid) == maxExtracted {
			break
		}
	}
	if len(valid) == 0 {
		return nil
	}
	sort.Strings(valid)
	return valid
}

func (s *AutofillService) extractPhones(page string) []string {
	candidates := make([]string, 0, 8)
	for _, m := range telPattern.FindAllStringSubmatch(page, -1) {
		candidates = append(candidates, m[1])
	}
	candidates = append(candidates, phoneTextPattern.FindAllString(page, -1)...)

	seen := make(map[string]struct{}, len(candidates))
	valid := make([]string, 0, len(candidates))
	for _, raw := range candidates {
		normalized := normalizePhone(raw, s.DefaultRegion)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		valid = append(valid, normalized)
		if len(valid) == maxExtracted {
			break
		}
	}
	if len(valid) == 0 {
		return nil
	}
	return valid
}

func (s *AutofillService) hasMXRecord(ctx context.Context, domain string) bool {
	if s.dnsResolver == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	records, err := s.dnsResolver.LookupMX(ctx, domain)
	return err == nil && len(records) > 0
}

func extractSocial(page string) dto.AutofillSocial {
	social := dto.AutofillSocial{}
	for _, m := range hrefPattern.FindAllStringSubmatch(page, -1) {
		u, err := sanitizeURL(html.UnescapeString(m[1]))
		if err != nil {
			continue
		}
		platform, ok := socialHost(u.Hostname(), u.Path)
		if !ok {
			continue
		}
		stripTracking(u)
		setSocial(&social, platform, u.String())
	}
	return social
}

func setSocial(social *dto.AutofillSocial, platform, link string) {
	switch platform {
	case "linkedin":
		if social.LinkedIn == "" {
			social.LinkedIn = link
		}
	case "facebook":
		if social.Facebook == "" {
			social.Facebook = link
		}
	case "instagram":
		if social.Instagram == "" {
			social.Instagram = link
		}
	case "yelp":
		if social.Yelp == "" {
			social.Yelp = link
		}
	case "google_maps":
		if social.GoogleMaps == "" {
			social.GoogleMaps = link
		}
	}
}

// socialHost maps a link host onto a supported platform. Google maps links
// also appear on the bare google.com host under the /maps path.
func socialHost(host, path string) (string, bool) {
	host = strings.ToLower(strings.Trim(strings.TrimSpace(host), "."))
	if host == "" {
		return "", false
	}
	if (host == "google.com" || strings.HasSuffix(host, ".google.com")) && strings.HasPrefix(path, "/maps") {
		return "google_maps", true
	}
	for domain, platform := range socialDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return platform, true
		}
	}
	return "", false
}

func extractTitle(page string) string {
	m := titlePattern.FindStringSubmatch(page)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(m[1]))
}

// parseMetaTags collects name/property → content pairs from meta tags.
func parseMetaTags(page string) map[string]string {
	meta := make(map[string]string)
	for _, tag := range metaTagPattern.FindAllString(page, -1) {
		var name, content string
		for _, attr := range metaAttrPattern.FindAllStringSubmatch(tag, -1) {
			switch strings.ToLower(attr[1]) {
			case "name", "property":
				name = strings.ToLower(attr[2])
			case "content":
				content = strings.TrimSpace(html.UnescapeString(attr[2]))
			}
		}
		if name != "" && content != "" {
			if _, exists := meta[name]; !exists {
				meta[name] = content
			}
		}
	}
	return meta
}

// companyNameFrom prefers the site's own name tag, then the title with
// common separators stripped, then the bare domain.
func companyNameFrom(meta map[string]string, title, host string) string {
	if name := meta["og:site_name"]; name != "" {
		return name
	}
	if title != "" {
		for _, sep := range []string{" | ", " - ", " – "} {
			if idx := strings.Index(title, sep); idx > 0 {
				return strings.TrimSpace(title[:idx])
			}
		}
		return title
	}
	return strings.TrimPrefix(host, "www.")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func hasAssetSuffix(domain string) bool {
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".css", ".js"} {
		if strings.HasSuffix(domain, ext) {
			return true
		}
	}
	return false
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.New("invalid url")
	}
	u.Scheme = "https"
	return u, nil
}

func stripTracking(u *url.URL) {
	if u == nil {
		return
	}
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

type systemDNSResolver struct{}

func (systemDNSResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	return net.DefaultResolver.LookupMX(ctx, domain)
}
