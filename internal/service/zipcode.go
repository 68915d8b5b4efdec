package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PritamDhobale/data-entry-webapp/internal/dto"
	"github.com/PritamDhobale/data-entry-webapp/internal/repository"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

const (
	defaultZipCacheSize = 512
	defaultZipCacheTTL  = 24 * time.Hour
)

// ZipLookupService resolves a ZIP code to city/state via the public ZIP API
// and to an MSA via the internal lookup table. Results go through a bounded
// TTL cache owned by the service.
type ZipLookupService struct {
	baseURL    string
	httpClient HTTPClient
	msa        repository.ZipLookupRepository
	cache      *zipCache
}

// ZipLookupOption configures optional dependencies.
type ZipLookupOption func(*ZipLookupService)

// WithZipHTTPClient overrides the default HTTP client.
func WithZipHTTPClient(client HTTPClient) ZipLookupOption {
	return func(s *ZipLookupService) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithZipCache sizes the lookup cache.
func WithZipCache(size int, ttl time.Duration) ZipLookupOption {
	return func(s *ZipLookupService) {
		s.cache = newZipCache(size, ttl)
	}
}

// NewZipLookupService builds a service against the given ZIP API base URL.
func NewZipLookupService(baseURL string, msa repository.ZipLookupRepository, opts ...ZipLookupOption) *ZipLookupService {
	s := &ZipLookupService{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		msa:   msa,
		cache: newZipCache(defaultZipCacheSize, defaultZipCacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup resolves a 5-digit ZIP code. The city/state comes from the public
// API; the MSA from the internal table. A missing MSA is not an error, the
// field just stays empty.
func (s *ZipLookupService) Lookup(ctx context.Context, zip string) (dto.ZipInfo, error) {
	zip = strings.TrimSpace(zip)
	if !zipPattern.MatchString(zip) {
		return dto.ZipInfo{}, ValidationError{Message: "zip code must be 5 digits"}
	}

	if info, ok := s.cache.get(zip); ok {
		return info, nil
	}

	info, err := s.fetchCityState(ctx, zip)
	if err != nil {
		return dto.ZipInfo{}, err
	}

	msa, err := s.msa.MSA(ctx, zip)
	if err != nil && !errors.Is(err, repository.ErrZipNotFound) {
		return dto.ZipInfo{}, fmt.Errorf("msa lookup: %w", err)
	}
	info.MSA = msa

	s.cache.put(zip, info)
	return info, nil
}

// zipAPIResponse mirrors the zippopotam.us payload shape.
type zipAPIResponse struct {
	PostCode string `json:"post code"`
	Places   []struct {
		PlaceName         string `json:"place name"`
		StateAbbreviation string `json:"state abbreviation"`
	} `json:"places"`
}

func (s *ZipLookupService) fetchCityState(ctx context.Context, zip string) (dto.ZipInfo, error) {
	target := fmt.Sprintf("%s/us/%s", s.baseURL, url.PathEscape(zip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return dto.ZipInfo{}, fmt.Errorf("build zip request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return dto.ZipInfo{}, fmt.Errorf("call zip api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return dto.ZipInfo{}, repository.ErrZipNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return dto.ZipInfo{}, fmt.Errorf("zip api returned status %d", resp.StatusCode)
	}

	var payload zipAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return dto.ZipInfo{}, fmt.Errorf("decode zip api response: %w", err)
	}
	if len(payload.Places) == 0 {
		return dto.ZipInfo{}, repository.ErrZipNotFound
	}

	return dto.ZipInfo{
		Zip:   zip,
		City:  payload.Places[0].PlaceName,
		State: payload.Places[0].StateAbbreviation,
	}, nil
}

// zipCache is a small TTL cache with random-ish eviction once full. ZIP data
// changes rarely, so staleness within the TTL is acceptable.
type zipCache struct {
	mu      sync.Mutex
	entries map[string]zipCacheEntry
	size    int
	ttl     time.Duration
	now     func() time.Time
}

type zipCacheEntry struct {
	info    dto.ZipInfo
	expires time.Time
}

func newZipCache(size int, ttl time.Duration) *zipCache {
	if size <= 0 {
		size = defaultZipCacheSize
	}
	if ttl <= 0 {
		ttl = defaultZipCacheTTL
	}
	return &zipCache{
		entries: make(map[string]zipCacheEntry, size),
		size:    size,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *zipCache) get(zip string) (dto.ZipInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[zip]
	if !ok {
		return dto.ZipInfo{}, false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, zip)
		return dto.ZipInfo{}, false
	}
	return entry.info, true
}

func (c *zipCache) put(zip string, info dto.ZipInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.size {
		for key := range c.entries {
			delete(c.entries, key)
			if len(c.entries) < c.size {
				break
			}
		}
	}
	c.entries[zip] = zipCacheEntry{info: info, expires: c.now().Add(c.ttl)}
}
