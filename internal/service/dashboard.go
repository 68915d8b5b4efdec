package service

import (
	"context"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/PritamDhobale/data-entry-webapp/internal/dto"
	"github.com/PritamDhobale/data-entry-webapp/internal/repository"
)

// DashboardService aggregates record metrics for the overview screens. Every
// metric is best-effort: a failing query logs and yields a zero value so the
// dashboard always renders.
type DashboardService struct {
	repo repository.RecordsRepository
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(repo repository.RecordsRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Summary computes the headline dashboard numbers.
func (s *DashboardService) Summary(ctx context.Context) dto.DashboardSummary {
	summary := dto.DashboardSummary{}

	if count, err := s.repo.Count(ctx); err == nil {
		summary.TotalCompanies = count
	} else {
		log.Printf("dashboard count failed: %v", err)
	}

	if avg, n, err := s.repo.NumericAverage(ctx, "google_rating"); err == nil && n > 0 {
		summary.AvgGoogleRating = math.Round(avg*10) / 10
	} else if err != nil {
		log.Printf("dashboard rating average failed: %v", err)
	}

	if values, err := s.repo.TextValues(ctx, "linkedin_employee_estimate"); err == nil {
		summary.AvgEmployees = averageEmployeeEstimate(values)
	} else {
		log.Printf("dashboard employee average failed: %v", err)
	}

	if count, err := s.repo.DistinctCount(ctx, "linkedin_industry"); err == nil {
		summary.TotalIndustries = count
	} else {
		log.Printf("dashboard industry count failed: %v", err)
	}

	if count, err := s.repo.BooleanTrueCount(ctx, "bbb_accredited"); err == nil {
		summary.BBBAccredited = count
	} else {
		log.Printf("dashboard accredited count failed: %v", err)
	}

	return summary
}

// StateHistogram returns the top 10 states by company count.
func (s *DashboardService) StateHistogram(ctx context.Context) []dto.HistogramBucket {
	return s.histogram(ctx, "website_state")
}

// IndustryHistogram returns the top 10 industries by company count.
func (s *DashboardService) IndustryHistogram(ctx context.Context) []dto.HistogramBucket {
	return s.histogram(ctx, "linkedin_industry")
}

func (s *DashboardService) histogram(ctx context.Context, key string) []dto.HistogramBucket {
	buckets, err := s.repo.Histogram(ctx, key, 10)
	if err != nil {
		log.Printf("dashboard histogram for %s failed: %v", key, err)
		return []dto.HistogramBucket{}
	}
	if buckets == nil {
		buckets = []dto.HistogramBucket{}
	}
	return buckets
}

// RecentCompanies returns the latest entries for the dashboard table.
func (s *DashboardService) RecentCompanies(ctx context.Context) []dto.RecentCompany {
	companies, err := s.repo.Recent(ctx, 10)
	if err != nil {
		log.Printf("dashboard recent companies failed: %v", err)
		return []dto.RecentCompany{}
	}
	if companies == nil {
		companies = []dto.RecentCompany{}
	}
	return companies
}

// averageEmployeeEstimate averages free-text employee estimates. Values are
// either a plain count ("250") or a range ("51-200"), which contributes its
// midpoint. Unparseable values are excluded from numerator and denominator.
func averageEmployeeEstimate(values []string) int {
	var (
		sum   float64
		count int
	)
	for _, v := range values {
		n, ok := parseEmployeeEstimate(v)
		if !ok {
			continue
		}
		sum += n
		count++
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(sum / float64(count)))
}

func parseEmployeeEstimate(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	cleaned = strings.TrimSuffix(strings.ToLower(cleaned), " employees")
	cleaned = strings.TrimSuffix(cleaned, "+")
	if cleaned == "" {
		return 0, false
	}

	if lo, hi, ok := strings.Cut(cleaned, "-"); ok {
		low, errLo := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		high, errHi := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if errLo != nil || errHi != nil {
			return 0, false
		}
		return (low + high) / 2, true
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
