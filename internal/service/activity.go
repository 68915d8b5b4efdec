package service

import (
	"context"
	"sort"
	"time"

	"github.com/PritamDhobale/data-entry-webapp/internal/dto"
	"github.com/PritamDhobale/data-entry-webapp/internal/repository"
)

// ActivityService aggregates per-creator entry counts for the admin activity
// view.
type ActivityService struct {
	records repository.RecordsRepository
	users   repository.UsersRepository
	now     func() time.Time
}

// NewActivityService creates a new instance of ActivityService.
func NewActivityService(records repository.RecordsRepository, users repository.UsersRepository) *ActivityService {
	return &ActivityService{records: records, users: users, now: time.Now}
}

// Stats returns entry counts per creator, most active first. Creators whose
// account has been deleted are grouped under "unknown".
func (s *ActivityService) Stats(ctx context.Context) ([]dto.ActivityStats, error) {
	audits, err := s.records.CreationAudits(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	emailByID := make(map[string]string, len(users))
	for _, u := range users {
		emailByID[u.ID.String()] = u.Email
	}

	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := now.AddDate(0, 0, -7)
	monthStart := now.AddDate(0, -1, 0)

	byEmail := make(map[string]*dto.ActivityStats)
	for _, audit := range audits {
		email, ok := emailByID[audit.CreatedBy.String()]
		if !ok {
			email = "unknown"
		}
		stats, ok := byEmail[email]
		if !ok {
			stats = &dto.ActivityStats{Email: email}
			byEmail[email] = stats
		}

		stats.Total++
		created := audit.CreatedAt.UTC()
		if !created.Before(dayStart) {
			stats.Today++
		}
		if !created.Before(weekStart) {
			stats.Week++
		}
		if !created.Before(monthStart) {
			stats.Month++
		}
	}

	out := make([]dto.ActivityStats, 0, len(byEmail))
	for _, stats := range byEmail {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Email < out[j].Email
	})
	return out, nil
}
