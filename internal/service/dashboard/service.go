package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"cargobridge/internal/domain"
	"cargobridge/internal/repository"
)

type Stats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalQuotations   int64 `json:"total_quotations"`
	TotalOrders       int64 `json:"total_orders"`
	TotalExports      int64 `json:"total_exports"`
	TotalTransfers    int64 `json:"total_transfers"`
	TotalCases        int64 `json:"total_cases"`
	TotalTickets      int64 `json:"total_tickets"`
	UnhandledContacts int64 `json:"unhandled_contacts"`
}

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	repos *repository.Repositories
	redis *redis.Client
}

func NewService(repos *repository.Repositories, redisClient *redis.Client) Service {
	return &service{
		repos: repos,
		redis: redisClient,
	}
}

// GetStats serves the staff overview tab. Counts are cached for five
// minutes; the dashboard tolerates slightly stale numbers.
func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	cacheKey := "dashboard:stats"

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	one := domain.PaginationParams{Page: 1, PageSize: 1}

	_, totalUsers, err := s.repos.User.GetAllUsers(ctx, one)
	if err != nil {
		return nil, err
	}
	_, totalQuotations, err := s.repos.Quotation.List(ctx, one)
	if err != nil {
		return nil, err
	}
	_, totalOrders, err := s.repos.Order.List(ctx, one)
	if err != nil {
		return nil, err
	}
	_, totalExports, err := s.repos.Export.List(ctx, one)
	if err != nil {
		return nil, err
	}
	_, totalTransfers, err := s.repos.Currency.List(ctx, one)
	if err != nil {
		return nil, err
	}
	_, totalCases, err := s.repos.LegalCase.List(ctx, one)
	if err != nil {
		return nil, err
	}
	_, totalTickets, err := s.repos.Ticket.List(ctx, one)
	if err != nil {
		return nil, err
	}
	_, unhandledContacts, err := s.repos.Contact.List(ctx, true, one)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalUsers:        totalUsers,
		TotalQuotations:   totalQuotations,
		TotalOrders:       totalOrders,
		TotalExports:      totalExports,
		TotalTransfers:    totalTransfers,
		TotalCases:        totalCases,
		TotalTickets:      totalTickets,
		UnhandledContacts: unhandledContacts,
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, cacheKey, statsJSON, 5*time.Minute).Err()
		}
	}

	return stats, nil
}
