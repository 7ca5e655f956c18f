package hrest

import (
	"context"
	"net/http"
	"strconv"

	"bank-admin-service/internal/domain"
	"bank-admin-service/pkg/response"
)

type AnalyticsService interface {
	AccountsSummary(ctx context.Context, actor domain.Actor) (*domain.AccountsSummary, error)
	AccountTypeDistribution(ctx context.Context, actor domain.Actor) ([]*domain.AccountTypeStats, error)
	TransactionTrends(ctx context.Context, actor domain.Actor, days int) ([]*domain.TransactionTrend, error)
	MonthlyGrowth(ctx context.Context, actor domain.Actor) ([]*domain.MonthlyGrowth, error)
	UserDemographics(ctx context.Context, actor domain.Actor) ([]*domain.GenderDemographics, error)
}

type AnalyticsHandler struct {
	analytics AnalyticsService
}

func NewAnalyticsHandler(analytics AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) AccountsSummary(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	summary, err := h.analytics.AccountsSummary(r.Context(), actor)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, summary)
}

func (h *AnalyticsHandler) AccountTypeDistribution(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	stats, err := h.analytics.AccountTypeDistribution(r.Context(), actor)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *AnalyticsHandler) TransactionTrends(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	days := 90
	if raw := r.URL.Query().Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}

	trends, err := h.analytics.TransactionTrends(r.Context(), actor, days)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, trends)
}

func (h *AnalyticsHandler) MonthlyGrowth(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	growth, err := h.analytics.MonthlyGrowth(r.Context(), actor)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, growth)
}

func (h *AnalyticsHandler) UserDemographics(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	demographics, err := h.analytics.UserDemographics(r.Context(), actor)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, demographics)
}
