// Package service renders booking scripts for callers that need ids and
// caching on top of the pipeline.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nbenliogludev/seaware-booking-agent/internal/cache"
	"github.com/nbenliogludev/seaware-booking-agent/internal/extract"
	"github.com/nbenliogludev/seaware-booking-agent/internal/pipeline"
	"github.com/nbenliogludev/seaware-booking-agent/internal/reservation"
)

type Rendered struct {
	ID         uuid.UUID                      `json:"id"`
	Prompt     string                         `json:"prompt"`
	StartDate  time.Time                      `json:"start_date"`
	Cabins     []extract.CabinInformation     `json:"cabins"`
	Passengers []extract.PassengerInformation `json:"passengers"`
	Cached     bool                           `json:"cached"`
}

type PromptService struct {
	pipeline *pipeline.Pipeline
	cache    cache.Cache
	log      *slog.Logger
}

// NewPromptService wires the pipeline with an optional cache. A nil cache
// disables caching; a nil logger discards logs.
func NewPromptService(p *pipeline.Pipeline, c cache.Cache, log *slog.Logger) *PromptService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &PromptService{pipeline: p, cache: c, log: log}
}

// Render validates raw, extracts the views and returns the script. Cached
// scripts are reused; extraction always runs so the views are current.
func (s *PromptService) Render(ctx context.Context, raw []byte) (*Rendered, error) {
	res, err := reservation.Parse(raw)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	log := s.log.With("render_id", id.String(), "booking_id", res.BookingID)

	key := s.cacheKey(res, log)
	if key != "" {
		if script, ok, err := s.cache.Get(ctx, key); err != nil {
			log.Warn("prompt cache get failed", "err", err)
		} else if ok {
			out, err := s.views(res)
			if err != nil {
				return nil, err
			}
			out.ID, out.Prompt, out.Cached = id, script, true
			log.Debug("prompt served from cache")
			return out, nil
		}
	}

	result, err := s.pipeline.Build(res)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, result.Prompt); err != nil {
			log.Warn("prompt cache set failed", "err", err)
		}
	}
	log.Info("prompt rendered", "cabins", len(result.Cabins), "passengers", len(result.Passengers))

	return &Rendered{
		ID:         id,
		Prompt:     result.Prompt,
		StartDate:  result.StartDate,
		Cabins:     result.Cabins,
		Passengers: result.Passengers,
	}, nil
}

func (s *PromptService) cacheKey(res *reservation.Reservation, log *slog.Logger) string {
	if s.cache == nil {
		return ""
	}
	canonical, err := json.Marshal(res)
	if err != nil {
		log.Warn("prompt cache key failed", "err", err)
		return ""
	}
	return cache.Key(s.pipeline.TemplateKey(), canonical)
}

func (s *PromptService) views(res *reservation.Reservation) (*Rendered, error) {
	cabins, err := extract.Cabins(res)
	if err != nil {
		return nil, fmt.Errorf("extract cabins: %w", err)
	}
	passengers, err := extract.Passengers(res)
	if err != nil {
		return nil, fmt.Errorf("extract passengers: %w", err)
	}
	return &Rendered{
		StartDate:  extract.StartDate(res),
		Cabins:     cabins,
		Passengers: passengers,
	}, nil
}
