package adapter

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ratinto/agri-credit-backend/internal/domain/model"
	"github.com/ratinto/agri-credit-backend/internal/domain/port"
)

// ---------------------------------------------------------------------------
// Satellite adapter – structured for real integration
// ---------------------------------------------------------------------------

// Provider identifies a satellite imagery provider.
type Provider string

const (
	ProviderSentinelHub Provider = "SENTINEL_HUB"
	ProviderEarthEngine Provider = "EARTH_ENGINE"
	ProviderMODIS       Provider = "MODIS"
)

// SatelliteConfig holds configuration for the satellite adapter.
type SatelliteConfig struct {
	// PrimaryProvider is the preferred imagery provider.
	PrimaryProvider Provider
	// BaseURL is the base URL for the provider API.
	BaseURL string
	// APIKey is the authentication credential.
	APIKey string
	// Timeout is the per-request deadline.
	Timeout time.Duration
	// MaxRetries is the maximum number of retry attempts on transient failures.
	MaxRetries int
	// RetryBackoff is the base backoff between retries.
	RetryBackoff time.Duration
}

// DefaultSatelliteConfig returns sensible defaults for development.
func DefaultSatelliteConfig() SatelliteConfig {
	return SatelliteConfig{
		PrimaryProvider: ProviderSentinelHub,
		BaseURL:         "https://services.sentinel-hub.example.com",
		APIKey:          "dev-api-key",
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		RetryBackoff:    200 * time.Millisecond,
	}
}

// ImageryClient fetches vegetation readings from a satellite provider.
// It exists so tests can substitute the network call.
type ImageryClient interface {
	FetchReading(ctx context.Context, provider Provider, farm model.Farm, crop *model.Crop) (port.VegetationReading, error)
}

// SatelliteAdapter implements port.VegetationIndexClient against a real
// imagery provider, with retries on transient failures. With a nil client it
// delegates to the deterministic stub, which keeps development and CI
// behaviour reproducible.
type SatelliteAdapter struct {
	config SatelliteConfig
	client ImageryClient
	stub   *StubVegetationClient
}

// NewSatelliteAdapter creates the adapter. A nil client selects simulated
// readings.
func NewSatelliteAdapter(config SatelliteConfig, client ImageryClient) *SatelliteAdapter {
	return &SatelliteAdapter{
		config: config,
		client: client,
		stub:   NewStubVegetationClient(),
	}
}

// Evaluate fetches a vegetation reading for the farm and optional crop.
func (a *SatelliteAdapter) Evaluate(ctx context.Context, farm model.Farm, crop *model.Crop) (port.VegetationReading, error) {
	if a.client == nil {
		return a.stub.Evaluate(ctx, farm, crop)
	}

	reading, err := a.fetchWithRetry(ctx, farm, crop)
	if err != nil {
		return port.VegetationReading{}, fmt.Errorf("satellite request failed: %w", err)
	}
	return reading, nil
}

// fetchWithRetry calls the provider with exponential backoff and jitter.
func (a *SatelliteAdapter) fetchWithRetry(ctx context.Context, farm model.Farm, crop *model.Crop) (port.VegetationReading, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := a.config.RetryBackoff * (1 << uint(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff) / 2))
			select {
			case <-ctx.Done():
				return port.VegetationReading{}, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		reading, err := a.client.FetchReading(ctx, a.config.PrimaryProvider, farm, crop)
		if err == nil {
			return reading, nil
		}
		lastErr = err
	}

	return port.VegetationReading{}, fmt.Errorf("exhausted %d retries: %w", a.config.MaxRetries, lastErr)
}
