package publisher

import (
	"context"

	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/leads"
)

// Publisher represents a service for publishing harvested leads
type Publisher interface {
	// Publish pushes one lead onto the feed
	Publish(ctx context.Context, l leads.Lead) error

	// Close closes the publisher connection
	Close() error
}
