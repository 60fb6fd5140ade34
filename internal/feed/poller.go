package feed

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jpatelved/tradeboard/internal/models"
)

// Client fetches the insight feed from the API server
type Client struct {
	client *resty.Client
	token  string
}

// NewClient creates a feed client authenticated with a bearer token
func NewClient(baseURL, token string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)

	return &Client{
		client: client,
		token:  token,
	}
}

type insightsResponse struct {
	Insights []models.TradeInsight `json:"insights"`
}

// Insights fetches the most recent insights, newest first
func (c *Client) Insights(ctx context.Context, limit int) ([]models.TradeInsight, error) {
	var out insightsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.token).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out).
		Get("/api/trade-insights")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch insights: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("insight feed returned %d", resp.StatusCode())
	}

	return out.Insights, nil
}

// Poller refreshes the insight feed on a fixed interval. A failed
// refresh keeps the previous insights and surfaces the error until the
// next tick; there is no retry or backoff.
type Poller struct {
	client   *Client
	limit    int
	interval time.Duration

	// OnUpdate, if set before Start, is called after every successful
	// refresh with the fetched insights.
	OnUpdate func([]models.TradeInsight)

	mu       sync.Mutex
	insights []models.TradeInsight
	err      error

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewPoller creates a poller; interval <= 0 defaults to one minute
func NewPoller(client *Client, limit int, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}
	if limit <= 0 {
		limit = 10
	}

	return &Poller{
		client:   client,
		limit:    limit,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start fetches immediately, then on every tick, until ctx is
// cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.doneCh)

	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	insights, err := p.client.Insights(ctx, p.limit)

	p.mu.Lock()
	if err != nil {
		p.err = err
	} else {
		p.insights = insights
		p.err = nil
	}
	p.mu.Unlock()

	if err == nil && p.OnUpdate != nil {
		p.OnUpdate(insights)
	}
}

// Stop ends polling and waits for the loop to exit. Call at most once.
func (p *Poller) Stop() {
	close(p.stopCh)
	<-p.doneCh
}

// Snapshot returns the latest fetched insights and the last refresh error
func (p *Poller) Snapshot() ([]models.TradeInsight, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.insights, p.err
}
