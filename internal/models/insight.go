package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Metadata is the free-form key-value map attached to every insight
type Metadata map[string]interface{}

// Price accepts either a JSON number or a numeric string, since
// automation callers post both ("150.5" and 150.5). Anything else
// fails to bind.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q", s)
	}
	*p = Price(f)
	return nil
}

// TradeInsight is a trade recommendation, either a structured record
// (symbol/action/price/reasoning/confidence) or a pre-rendered HTML
// fragment. A row is always exactly one of the two shapes.
type TradeInsight struct {
	ID          int       `json:"id"`
	Symbol      string    `json:"symbol,omitempty"`
	Action      string    `json:"action,omitempty"` // "buy", "sell" or "hold"
	Price       float64   `json:"price,omitempty"`
	Reasoning   string    `json:"reasoning,omitempty"`
	Confidence  string    `json:"confidence,omitempty"` // "high", "medium" or "low"
	HTMLContent string    `json:"html_content,omitempty"`
	Metadata    Metadata  `json:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
}

// InsightRequest - what the automation source posts
type InsightRequest struct {
	Symbol      string   `json:"symbol"`
	Action      string   `json:"action"`
	Price       *Price   `json:"price"`
	Reasoning   string   `json:"reasoning"`
	Confidence  string   `json:"confidence"`
	Metadata    Metadata `json:"metadata"`
	HTMLContent string   `json:"html_content"`
}

// ValidActions lists the accepted actions for structured insights
var ValidActions = map[string]bool{
	"buy":  true,
	"sell": true,
	"hold": true,
}
