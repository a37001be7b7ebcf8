// Package market carries the last observed trade price per symbol.
package market

import (
	"errors"
	"sync"
	"time"
)

var ErrNoQuote = errors.New("no quote for symbol")

// Quote is the latest observed trade price for a symbol.
type Quote struct {
	Symbol string
	Price  float64
	Time   time.Time
}

// QuoteStore holds the latest quote per symbol. Ticks write it; fill
// prices seed it so valuation is continuous between a fill and the
// first subsequent tick.
type QuoteStore struct {
	mu     sync.RWMutex
	quotes map[string]Quote
}

func NewQuoteStore() *QuoteStore {
	return &QuoteStore{quotes: make(map[string]Quote)}
}

func (s *QuoteStore) Set(q Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[q.Symbol] = q
}

func (s *QuoteStore) Get(symbol string) (Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[symbol]
	if !ok {
		return Quote{}, ErrNoQuote
	}
	return q, nil
}
