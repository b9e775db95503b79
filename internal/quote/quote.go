// Package quote resolves stock symbols to their most recent traded price.
package quote

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNoData indicates the source has no price for the symbol: unknown ticker,
// or no tick in the current session.
var ErrNoData = errors.New("no price data")

// Source is the market-data collaborator. Implementations return the most
// recent intraday trade price for a symbol, or ErrNoData when none exists.
type Source interface {
	LatestPrice(ctx context.Context, symbol string) (float64, error)
}

// Result is the normalized lookup outcome shown to the user.
type Result struct {
	Available bool
	Price     float64
}

// Price returns an available result.
func Price(amount float64) Result {
	return Result{Available: true, Price: amount}
}

// Unavailable is the no-data result.
var Unavailable = Result{}

// Lookup adapts a Source into the bot's failure contract: any source-side
// error is a normal Unavailable outcome, never a request fault.
type Lookup struct {
	source Source
	logger *slog.Logger
}

// NewLookup creates a Lookup over a source.
func NewLookup(source Source, logger *slog.Logger) *Lookup {
	return &Lookup{source: source, logger: logger}
}

// Latest resolves a symbol to a Result. It never returns an error.
func (l *Lookup) Latest(ctx context.Context, symbol string) Result {
	price, err := l.source.LatestPrice(ctx, symbol)
	if err != nil {
		if !errors.Is(err, ErrNoData) {
			l.logger.Warn("quote source error", "symbol", symbol, "error", err)
		}
		return Unavailable
	}
	return Price(price)
}
