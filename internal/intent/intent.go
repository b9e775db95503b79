// Package intent classifies free-text user input into bot commands.
package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// stockPrefix is the literal command prefix for price queries. Matching is
// case-sensitive and exact; the command surface is deliberately tiny.
const stockPrefix = "查股價"

// Kind discriminates the Intent variants.
type Kind int

const (
	// KindEcho echoes the user's text back.
	KindEcho Kind = iota
	// KindStockQuery asks for the latest price of a symbol.
	KindStockQuery
	// KindHelp shows command usage.
	KindHelp
)

func (k Kind) String() string {
	switch k {
	case KindEcho:
		return "echo"
	case KindStockQuery:
		return "stock_query"
	case KindHelp:
		return "help"
	}
	return "unknown"
}

// Intent is the classified meaning of one text message.
type Intent struct {
	Kind Kind

	// Text is the original, untrimmed input. Set for KindEcho.
	Text string

	// Symbol is the uppercased ticker. Set for KindStockQuery.
	Symbol string

	// MissingSymbol marks the help variant shown when the command prefix
	// was given without a symbol.
	MissingSymbol bool
}

// Route classifies text into exactly one Intent. It is total: every input
// maps to a variant, there is no unparseable outcome.
//
// Tie-break order, first match wins:
//  1. prefix + whitespace + token  -> StockQuery with the token uppercased
//  2. prefix alone                 -> Help (missing-symbol variant)
//  3. anything else                -> Echo of the original input
func Route(text string) Intent {
	trimmed := strings.TrimSpace(text)

	if trimmed == stockPrefix {
		return Intent{Kind: KindHelp, MissingSymbol: true}
	}

	if rest, ok := strings.CutPrefix(trimmed, stockPrefix); ok {
		// The prefix must be followed by whitespace; "查股價AAPL" is not
		// the command, it falls through to echo.
		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsSpace(r) {
			fields := strings.Fields(rest)
			if len(fields) == 0 {
				return Intent{Kind: KindHelp, MissingSymbol: true}
			}
			return Intent{Kind: KindStockQuery, Symbol: strings.ToUpper(fields[0])}
		}
	}

	return Intent{Kind: KindEcho, Text: text}
}
