package dispatch

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tkwang/quoteline/internal/intent"
	"github.com/tkwang/quoteline/internal/line"
	"github.com/tkwang/quoteline/internal/quote"
	"github.com/tkwang/quoteline/internal/reply"
)

// ReplyGateway delivers one reply correlated to an inbound event.
type ReplyGateway interface {
	Reply(ctx context.Context, replyToken, text string) error
}

// Outcome records the result of one event's reply delivery.
type Outcome struct {
	DeliveryID string
	ReplyToken string
	Err        error
}

// Dispatcher turns decoded webhook events into delivered replies.
type Dispatcher struct {
	gateway ReplyGateway
	quotes  *quote.Lookup
	logger  *slog.Logger
}

// New creates a Dispatcher.
func New(gateway ReplyGateway, quotes *quote.Lookup, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		gateway: gateway,
		quotes:  quotes,
		logger:  logger,
	}
}

// Process handles a batch of events sequentially in array order and returns
// one outcome per answered event. Delivery failures are collected, not
// propagated; a bad delivery never stops the rest of the batch.
func (d *Dispatcher) Process(ctx context.Context, events []line.Event) []Outcome {
	outcomes := make([]Outcome, 0, len(events))

	for _, ev := range events {
		if !ev.IsTextMessage() {
			d.logger.Debug("skipping non-text event", "event_type", ev.Type)
			continue
		}
		outcomes = append(outcomes, d.processEvent(ctx, ev))
	}
	return outcomes
}

// processEvent routes, composes and delivers the reply for one text message.
func (d *Dispatcher) processEvent(ctx context.Context, ev line.Event) Outcome {
	out := Outcome{
		DeliveryID: uuid.NewString(),
		ReplyToken: ev.ReplyToken,
	}
	evLogger := d.logger.With("delivery_id", out.DeliveryID)

	in := intent.Route(ev.Message.Text)

	result := quote.Unavailable
	if in.Kind == intent.KindStockQuery {
		result = d.quotes.Latest(ctx, in.Symbol)
	}

	text := reply.Compose(in, result)

	if err := d.gateway.Reply(ctx, ev.ReplyToken, text); err != nil {
		evLogger.Error("reply delivery failed", "error", err)
		out.Err = err
		return out
	}

	evLogger.Info("reply delivered", "intent", in.Kind.String(), "reply_len", len(text))
	return out
}
