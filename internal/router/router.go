package router

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"promptcast/internal/catalog"
	"promptcast/internal/hub"
	"promptcast/internal/logging"
	"promptcast/internal/match"
	"promptcast/internal/pipeline"
	"promptcast/internal/protocol"
)

// Store is the catalog surface the router needs. *store.Store satisfies it.
type Store interface {
	ListEntries(ctx context.Context) ([]catalog.Entry, error)
	GetBag(ctx context.Context, id int64) (*catalog.Entry, error)
	ScriptsForBag(ctx context.Context, bagID int64) ([]catalog.Script, error)
	ActiveRules(ctx context.Context, accountID int64) ([]pipeline.Rule, error)
	RecordMissing(ctx context.Context, title string, at time.Time) (bool, error)
	IncrementUsage(ctx context.Context, scriptID int64) (bool, error)
}

// Alerter pushes operator notifications for titles without coverage.
// notifications.Service satisfies it.
type Alerter interface {
	NotifyMissingProduct(ctx context.Context, title string) error
}

// Router dispatches display events and observed titles.
type Router struct {
	hub         *hub.Hub
	store       Store
	resolver    *match.Resolver
	transformer *pipeline.Transformer
	alerter     Alerter
	logger      *slog.Logger
}

// New wires a router. The alerter may be nil when notifications are not
// configured.
func New(h *hub.Hub, store Store, resolver *match.Resolver, transformer *pipeline.Transformer, alerter Alerter, logger *slog.Logger) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Router{
		hub:         h,
		store:       store,
		resolver:    resolver,
		transformer: transformer,
		alerter:     alerter,
		logger:      logging.WithComponent(logger, "router"),
	}
}

// HandleMessage dispatches one inbound display frame. Malformed frames return
// protocol.ErrMalformed; the connection itself stays usable.
func (r *Router) HandleMessage(ctx context.Context, connID string, raw []byte) error {
	event, err := protocol.ParseEvent(raw)
	if err != nil {
		return err
	}

	switch event.Type {
	case protocol.TypeSubscribe:
		return r.handleSubscribe(ctx, connID, event.BagID)
	case protocol.TypeUnsubscribe:
		r.hub.Unsubscribe(connID, event.BagID)
		return nil
	case protocol.TypePing:
		return r.hub.SendTo(connID, protocol.Pong(time.Now()))
	case protocol.TypeScriptUsed:
		return r.handleScriptUsed(ctx, connID, event.ScriptID)
	default:
		return fmt.Errorf("%w: unhandled type %q", protocol.ErrMalformed, event.Type)
	}
}

func (r *Router) handleSubscribe(ctx context.Context, connID string, bagID int64) error {
	if !r.hub.Subscribe(connID, bagID) {
		return fmt.Errorf("subscribe: unknown connection %s", connID)
	}

	// Catch the new display up with the bag's current scripts so it renders
	// without waiting for the next title switch.
	msg, err := r.scriptsMessage(ctx, bagID)
	if err != nil {
		return fmt.Errorf("subscribe catch-up: %w", err)
	}
	r.logger.Debug("display subscribed",
		logging.String(logging.FieldConnID, connID),
		logging.Int64(logging.FieldBagID, bagID))
	return r.hub.SendTo(connID, msg)
}

func (r *Router) handleScriptUsed(ctx context.Context, connID string, scriptID int64) error {
	bumped, err := r.store.IncrementUsage(ctx, scriptID)
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	if !bumped {
		r.logger.Warn("usage report for unknown script",
			logging.String(logging.FieldConnID, connID),
			logging.Int64("script_id", scriptID))
	}
	return nil
}

// ObserveTitle resolves a product title seen on stream. A hit broadcasts a
// switch command followed by the bag's transformed scripts to the bag's
// subscribers; a miss records the title, alerts the operator once per title,
// and tells every display the script is missing. The returned match is nil on
// a miss.
func (r *Router) ObserveTitle(ctx context.Context, title string) (*match.Match, error) {
	entries, err := r.store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	m, err := r.resolver.Resolve(title, catalog.NewIndex(entries))
	if err != nil {
		return nil, err
	}

	if m == nil {
		return nil, r.handleMiss(ctx, title)
	}

	msg, err := r.scriptsMessage(ctx, m.Entry.ID)
	if err != nil {
		return nil, err
	}
	r.logger.Info("title resolved",
		logging.String(logging.FieldTitle, title),
		logging.Int64(logging.FieldBagID, m.Entry.ID),
		logging.Int(logging.FieldScore, m.Score))
	r.hub.Broadcast(m.Entry.ID, protocol.Switch(m.Entry.ID), msg)
	return m, nil
}

func (r *Router) handleMiss(ctx context.Context, title string) error {
	now := time.Now().UTC()
	inserted, err := r.store.RecordMissing(ctx, title, now)
	if err != nil {
		return fmt.Errorf("record missing: %w", err)
	}
	r.logger.Warn("no script for title",
		logging.String(logging.FieldTitle, title),
		logging.Bool("first_report", inserted))

	if inserted && r.alerter != nil {
		if err := r.alerter.NotifyMissingProduct(ctx, title); err != nil {
			// The alert is best effort; displays still get told.
			r.logger.Warn("missing-product alert failed", logging.Error(err))
		}
	}

	r.hub.BroadcastAll(protocol.Missing(title, now))
	return nil
}

// Similar ranks catalog entries against a title for operator review. No
// threshold applies; weak candidates are returned with their strength bucket.
func (r *Router) Similar(ctx context.Context, title string, limit int) ([]match.Candidate, error) {
	entries, err := r.store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return r.resolver.Rank(title, catalog.NewIndex(entries), limit)
}

// scriptsMessage loads a bag's scripts, runs the content pipeline, and
// assembles the teleprompter blocks.
func (r *Router) scriptsMessage(ctx context.Context, bagID int64) (protocol.Message, error) {
	scripts, err := r.store.ScriptsForBag(ctx, bagID)
	if err != nil {
		return protocol.Message{}, fmt.Errorf("scripts for bag: %w", err)
	}

	var rules []pipeline.Rule
	if len(scripts) > 0 {
		entry, err := r.store.GetBag(ctx, bagID)
		if err != nil {
			return protocol.Message{}, fmt.Errorf("get bag: %w", err)
		}
		if entry != nil {
			rules, err = r.store.ActiveRules(ctx, entry.AccountID)
			if err != nil {
				return protocol.Message{}, fmt.Errorf("active rules: %w", err)
			}
		}
	}

	for i := range scripts {
		transformed, warnings := r.transformer.ApplyScript(scripts[i].Content, scripts[i].Category, rules)
		scripts[i].Content = transformed
		for _, warning := range warnings {
			r.logger.Warn("script advisory",
				logging.Int64(logging.FieldBagID, bagID),
				logging.Int64("script_id", scripts[i].ID),
				logging.String("warning", warning))
		}
	}

	return protocol.Scripts(bagID, catalog.Blocks(scripts)), nil
}
