package daemon_test

import (
	"context"
	"testing"

	"promptcast/internal/catalog"
	"promptcast/internal/config"
	"promptcast/internal/daemon"
	"promptcast/internal/hub"
	"promptcast/internal/logging"
	"promptcast/internal/match"
	"promptcast/internal/pipeline"
	"promptcast/internal/router"
	"promptcast/internal/store"
	"promptcast/internal/testsupport"
)

func newTestDaemon(t *testing.T) (*daemon.Daemon, *config.Config, *store.Store) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	bag := testsupport.AddBag(t, st, 10, "Hermès", "Birkin 25", "black")
	testsupport.AddScript(t, st, bag.ID, catalog.CategoryHook, "Stop scrolling! The grail is here 💥")
	testsupport.AddScript(t, st, bag.ID, catalog.CategoryCTA, "DM us to buy before it's gone")

	logger := logging.NewNop()
	h := hub.New(logger)
	resolver := match.NewResolver(match.Policy{
		MinSimilarity: cfg.Matching.MinSimilarity,
		SimilarLimit:  cfg.Matching.SimilarLimit,
	})
	transformer := pipeline.NewTransformer(cfg.Pipeline.ExtraBannedPhrases)
	rt := router.New(h, st, resolver, transformer, nil, logger)

	d, err := daemon.New(cfg, st, h, rt, nil, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		_ = d.Close()
	})
	return d, cfg, st
}

func TestDaemonStartStop(t *testing.T) {
	d, _, _ := newTestDaemon(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if d.APIAddr() == "" {
		t.Fatal("expected a bound API address")
	}

	status, err := d.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !status.Running {
		t.Fatal("expected daemon to report running")
	}
	if status.Catalog.Bags != 1 || status.Catalog.Scripts != 2 {
		t.Fatalf("unexpected catalog counts: %#v", status.Catalog)
	}

	// Second start should fail
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	status, err = d.Status(ctx)
	if err != nil {
		t.Fatalf("Status after stop failed: %v", err)
	}
	if status.Running {
		t.Fatal("expected daemon to be stopped")
	}
}

func TestDaemonLockExcludesSecondInstance(t *testing.T) {
	d, cfg, st := newTestDaemon(t)

	ctx := context.Background()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop()

	logger := logging.NewNop()
	h := hub.New(logger)
	rt := router.New(h, st, match.NewResolver(match.DefaultPolicy()), pipeline.NewTransformer(nil), nil, logger)
	second, err := daemon.New(cfg, st, h, rt, nil, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := second.Start(ctx); err == nil {
		second.Stop()
		t.Fatal("expected lock to exclude a second instance")
	}
}
