package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"promptcast/internal/config"
	"promptcast/internal/hub"
	"promptcast/internal/logging"
	"promptcast/internal/notifications"
	"promptcast/internal/router"
	"promptcast/internal/store"
)

// Daemon coordinates the sync engine services and enforces single-instance
// execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	hub      *hub.Hub
	router   *router.Router
	notifier notifications.Service

	lockPath string
	lock     *flock.Flock

	api       *apiServer
	startedAt time.Time
	running   atomic.Bool
	cancel    context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	Bind         string
	StartedAt    time.Time
	DatabasePath string
	LockFilePath string
	Connections  int
	Topics       int
	Catalog      store.Counts
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, h *hub.Hub, rt *router.Router, notifier notifications.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || h == nil || rt == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, hub, router, and logger")
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "promptcastd.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		hub:      h,
		router:   rt,
		notifier: notifier,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}

	apiSrv, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.api = apiSrv
	return d, nil
}

// Start acquires the daemon lock and brings up the API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another promptcast daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.api.start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		return err
	}
	d.cancel = cancel

	d.startedAt = time.Now().UTC()
	d.running.Store(true)
	d.logger.Info("promptcast daemon started", logging.String("lock", d.lockPath))
	if err := d.notifier.NotifyStarted(runCtx, d.api.addr()); err != nil {
		d.logger.Warn("startup notification failed", logging.Error(err))
	}
	return nil
}

// Stop shuts down the API server, drains connections, and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	d.hub.Close()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("promptcast daemon stopped")

	notifyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.notifier.NotifyStopped(notifyCtx); err != nil {
		d.logger.Warn("shutdown notification failed", logging.Error(err))
	}
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// APIAddr returns the bound API address, empty until Start succeeds.
func (d *Daemon) APIAddr() string {
	if d.api == nil {
		return ""
	}
	return d.api.addr()
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) (Status, error) {
	counts, err := d.store.Stats(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		Bind:         d.APIAddr(),
		StartedAt:    d.startedAt,
		DatabasePath: d.cfg.DatabasePath(),
		LockFilePath: d.lockPath,
		Connections:  d.hub.ConnCount(),
		Topics:       d.hub.TopicCount(),
		Catalog:      counts,
	}, nil
}
