package server

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/teemow/slotwise/internal/calendar"
	"github.com/teemow/slotwise/internal/instrumentation"
	"github.com/teemow/slotwise/internal/schedule"
)

// ServerContext holds the shared state of the MCP server: per-account
// calendar clients and the scheduling engines built on top of them.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	policy   schedule.Policy
	cacheTTL time.Duration
	metrics  *instrumentation.Metrics
	logger   *slog.Logger

	calendarClients map[string]*calendar.Client // account name -> client
	engines         map[string]*schedule.Engine // account name -> engine

	mu       sync.RWMutex
	shutdown bool
}

// ServerContextConfig configures a ServerContext.
type ServerContextConfig struct {
	// Policy holds the engine tunables (slot step, highlight threshold).
	Policy schedule.Policy

	// CacheTTL bounds how long provider responses are reused within the
	// process. Zero disables caching.
	CacheTTL time.Duration

	// Metrics may be nil when instrumentation is disabled.
	Metrics *instrumentation.Metrics

	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger
}

// NewServerContext creates a new server context. Clients are initialized
// lazily per account; a missing token only surfaces when a tool call needs
// that account.
func NewServerContext(ctx context.Context, config ServerContextConfig) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		policy:          config.Policy,
		cacheTTL:        config.CacheTTL,
		metrics:         config.Metrics,
		logger:          config.Logger,
		calendarClients: make(map[string]*calendar.Client),
		engines:         make(map[string]*schedule.Engine),
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Policy returns the engine policy in effect.
func (sc *ServerContext) Policy() schedule.Policy {
	return sc.policy
}

// Metrics returns the metrics recorder; may be nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// CalendarClientForAccount returns the calendar client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) CalendarClientForAccount(account string) *calendar.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.calendarClients[account]; ok {
		return client
	}

	if !calendar.HasTokenForAccount(account) {
		return nil
	}

	client, err := calendar.NewClientForAccount(sc.ctx, account)
	if err != nil {
		sc.logger.Warn("failed to create calendar client",
			"account", account, "error", err)
		return nil
	}

	sc.calendarClients[account] = client
	return client
}

// CalendarClient returns the calendar client for the default account.
func (sc *ServerContext) CalendarClient() *calendar.Client {
	return sc.CalendarClientForAccount("default")
}

// SetCalendarClientForAccount sets the calendar client for a specific
// account. Replacing a client invalidates the engine built on it.
func (sc *ServerContext) SetCalendarClientForAccount(account string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[account] = client
	delete(sc.engines, account)
}

// EngineForAccount returns the scheduling engine for a specific account,
// backed by the account's calendar client behind the response cache.
// Returns nil if the account has no usable client.
func (sc *ServerContext) EngineForAccount(account string) *schedule.Engine {
	sc.mu.RLock()
	if engine, ok := sc.engines[account]; ok {
		sc.mu.RUnlock()
		return engine
	}
	sc.mu.RUnlock()

	client := sc.CalendarClientForAccount(account)
	if client == nil {
		return nil
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if engine, ok := sc.engines[account]; ok {
		return engine
	}

	var provider schedule.CalendarProvider = client
	if sc.cacheTTL > 0 {
		provider = schedule.NewCachedProvider(client, sc.cacheTTL)
	}

	engine := schedule.NewEngine(provider, schedule.EngineConfig{
		Policy:  sc.policy,
		Logger:  sc.logger,
		Metrics: sc.metrics,
	})
	sc.engines[account] = engine
	return engine
}

// Engine returns the scheduling engine for the default account.
func (sc *ServerContext) Engine() *schedule.Engine {
	return sc.EngineForAccount("default")
}

// Accounts returns the account names with an initialized calendar
// client, sorted. Accounts appear here only after a tool call touched
// them; the health endpoints report this set.
func (sc *ServerContext) Accounts() []string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	accounts := make([]string, 0, len(sc.calendarClients))
	for account := range sc.calendarClients {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	return accounts
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
