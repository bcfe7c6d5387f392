// main.go - gargantuad hosts a Gargantua Engine behind an HTTP API: one
// POST endpoint accepts a wire-encoded instruction, decodes the caller
// identity from a request header, and dispatches it against the shared
// in-memory state, checkpointing to a snapshot file on exit.
//
// Usage:
//
//	go run ./cmd/gargantuad
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"gargantua/internal/gargantua"
)

// callerIdentity is the Engine's IdentitySource: the HTTP handler binds
// it to the request's caller for the duration of one Dispatch call,
// serializing submissions the same way the spec's single engine mutex
// already does internally.
type callerIdentity struct {
	mu      sync.Mutex
	current gargantua.Identity
}

func (c *callerIdentity) CurrentCaller() gargantua.Identity { return c.current }

// withCaller runs fn with CurrentCaller pinned to id.
func (c *callerIdentity) withCaller(id gargantua.Identity, fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = id
	return fn()
}

type systemClock struct{}

func (systemClock) Now() int64 { return time.Now().Unix() }

// memoryCustody is a trivial in-process stand-in for the external
// token-custody adapter (spec §6): it tracks a balance per owner instead
// of touching any real token ledger. A production deployment replaces
// this with an adapter onto the host chain's token program.
type memoryCustody struct {
	mu       sync.Mutex
	balances map[gargantua.Identity]uint64
}

func newMemoryCustody() *memoryCustody {
	return &memoryCustody{balances: make(map[gargantua.Identity]uint64)}
}

func (c *memoryCustody) Debit(srcOwner, _ gargantua.Identity, amount uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.balances[srcOwner] < amount {
		return fmt.Errorf("memoryCustody: insufficient external balance for %x", srcOwner)
	}
	c.balances[srcOwner] -= amount
	return nil
}

func (c *memoryCustody) Credit(_, dstOwner gargantua.Identity, amount uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[dstOwner] += amount
	return nil
}

func (c *memoryCustody) Deposit(owner gargantua.Identity, amount uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[owner] += amount
}

// server bundles the Engine with the ambient daemon concerns: logging,
// health, metrics, and per-caller rate limiting.
type server struct {
	engine   *gargantua.Engine
	identity *callerIdentity
	custody  *memoryCustody
	logger   *Logger
	health   *HealthChecker
	metrics  *MetricsCollector
	limiter  *CallerRateLimiter
	config   *Config
}

func parseCallerHeader(r *http.Request) (gargantua.Identity, error) {
	var id gargantua.Identity
	raw := r.Header.Get("X-Gargantua-Caller")
	if raw == "" {
		return id, errors.New("missing X-Gargantua-Caller header")
	}
	decoded, err := hex.DecodeString(raw)
	if err != nil || len(decoded) != 32 {
		return id, errors.New("X-Gargantua-Caller must be 32 hex-encoded bytes")
	}
	copy(id[:], decoded)
	return id, nil
}

func (s *server) handleInstruction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, err := parseCallerHeader(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.limiter.Allow(hex.EncodeToString(caller[:])) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	tag := "unknown"
	if ins, decErr := gargantua.DecodeInstruction(body); decErr == nil {
		tag = fmt.Sprintf("%d", ins.Tag)
	}

	start := time.Now()
	dispatchErr := s.identity.withCaller(caller, func() error {
		return s.engine.Dispatch(body)
	})
	s.metrics.RecordDispatch(tag, time.Since(start))
	s.metrics.RecordInstruction(tag)

	if dispatchErr != nil {
		kind := "decode_error"
		if gErr, ok := dispatchErr.(*gargantua.Error); ok {
			kind = gErr.Kind.String()
		}
		s.metrics.RecordRejection(tag, kind)
		s.logger.Warn("instruction rejected: tag=%s kind=%s caller=%x err=%v", tag, kind, caller, dispatchErr)
		s.logger.Audit("instruction_rejected", map[string]interface{}{
			"tag": tag, "kind": kind, "caller": hex.EncodeToString(caller[:]),
		})
		http.Error(w, dispatchErr.Error(), http.StatusBadRequest)
		return
	}

	s.logger.Info("instruction accepted: tag=%s caller=%x", tag, caller)
	s.logger.Audit("instruction_accepted", map[string]interface{}{
		"tag": tag, "caller": hex.EncodeToString(caller[:]),
	})
	w.WriteHeader(http.StatusOK)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := CreateHealthResponse(s.health.CheckHealth())
	w.Header().Set("Content-Type", "application/json")
	if resp.Status == "error" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	fmt.Fprintf(w, "%+v\n", resp)
}

func (s *server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, "%+v\n", s.metrics.GetMetricsSummary())
}

func main() {
	config, err := LoadConfig("gargantuad.config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := NewLogger(config.LogLevel, config.LogFile, config.AuditLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	identity := &callerIdentity{}
	custody := newMemoryCustody()
	engine := gargantua.NewEngine(systemClock{}, identity, custody)

	if err := engine.LoadSnapshot(config.SnapshotPath); err != nil {
		logger.Info("starting with empty state: no snapshot at %s (%v)", config.SnapshotPath, err)
	} else {
		logger.Info("restored state from snapshot at %s", config.SnapshotPath)
	}

	health := NewHealthChecker("gargantuad/1")
	health.RegisterComponent("engine", engineHealthCheck(engine))
	health.RegisterComponent("snapshot", snapshotHealthCheck(config.SnapshotPath))

	s := &server{
		engine:   engine,
		identity: identity,
		custody:  custody,
		logger:   logger,
		health:   health,
		metrics:  NewMetricsCollector(),
		limiter:  NewParticipantRateLimiter(20, 5, time.Second),
		config:   config,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/instruction", s.handleInstruction)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)

	httpServer := &http.Server{Addr: config.ListenAddress, Handler: mux}

	go func() {
		logger.Info("gargantuad listening on %s", config.ListenAddress)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down, checkpointing state to %s", config.SnapshotPath)
	if err := engine.SaveSnapshot(config.SnapshotPath); err != nil {
		logger.Error("failed to save snapshot: %v", err)
	}
	_ = httpServer.Close()
}
