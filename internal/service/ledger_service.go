package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/evensplit/internal/ledger"
	"github.com/mmynk/evensplit/internal/metrics"
	"github.com/mmynk/evensplit/internal/models"
	"github.com/mmynk/evensplit/internal/storage"
)

// Service errors.
var (
	ErrLedgerNotFound = errors.New("ledger not found")
	ErrNoSession      = errors.New("no saved session found")
)

const defaultSaveTimeout = 2 * time.Second

// LedgerService hosts many ledgers. Each ledger has its own lock so only one
// operation is in flight per ledger; different ledgers proceed independently.
type LedgerService struct {
	store       storage.Store
	metrics     *metrics.Metrics
	saveTimeout time.Duration
	now         func() time.Time

	mu      sync.Mutex
	ledgers map[string]*entry
}

type entry struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithMetrics records operation metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *LedgerService) { s.metrics = m }
}

// WithSaveTimeout bounds each autosave.
func WithSaveTimeout(d time.Duration) Option {
	return func(s *LedgerService) {
		if d > 0 {
			s.saveTimeout = d
		}
	}
}

// WithClock overrides the clock used to stamp saved sessions.
func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) { s.now = now }
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, opts ...Option) *LedgerService {
	s := &LedgerService{
		store:       store,
		saveTimeout: defaultSaveTimeout,
		now:         time.Now,
		ledgers:     make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New(nil)
	}
	return s
}

// Create starts a new empty ledger.
func (s *LedgerService) Create(ctx context.Context) (View, error) {
	id := uuid.New().String()
	e := &entry{ledger: ledger.New()}

	s.mu.Lock()
	s.ledgers[id] = e
	s.metrics.ActiveLedgers.Set(float64(len(s.ledgers)))
	s.mu.Unlock()

	s.metrics.Observe("create", nil)
	s.autosave(ctx, id, e.ledger)
	slog.Info("Ledger created", "ledger_id", id)
	return newView(id, e.ledger), nil
}

// Get returns the current view of a ledger.
func (s *LedgerService) Get(ctx context.Context, id string) (View, error) {
	e, err := s.entry(ctx, id)
	if err != nil {
		return View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return newView(id, e.ledger), nil
}

// List returns the ids of all autosaved ledgers.
func (s *LedgerService) List(ctx context.Context) ([]string, error) {
	return s.store.ListLedgers(ctx)
}

// SetParticipantCount resizes the group, discarding expenses on change.
func (s *LedgerService) SetParticipantCount(ctx context.Context, id string, n int) (View, error) {
	return s.mutate(ctx, id, "set_participant_count", func(l *ledger.Ledger) error {
		return l.SetParticipantCount(n)
	})
}

// SetTotalAmount records the bill total without recalculating the share.
func (s *LedgerService) SetTotalAmount(ctx context.Context, id string, total float64) (View, error) {
	return s.mutate(ctx, id, "set_total_amount", func(l *ledger.Ledger) error {
		l.SetTotalAmount(total)
		return nil
	})
}

// Calculate computes the share from the ledger's current total and size.
func (s *LedgerService) Calculate(ctx context.Context, id string) (View, error) {
	return s.mutate(ctx, id, "calculate", func(l *ledger.Ledger) error {
		return l.Calculate()
	})
}

// CalculateShare sets total and size, then calculates.
func (s *LedgerService) CalculateShare(ctx context.Context, id string, total float64, count int) (View, error) {
	return s.mutate(ctx, id, "calculate", func(l *ledger.Ledger) error {
		return l.CalculateShare(total, count)
	})
}

// AddExpense records a payment.
func (s *LedgerService) AddExpense(ctx context.Context, id string, paidBy int, amount float64, description string) (View, error) {
	return s.mutate(ctx, id, "add_expense", func(l *ledger.Ledger) error {
		expense, err := l.AddExpense(paidBy, amount, description)
		if err != nil {
			return err
		}
		slog.Debug("Expense added",
			"ledger_id", id,
			"expense_id", expense.ID,
			"paid_by", expense.PaidBy,
			"amount", expense.Amount,
		)
		return nil
	})
}

// RemoveExpense deletes an expense; unknown ids are ignored.
func (s *LedgerService) RemoveExpense(ctx context.Context, id string, expenseID int64) (View, error) {
	return s.mutate(ctx, id, "remove_expense", func(l *ledger.Ledger) error {
		l.RemoveExpense(expenseID)
		return nil
	})
}

// RenameParticipant changes a participant's display name.
func (s *LedgerService) RenameParticipant(ctx context.Context, id string, participantID int, name string) (View, error) {
	return s.mutate(ctx, id, "rename_participant", func(l *ledger.Ledger) error {
		return l.RenameParticipant(participantID, name)
	})
}

// Reset clears the ledger and overwrites its autosave with the empty state.
// The saved session is kept.
func (s *LedgerService) Reset(ctx context.Context, id string) (View, error) {
	return s.mutate(ctx, id, "reset", func(l *ledger.Ledger) error {
		l.Reset()
		return nil
	})
}

// Settlements returns the transfer plan for the ledger's current balances.
// Before the first calculation the plan is empty and not settled.
func (s *LedgerService) Settlements(ctx context.Context, id string) (Plan, error) {
	e, err := s.entry(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ledger.ResultsReady() {
		return Plan{Transfers: []models.Transfer{}}, nil
	}
	transfers := e.ledger.Settlements()
	s.metrics.Transfers.Observe(float64(len(transfers)))
	return newPlan(transfers), nil
}

// SaveSession stores the ledger as its named "last session", stamped with the
// current time. Unlike autosave, failures are returned to the caller.
func (s *LedgerService) SaveSession(ctx context.Context, id string) (SessionInfo, error) {
	e, err := s.entry(ctx, id)
	if err != nil {
		return SessionInfo{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := e.ledger.Snapshot()
	savedAt := s.now().UTC()
	snapshot.Timestamp = &savedAt

	err = s.store.Save(ctx, id, storage.SlotSession, snapshot)
	s.metrics.Observe("save_session", err)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("failed to save session: %w", err)
	}
	slog.Info("Session saved", "ledger_id", id, "saved_at", savedAt)
	return SessionInfo{LedgerID: id, SavedAt: savedAt}, nil
}

// LoadSession replaces the ledger with its saved session. A missing or
// malformed session is reported as ErrNoSession and the ledger is untouched.
func (s *LedgerService) LoadSession(ctx context.Context, id string) (View, error) {
	e, err := s.entry(ctx, id)
	if err != nil {
		return View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot, err := s.store.Load(ctx, id, storage.SlotSession)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.metrics.Observe("load_session", ErrNoSession)
		return View{}, ErrNoSession
	case errors.Is(err, models.ErrMalformedSnapshot):
		slog.Warn("Discarding malformed session", "ledger_id", id, "error", err)
		s.metrics.Observe("load_session", ErrNoSession)
		return View{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	case err != nil:
		s.metrics.Observe("load_session", err)
		return View{}, fmt.Errorf("failed to load session: %w", err)
	}

	if err := e.ledger.Restore(*snapshot); err != nil {
		s.metrics.Observe("load_session", err)
		return View{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	s.metrics.Observe("load_session", nil)
	s.autosave(ctx, id, e.ledger)
	return newView(id, e.ledger), nil
}

// mutate runs fn against the ledger under its lock and autosaves on success.
func (s *LedgerService) mutate(ctx context.Context, id, operation string, fn func(*ledger.Ledger) error) (View, error) {
	e, err := s.entry(ctx, id)
	if err != nil {
		return View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	err = fn(e.ledger)
	s.metrics.Observe(operation, err)
	if err != nil {
		slog.Debug("Ledger operation rejected", "ledger_id", id, "operation", operation, "error", err)
		return View{}, err
	}
	s.autosave(ctx, id, e.ledger)
	return newView(id, e.ledger), nil
}

// autosave writes the current snapshot. Failures are logged and counted but
// never surface to the caller.
func (s *LedgerService) autosave(ctx context.Context, id string, l *ledger.Ledger) {
	saveCtx, cancel := s.saveContext(ctx)
	defer cancel()
	if err := s.store.Save(saveCtx, id, storage.SlotCurrent, l.Snapshot()); err != nil {
		s.metrics.AutosaveErrors.Inc()
		slog.Warn("Autosave failed", "ledger_id", id, "error", err)
	}
}

// saveContext detaches persistence from request cancellation.
func (s *LedgerService) saveContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.saveTimeout)
}

// entry returns the in-memory ledger for id, loading it from the autosave
// slot on first access. A malformed autosave yields an empty ledger. The
// store is read without holding s.mu; if two callers race on the same id the
// first one to insert wins.
func (s *LedgerService) entry(ctx context.Context, id string) (*entry, error) {
	s.mu.Lock()
	e, ok := s.ledgers[id]
	s.mu.Unlock()
	if ok {
		return e, nil
	}

	l := ledger.New()
	snapshot, err := s.store.Load(ctx, id, storage.SlotCurrent)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("%w: %s", ErrLedgerNotFound, id)
	case errors.Is(err, models.ErrMalformedSnapshot):
		slog.Warn("Discarding malformed autosave", "ledger_id", id, "error", err)
	case err != nil:
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	default:
		if err := l.Restore(*snapshot); err != nil {
			slog.Warn("Discarding malformed autosave", "ledger_id", id, "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.ledgers[id]; ok {
		return existing, nil
	}
	e = &entry{ledger: l}
	s.ledgers[id] = e
	s.metrics.ActiveLedgers.Set(float64(len(s.ledgers)))
	return e, nil
}
