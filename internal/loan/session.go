package loan

import (
	"context"
	"sync"

	"loandesk/internal/common/config"
	"loandesk/internal/common/logger"
	"loandesk/internal/common/metrics"
)

// Sessions owns the live aggregates, one per session id, and serializes all
// mutations. Every committed mutation fires a best-effort snapshot save:
// persistence failures are logged and counted but never roll back the
// in-memory state.
type Sessions struct {
	mu       sync.RWMutex
	states   map[string]*State
	store    SnapshotStore
	defaults config.LoanConfig
	log      logger.Logger
}

func NewSessions(store SnapshotStore, defaults config.LoanConfig, log logger.Logger) *Sessions {
	return &Sessions{
		states:   make(map[string]*State),
		store:    store,
		defaults: defaults,
		log:      log,
	}
}

// get returns the live aggregate for a session, loading the snapshot or
// falling back to the default state on first touch. Callers must hold mu.
func (s *Sessions) get(ctx context.Context, sessionID string) *State {
	if state, ok := s.states[sessionID]; ok {
		return state
	}

	state := s.loadOrDefault(ctx, sessionID)
	s.states[sessionID] = state
	return state
}

func (s *Sessions) loadOrDefault(ctx context.Context, sessionID string) *State {
	if s.store != nil {
		state, err := s.store.Load(ctx, sessionID)
		if err != nil {
			s.log.WithError(err).Warn("session snapshot load failed, starting fresh", map[string]interface{}{
				"session_id": sessionID,
			})
		} else if state != nil {
			return state
		}
	}
	return NewDefaultState(s.defaults)
}

// persist saves the aggregate after a committed mutation. Best-effort only.
func (s *Sessions) persist(ctx context.Context, sessionID string, state *State) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		metrics.SnapshotSaveFailures.Inc()
		s.log.WithError(err).Warn("session snapshot save failed", map[string]interface{}{
			"session_id": sessionID,
		})
	}
}

// Snapshot returns the decorated read model for a session.
func (s *Sessions) Snapshot(ctx context.Context, sessionID string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx, sessionID).Snapshot()
}

// SetLocationField applies one location edit with its cascade.
func (s *Sessions) SetLocationField(ctx context.Context, sessionID, field, value string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(ctx, sessionID)
	if err := state.SetLocationField(field, value); err != nil {
		return View{}, err
	}

	metrics.SessionMutationsTotal.WithLabelValues("set_location").Inc()
	s.persist(ctx, sessionID, state)
	return state.Snapshot(), nil
}

// AddProperty appends a default collateral item and selects it.
func (s *Sessions) AddProperty(ctx context.Context, sessionID string) (Property, View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(ctx, sessionID)
	p := state.AddProperty()

	metrics.SessionMutationsTotal.WithLabelValues("add_property").Inc()
	s.persist(ctx, sessionID, state)
	return p, state.Snapshot()
}

// UpdateProperty applies a field patch to a collateral item.
func (s *Sessions) UpdateProperty(ctx context.Context, sessionID, propertyID string, patch map[string]interface{}) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(ctx, sessionID)
	if err := state.UpdateProperty(propertyID, patch); err != nil {
		return View{}, err
	}

	metrics.SessionMutationsTotal.WithLabelValues("update_property").Inc()
	s.persist(ctx, sessionID, state)
	return state.Snapshot(), nil
}

// RemoveProperty deletes a collateral item.
func (s *Sessions) RemoveProperty(ctx context.Context, sessionID, propertyID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(ctx, sessionID)
	if err := state.RemoveProperty(propertyID); err != nil {
		return View{}, err
	}

	metrics.SessionMutationsTotal.WithLabelValues("remove_property").Inc()
	s.persist(ctx, sessionID, state)
	return state.Snapshot(), nil
}

// Select opens the detail view for a collateral item.
func (s *Sessions) Select(ctx context.Context, sessionID, propertyID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(ctx, sessionID)
	if err := state.Select(propertyID); err != nil {
		return View{}, err
	}

	metrics.SessionMutationsTotal.WithLabelValues("select_property").Inc()
	s.persist(ctx, sessionID, state)
	return state.Snapshot(), nil
}

// ClearSelection closes the detail view.
func (s *Sessions) ClearSelection(ctx context.Context, sessionID string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(ctx, sessionID)
	state.ClearSelection()

	metrics.SessionMutationsTotal.WithLabelValues("clear_selection").Inc()
	s.persist(ctx, sessionID, state)
	return state.Snapshot()
}

// SetRates updates the reserved rate inputs.
func (s *Sessions) SetRates(ctx context.Context, sessionID string, interestRate, annualIncome float64) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(ctx, sessionID)
	state.SetRates(interestRate, annualIncome)

	metrics.SessionMutationsTotal.WithLabelValues("set_rates").Inc()
	s.persist(ctx, sessionID, state)
	return state.Snapshot()
}

// AddRental appends a rental unit.
func (s *Sessions) AddRental(ctx context.Context, sessionID string, unit RentalUnit) (RentalUnit, View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(ctx, sessionID)
	added := state.AddRental(unit)

	metrics.SessionMutationsTotal.WithLabelValues("add_rental").Inc()
	s.persist(ctx, sessionID, state)
	return added, state.Snapshot()
}

// RemoveRental deletes a rental unit.
func (s *Sessions) RemoveRental(ctx context.Context, sessionID, rentalID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(ctx, sessionID)
	if err := state.RemoveRental(rentalID); err != nil {
		return View{}, err
	}

	metrics.SessionMutationsTotal.WithLabelValues("remove_rental").Inc()
	s.persist(ctx, sessionID, state)
	return state.Snapshot(), nil
}
