package flow

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"go.uber.org/zap"
)

// Observer receives every applied transition and every rejected action.
// Calls happen with the session lock held and must not call back into
// the session.
type Observer interface {
	Transition(a Action, from, to State)
	Rejected(a Action, err error)
}

// SessionConfig configures a Session. Zero values select defaults.
type SessionConfig struct {
	Delay     time.Duration
	Scheduler Scheduler
	Logger    *zap.Logger
	Observer  Observer
}

// Session owns one State and the single pending auto-advance.
//
// Every dispatched action first cancels the pending advance. A timer that
// fires after being superseded is recognized by its generation and
// discarded, so at most one advance ever lands.
type Session struct {
	cat   *catalog.Catalog
	delay time.Duration
	sched Scheduler
	log   *zap.Logger
	obs   Observer

	mu      sync.Mutex
	state   State
	pending Handle
	gen     uint64
	closed  bool
}

// NewSession creates a session in the initial state.
func NewSession(cat *catalog.Catalog, cfg SessionConfig) *Session {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultAdvanceDelay
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = TimerScheduler{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Session{
		cat:   cat,
		delay: cfg.Delay,
		sched: cfg.Scheduler,
		log:   cfg.Logger.Named("flow"),
		obs:   cfg.Observer,
		state: Initial(),
	}
}

// Catalog returns the catalog the session runs on.
func (s *Session) Catalog() *catalog.Catalog { return s.cat }

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Screen describes the current state.
func (s *Session) Screen() Screen {
	st := s.State()
	return Describe(s.cat, st)
}

// Pending reports whether an auto-advance is scheduled.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Dispatch cancels any pending advance and applies a.
func (s *Session) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.state.clone(), ErrSessionClosed
	}
	s.cancelLocked()
	err := s.applyLocked(a)
	return s.state.clone(), err
}

// DispatchAll applies actions in order as a single step. Either every
// action lands or the state is left as it was.
func (s *Session) DispatchAll(actions ...Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.state.clone(), ErrSessionClosed
	}
	s.cancelLocked()

	type step struct {
		a        Action
		from, to State
	}
	steps := make([]step, 0, len(actions))
	cur := s.state
	for _, a := range actions {
		next, err := Reduce(s.cat, cur, a)
		if err != nil {
			s.reject(a, err)
			return s.state.clone(), err
		}
		steps = append(steps, step{a: a, from: cur, to: next})
		cur = next
	}
	for _, st := range steps {
		s.commitLocked(st.a, st.from, st.to)
	}
	return s.state.clone(), nil
}

// Submit records an answer for the current question and schedules the
// advance to the next one, replacing any advance already pending.
func (s *Session) Submit(answer catalog.Answer) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.state.clone(), ErrSessionClosed
	}
	s.cancelLocked()
	err := s.submitLocked(answer)
	return s.state.clone(), err
}

// AnswerQuestion is Submit addressed by question id. Hosts answer by id
// and may do so before the previous answer's advance has landed, so a
// pending advance is flushed when the id is not the one on screen. An id
// equal to the first question of a pillar intro begins the pillar.
func (s *Session) AnswerQuestion(id string, answer catalog.Answer) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.state.clone(), ErrSessionClosed
	}

	if q, ok := s.state.CurrentQuestion(s.cat); (!ok || q.ID != id) && s.pending != nil {
		s.flushLocked()
	}

	if s.state.Mode == ModeFlow && s.state.QuestionIndex == -1 {
		if p := s.state.CurrentPillar(s.cat); p != nil && len(p.Questions) > 0 && p.Questions[0].ID == id {
			if err := s.applyLocked(Begin{}); err != nil {
				return s.state.clone(), err
			}
		}
	}

	q, ok := s.state.CurrentQuestion(s.cat)
	if !ok {
		err := fmt.Errorf("%w: %q (no question on screen)", ErrUnknownQuestion, id)
		s.reject(Answer{Answer: answer}, err)
		return s.state.clone(), err
	}
	if q.ID != id {
		err := fmt.Errorf("%w: %q (current question is %q)", ErrUnknownQuestion, id, q.ID)
		s.reject(Answer{Answer: answer}, err)
		return s.state.clone(), err
	}
	s.cancelLocked()
	err := s.submitLocked(answer)
	return s.state.clone(), err
}

// Flush runs a pending advance now. It reports whether one was pending.
func (s *Session) Flush() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.flushLocked()
	return s.state.clone(), ok
}

// Close cancels any pending advance. Further actions fail with
// ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.closed = true
}

// --- locked helpers ---

func (s *Session) submitLocked(answer catalog.Answer) error {
	if err := s.applyLocked(Answer{Answer: answer}); err != nil {
		return err
	}
	s.gen++
	gen := s.gen
	s.pending = s.sched.Schedule(s.delay, func() { s.fire(gen) })
	return nil
}

func (s *Session) fire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.pending == nil || gen != s.gen {
		return
	}
	s.pending = nil
	if err := s.applyLocked(Next{}); err != nil {
		s.log.Debug("auto-advance dropped", zap.Error(err))
	}
}

func (s *Session) flushLocked() bool {
	if s.pending == nil {
		return false
	}
	s.cancelLocked()
	if err := s.applyLocked(Next{}); err != nil {
		s.log.Debug("flushed advance dropped", zap.Error(err))
	}
	return true
}

func (s *Session) cancelLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.gen++
}

func (s *Session) applyLocked(a Action) error {
	from := s.state
	next, err := Reduce(s.cat, from, a)
	if err != nil {
		s.reject(a, err)
		return err
	}
	s.commitLocked(a, from, next)
	return nil
}

func (s *Session) commitLocked(a Action, from, next State) {
	s.state = next
	s.log.Debug("transition",
		zap.String("action", a.Name()),
		zap.String("mode", string(next.Mode)),
		zap.String("role", string(next.Role)),
		zap.Int("pillar", next.PillarIndex),
		zap.Int("question", next.QuestionIndex),
	)
	if s.obs != nil {
		s.obs.Transition(a, from, next)
	}
}

func (s *Session) reject(a Action, err error) {
	s.log.Info("action rejected",
		zap.String("action", a.Name()),
		zap.Bool("validation", errors.Is(err, ErrEmptySelection)),
		zap.Error(err),
	)
	if s.obs != nil {
		s.obs.Rejected(a, err)
	}
}
