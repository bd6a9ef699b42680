package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/gymtrack/internal/models"
)

const (
	// ActiveSessionKey is where the in-progress session is checkpointed.
	ActiveSessionKey = "active_session"

	DefaultRestPeriod      = 90 * time.Second
	DefaultTransitionDelay = 2 * time.Second
)

// Store is the key-value persistence the engine checkpoints into. Load reports false when the
// key is absent.
type Store interface {
	Load(key string, v any) (bool, error)
	Save(key string, v any) error
	Delete(key string) error
}

// HistorySink receives the finished session, once.
type HistorySink interface {
	AppendSession(s models.WorkoutSession) error
}

type Options struct {
	Store   Store
	History HistorySink
	Key     string

	Scheduler Scheduler
	Logger    *slog.Logger
	Now       func() time.Time
	NewID     func() string

	RestPeriod      time.Duration
	TransitionDelay time.Duration

	// OnChange is called after every handled event, outside the engine lock. Clock ticks and
	// the end of a transition are reported here too.
	OnChange func(Snapshot)
}

func (o Options) withDefaults() Options {
	if o.Key == "" {
		o.Key = ActiveSessionKey
	}
	if o.Scheduler == nil {
		o.Scheduler = RealScheduler{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.RestPeriod <= 0 {
		o.RestPeriod = DefaultRestPeriod
	}
	if o.TransitionDelay <= 0 {
		o.TransitionDelay = DefaultTransitionDelay
	}
	return o
}

// Snapshot is a copy of the engine state. Callers may keep and modify it freely.
type Snapshot struct {
	Session       models.WorkoutSession
	CurrentIndex  int
	Phase         models.Phase
	RestRemaining int
	CardioSeconds int
	CardioRunning bool
	Pending       *Confirmation
}

// Current returns the active exercise, or false when the session has no exercises.
func (s Snapshot) Current() (models.ExerciseSession, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Session.Exercises) {
		return models.ExerciseSession{}, false
	}
	return s.Session.Exercises[s.CurrentIndex], true
}

// Upcoming returns the exercises after the current one: the only ones open to queue edits.
func (s Snapshot) Upcoming() []models.ExerciseSession {
	if s.CurrentIndex+1 >= len(s.Session.Exercises) {
		return nil
	}
	return s.Session.Exercises[s.CurrentIndex+1:]
}

func (s Snapshot) HasNext() bool { return s.CurrentIndex+1 < len(s.Session.Exercises) }

// Over reports whether the session was finished or abandoned.
func (s Snapshot) Over() bool {
	return s.Phase == models.PhaseFinished || s.Phase == models.PhaseAbandoned
}

// Engine drives one active workout session. All methods are safe for concurrent use; events
// are applied one at a time.
type Engine struct {
	mu   sync.Mutex
	opts Options
	log  *slog.Logger

	state   models.WorkoutSession
	current int
	phase   models.Phase
	pending *Confirmation
	closed  bool

	rest          *RestTimer
	cardio        *Stopwatch
	transition    Timer
	transitionGen uint64
}

func newEngine(opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, errors.New("session store is required")
	}
	opts = opts.withDefaults()
	e := &Engine{opts: opts, log: opts.Logger, phase: models.PhaseActive}
	e.rest = newRestTimer(opts.Scheduler, opts.RestPeriod, e.onClock)
	e.cardio = newStopwatch(opts.Scheduler, e.onClock)
	return e, nil
}

// HasActive reports whether a session checkpoint exists under key.
func HasActive(store Store, key string) (bool, error) {
	if key == "" {
		key = ActiveSessionKey
	}
	var st models.SessionState
	return store.Load(key, &st)
}

// Start seeds a new session from w and checkpoints it. Only one session may be active.
func Start(w models.Workout, opts Options) (*Engine, error) {
	e, err := newEngine(opts)
	if err != nil {
		return nil, err
	}

	active, err := HasActive(e.opts.Store, e.opts.Key)
	if err != nil {
		return nil, fmt.Errorf("Failed to check for an active session: %w", err)
	}
	if active {
		return nil, ErrSessionActive
	}

	s, err := NewWorkoutSession(w, e.opts.Now(), e.opts.NewID())
	if err != nil {
		return nil, err
	}

	rec := models.SessionState{Session: s, Phase: models.PhaseActive}
	if err := e.persist(rec); err != nil {
		return nil, err
	}
	e.adopt(rec)
	e.log.Info("session started", "session", s.ID, "workout", s.Name, "exercises", len(s.Exercises))
	return e, nil
}

// Resume reloads the checkpointed session. A run interrupted mid-transition resumes on the
// next exercise; one interrupted while resting resumes active. The stopwatch comes back
// paused at the saved value.
func Resume(opts Options) (*Engine, error) {
	e, err := newEngine(opts)
	if err != nil {
		return nil, err
	}

	var rec models.SessionState
	ok, err := e.opts.Store.Load(e.opts.Key, &rec)
	if err != nil {
		return nil, fmt.Errorf("Failed to load session: %w", err)
	}
	if !ok {
		return nil, ErrNoActiveSession
	}
	n := len(rec.Session.Exercises)
	if n == 0 {
		return nil, fmt.Errorf("%w: checkpoint has no exercises", ErrInvalidState)
	}

	rec.CurrentExerciseIndex = min(max(rec.CurrentExerciseIndex, 0), n-1)
	switch rec.Phase {
	case models.PhaseTransitioning:
		if rec.CurrentExerciseIndex < n-1 {
			rec.CurrentExerciseIndex++
		}
		rec.CardioSeconds = 0
	case models.PhaseFinished, models.PhaseAbandoned:
		return nil, ErrNoActiveSession
	}
	rec.Phase = models.PhaseActive

	if err := e.persist(rec); err != nil {
		return nil, err
	}
	e.adopt(rec)
	e.cardio.elapsed = rec.CardioSeconds
	e.log.Debug("session resumed", "session", rec.Session.ID, "index", rec.CurrentExerciseIndex)
	return e, nil
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// LogChange edits weight or reps of a set and pre-fills the later incomplete sets.
func (e *Engine) LogChange(exerciseID string, setIndex int, v FieldValue) (Snapshot, error) {
	return e.do(false, func() error {
		next, err := LogChange(e.state, exerciseID, setIndex, v)
		if err != nil {
			return err
		}
		return e.commit(e.record(next, e.current, e.phase))
	})
}

// CompleteSet marks a set of the current exercise done. Sets left: rest. Exercise done with
// another one after it: transition, then advance. Last exercise done: stay.
func (e *Engine) CompleteSet(exerciseID string, setIndex int) (Snapshot, error) {
	return e.do(false, func() error {
		if err := e.requireCurrent(exerciseID); err != nil {
			return err
		}
		next, err := CompleteSet(e.state, exerciseID, setIndex)
		if err != nil {
			return err
		}

		ex := next.Exercises[e.current]
		e.log.Debug("set completed", "exercise", ex.Name, "set", setIndex+1)
		if !ex.AllCompleted() {
			if err := e.commit(e.record(next, e.current, models.PhaseResting)); err != nil {
				return err
			}
			e.rest.Arm()
			return nil
		}
		return e.exerciseDone(next)
	})
}

// CompleteCardioSet completes the cardio log with the stopwatch reading.
func (e *Engine) CompleteCardioSet(exerciseID string, setIndex int) (Snapshot, error) {
	return e.do(false, func() error {
		if !e.cardio.Running() && e.cardio.Elapsed() == 0 {
			return fmt.Errorf("%w: the stopwatch has not been started", ErrInvalidState)
		}
		return e.completeCardio(exerciseID, setIndex, e.cardio.Elapsed())
	})
}

// RecordCardio completes the cardio log with an explicit duration, for callers without a
// live stopwatch.
func (e *Engine) RecordCardio(exerciseID string, setIndex int, elapsed time.Duration) (Snapshot, error) {
	return e.do(false, func() error {
		return e.completeCardio(exerciseID, setIndex, int(elapsed/time.Second))
	})
}

func (e *Engine) completeCardio(exerciseID string, setIndex, seconds int) error {
	if err := e.requireCurrent(exerciseID); err != nil {
		return err
	}
	next, err := CompleteCardioSet(e.state, exerciseID, setIndex, seconds)
	if err != nil {
		return err
	}
	e.log.Debug("cardio completed", "exercise", next.Exercises[e.current].Name, "seconds", seconds)
	return e.exerciseDone(next)
}

// exerciseDone commits a session whose current exercise is fully completed.
func (e *Engine) exerciseDone(next models.WorkoutSession) error {
	hasNext := e.current+1 < len(next.Exercises)
	phase := models.PhaseActive
	if hasNext {
		phase = models.PhaseTransitioning
	}
	rec := e.record(next, e.current, phase)
	rec.CardioSeconds = 0
	if err := e.commit(rec); err != nil {
		return err
	}

	e.rest.Stop()
	e.cardio.Reset()
	e.pending = nil
	if hasNext {
		e.scheduleTransition()
	}
	return nil
}

// ToggleCardioClock starts or pauses the stopwatch of the current cardio exercise.
func (e *Engine) ToggleCardioClock() (Snapshot, error) {
	return e.do(false, func() error {
		ex := e.state.Exercises[e.current]
		if !ex.IsCardio {
			return fmt.Errorf("%w: %q is not a cardio exercise", ErrInvalidState, ex.Name)
		}
		if ex.AllCompleted() {
			return fmt.Errorf("%w: %q is already completed", ErrInvalidState, ex.Name)
		}
		if err := e.commit(e.record(e.state, e.current, e.phase)); err != nil {
			return err
		}
		e.cardio.Toggle()
		return nil
	})
}

// SkipRest ends the rest period early.
func (e *Engine) SkipRest() (Snapshot, error) {
	return e.do(false, func() error {
		if e.phase != models.PhaseResting {
			return fmt.Errorf("%w: not resting", ErrInvalidState)
		}
		if err := e.commit(e.record(e.state, e.current, models.PhaseActive)); err != nil {
			return err
		}
		e.rest.Stop()
		return nil
	})
}

// Next moves to the following exercise without touching any log.
func (e *Engine) Next() (Snapshot, error) {
	return e.do(false, func() error {
		if e.current+1 >= len(e.state.Exercises) {
			return fmt.Errorf("%w: already on the last exercise", ErrInvalidState)
		}
		return e.moveTo(e.current + 1)
	})
}

// Previous moves to the preceding exercise without touching any log.
func (e *Engine) Previous() (Snapshot, error) {
	return e.do(false, func() error {
		if e.current == 0 {
			return fmt.Errorf("%w: already on the first exercise", ErrInvalidState)
		}
		return e.moveTo(e.current - 1)
	})
}

func (e *Engine) moveTo(i int) error {
	rec := e.record(e.state, i, models.PhaseActive)
	dest := e.state.Exercises[i]
	if dest.IsCardio {
		rec.CardioSeconds = 0
	}
	if err := e.commit(rec); err != nil {
		return err
	}

	e.rest.Stop()
	e.cardio.Pause()
	if dest.IsCardio {
		e.cardio.Reset()
	}
	e.pending = nil
	e.log.Debug("moved", "index", i, "exercise", dest.Name)
	return nil
}

// Finish stamps the end time, hands the session to history and clears the checkpoint.
func (e *Engine) Finish() (models.WorkoutSession, error) {
	var finished models.WorkoutSession
	_, err := e.do(true, func() error {
		if e.opts.History == nil {
			return errors.New("no history sink configured")
		}
		out := e.state.Clone()
		end := e.opts.Now()
		out.EndTime = &end

		if err := e.opts.History.AppendSession(out); err != nil {
			return fmt.Errorf("Failed to save session to history: %w", err)
		}

		e.stopAll()
		e.state = out
		e.phase = models.PhaseFinished
		e.pending = nil
		finished = out.Clone()
		e.log.Info("session finished", "session", out.ID, "duration", out.Duration().Round(time.Second))

		if err := e.opts.Store.Delete(e.opts.Key); err != nil {
			return fmt.Errorf("Session saved, but failed to clear the active session: %w", err)
		}
		return nil
	})
	return finished, err
}

// Abandon discards the session without recording it. It cannot be undone.
func (e *Engine) Abandon() error {
	_, err := e.do(true, func() error {
		if err := e.opts.Store.Delete(e.opts.Key); err != nil {
			return fmt.Errorf("Failed to clear the active session: %w", err)
		}
		e.terminate()
		e.log.Info("session abandoned")
		return nil
	})
	return err
}

// Close stops every clock and pending transition. The checkpoint is left as is, so the session
// can be resumed later.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopAll()
	e.closed = true
}

// terminate drops the in-memory session after its checkpoint was removed.
func (e *Engine) terminate() {
	e.stopAll()
	e.state = models.WorkoutSession{}
	e.current = 0
	e.phase = models.PhaseAbandoned
	e.pending = nil
}

func (e *Engine) stopAll() {
	e.rest.Stop()
	e.cardio.Reset()
	e.cancelTransition()
}

func (e *Engine) scheduleTransition() {
	e.cancelTransition()
	gen := e.transitionGen
	e.transition = e.opts.Scheduler.AfterFunc(e.opts.TransitionDelay, func() {
		e.onTransition(gen)
	})
}

func (e *Engine) cancelTransition() {
	if e.transition != nil {
		e.transition.Stop()
		e.transition = nil
	}
	e.transitionGen++
}

func (e *Engine) onTransition(gen uint64) {
	e.mu.Lock()
	if e.closed || gen != e.transitionGen || e.phase != models.PhaseTransitioning {
		e.mu.Unlock()
		return
	}
	e.transition = nil

	next := min(e.current+1, len(e.state.Exercises)-1)
	rec := e.record(e.state, next, models.PhaseActive)
	rec.CardioSeconds = 0
	e.adopt(rec)
	e.cardio.Reset()
	if err := e.persist(rec); err != nil {
		e.log.Warn("failed to checkpoint after transition", "error", err)
	}
	e.log.Debug("advanced", "index", next, "exercise", e.state.Exercises[next].Name)

	snap := e.snapshotLocked()
	cb := e.opts.OnChange
	e.mu.Unlock()
	if cb != nil {
		cb(snap)
	}
}

func (e *Engine) onClock(ev clockEvent) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}

	applied := false
	switch ev.kind {
	case restTick:
		var done bool
		applied, done = e.rest.tick(ev.gen)
		if done && e.phase == models.PhaseResting {
			rec := e.record(e.state, e.current, models.PhaseActive)
			e.adopt(rec)
			if err := e.persist(rec); err != nil {
				e.log.Warn("failed to checkpoint after rest", "error", err)
			}
			e.log.Debug("rest over")
		}
	case stopwatchTick:
		applied = e.cardio.tick(ev.gen)
		if applied {
			if err := e.persist(e.record(e.state, e.current, e.phase)); err != nil {
				e.log.Warn("failed to checkpoint stopwatch", "error", err)
			}
		}
	}

	snap := e.snapshotLocked()
	cb := e.opts.OnChange
	e.mu.Unlock()
	if applied && cb != nil {
		cb(snap)
	}
}

// do runs fn under the lock and notifies OnChange on success.
func (e *Engine) do(allowTransition bool, fn func() error) (Snapshot, error) {
	e.mu.Lock()
	err := e.guard(allowTransition)
	if err == nil {
		err = fn()
	}
	snap := e.snapshotLocked()
	cb := e.opts.OnChange
	e.mu.Unlock()

	if cb != nil && (err == nil || errors.Is(err, ErrEmptySession)) {
		cb(snap)
	}
	return snap, err
}

func (e *Engine) guard(allowTransition bool) error {
	switch {
	case e.closed:
		return ErrClosed
	case e.phase == models.PhaseFinished || e.phase == models.PhaseAbandoned:
		return ErrSessionOver
	case !allowTransition && e.phase == models.PhaseTransitioning:
		return ErrTransitioning
	}
	return nil
}

func (e *Engine) requireCurrent(exerciseID string) error {
	i := e.state.IndexOf(exerciseID)
	if i < 0 {
		return unknownExercise(exerciseID)
	}
	if i != e.current {
		return fmt.Errorf("%w: %q is not the current exercise", ErrInvalidState, e.state.Exercises[i].Name)
	}
	return nil
}

func (e *Engine) record(s models.WorkoutSession, current int, phase models.Phase) models.SessionState {
	return models.SessionState{
		Session:              s,
		CurrentExerciseIndex: current,
		Phase:                phase,
		CardioSeconds:        e.cardio.Elapsed(),
	}
}

// commit checkpoints rec and, only once that succeeded, makes it the engine state.
func (e *Engine) commit(rec models.SessionState) error {
	if err := e.persist(rec); err != nil {
		return err
	}
	e.adopt(rec)
	return nil
}

func (e *Engine) persist(rec models.SessionState) error {
	if err := e.opts.Store.Save(e.opts.Key, rec); err != nil {
		return fmt.Errorf("Failed to checkpoint session: %w", err)
	}
	return nil
}

func (e *Engine) adopt(rec models.SessionState) {
	e.state = rec.Session
	e.current = rec.CurrentExerciseIndex
	e.phase = rec.Phase
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Session:       e.state.Clone(),
		CurrentIndex:  e.current,
		Phase:         e.phase,
		RestRemaining: e.rest.Remaining(),
		CardioSeconds: e.cardio.Elapsed(),
		CardioRunning: e.cardio.Running(),
	}
	if e.pending != nil {
		p := *e.pending
		snap.Pending = &p
	}
	return snap
}
