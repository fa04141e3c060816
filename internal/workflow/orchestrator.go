package workflow

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/upskillhq/skillpath/internal/api"
	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/media"
	"github.com/upskillhq/skillpath/internal/path"
)

// ErrNoSession indicates a workflow operation without an authenticated
// employee session.
var ErrNoSession = errors.New("no active session")

// ErrInFlight indicates the same transition is already outstanding.
// The triggering affordance should be disabled, not the whole view.
var ErrInFlight = errors.New("transition already in flight")

// API is the remote surface the orchestrator drives.
type API interface {
	Progress(ctx context.Context, employeeID string) (*api.Progress, error)
	StartAssessment(ctx context.Context, employeeID string) error
	GenerateQuestions(ctx context.Context, employeeID string) ([]api.Question, error)
	SubmitAssessment(ctx context.Context, employeeID string, answers map[string]string) (map[string]float64, error)
	GenerateLearningPath(ctx context.Context, employeeID string) error
	LearningPath(ctx context.Context, employeeID string) ([]api.LearningItem, error)
	StartLearningItem(ctx context.Context, employeeID string, itemID int) error
	CompleteLearningItem(ctx context.Context, employeeID string, itemID int) error
}

// Orchestrator composes the session, the progress resolver, the item
// store and the remote API into the per-employee workflow state
// machine. Remote calls run off the event loop; every mutation of the
// orchestrator's own state happens under its lock.
type Orchestrator struct {
	api     API
	session *auth.SessionStore
	items   *path.Store
	log     *zap.Logger

	mu         sync.Mutex
	step       Step
	progress   *api.Progress
	fetchSeq   uint64 // last issued progress fetch
	appliedSeq uint64 // last fetch applied to state
	generating bool
	submitting bool
	starting   bool
}

// New creates an Orchestrator.
func New(remote API, session *auth.SessionStore, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		api:     remote,
		session: session,
		items:   path.NewStore(),
		log:     log,
	}
}

// employeeID resolves the employee from the session credential.
func (o *Orchestrator) employeeID() (string, error) {
	cred := o.session.Credential()
	if cred == nil || cred.EmployeeID == "" {
		return "", ErrNoSession
	}
	return cred.EmployeeID, nil
}

// RefreshStep fetches the current workflow step. Fetches are tagged
// with a monotonic sequence number; a response that raced with a more
// recently applied state is discarded instead of overwriting it.
func (o *Orchestrator) RefreshStep(ctx context.Context) (Step, error) {
	id, err := o.employeeID()
	if err != nil {
		return StepUnknown, err
	}

	o.mu.Lock()
	o.fetchSeq++
	seq := o.fetchSeq
	o.mu.Unlock()

	prog, err := o.api.Progress(ctx, id)
	if err != nil {
		return o.CurrentStep(), fmt.Errorf("fetch progress: %w", err)
	}

	step := ParseStep(prog.CurrentStep)

	o.mu.Lock()
	defer o.mu.Unlock()
	if seq <= o.appliedSeq {
		o.log.Debug("discarding stale progress fetch",
			zap.Uint64("seq", seq), zap.Uint64("applied", o.appliedSeq))
		return o.step, nil
	}
	o.appliedSeq = seq
	o.step = step
	o.progress = prog
	return step, nil
}

// CurrentStep returns the last applied workflow step.
func (o *Orchestrator) CurrentStep() Step {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.step
}

// Resolution returns the semantics of the current step.
func (o *Orchestrator) Resolution() Resolution {
	return Resolve(o.CurrentStep())
}

// Progress returns the last fetched progress payload, or nil before the
// first successful fetch.
func (o *Orchestrator) Progress() *api.Progress {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.progress
}

// Items returns the learning-item store.
func (o *Orchestrator) Items() *path.Store {
	return o.items
}

// StartAssessment begins an assessment session and fetches the
// generated questions. The view unlocks answer entry only after both
// remote calls succeed; a failure is recoverable and retryable.
func (o *Orchestrator) StartAssessment(ctx context.Context) ([]api.Question, error) {
	id, err := o.employeeID()
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	if o.starting {
		o.mu.Unlock()
		return nil, ErrInFlight
	}
	o.starting = true
	o.mu.Unlock()
	defer o.setStarting(false)

	if err := o.api.StartAssessment(ctx, id); err != nil {
		return nil, fmt.Errorf("start assessment: %w", err)
	}
	questions, err := o.api.GenerateQuestions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	return questions, nil
}

func (o *Orchestrator) setStarting(v bool) {
	o.mu.Lock()
	o.starting = v
	o.mu.Unlock()
}

// SubmitAssessment submits the answers and returns the server-computed
// per-skill score map untouched.
func (o *Orchestrator) SubmitAssessment(ctx context.Context, answers map[string]string) (map[string]float64, error) {
	id, err := o.employeeID()
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	if o.submitting {
		o.mu.Unlock()
		return nil, ErrInFlight
	}
	o.submitting = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.submitting = false
		o.mu.Unlock()
	}()

	results, err := o.api.SubmitAssessment(ctx, id, answers)
	if err != nil {
		return nil, fmt.Errorf("submit assessment: %w", err)
	}
	return results, nil
}

// Generating reports whether a learning-path generation is in flight,
// so the triggering action can be disabled.
func (o *Orchestrator) Generating() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.generating
}

// GenerateLearningPath asks the server to build the learning path. On
// success the step is optimistically advanced to LEARNING_IN_PROGRESS;
// the next fetch confirms it. A server refusal comes back as an
// *api.RejectionError whose message is shown verbatim.
func (o *Orchestrator) GenerateLearningPath(ctx context.Context) error {
	id, err := o.employeeID()
	if err != nil {
		return err
	}

	o.mu.Lock()
	if o.generating {
		o.mu.Unlock()
		return ErrInFlight
	}
	o.generating = true
	o.mu.Unlock()

	err = o.api.GenerateLearningPath(ctx, id)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.generating = false
	if err != nil {
		// The view stays at RECOMMENDATIONS_GENERATED.
		return fmt.Errorf("generate learning path: %w", err)
	}

	// Optimistic override: discard progress fetches issued before now.
	o.step = StepLearningInProgress
	o.appliedSeq = o.fetchSeq
	o.log.Info("learning path generated", zap.String("employee", id))
	return nil
}

// LoadLearningPath fetches the learning items and loads them into the
// item store as the canonical view.
func (o *Orchestrator) LoadLearningPath(ctx context.Context) ([]path.Item, error) {
	id, err := o.employeeID()
	if err != nil {
		return nil, err
	}

	wire, err := o.api.LearningPath(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch learning path: %w", err)
	}

	items := make([]path.Item, 0, len(wire))
	for _, w := range wire {
		items = append(items, itemFromWire(w))
	}
	o.items.Load(items)
	return items, nil
}

// StartItem optimistically marks an item IN_PROGRESS, then confirms
// with the server. On remote failure the captured previous status is
// restored exactly.
func (o *Orchestrator) StartItem(ctx context.Context, itemID int) error {
	id, err := o.employeeID()
	if err != nil {
		return err
	}

	prev, ok := o.items.SetStatus(itemID, path.StatusInProgress)
	if !ok {
		return fmt.Errorf("unknown learning item %d", itemID)
	}

	if err := o.api.StartLearningItem(ctx, id, itemID); err != nil {
		o.items.Rollback(itemID, prev)
		o.log.Warn("start rolled back", zap.Int("item", itemID), zap.Error(err))
		return fmt.Errorf("start learning item: %w", err)
	}
	return nil
}

// CompleteItem drives the remote "complete" transition. Explicit "Mark
// Done" and the tracker's completion event both land here, and the call
// is idempotent against the server. DONE is never asserted
// optimistically: on success the store is refreshed from the server to
// pick up any side effects such as newly unlocked items.
func (o *Orchestrator) CompleteItem(ctx context.Context, itemID int) error {
	id, err := o.employeeID()
	if err != nil {
		return err
	}

	if err := o.api.CompleteLearningItem(ctx, id, itemID); err != nil {
		return fmt.Errorf("complete learning item: %w", err)
	}

	if _, err := o.LoadLearningPath(ctx); err != nil {
		// The completion itself landed; surface the refresh failure.
		return fmt.Errorf("refresh after completion: %w", err)
	}
	return nil
}

// itemFromWire maps a wire item to the store form. The media reference
// prefers the item URL and falls back to an identifier recovered from
// the thumbnail shape.
func itemFromWire(w api.LearningItem) path.Item {
	ref := w.URL
	if ref == "" {
		ref = media.VideoIDFromThumbnail(w.Thumbnail)
	}
	return path.Item{
		ID:               w.ID,
		Title:            w.Title,
		Skill:            w.Skill,
		MediaRef:         ref,
		EstimatedMinutes: int(math.Round(w.EstimatedHours * 60)),
		Status:           path.ParseStatus(w.Status),
	}
}
