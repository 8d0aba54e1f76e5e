package insuranceform

import (
	"context"
	"strconv"
	"time"

	"clinic-admin/pkg/apperror"
)

var ErrSaveInProgress = apperror.Conflict("a save for this patient is already in progress")

// Locker guards one save per key. Acquire reports false when the key is held.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// Store loads and persists patient insurance forms.
type Store interface {
	Load(ctx context.Context, patientID int) (Form, error)
	Save(ctx context.Context, form Form, changes []Change) error
}

// Result reports the outcome of one save. It is returned alongside errors
// too, so callers can see where the workflow stopped.
type Result struct {
	Saved   bool     `json:"saved"`
	Changes []Change `json:"changes"`
	State   State    `json:"state"`
	Trail   []State  `json:"trail"`
	Message string   `json:"message,omitempty"`
}

// SaveProcessor runs the save workflow for one submission at a time per patient.
type SaveProcessor struct {
	store     Store
	validator *ValidationEngine
	locker    Locker
	lockTTL   time.Duration
	now       func() time.Time
}

func NewSaveProcessor(store Store, validator *ValidationEngine, locker Locker, lockTTL time.Duration) *SaveProcessor {
	return &SaveProcessor{
		store:     store,
		validator: validator,
		locker:    locker,
		lockTTL:   lockTTL,
		now:       time.Now,
	}
}

func lockKey(patientID int) string {
	return "insurance:save:" + strconv.Itoa(patientID)
}

// Save applies a submitted form. A submission identical to the stored data is
// reported as unchanged without writing. The returned Result is never nil: on
// failure it carries the state the workflow ended in (editing after an
// invalid form, error after a failed write).
func (p *SaveProcessor) Save(ctx context.Context, submitted Form) (*Result, error) {
	sm := NewStateManager()

	release, ok, err := p.locker.Acquire(ctx, lockKey(submitted.PatientID), p.lockTTL)
	if err != nil {
		return report(sm, nil, ""), err
	}
	if !ok {
		return report(sm, nil, ""), ErrSaveInProgress
	}
	defer release()

	submitted = submitted.Normalize()
	stored, err := p.store.Load(ctx, submitted.PatientID)
	if err != nil {
		return report(sm, nil, ""), err
	}

	changes := DetectChanges(stored, submitted)
	if len(changes) == 0 {
		return report(sm, changes, "No changes to save"), nil
	}

	if err := step(sm, StateEditing, StateValidating); err != nil {
		return report(sm, changes, ""), err
	}
	if err := p.validator.Validate(ctx, submitted, p.now()); err != nil {
		if terr := sm.Transition(StateEditing); terr != nil {
			return report(sm, changes, ""), terr
		}
		return report(sm, changes, ""), err
	}

	if err := sm.Transition(StateSaving); err != nil {
		return report(sm, changes, ""), err
	}
	if err := p.store.Save(ctx, submitted, changes); err != nil {
		if terr := sm.Transition(StateError); terr != nil {
			return report(sm, changes, ""), terr
		}
		return report(sm, changes, ""), err
	}
	if err := sm.Transition(StateIdle); err != nil {
		return report(sm, changes, ""), err
	}

	res := report(sm, changes, "Insurance saved successfully")
	res.Saved = true
	return res, nil
}

func report(sm *StateManager, changes []Change, message string) *Result {
	if changes == nil {
		changes = []Change{}
	}
	return &Result{Changes: changes, State: sm.Current(), Trail: sm.History(), Message: message}
}

func step(sm *StateManager, states ...State) error {
	for _, s := range states {
		if err := sm.Transition(s); err != nil {
			return err
		}
	}
	return nil
}
