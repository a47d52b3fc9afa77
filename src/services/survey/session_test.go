package survey

import (
	"context"
	"testing"
	"time"

	"Backend-Retreat-Survey/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSession(t *testing.T, store ProgressStore) *Session {
	t.Helper()
	s, err := OpenSession(context.Background(), "session-1", testDefinition(), store)
	require.NoError(t, err)
	return s
}

func TestSessionMutationsPersist(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := openTestSession(t, store)

	require.NoError(t, s.SetText(ctx, "name", "Ana"))
	require.NoError(t, s.SetRadio(ctx, "sleep", "other"))
	require.NoError(t, s.SetSpecify(ctx, "sleep", "other", "shift work"))
	applied, err := s.SetCheckbox(ctx, "goals", "rest", true)
	require.NoError(t, err)
	assert.True(t, applied)

	stored, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, models.Answers{
		"name":  models.TextAnswer("Ana"),
		"sleep": models.TextAnswer("other"),
		"goals": models.ListAnswer("rest"),
	}, stored.Answers)
	assert.Equal(t, models.SpecifyValues{"sleep_other": "shift work"}, stored.Specify)

	reopened := openTestSession(t, store)
	assert.Equal(t, s.Answers(), reopened.Answers())
	assert.Equal(t, s.Specify(), reopened.Specify())
}

func TestSessionRejectsUnknownTargets(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t, NewMemoryStore())

	assert.ErrorIs(t, s.SetText(ctx, "nope", "x"), ErrUnknownQuestion)
	assert.ErrorIs(t, s.SetRadio(ctx, "sleep", "sometimes"), ErrUnknownOption)
	assert.ErrorIs(t, s.SetText(ctx, "sleep", "well"), ErrWrongQuestionType)
	assert.ErrorIs(t, s.SetRadio(ctx, "goals", "rest"), ErrWrongQuestionType)
	assert.ErrorIs(t, s.SetSpecify(ctx, "sleep", "well", "x"), ErrNotSpecifiable)

	_, err := s.SetCheckbox(ctx, "goals", "dance", true)
	assert.ErrorIs(t, err, ErrUnknownOption)
	assert.Empty(t, s.Answers())
}

func TestSetCheckboxSelectMax(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t, NewMemoryStore())

	for _, id := range []string{"rest", "yoga"} {
		applied, err := s.SetCheckbox(ctx, "goals", id, true)
		require.NoError(t, err)
		require.True(t, applied)
	}

	applied, err := s.SetCheckbox(ctx, "goals", "food", true)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, []string{"rest", "yoga"}, s.Answers()["goals"].List())

	// re-checking a selected option is a no-op, not an overflow
	applied, err = s.SetCheckbox(ctx, "goals", "yoga", true)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Len(t, s.Answers()["goals"].List(), 2)

	_, err = s.SetCheckbox(ctx, "goals", "rest", false)
	require.NoError(t, err)
	applied, err = s.SetCheckbox(ctx, "goals", "food", true)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []string{"yoga", "food"}, s.Answers()["goals"].List())
}

func TestNextBlocksOnErrors(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t, NewMemoryStore())

	require.NoError(t, s.SetText(ctx, "contact-email", "a@b.com"))
	require.NoError(t, s.SetText(ctx, "confirm-email", "a@b.com"))

	ok, err := s.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, models.ValidationErrors{"name": MsgRequired}, s.Errors())

	require.NoError(t, s.SetText(ctx, "name", "Ana"))
	ok, err = s.Next(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Empty(t, s.Errors())
}

func TestNavigationBounds(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.SaveSection(ctx, "session-1", 2))
	s := openTestSession(t, store)

	assert.True(t, s.IsLastSection())
	assert.InDelta(t, 100.0, s.Progress(), 0.001)

	// last section is optional-only; next validates but does not move
	ok, err := s.Next(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, s.CurrentIndex())

	require.NoError(t, s.Previous(ctx))
	require.NoError(t, s.Previous(ctx))
	require.NoError(t, s.Previous(ctx))
	assert.Equal(t, 0, s.CurrentIndex())
	assert.InDelta(t, 100.0/3, s.Progress(), 0.001)

	stored, _ := store.Load(ctx, "session-1")
	assert.Equal(t, 0, stored.SectionIndex)
}

func TestPreviousDoesNotValidate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.SaveSection(ctx, "session-1", 1))
	s := openTestSession(t, store)

	ok, _ := s.Next(ctx)
	require.False(t, ok)
	require.NotEmpty(t, s.Errors())

	require.NoError(t, s.Previous(ctx))
	assert.Empty(t, s.Errors())
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestOpenSessionClampsStaleIndex(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.SaveSection(ctx, "session-1", 9))

	s := openTestSession(t, store)
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestResetPurgesStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := openTestSession(t, store)

	require.NoError(t, s.SetText(ctx, "name", "Ana"))
	require.NoError(t, s.SetText(ctx, "contact-email", "a@b.com"))
	require.NoError(t, s.SetText(ctx, "confirm-email", "a@b.com"))
	ok, err := s.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.Reset(ctx))
	assert.Empty(t, s.Answers())
	assert.Empty(t, s.Specify())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.False(t, store.Has("session-1"))
}

func TestCompleteClearsState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := openTestSession(t, store)

	require.NoError(t, s.SetText(ctx, "name", "Ana"))
	require.NoError(t, s.SetCheckpoint(ctx, &models.SubmitCheckpoint{SubmissionID: "abc"}))
	require.NoError(t, s.Complete(ctx))

	assert.True(t, s.Submitted())
	assert.Nil(t, s.Checkpoint())
	assert.Empty(t, s.Answers())
	assert.False(t, store.Has("session-1"))
}

func TestMemoryStoreSubmitLock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	release, err := store.AcquireSubmitLock(ctx, "s", time.Minute)
	require.NoError(t, err)

	_, err = store.AcquireSubmitLock(ctx, "s", time.Minute)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	release()
	release()
	again, err := store.AcquireSubmitLock(ctx, "s", time.Minute)
	require.NoError(t, err)
	again()
}

func TestMemoryStoreExpiredLockReleaseKeepsNewOwner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	stale, err := store.AcquireSubmitLock(ctx, "s", time.Millisecond)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	current, err := store.AcquireSubmitLock(ctx, "s", time.Minute)
	require.NoError(t, err)
	defer current()

	stale()
	_, err = store.AcquireSubmitLock(ctx, "s", time.Minute)
	assert.ErrorIs(t, err, ErrSubmitInFlight)
}
