package flow

import (
	"testing"

	"github.com/nfrund/goby-auth/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testValues struct{ Name string }

func rejectEmpty(v testValues) validation.FieldErrors {
	if v.Name == "" {
		return validation.FieldErrors{"name": "required"}
	}
	return nil
}

func TestForm_Transitions(t *testing.T) {
	var f Form[testValues]
	assert.Equal(t, StatusIdle, f.Snapshot().Status)

	t.Run("rejected attempt keeps status and message", func(t *testing.T) {
		err := f.begin(testValues{}, rejectEmpty)
		require.Error(t, err)
		s := f.Snapshot()
		assert.Equal(t, StatusIdle, s.Status)
		assert.Equal(t, "required", s.FieldError("name"))
		assert.Nil(t, s.Message)
	})

	t.Run("accepted attempt enters submitting", func(t *testing.T) {
		require.NoError(t, f.begin(testValues{Name: "a"}, rejectEmpty))
		s := f.Snapshot()
		assert.True(t, s.Busy())
		assert.Empty(t, s.Errors)
	})

	t.Run("second attempt while submitting is refused", func(t *testing.T) {
		err := f.begin(testValues{Name: "b"}, rejectEmpty)
		assert.ErrorIs(t, err, ErrSubmitInFlight)
		assert.Equal(t, "a", f.Snapshot().Values.Name)
	})

	t.Run("error resolution then edit returns to idle", func(t *testing.T) {
		require.True(t, f.resolve(errorMessage("boom", CauseService), false))
		s := f.Snapshot()
		assert.Equal(t, StatusError, s.Status)
		require.NotNil(t, s.Message)
		assert.Equal(t, KindError, s.Message.Kind)

		require.NoError(t, f.Edit(testValues{Name: "c"}))
		s = f.Snapshot()
		assert.Equal(t, StatusIdle, s.Status)
		assert.NotNil(t, s.Message, "editing does not clear the banner")
	})

	t.Run("failed validation after an error still leaves the message", func(t *testing.T) {
		require.NoError(t, f.begin(testValues{Name: "d"}, rejectEmpty))
		require.True(t, f.resolve(errorMessage("again", CauseService), false))

		require.Error(t, f.begin(testValues{}, rejectEmpty))
		s := f.Snapshot()
		assert.Equal(t, StatusIdle, s.Status)
		require.NotNil(t, s.Message)
		assert.Equal(t, "again", s.Message.Text)
	})

	t.Run("next accepted attempt clears the message", func(t *testing.T) {
		require.NoError(t, f.begin(testValues{Name: "e"}, rejectEmpty))
		assert.Nil(t, f.Snapshot().Message)
		require.True(t, f.resolve(successMessage("ok"), true))
		s := f.Snapshot()
		assert.Equal(t, StatusSuccess, s.Status)
		assert.Equal(t, testValues{}, s.Values)
	})

	t.Run("closed is terminal", func(t *testing.T) {
		assert.True(t, f.close())
		assert.False(t, f.close())
		assert.ErrorIs(t, f.begin(testValues{Name: "f"}, rejectEmpty), ErrFlowClosed)
		assert.ErrorIs(t, f.Edit(testValues{Name: "f"}), ErrFlowClosed)
		assert.False(t, f.navigated("/login"))
	})
}

func TestForm_ResolveAfterClose(t *testing.T) {
	var f Form[testValues]
	require.NoError(t, f.begin(testValues{Name: "a"}, rejectEmpty))
	f.close()

	assert.False(t, f.resolve(successMessage("late"), false))
	s := f.Snapshot()
	assert.Equal(t, StatusClosed, s.Status)
	assert.Nil(t, s.Message)
}

func TestState_SnapshotIsACopy(t *testing.T) {
	var f Form[testValues]
	require.Error(t, f.begin(testValues{}, rejectEmpty))

	s := f.Snapshot()
	s.Errors["name"] = "tampered"
	assert.Equal(t, "required", f.Snapshot().FieldError("name"))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "submitting", StatusSubmitting.String())
	assert.Equal(t, "navigated", StatusNavigated.String())
	assert.Equal(t, "unknown", Status(42).String())
}
