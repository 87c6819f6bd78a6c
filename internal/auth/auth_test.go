package auth

import (
	"path/filepath"
	"testing"

	"centavo/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "auth.json"))
}

func TestStoreSetup(t *testing.T) {
	t.Run("first_time_until_setup", func(t *testing.T) {
		store := newTestStore(t)

		if !store.IsFirstTime() {
			t.Fatal("expected a fresh store to be first-time")
		}

		err := store.Setup("1234", "Favorite color?", "Blue", Profile{Name: "Ada", Age: 30})
		testutil.AssertNoError(t, err)

		if store.IsFirstTime() {
			t.Error("expected store to no longer be first-time after setup")
		}
	})

	t.Run("rejects_empty_pin", func(t *testing.T) {
		store := newTestStore(t)
		testutil.AssertAppError(t, store.Setup("", "", "", Profile{}), "INVALID_INPUT")
	})

	t.Run("rejects_second_setup", func(t *testing.T) {
		store := newTestStore(t)
		testutil.AssertNoError(t, store.Setup("1234", "", "", Profile{}))
		testutil.AssertAppError(t, store.Setup("5678", "", "", Profile{}), "PIN_ALREADY_SET")
	})
}

func TestVerifyPIN(t *testing.T) {
	t.Run("correct_and_wrong_pin", func(t *testing.T) {
		store := newTestStore(t)
		testutil.AssertNoError(t, store.Setup("1234", "", "", Profile{}))

		testutil.AssertNoError(t, store.VerifyPIN("1234"))
		testutil.AssertAppError(t, store.VerifyPIN("0000"), "INVALID_PIN")
	})

	t.Run("unconfigured_store", func(t *testing.T) {
		store := newTestStore(t)
		testutil.AssertAppError(t, store.VerifyPIN("1234"), "PIN_NOT_SET")
	})
}

func TestResetPIN(t *testing.T) {
	t.Run("recovery_answer_is_case_and_space_insensitive", func(t *testing.T) {
		store := newTestStore(t)
		testutil.AssertNoError(t, store.Setup("1234", "Favorite color?", "Blue", Profile{}))

		testutil.AssertNoError(t, store.ResetPIN("  bLuE ", "9999"))

		testutil.AssertNoError(t, store.VerifyPIN("9999"))
		testutil.AssertAppError(t, store.VerifyPIN("1234"), "INVALID_PIN")
	})

	t.Run("wrong_answer", func(t *testing.T) {
		store := newTestStore(t)
		testutil.AssertNoError(t, store.Setup("1234", "Favorite color?", "Blue", Profile{}))

		testutil.AssertAppError(t, store.ResetPIN("red", "9999"), "RECOVERY_FAILED")
		testutil.AssertNoError(t, store.VerifyPIN("1234"))
	})

	t.Run("no_recovery_configured", func(t *testing.T) {
		store := newTestStore(t)
		testutil.AssertNoError(t, store.Setup("1234", "", "", Profile{}))

		testutil.AssertAppError(t, store.ResetPIN("anything", "9999"), "RECOVERY_FAILED")
	})

	t.Run("reset_preserves_recovery_pair", func(t *testing.T) {
		store := newTestStore(t)
		testutil.AssertNoError(t, store.Setup("1234", "Favorite color?", "Blue", Profile{}))

		testutil.AssertNoError(t, store.ResetPIN("blue", "9999"))
		testutil.AssertNoError(t, store.ResetPIN("blue", "4321"))
		testutil.AssertNoError(t, store.VerifyPIN("4321"))
	})
}

func TestRecoveryQuestionAndProfile(t *testing.T) {
	store := newTestStore(t)
	profile := Profile{Name: "Ada", Surname: "Lovelace", Age: 30}
	testutil.AssertNoError(t, store.Setup("1234", "Favorite color?", "Blue", profile))

	question, err := store.RecoveryQuestion()
	testutil.AssertNoError(t, err)
	if question != "Favorite color?" {
		t.Errorf("expected recovery question, got %q", question)
	}

	got, err := store.Profile()
	testutil.AssertNoError(t, err)
	if got != profile {
		t.Errorf("expected profile %+v, got %+v", profile, got)
	}
}
