package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModalStore_ConfirmResolvesTrue(t *testing.T) {
	s := NewModalStore()
	d := s.Confirm("Remove this item from the cart?", "Confirm removal")

	require.NotNil(t, s.Active())
	assert.Equal(t, ModeConfirm, s.Active().Mode)

	s.Resolve(true)

	outcome, err := d.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Confirmed, outcome)
	assert.Nil(t, s.Active(), "resolution closes the modal")
}

func TestModalStore_CancelResolvesFalse(t *testing.T) {
	s := NewModalStore()
	d := s.Confirm("Clear the whole cart?", "Confirm")

	s.Resolve(false)

	outcome, err := d.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Cancelled, outcome)
}

func TestModalStore_ResolutionIsExactlyOnce(t *testing.T) {
	s := NewModalStore()
	d := s.Confirm("sure?", "Confirm")

	s.Resolve(true)
	// A second resolve targets nothing; the first outcome stands.
	s.Resolve(false)

	outcome, err := d.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Confirmed, outcome)
}

func TestModalStore_SupersededPromptResolvesDismissed(t *testing.T) {
	s := NewModalStore()
	first := s.Confirm("first question", "Confirm")
	second := s.Confirm("second question", "Confirm")

	// The earlier handle resolves Dismissed immediately, not never.
	outcome, err := first.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Dismissed, outcome)

	// Only the newer prompt is renderable.
	require.NotNil(t, s.Active())
	assert.Equal(t, "second question", s.Active().Message)

	s.Resolve(true)
	outcome, err = second.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Confirmed, outcome)
}

func TestModalStore_AlertHasNoCancelLabel(t *testing.T) {
	s := NewModalStore()
	d := s.Alert("Order placed", "Done")

	m := s.Active()
	require.NotNil(t, m)
	assert.Equal(t, ModeAlert, m.Mode)
	assert.Empty(t, m.CancelLabel)

	s.Resolve(true)
	outcome, err := d.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Confirmed, outcome)
}

func TestDecision_WaitHonorsContext(t *testing.T) {
	s := NewModalStore()
	d := s.Confirm("never answered", "Confirm")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := d.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The prompt itself is still pending and can resolve later.
	s.Resolve(false)
	outcome, err := d.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Cancelled, outcome)
}

func TestModalStore_ResolveWithoutActiveIsNoop(t *testing.T) {
	s := NewModalStore()
	s.Resolve(true)
	assert.Nil(t, s.Active())
}
