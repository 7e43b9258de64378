package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tokengate/pkg/platform/audit"
)

func TestAppendAndList(t *testing.T) {
	store := New()
	ctx := context.Background()

	first := audit.Event{
		Timestamp: time.Now().UTC(),
		Action:    audit.ActionTokenIssued,
		Actor:     "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
		Subject:   "0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc",
		Amount:    "100",
		Outcome:   "confirmed",
	}
	second := audit.Event{
		Timestamp: time.Now().UTC(),
		Action:    audit.ActionRestrictionSet,
		Actor:     "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
		Subject:   "KP",
		Outcome:   "confirmed",
	}

	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))

	events, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, audit.ActionTokenIssued, events[0].Action)
	require.Equal(t, "KP", events[1].Subject)
}

func TestListCopiesBackingSlice(t *testing.T) {
	store := New()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, audit.Event{Action: audit.ActionIdentitySet}))

	events, err := store.List(ctx)
	require.NoError(t, err)
	events[0].Action = audit.ActionTokenRedeemed

	again, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, audit.ActionIdentitySet, again[0].Action)
}
