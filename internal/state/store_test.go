package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kapitalbot/internal/domain"
)

func TestStore_UpdateAndSnapshot(t *testing.T) {
	store, err := NewStore(8)
	require.NoError(t, err)

	store.Update(123, func(c *domain.Conversation) {
		c.Begin()
	})

	conv := store.Snapshot(123)
	assert.Equal(t, domain.StepType, conv.Step)

	// Snapshot is a copy: mutating it must not leak back.
	conv.Step = domain.StepConfirm
	assert.Equal(t, domain.StepType, store.Snapshot(123).Step)
}

func TestStore_AbsentReadsAsZero(t *testing.T) {
	store, err := NewStore(8)
	require.NoError(t, err)

	conv := store.Snapshot(999)

	assert.Equal(t, domain.StepNone, conv.Step)
}

func TestStore_Reset(t *testing.T) {
	store, err := NewStore(8)
	require.NoError(t, err)

	store.Update(123, func(c *domain.Conversation) {
		c.Begin()
		c.SetType(domain.FlowOutflow)
	})

	store.Reset(123)

	conv := store.Snapshot(123)
	assert.Equal(t, domain.StepNone, conv.Step)
	assert.Equal(t, domain.Record{}, conv.Draft)
}

func TestStore_PerActorSerialization(t *testing.T) {
	store, err := NewStore(8)
	require.NoError(t, err)

	store.Update(123, func(c *domain.Conversation) {
		c.Step = domain.StepAmount
	})

	// Concurrent amount submissions for the same actor: exactly one may
	// win, and the final state must be consistent.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update(123, func(c *domain.Conversation) {
				c.SetAmount("100")
			})
		}()
	}
	wg.Wait()

	conv := store.Snapshot(123)
	assert.Equal(t, domain.StepPayType, conv.Step)
	assert.Equal(t, "100", conv.Draft.Amount)
}

func TestStore_DistinctActorsAreIndependent(t *testing.T) {
	store, err := NewStore(8)
	require.NoError(t, err)

	store.Update(1, func(c *domain.Conversation) { c.Begin() })
	store.Update(2, func(c *domain.Conversation) {
		c.Begin()
		c.SetType(domain.FlowInflow)
	})

	assert.Equal(t, domain.StepType, store.Snapshot(1).Step)
	assert.Equal(t, domain.StepCategory, store.Snapshot(2).Step)
}
