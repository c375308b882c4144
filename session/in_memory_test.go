package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pgazmuri/agentswarm/core"
)

func TestCreateAndGet(t *testing.T) {
	store := NewInMemoryStore()

	sess, err := store.Create("sess-1")
	assert.NoError(t, err)
	assert.NotNil(t, sess)

	got, err := store.Get("sess-1")
	assert.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestCreateGeneratesID(t *testing.T) {
	store := NewInMemoryStore()
	sess, err := store.Create("")
	assert.NoError(t, err)
	assert.NotNil(t, sess)
	assert.Equal(t, 1, store.Len())
}

func TestCreateDuplicateFails(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.Create("sess-1")
	assert.NoError(t, err)
	_, err = store.Create("sess-1")
	assert.Error(t, err)
}

func TestGetMissing(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.Get("nope")
	assert.Error(t, err)
}

func TestGetOrCreate(t *testing.T) {
	store := NewInMemoryStore()

	sess, err := store.GetOrCreate("sess-1")
	assert.NoError(t, err)

	again, err := store.GetOrCreate("sess-1")
	assert.NoError(t, err)
	assert.Same(t, sess, again)
}

func TestSessionsAreLiveNotClones(t *testing.T) {
	store := NewInMemoryStore()
	sess, _ := store.Create("sess-1")

	sess.Append(core.NewUserTurn("hello"))
	sess.SetCurrentAgent(core.AgentPricing)

	got, _ := store.Get("sess-1")
	assert.Equal(t, 1, got.HistoryLen())
	assert.Equal(t, core.AgentPricing, got.CurrentAgent())
}

func TestDelete(t *testing.T) {
	store := NewInMemoryStore()
	store.Create("sess-1")
	store.Delete("sess-1")
	_, err := store.Get("sess-1")
	assert.Error(t, err)

	// Deleting a missing id is fine.
	store.Delete("nope")
}
