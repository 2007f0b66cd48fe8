package messages

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cbodonnell/digipet/pkg/digipet"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	legal := NewEvent(digipet.ActionHatch, nil, digipet.HasPet{Pet: digipet.Initial}, at)
	assert.NotEqual(t, uuid.Nil, legal.ID)
	assert.True(t, legal.Legal)
	assert.Empty(t, legal.Reason)
	require.NotNil(t, legal.Digipet)
	assert.Equal(t, digipet.Initial, *legal.Digipet)
	assert.Equal(t, int64(1700000000000), legal.Timestamp)

	illegal := NewEvent(digipet.ActionWalk, digipet.ErrNoPet, digipet.NoPet{}, at)
	assert.False(t, illegal.Legal)
	assert.Equal(t, digipet.ErrNoPet.Error(), illegal.Reason)
	assert.Nil(t, illegal.Digipet)
	assert.NotEqual(t, legal.ID, illegal.ID)
}

func TestResponse_OmitsMissingDigipet(t *testing.T) {
	b, err := json.Marshal(Response{Message: "nothing here"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"nothing here"}`, string(b))

	b, err = json.Marshal(Response{Message: "here", Digipet: &digipet.Initial})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"here","digipet":{"happiness":50,"nutrition":50,"discipline":50}}`, string(b))
}
