package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baserep/baserep/internal/types"
)

const engineTestAddr = types.Address("0x3333333333333333333333333333333333333333")

type countingCalculator struct {
	calls  int
	result types.ReputationData
}

func (c *countingCalculator) CalculateReputation(_ context.Context, input types.ScoreInput) (types.ReputationData, error) {
	c.calls++
	data := c.result
	data.LastCalculated = time.Now()
	return data, nil
}

type memoryStore struct {
	cached *types.ReputationData
	saves  int
}

func (m *memoryStore) Reputation(context.Context, types.Address) (*types.ReputationData, error) {
	return m.cached, nil
}

func (m *memoryStore) SaveReputation(_ context.Context, _ types.Address, data types.ReputationData) error {
	m.saves++
	m.cached = &data
	return nil
}

func freshInput() types.ScoreInput {
	return types.ScoreInput{Address: engineTestAddr}
}

func TestReputationServesFreshCache(t *testing.T) {
	calc := &countingCalculator{}
	store := &memoryStore{cached: &types.ReputationData{
		TotalScore:     420,
		Tier:           types.TierResident,
		LastCalculated: time.Now().Add(-time.Minute),
	}}

	e := New(calc, store)
	data, err := e.Reputation(context.Background(), freshInput(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 420, data.TotalScore)
	assert.Zero(t, calc.calls)
	assert.Zero(t, store.saves)
}

func TestReputationRecomputesStaleCache(t *testing.T) {
	calc := &countingCalculator{result: types.ReputationData{TotalScore: 500, Tier: types.TierResident}}
	store := &memoryStore{cached: &types.ReputationData{
		TotalScore:     420,
		LastCalculated: time.Now().Add(-10 * time.Minute),
	}}

	e := New(calc, store)
	data, err := e.Reputation(context.Background(), freshInput(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 500, data.TotalScore)
	assert.Equal(t, 1, calc.calls)
	assert.Equal(t, 1, store.saves)
}

func TestReputationForceRefreshBypassesCache(t *testing.T) {
	calc := &countingCalculator{result: types.ReputationData{TotalScore: 600}}
	store := &memoryStore{cached: &types.ReputationData{
		TotalScore:     420,
		LastCalculated: time.Now(),
	}}

	e := New(calc, store)
	data, err := e.Reputation(context.Background(), freshInput(), Options{ForceRefresh: true})
	require.NoError(t, err)

	assert.Equal(t, 600, data.TotalScore)
	assert.Equal(t, 1, calc.calls)
}

func TestReputationSlowRefreshPolicy(t *testing.T) {
	// A 10-minute-old record is stale under the 5m default but fresh under
	// the relaxed policy.
	calc := &countingCalculator{result: types.ReputationData{TotalScore: 500}}
	store := &memoryStore{cached: &types.ReputationData{
		TotalScore:     420,
		LastCalculated: time.Now().Add(-10 * time.Minute),
	}}

	e := New(calc, store)
	data, err := e.Reputation(context.Background(), freshInput(), SlowRefresh())
	require.NoError(t, err)

	assert.Equal(t, 420, data.TotalScore)
	assert.Zero(t, calc.calls)
}

func TestReputationInvalidAddress(t *testing.T) {
	calc := &countingCalculator{}
	e := New(calc, &memoryStore{})

	_, err := e.Reputation(context.Background(), types.ScoreInput{Address: "bogus"}, Options{})
	require.ErrorIs(t, err, types.ErrInvalidAddress)
	assert.Zero(t, calc.calls)
}

func TestReputationWithoutStore(t *testing.T) {
	calc := &countingCalculator{result: types.ReputationData{TotalScore: 300}}
	e := New(calc, nil)

	data, err := e.Reputation(context.Background(), freshInput(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 300, data.TotalScore)
	assert.Equal(t, 1, calc.calls)
}
