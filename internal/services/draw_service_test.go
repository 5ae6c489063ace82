package services

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePool(n int) []candidate {
	pool := make([]candidate, n)
	for i := range pool {
		pool[i] = candidate{ID: uuid.New(), Name: string(rune('A' + i))}
	}
	return pool
}

func TestPickWinnerEmptyPool(t *testing.T) {
	_, ok := PickWinner(rand.Intn, nil)
	assert.False(t, ok)

	_, ok = PickWinner(rand.Intn, []candidate{})
	assert.False(t, ok)
}

func TestPickWinnerSingleCandidate(t *testing.T) {
	pool := makePool(1)

	winner, ok := PickWinner(rand.Intn, pool)
	require.True(t, ok)
	assert.Equal(t, pool[0].ID, winner.ID)
}

func TestPickWinnerDeterministicWithSeededSource(t *testing.T) {
	pool := makePool(5)

	first := rand.New(rand.NewSource(42))
	second := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		w1, ok1 := PickWinner(first.Intn, pool)
		w2, ok2 := PickWinner(second.Intn, pool)
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, w1.ID, w2.ID)
	}
}

func TestPickWinnerCoversWholePool(t *testing.T) {
	pool := makePool(5)
	rnd := rand.New(rand.NewSource(1))

	counts := map[uuid.UUID]int{}
	const draws = 5000
	for i := 0; i < draws; i++ {
		winner, ok := PickWinner(rnd.Intn, pool)
		require.True(t, ok)
		counts[winner.ID]++
	}

	require.Len(t, counts, len(pool))
	for _, c := range pool {
		// Uniform expectation is 1000 per candidate; allow generous slack.
		assert.Greater(t, counts[c.ID], 700, "candidate %s drawn too rarely", c.Name)
		assert.Less(t, counts[c.ID], 1300, "candidate %s drawn too often", c.Name)
	}
}

func TestEvaluateDrawGateOrder(t *testing.T) {
	pool := makePool(3)

	tests := []struct {
		name     string
		state    drawState
		wantKind string
	}{
		{
			name:     "terminated tontine",
			state:    drawState{TontineStatus: "terminated", Missing: []string{"Awa"}, DrawExists: true},
			wantKind: KindInvalidState,
		},
		{
			name:     "incomplete cycle",
			state:    drawState{TontineStatus: "active", CycleNumber: 2, Missing: []string{"Awa", "Binta"}, DrawExists: true, Pool: pool},
			wantKind: KindNotReady,
		},
		{
			name:     "cycle already drawn",
			state:    drawState{TontineStatus: "active", CycleNumber: 2, DrawExists: true, Pool: pool},
			wantKind: KindAlreadyDrawn,
		},
		{
			name:     "no candidates left",
			state:    drawState{TontineStatus: "active", CycleNumber: 4, Pool: nil},
			wantKind: KindGroupExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evaluateDraw(rand.Intn, tt.state)
			require.Error(t, err)
			derr, ok := AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, derr.Kind)
		})
	}
}

func TestEvaluateDrawNotReadyCarriesMissingMembers(t *testing.T) {
	_, err := evaluateDraw(rand.Intn, drawState{
		TontineStatus: "active",
		CycleNumber:   1,
		Missing:       []string{"Awa", "Binta"},
	})

	derr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotReady, derr.Kind)
	assert.Equal(t, []string{"Awa", "Binta"}, derr.MissingMembers)
	assert.Contains(t, derr.Message, "cycle 1")
}

func TestEvaluateDrawPicksFromPool(t *testing.T) {
	pool := makePool(3)

	winner, err := evaluateDraw(func(n int) int { return 1 }, drawState{
		TontineStatus: "active",
		CycleNumber:   1,
		Pool:          pool,
	})
	require.NoError(t, err)
	assert.Equal(t, pool[1].ID, winner.ID)
}

func TestShouldTerminate(t *testing.T) {
	tests := []struct {
		name         string
		drawCount    int
		memberTarget int
		want         bool
	}{
		{"no draws yet", 0, 3, false},
		{"mid lifecycle", 2, 3, false},
		{"last draw done", 3, 3, true},
		{"over target", 4, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldTerminate(tt.drawCount, tt.memberTarget))
		})
	}
}
