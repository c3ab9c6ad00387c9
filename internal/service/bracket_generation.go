package service

import (
	"fmt"
	"math"
	"math/rand"

	"game-portal/internal/bracket"
)

// Number of rounds needed for count players, so with input 5 it returns 3 and so on
func bracketRounds(count int) int {
	if count < 2 {
		return 0
	}
	return int(math.Ceil(math.Log2(float64(count))))
}

// Copies and Fisher-Yates shuffles the roster; the original slice keeps
// registration order, which champion tie-breaking depends on.
func shuffleSeeding(players []*bracket.Player, rng *rand.Rand) []*bracket.Player {
	seeded := make([]*bracket.Player, len(players))
	copy(seeded, players)
	rng.Shuffle(len(seeded), func(i, j int) {
		seeded[i], seeded[j] = seeded[j], seeded[i]
	})
	return seeded
}

// Generate the full single-elimination match list for the seeded players.
//
// The first byeCount round-1 slots create no match and consume no players, so
// with byes some seeded players never enter round 1 and their round-2 slot
// stays open. That mirrors the portal's long-standing bracket behavior; the
// rest of the engine (forward scan, champion by win count) copes with the gap.
func generateBracket(seeded []*bracket.Player) ([]*bracket.Match, error) {
	if len(seeded) < 2 {
		return nil, bracket.ErrNotEnoughPlayers
	}

	totalRounds := bracketRounds(len(seeded))
	round1Slots := int(math.Pow(2, float64(totalRounds-1)))
	byeCount := round1Slots*2 - len(seeded)

	var matches []*bracket.Match
	roundStart := make([]int, totalRounds+1)

	nextSeed := 0
	for slot := 0; slot < round1Slots; slot++ {
		if slot < byeCount {
			continue
		}
		m := &bracket.Match{
			ID:         fmt.Sprintf("match_%d", len(matches)+1),
			Round:      1,
			MatchOrder: slot + 1,
			Player1:    seeded[nextSeed],
			Player2:    seeded[nextSeed+1],
			NextIndex:  -1,
		}
		nextSeed += 2
		matches = append(matches, m)
	}

	for r := 2; r <= totalRounds; r++ {
		roundStart[r] = len(matches)
		matchesInRound := int(math.Pow(2, float64(totalRounds-r)))
		for i := 0; i < matchesInRound; i++ {
			matches = append(matches, &bracket.Match{
				ID:         fmt.Sprintf("match_%d", len(matches)+1),
				Round:      r,
				MatchOrder: i + 1,
				NextIndex:  -1,
			})
		}
	}

	// Link each non-final match to the match its winner advances into. Round-1
	// match orders count bye slots, so created matches still land winners in
	// the right round-2 position even though the skipped slots have none.
	for _, m := range matches {
		if m.Round == totalRounds {
			continue
		}
		parentOrder := (m.MatchOrder + 1) / 2
		parentIdx := roundStart[m.Round+1] + parentOrder - 1
		m.NextIndex = parentIdx
		m.NextMatchID = &matches[parentIdx].ID
	}

	return matches, nil
}
