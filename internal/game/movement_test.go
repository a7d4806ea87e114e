package game

import (
	"testing"

	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestRuleForIsPure(t *testing.T) {
	for _, pieceType := range AllPieceTypes {
		assert.Equal(t, RuleFor(pieceType), RuleFor(pieceType))
		assert.Equal(t, pieceType, RuleFor(pieceType).PieceType)
	}

	rays := RuleFor(Rook).Rays()
	rays[0].MaxSteps = 1
	assert.Equal(t, UntilBlocked, RuleFor(Rook).Rays()[0].MaxSteps)

	assert.Equal(t, InvalidPiece, RuleFor(InvalidPiece).PieceType)
	assert.Empty(t, RuleFor(InvalidPiece).Rays())
}

func TestRuleShapes(t *testing.T) {
	for _, tc := range []struct {
		pieceType PieceType
		rays      int
		sliding   bool
		geometry  map[Geometry]int
	}{
		{Rook, 4, true, map[Geometry]int{Straight: 4}},
		{Bishop, 4, true, map[Geometry]int{Diagonal: 4}},
		{Queen, 8, true, map[Geometry]int{Straight: 4, Diagonal: 4}},
		{King, 8, false, map[Geometry]int{Straight: 4, Diagonal: 4}},
		{Knight, 8, false, map[Geometry]int{Straight: 8}},
		{Pawn, 3, false, map[Geometry]int{Straight: 1, Diagonal: 2}},
	} {
		rule := RuleFor(tc.pieceType)
		assert.Len(t, rule.Rays(), tc.rays, tc.pieceType.Name())
		assert.Equal(t, tc.sliding, rule.IsSliding(), tc.pieceType.Name())

		counts := map[Geometry]int{}
		for _, ray := range rule.Rays() {
			counts[ray.Geometry]++
		}
		assert.Equal(t, tc.geometry, counts, tc.pieceType.Name())
	}
}

func TestKnightRaysAreLShaped(t *testing.T) {
	for _, ray := range RuleFor(Knight).Rays() {
		lengths := []int{ray.RankStep * ray.RankStep, ray.FileStep * ray.FileStep}
		assert.ElementsMatch(t, []int{1, 4}, lengths)
		assert.Equal(t, 1, ray.MaxSteps)
		assert.Equal(t, CaptureAllowed, ray.Capture)
	}
}

func TestPawnRule(t *testing.T) {
	rule := RuleFor(Pawn)
	assert.True(t, rule.Relative)

	push := rule.Rays()[0]
	assert.Equal(t, CaptureNever, push.Capture)
	assert.Equal(t, 1, push.MaxSteps)
	assert.Equal(t, 2, push.StartRankMaxSteps)

	assert.Equal(t, 1, rule.oriented(push, White).RankStep)
	assert.Equal(t, -1, rule.oriented(push, Black).RankStep)

	for _, capture := range rule.Rays()[1:] {
		assert.Equal(t, CaptureOnly, capture.Capture)
		assert.Equal(t, Diagonal, capture.Geometry)
	}

	assert.Equal(t, Rank(1), PawnStartRank(White))
	assert.Equal(t, Rank(6), PawnStartRank(Black))
}
