package game

import (
	. "github.com/cricklet/chessboard/internal/helpers"
)

type Geometry uint8

const (
	Straight Geometry = iota
	Diagonal
)

func (g Geometry) String() string {
	if g == Diagonal {
		return "diagonal"
	}
	return "straight"
}

type CaptureMode uint8

const (
	CaptureAllowed CaptureMode = iota
	CaptureOnly
	CaptureNever
)

// UntilBlocked is the step limit of a sliding ray: far enough to cross the
// board, so in practice the walk ends at a blocker or the edge.
const UntilBlocked = 8

// Ray is one direction a piece can travel. Steps are written from white's
// point of view; relative rules negate RankStep for black.
type Ray struct {
	RankStep int
	FileStep int
	Geometry Geometry
	MaxSteps int
	Capture  CaptureMode

	// StartRankMaxSteps replaces MaxSteps while the piece stands on its
	// starting rank. Zero means no replacement.
	StartRankMaxSteps int
}

type MovementRule struct {
	PieceType PieceType
	Relative  bool

	rays []Ray
}

// Rays returns a copy of the rule's rays in evaluation order.
func (r MovementRule) Rays() []Ray {
	return append([]Ray(nil), r.rays...)
}

func (r MovementRule) IsSliding() bool {
	for _, ray := range r.rays {
		if ray.MaxSteps > 1 {
			return true
		}
	}
	return false
}

// oriented returns ray as seen by player.
func (r MovementRule) oriented(ray Ray, player Player) Ray {
	if r.Relative && player == Black {
		ray.RankStep = -ray.RankStep
	}
	return ray
}

func PawnStartRank(player Player) Rank {
	if player == White {
		return 1
	}
	return 6
}

func stepsFor(ray Ray, piece Piece) int {
	if ray.StartRankMaxSteps > 0 && piece.Position.Rank == PawnStartRank(piece.Player) {
		return ray.StartRankMaxSteps
	}
	return ray.MaxSteps
}

var _straightSteps = [4][2]int{
	{1, 0},  // N
	{-1, 0}, // S
	{0, 1},  // E
	{0, -1}, // W
}

var _diagonalSteps = [4][2]int{
	{1, 1},   // NE
	{1, -1},  // NW
	{-1, 1},  // SE
	{-1, -1}, // SW
}

// Each knight step is two orthogonal straight components, one of length 2
// and one of length 1.
var _knightSteps = [8][2]int{
	{2, 1},   // NNE
	{2, -1},  // NNW
	{-2, 1},  // SSE
	{-2, -1}, // SSW
	{1, 2},   // ENE
	{-1, 2},  // ESE
	{1, -2},  // WNW
	{-1, -2}, // WSW
}

func raysFor(steps [][2]int, geometry Geometry, maxSteps int) []Ray {
	return MapSlice(steps, func(step [2]int) Ray {
		return Ray{
			RankStep: step[0],
			FileStep: step[1],
			Geometry: geometry,
			MaxSteps: maxSteps,
			Capture:  CaptureAllowed,
		}
	})
}

func concatRays(rays ...[]Ray) []Ray {
	result := []Ray{}
	for _, r := range rays {
		result = append(result, r...)
	}
	return result
}

var _movementRules = func() [6]MovementRule {
	result := [6]MovementRule{}

	result[Rook] = MovementRule{PieceType: Rook, rays: raysFor(_straightSteps[:], Straight, UntilBlocked)}
	result[Bishop] = MovementRule{PieceType: Bishop, rays: raysFor(_diagonalSteps[:], Diagonal, UntilBlocked)}
	result[Queen] = MovementRule{PieceType: Queen, rays: concatRays(
		raysFor(_straightSteps[:], Straight, UntilBlocked),
		raysFor(_diagonalSteps[:], Diagonal, UntilBlocked))}
	result[King] = MovementRule{PieceType: King, rays: concatRays(
		raysFor(_straightSteps[:], Straight, 1),
		raysFor(_diagonalSteps[:], Diagonal, 1))}
	result[Knight] = MovementRule{PieceType: Knight, rays: raysFor(_knightSteps[:], Straight, 1)}
	result[Pawn] = MovementRule{PieceType: Pawn, Relative: true, rays: []Ray{
		{RankStep: 1, FileStep: 0, Geometry: Straight, MaxSteps: 1, StartRankMaxSteps: 2, Capture: CaptureNever},
		{RankStep: 1, FileStep: 1, Geometry: Diagonal, MaxSteps: 1, Capture: CaptureOnly},
		{RankStep: 1, FileStep: -1, Geometry: Diagonal, MaxSteps: 1, Capture: CaptureOnly},
	}}

	return result
}()

// RuleFor returns the movement rule of a piece type. Rules carry no state
// and are shared by every board.
func RuleFor(pieceType PieceType) MovementRule {
	if !pieceType.IsValid() {
		return MovementRule{PieceType: InvalidPiece}
	}
	return _movementRules[pieceType]
}
