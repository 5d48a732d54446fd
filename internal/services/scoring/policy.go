package scoring

import "github.com/mcoot/blockdrop/internal/model"

// Policy maps line clears and drops to points
type Policy interface {
	// PointsForClear returns the bonus for removing lines rows at once
	PointsForClear(lines int) int

	// PointsForDrop returns the points for one downward move
	PointsForDrop(source model.Source, moved bool) int
}

// SquarePolicy awards LineBase * lines² per clear and DropPoints per
// user-driven descent
type SquarePolicy struct {
	LineBase   int
	DropPoints int
}

// Ensure SquarePolicy implements Policy
var _ Policy = (*SquarePolicy)(nil)

// Default returns the standard policy: 50 * lines², one point per user drop
func Default() *SquarePolicy {
	return &SquarePolicy{
		LineBase:   50,
		DropPoints: 1,
	}
}

// PointsForClear returns LineBase * lines², or 0 if no lines were removed
func (p *SquarePolicy) PointsForClear(lines int) int {
	if lines <= 0 {
		return 0
	}
	return p.LineBase * lines * lines
}

// PointsForDrop returns DropPoints only for a user move that succeeded
func (p *SquarePolicy) PointsForDrop(source model.Source, moved bool) int {
	if source != model.SourceUser || !moved {
		return 0
	}
	return p.DropPoints
}
