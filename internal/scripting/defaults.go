package scripting

import "math"

// Defaults implements Formulas in Go. Used when no scripts are installed and
// as the Engine's fallback.
type Defaults struct{}

// MoveSpeed returns base × mass^-decay × multiplier.
func (Defaults) MoveSpeed(ctx MoveContext) float64 {
	if ctx.Mass <= 0 {
		return ctx.BaseSpeed * ctx.Multiplier
	}
	return ctx.BaseSpeed * math.Pow(ctx.Mass, -ctx.Decay) * ctx.Multiplier
}

// DropPieces returns int(radius/divisor) clamped to the piece range.
func (Defaults) DropPieces(ctx DropContext) int {
	n := ctx.MinPieces
	if ctx.Divisor > 0 {
		n = int(ctx.Radius / ctx.Divisor)
	}
	return clampInt(n, ctx.MinPieces, ctx.MaxPieces)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
