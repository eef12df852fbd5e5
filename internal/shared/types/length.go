package types

// Length is a dimension in the host's native units (pixels).
type Length int

// Unconstrained is the sentinel passed for a dimension that carries no
// constraint. The host leaves that dimension alone.
const Unconstrained Length = -1

// Constrained reports whether the length carries an actual constraint.
func (l Length) Constrained() bool {
	return l >= 0
}
