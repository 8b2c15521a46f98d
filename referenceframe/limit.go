package referenceframe

import (
	"fmt"
	"math"
)

// Limit represents the limits of motion of a joint. Unset limits are infinite so that arithmetic on them
// never needs to branch on optionality: Lower is -Inf, Upper, Velocity and Effort are +Inf.
type Limit struct {
	Lower    float64
	Upper    float64
	Velocity float64
	Effort   float64
}

// NewUnboundedLimit returns a Limit with every bound unset.
func NewUnboundedLimit() Limit {
	return Limit{Lower: math.Inf(-1), Upper: math.Inf(1), Velocity: math.Inf(1), Effort: math.Inf(1)}
}

// Contains reports whether the given position is within [Lower, Upper].
func (l Limit) Contains(position float64) bool {
	return position >= l.Lower && position <= l.Upper
}

// IsBounded reports whether both position bounds are finite.
func (l Limit) IsBounded() bool {
	return !math.IsInf(l.Lower, 0) && !math.IsInf(l.Upper, 0)
}

func (l Limit) String() string {
	return fmt.Sprintf("[%g, %g] vel %g effort %g", l.Lower, l.Upper, l.Velocity, l.Effort)
}

// LimitConfig is the description form of a Limit. Nil fields are unset.
type LimitConfig struct {
	Lower    *float64 `json:"lower,omitempty"`
	Upper    *float64 `json:"upper,omitempty"`
	Velocity *float64 `json:"velocity,omitempty"`
	Effort   *float64 `json:"effort,omitempty"`
}

// Limit converts the config into a Limit, filling unset fields with infinity.
func (cfg *LimitConfig) Limit() Limit {
	lim := NewUnboundedLimit()
	if cfg == nil {
		return lim
	}
	if cfg.Lower != nil {
		lim.Lower = *cfg.Lower
	}
	if cfg.Upper != nil {
		lim.Upper = *cfg.Upper
	}
	if cfg.Velocity != nil {
		lim.Velocity = *cfg.Velocity
	}
	if cfg.Effort != nil {
		lim.Effort = *cfg.Effort
	}
	return lim
}
