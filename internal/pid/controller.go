// Package pid contains the PI and PID controllers driving continuous actuators.
//
// Controllers separate their gain configuration from the transient state
// (last error, accumulated integral and last action). Update advances the
// state by one tick of length dt, Action returns the latest output and Reset
// clears the state without touching the gains.
//
// The controllers are not safe for concurrent use.
package pid

import "fmt"

// Resetter is implemented by every controller.
type Resetter interface {
	// Reset clears the transient state, gains are left untouched.
	Reset()
}

// state is the transient part shared by all PID controllers.
type state[T any] struct {
	lastError     T
	integralError T
	action        T
}

// Action returns the output computed by the last update.
func (s *state[T]) Action() T {
	return s.action
}

// IntegralError returns the accumulated integral term.
func (s *state[T]) IntegralError() T {
	return s.integralError
}

// LastError returns the error passed to the last update.
func (s *state[T]) LastError() T {
	return s.lastError
}

func (s *state[T]) Reset() {
	var zero T
	s.lastError = zero
	s.integralError = zero
	s.action = zero
}

func (s *state[T]) String() string {
	return fmt.Sprintf("\nLast Error:     %v"+
		"\nIntegral Error: %v"+
		"\nAction:         %v\n",
		s.lastError,
		s.integralError,
		s.action,
	)
}
