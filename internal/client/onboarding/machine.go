// Package onboarding implements the three-step profile wizard shown after
// signup. The step flow is a closed state machine driven by Transition; the
// Wizard holds the form fields next to it and performs the single submit.
package onboarding

import (
	"errors"
	"fmt"
)

type State int

const (
	Step1 State = iota + 1
	Step2
	Step3
	Submitted
)

func (s State) String() string {
	switch s {
	case Step1:
		return "Step1"
	case Step2:
		return "Step2"
	case Step3:
		return "Step3"
	case Submitted:
		return "Submitted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Event int

const (
	Next Event = iota + 1
	Back
	Submit
)

func (e Event) String() string {
	switch e {
	case Next:
		return "Next"
	case Back:
		return "Back"
	case Submit:
		return "Submit"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

var ErrInvalidTransition = errors.New("invalid transition")

type edge struct {
	from State
	on   Event
}

var transitions = map[edge]State{
	{Step1, Next}:   Step2,
	{Step2, Back}:   Step1,
	{Step2, Next}:   Step3,
	{Step3, Back}:   Step2,
	{Step3, Submit}: Submitted,
}

// Transition is the only way the wizard changes step.
func Transition(s State, e Event) (State, error) {
	next, ok := transitions[edge{s, e}]
	if !ok {
		return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s)
	}
	return next, nil
}
