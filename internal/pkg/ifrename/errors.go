package ifrename

import "fmt"

// StaticRuleError reports a malformed or contradictory static rule.
type StaticRuleError struct {
	Reason string
	Record string
}

func (e *StaticRuleError) Error() string {
	return fmt.Sprintf("static rule %s: %s", e.Record, e.Reason)
}

// CurrentStateError reports a malformed current state record.
type CurrentStateError struct {
	Reason string
	Record string
}

func (e *CurrentStateError) Error() string {
	return fmt.Sprintf("current state %s: %s", e.Record, e.Reason)
}

// LastStateError reports a malformed last-boot state record.
type LastStateError struct {
	Reason string
	Record string
}

func (e *LastStateError) Error() string {
	return fmt.Sprintf("last state %s: %s", e.Record, e.Reason)
}

// OldStateError reports a malformed old state record.
type OldStateError struct {
	Reason string
	Record string
}

func (e *OldStateError) Error() string {
	return fmt.Sprintf("old state %s: %s", e.Record, e.Reason)
}

// TypeError reports a collection member that is not a hardware-identified record.
type TypeError struct {
	Role  string
	Index int
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s[%d]: expected a record with a MAC and PCI identity", e.Role, e.Index)
}

// LogicError signals a broken invariant inside the engine itself. It is a
// bug, not a data problem.
type LogicError struct {
	Op     string
	Reason string
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("logic error in %s: %s", e.Op, e.Reason)
}
