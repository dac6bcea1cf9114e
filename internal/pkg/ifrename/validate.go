package ifrename

import (
	"regexp"
	"strings"

	"golang-ifrename/internal/pkg/macpci"
	"golang-ifrename/internal/types"

	"github.com/juju/collections/set"
)

var (
	validEthName  = regexp.MustCompile(`^eth[0-9]+$`)
	validCurKName = regexp.MustCompile(`^(?:eth[0-9]+|side-[0-9]+-eth[0-9]+)$`)
	ibftName      = regexp.MustCompile(`^ibft[0-9]+$`)
)

// IsValidEthName reports whether name has the canonical eth<N> form.
func IsValidEthName(name string) bool {
	return validEthName.MatchString(name)
}

// IsValidCurrentName reports whether name is one the engine can take over:
// eth<N>, or a side name left behind by an interrupted run.
func IsValidCurrentName(name string) bool {
	return validCurKName.MatchString(name)
}

// IsIBFTName reports whether name belongs to an iSCSI boot firmware interface.
func IsIBFTName(name string) bool {
	return ibftName.MatchString(name)
}

func checkType(role string, recs []*types.InterfaceRecord) error {
	for i, r := range recs {
		if r == nil || r.ID.IsZero() {
			return &TypeError{Role: role, Index: i}
		}
	}
	return nil
}

// ValidateStaticRules checks that every rule has only a target name of the form
// eth<N>, and that targets and identities are unique.
func ValidateStaticRules(rules []*types.InterfaceRecord) error {
	if err := checkType("static rules", rules); err != nil {
		return err
	}
	names := set.NewStrings()
	ids := make(map[macpci.MACPCI]struct{}, len(rules))
	for _, r := range rules {
		fail := func(reason string) error {
			return &StaticRuleError{Reason: reason, Record: r.String()}
		}
		switch {
		case r.KName != "":
			return fail("has a kernel name")
		case r.TName == "":
			return fail("has no target name")
		case !strings.HasPrefix(r.TName, "eth"):
			return fail("target name does not start with eth")
		case !validEthName.MatchString(r.TName):
			return fail("invalid target name")
		case names.Contains(r.TName):
			return fail("duplicate target name")
		}
		if _, ok := ids[r.ID]; ok {
			return fail("duplicate hardware identity")
		}
		names.Add(r.TName)
		ids[r.ID] = struct{}{}
	}
	return nil
}

// ValidateCurrentState checks that no record is resolved yet, that kernel
// names are eth<N> or side-<M>-eth<N>, and that names and identities are unique.
func ValidateCurrentState(cur []*types.InterfaceRecord) error {
	if err := checkType("current state", cur); err != nil {
		return err
	}
	names := set.NewStrings()
	ids := make(map[macpci.MACPCI]struct{}, len(cur))
	for _, r := range cur {
		fail := func(reason string) error {
			return &CurrentStateError{Reason: reason, Record: r.String()}
		}
		switch {
		case r.TName != "":
			return fail("already has a target name")
		case !validCurKName.MatchString(r.KName):
			return fail("invalid kernel name")
		case names.Contains(r.KName):
			return fail("duplicate kernel name")
		}
		if _, ok := ids[r.ID]; ok {
			return fail("duplicate hardware identity")
		}
		names.Add(r.KName)
		ids[r.ID] = struct{}{}
	}
	return nil
}

// ValidateLastState checks that every record carries only a unique eth<N>
// target name and a unique identity.
func ValidateLastState(last []*types.InterfaceRecord) error {
	if err := checkType("last state", last); err != nil {
		return err
	}
	names := set.NewStrings()
	ids := make(map[macpci.MACPCI]struct{}, len(last))
	for _, r := range last {
		fail := func(reason string) error {
			return &LastStateError{Reason: reason, Record: r.String()}
		}
		switch {
		case r.KName != "":
			return fail("has a kernel name")
		case !validEthName.MatchString(r.TName):
			return fail("invalid target name")
		case names.Contains(r.TName):
			return fail("duplicate target name")
		}
		if _, ok := ids[r.ID]; ok {
			return fail("duplicate hardware identity")
		}
		names.Add(r.TName)
		ids[r.ID] = struct{}{}
	}
	return nil
}

// ValidateOldState is the loose counterpart of ValidateLastState: names only
// need an eth prefix and need not be unique.
func ValidateOldState(old []*types.InterfaceRecord) error {
	if err := checkType("old state", old); err != nil {
		return err
	}
	for _, r := range old {
		if r.KName != "" {
			return &OldStateError{Reason: "has a kernel name", Record: r.String()}
		}
		if !strings.HasPrefix(r.TName, "eth") {
			return &OldStateError{Reason: "target name does not start with eth", Record: r.String()}
		}
	}
	return nil
}

// Validate runs the per-role checks in order and returns the first failure.
func Validate(static, cur, last, old []*types.InterfaceRecord) error {
	if err := ValidateStaticRules(static); err != nil {
		return err
	}
	if err := ValidateCurrentState(cur); err != nil {
		return err
	}
	if err := ValidateLastState(last); err != nil {
		return err
	}
	return ValidateOldState(old)
}
