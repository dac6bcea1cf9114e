package rules

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"golang-ifrename/internal/pkg/macpci"
	"golang-ifrename/internal/types"

	"github.com/juju/collections/set"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoNICs is returned when there is nothing to match against.
	ErrNoNICs = errors.New("no interfaces available")
	// ErrNoMatchingPCI is returned when no interface sits on the requested PCI function.
	ErrNoMatchingPCI = errors.New("no interface with matching PCI address")
	// ErrInsufficientNICs is returned when a PCI index is beyond the interfaces on the function.
	ErrInsufficientNICs = errors.New("insufficient interfaces for PCI index")
)

// Rule maps a target name to a selector.
type Rule struct {
	Target   string
	Selector Selector
}

func (r Rule) String() string {
	if r.Selector == nil {
		return r.Target + ":<nil>"
	}
	return fmt.Sprintf("%s:%s=%q", r.Target, r.Selector.Method(), r.Selector.Value())
}

// Generator resolves rules against an inventory of live interfaces.
type Generator struct {
	ll logrus.FieldLogger
}

// NewGenerator returns a generator logging diagnostics to ll.
func NewGenerator(ll logrus.FieldLogger) *Generator {
	if ll == nil {
		ll = logrus.StandardLogger()
	}
	return &Generator{ll: ll}
}

// Generate returns one static rule record (identity and target name) per rule
// that matches an interface in inventory. Rules that cannot be resolved are
// logged and skipped; generation never fails as a whole.
func (g *Generator) Generate(rules []Rule, inventory []types.InterfaceRecord) []*types.InterfaceRecord {
	ppnUsable := g.ppnUsable(inventory)

	var out []*types.InterfaceRecord
	claimed := make(map[macpci.MACPCI]string)
	targets := set.NewStrings()

	for _, rule := range rules {
		ll := g.ll.WithField("rule", rule.String())

		if targets.Contains(rule.Target) {
			ll.Warn("Duplicate target name, ignoring rule")
			continue
		}

		var (
			nic   *types.InterfaceRecord
			found bool
		)
		switch sel := rule.Selector.(type) {
		case MACSelector:
			nic, found = findFirst(inventory, func(r types.InterfaceRecord) bool { return r.ID.MAC == sel.MAC })
		case PPNSelector:
			if !ppnUsable {
				ll.Debug("Physical port names unreliable, skipping rule")
				continue
			}
			nic, found = findFirst(inventory, func(r types.InterfaceRecord) bool { return r.PPN == sel.Name })
		case PCISelector:
			match, err := pciIndexToNIC(sel.PCI, sel.Index, inventory)
			if err != nil {
				ll.WithError(err).Warn("Unable to resolve PCI rule")
				continue
			}
			nic, found = &match, true
		case LabelSelector:
			nic, found = findFirst(inventory, func(r types.InterfaceRecord) bool { return r.Label == sel.Label })
		default:
			ll.Warn("Unknown rule method, skipping")
			continue
		}

		if !found {
			ll.Info("No interface matches rule")
			continue
		}
		if other, ok := claimed[nic.ID]; ok {
			ll.WithField("other_target", other).Warn("Interface already matched by another rule, ignoring rule")
			continue
		}

		ll.WithField("interface", nic.KName).Debug("Rule matched")
		claimed[nic.ID] = rule.Target
		targets.Add(rule.Target)
		out = append(out, &types.InterfaceRecord{ID: nic.ID, TName: rule.Target})
	}
	return out
}

// ppnUsable reports whether physical port names identify interfaces uniquely.
// Some firmware reports the same name for distinct NICs, in which case no ppn
// rule can be trusted.
func (g *Generator) ppnUsable(inventory []types.InterfaceRecord) bool {
	seen := set.NewStrings()
	for _, r := range inventory {
		if r.PPN == "" {
			continue
		}
		if seen.Contains(r.PPN) {
			g.ll.WithField("ppn", r.PPN).Warn("Duplicate physical port name reported by firmware, ignoring ppn rules")
			return false
		}
		seen.Add(r.PPN)
	}
	return true
}

func findFirst(inventory []types.InterfaceRecord, match func(types.InterfaceRecord) bool) (*types.InterfaceRecord, bool) {
	for i := range inventory {
		if match(inventory[i]) {
			return &inventory[i], true
		}
	}
	return nil, false
}

// PCIIndexToNIC resolves "sbdf[index]" to the index-th interface, by
// ascending MAC, on that PCI function. The index defaults to 0.
func PCIIndexToNIC(sbdfi string, nics []types.InterfaceRecord) (types.InterfaceRecord, error) {
	pci, index, err := macpci.ParseSBDFI(sbdfi)
	if err != nil {
		return types.InterfaceRecord{}, err
	}
	return pciIndexToNIC(pci, index, nics)
}

func pciIndexToNIC(pci macpci.PCI, index int, nics []types.InterfaceRecord) (types.InterfaceRecord, error) {
	if len(nics) == 0 {
		return types.InterfaceRecord{}, ErrNoNICs
	}
	var matches []types.InterfaceRecord
	for _, n := range nics {
		if n.ID.PCI == pci {
			matches = append(matches, n)
		}
	}
	if len(matches) == 0 {
		return types.InterfaceRecord{}, fmt.Errorf("%s: %w", pci, ErrNoMatchingPCI)
	}
	if index >= len(matches) {
		return types.InterfaceRecord{}, fmt.Errorf("%s[%d] with %d interfaces: %w", pci, index, len(matches), ErrInsufficientNICs)
	}
	slices.SortStableFunc(matches, func(a, b types.InterfaceRecord) int {
		return cmp.Compare(a.ID.MAC.Integer(), b.ID.MAC.Integer())
	})
	return matches[index], nil
}
