// Package ifrename computes the ordered list of renames that gives every
// physical network interface a stable eth<N> name across reboots and hardware
// changes.
//
// Precedence, highest first: static rules, continuity with the last boot,
// replacement of hardware that disappeared from a slot, and finally fresh
// names for brand-new interfaces.
package ifrename

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"

	"golang-ifrename/internal/pkg/macpci"
	"golang-ifrename/internal/types"

	"github.com/juju/collections/set"
	"github.com/sirupsen/logrus"
)

// maxTempNameAttempts bounds the search for an unused side-<n>-ethX name.
const maxTempNameAttempts = 100000

type options struct {
	ll       logrus.FieldLogger
	tempName func() int
}

// OptionFunc modifies the engine options.
type OptionFunc func(*options)

// WithLogger sets the logger used for diagnostics.
func WithLogger(ll logrus.FieldLogger) OptionFunc {
	return func(o *options) {
		o.ll = ll
	}
}

// WithTempNameSource sets the source of numbers used to build temporary
// side-<n>-ethX names. Collisions are always rechecked against the names in use.
func WithTempNameSource(next func() int) OptionFunc {
	return func(o *options) {
		o.tempName = next
	}
}

// Engine resolves rename transactions. An Engine holds no per-call state and
// may be reused; each call owns its working copy of the current state.
type Engine struct {
	ll       logrus.FieldLogger
	tempName func() int
}

// NewEngine returns an engine configured with opts.
func NewEngine(opts ...OptionFunc) *Engine {
	o := options{
		ll:       logrus.StandardLogger(),
		tempName: func() int { return rand.IntN(9999) + 1 },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{ll: o.ll, tempName: o.tempName}
}

// Result is the outcome of a rename computation.
type Result struct {
	// Transactions must be applied in order: later renames may need a name
	// vacated by an earlier one.
	Transactions []types.Transaction
	// State holds the current interfaces with their resolved target names.
	// KName is the kernel name as it was before any transaction.
	State []types.InterfaceRecord
}

// Name returns the resolved name for the given identity.
func (r *Result) Name(id macpci.MACPCI) (string, bool) {
	for _, rec := range r.State {
		if rec.ID == id {
			return rec.TName, true
		}
	}
	return "", false
}

// Rename is a convenience wrapper around a default Engine.
func Rename(static, cur, last, old []*types.InterfaceRecord) (*Result, error) {
	return NewEngine().Rename(static, cur, last, old)
}

// Rename validates the four input collections and computes the rename
// transactions. Current records named ibft<N> are dropped before validation:
// they are never validated, renamed or reported in the result. The caller's
// records are not modified.
func (e *Engine) Rename(static, cur, last, old []*types.InterfaceRecord) (*Result, error) {
	filtered := make([]*types.InterfaceRecord, 0, len(cur))
	for _, nic := range cur {
		if nic != nil && IsIBFTName(nic.KName) {
			e.ll.WithField("interface", nic.KName).Debug("Ignoring iBFT interface")
			continue
		}
		filtered = append(filtered, nic)
	}

	if err := Validate(static, filtered, last, old); err != nil {
		return nil, err
	}

	res := &Result{}
	if len(filtered) == 0 {
		return res, nil
	}

	r := newRun(e, filtered, last, old)
	if err := r.resolve(static); err != nil {
		return nil, err
	}

	res.Transactions = r.tx
	res.State = make([]types.InterfaceRecord, len(r.cur))
	for i, nic := range r.cur {
		rec := *nic
		rec.KName = r.origKName[i]
		res.State[i] = rec
	}
	return res, nil
}

// run is the working state of a single Rename call.
type run struct {
	ll        logrus.FieldLogger
	tempName  func() int
	cur       []*types.InterfaceRecord
	origKName []string
	last      []*types.InterfaceRecord
	old       []*types.InterfaceRecord
	tx        []types.Transaction
	resolved  set.Strings
}

func newRun(e *Engine, cur, last, old []*types.InterfaceRecord) *run {
	r := &run{
		ll:        e.ll,
		tempName:  e.tempName,
		cur:       make([]*types.InterfaceRecord, len(cur)),
		origKName: make([]string, len(cur)),
		last:      last,
		old:       old,
		resolved:  set.NewStrings(),
	}
	for i, nic := range cur {
		c := *nic
		r.cur[i] = &c
		r.origKName[i] = nic.KName
	}
	return r
}

func (r *run) resolve(static []*types.InterfaceRecord) error {
	if err := r.applyStaticRules(static); err != nil {
		return err
	}

	multinic := r.multinicFunctions()

	if err := r.applyContinuity(multinic); err != nil {
		return err
	}
	if err := r.applyMultinic(multinic); err != nil {
		return err
	}
	r.reorderMultinic(multinic)
	return r.applyNew(static)
}

// assign renames nic to name, first moving any unresolved interface that
// currently holds name out of the way to a temporary side name.
func (r *run) assign(nic *types.InterfaceRecord, name string) error {
	if !validEthName.MatchString(name) {
		return &LogicError{Op: "assign", Reason: fmt.Sprintf("%q is not a valid target name", name)}
	}
	if nic.TName != "" {
		return &LogicError{Op: "assign", Reason: fmt.Sprintf("%s is already resolved", nic)}
	}
	if r.resolved.Contains(name) {
		return &LogicError{Op: "assign", Reason: fmt.Sprintf("%q is already taken", name)}
	}

	ll := r.ll.WithFields(logrus.Fields{"interface": nic.KName, "target": name})

	var aliased *types.InterfaceRecord
	for _, c := range r.cur {
		if c.TName == "" && c.KName == name {
			aliased = c
			break
		}
	}

	switch {
	case aliased == nil:
		ll.Debug("Renaming interface")
		r.tx = append(r.tx, types.Transaction{From: nic.KName, To: name})
	case aliased == nic:
		ll.Debug("Interface already named correctly")
	default:
		temp, err := r.newTempName(name)
		if err != nil {
			return err
		}
		ll.WithFields(logrus.Fields{"aliased": aliased.KName, "temp": temp}).Debug("Moving aliased interface aside")
		r.tx = append(r.tx, types.Transaction{From: aliased.KName, To: temp})
		aliased.KName = temp
		r.tx = append(r.tx, types.Transaction{From: nic.KName, To: name})
	}

	nic.TName = name
	r.resolved.Add(name)
	return nil
}

func (r *run) newTempName(name string) (string, error) {
	used := set.NewStrings()
	for _, c := range r.cur {
		if c.KName != "" {
			used.Add(c.KName)
		}
		if c.TName != "" {
			used.Add(c.TName)
		}
	}
	for i := 0; i < maxTempNameAttempts; i++ {
		candidate := fmt.Sprintf("side-%d-%s", r.tempName(), name)
		if !used.Contains(candidate) {
			return candidate, nil
		}
	}
	return "", &LogicError{Op: "assign", Reason: fmt.Sprintf("no free temporary name for %q", name)}
}

func (r *run) isFree(name string) bool {
	return !r.resolved.Contains(name)
}

// usable reports whether a name remembered from a previous boot can still be
// handed out. Malformed names are treated like taken ones.
func (r *run) usable(name string) bool {
	return validEthName.MatchString(name) && r.isFree(name)
}

func (r *run) curByID(id macpci.MACPCI) *types.InterfaceRecord {
	for _, c := range r.cur {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// applyStaticRules is pass 1: static rules win over everything else.
func (r *run) applyStaticRules(static []*types.InterfaceRecord) error {
	for _, rule := range static {
		nic := r.curByID(rule.ID)
		if nic == nil {
			r.ll.WithField("rule", rule.String()).Debug("Static rule has no matching interface")
			continue
		}
		if err := r.assign(nic, rule.TName); err != nil {
			return err
		}
	}
	return nil
}

// multinicFunctions returns the PCI functions hosting more than one interface.
func (r *run) multinicFunctions() []macpci.PCI {
	counts := make(map[macpci.PCI]int)
	for _, c := range r.cur {
		counts[c.ID.PCI]++
	}
	var fns []macpci.PCI
	for pci, n := range counts {
		if n > 1 {
			fns = append(fns, pci)
		}
	}
	slices.SortFunc(fns, func(a, b macpci.PCI) int {
		return cmp.Compare(a.Integer(), b.Integer())
	})
	return fns
}

// applyContinuity is pass 2: keep the names interfaces had before.
func (r *run) applyContinuity(multinic []macpci.PCI) error {
	previous := append(slices.Clone(r.last), r.old...)

	for _, nic := range r.cur {
		if nic.TName != "" {
			continue
		}
		ll := r.ll.WithField("interface", nic.KName)

		if lastNIC := findByID(r.last, nic.ID); lastNIC != nil {
			if !r.usable(lastNIC.TName) {
				ll.WithField("target", lastNIC.TName).Warn("Last boot name unavailable, treating interface as new")
				continue
			}
			if nic.KName != lastNIC.TName {
				ll.WithField("target", lastNIC.TName).Info("Kernel name differs from last boot, naming layer was inconsistent")
			}
			if err := r.assign(nic, lastNIC.TName); err != nil {
				return err
			}
			continue
		}

		if lastNIC := findByMAC(r.last, nic.ID.MAC); lastNIC != nil {
			if !r.usable(lastNIC.TName) {
				ll.WithField("target", lastNIC.TName).Warn("Moved interface's name unavailable, treating interface as new")
				continue
			}
			ll.WithFields(logrus.Fields{"from_pci": lastNIC.ID.PCI.String(), "to_pci": nic.ID.PCI.String()}).Info("Interface moved slot")
			if err := r.assign(nic, lastNIC.TName); err != nil {
				return err
			}
			continue
		}

		if slices.Contains(multinic, nic.ID.PCI) {
			ll.Debug("Interface is on a multi-function device, deferring")
			continue
		}

		if pred := findByPCI(previous, nic.ID.PCI); pred != nil {
			if r.macElsewhere(pred.ID.MAC, nic) {
				ll.WithField("predecessor", pred.String()).Debug("Slot predecessor still present, interface is new")
				continue
			}
			if !r.usable(pred.TName) {
				ll.WithField("target", pred.TName).Warn("Predecessor's name unavailable, treating interface as new")
				continue
			}
			ll.WithField("predecessor", pred.String()).Info("Interface replaced hardware in the same slot")
			if err := r.assign(nic, pred.TName); err != nil {
				return err
			}
			continue
		}

		if oldNIC := findByMAC(r.old, nic.ID.MAC); oldNIC != nil {
			if !r.usable(oldNIC.TName) {
				ll.WithField("target", oldNIC.TName).Warn("Old name unavailable, treating interface as new")
				continue
			}
			if err := r.assign(nic, oldNIC.TName); err != nil {
				return err
			}
			continue
		}

		ll.Debug("Interface is new")
	}
	return nil
}

// macElsewhere reports whether some interface other than nic has the given MAC.
func (r *run) macElsewhere(mac macpci.MAC, nic *types.InterfaceRecord) bool {
	for _, c := range r.cur {
		if c != nic && c.ID.MAC == mac {
			return true
		}
	}
	return false
}

// applyMultinic is pass 3: sibling interfaces on one PCI function inherit the
// previous names pairwise, both sides ordered by MAC. The order in which such
// siblings are enumerated cannot be trusted, so this is a best guess.
func (r *run) applyMultinic(multinic []macpci.PCI) error {
	previous := dedupByID(r.last, r.old)

	for _, fn := range multinic {
		ll := r.ll.WithField("pci", fn.String())

		prev := filterByPCI(previous, fn)
		sibs := filterByPCI(r.cur, fn)
		if len(prev) != len(sibs) {
			ll.WithFields(logrus.Fields{"previous": len(prev), "current": len(sibs)}).Debug("Multi-function device changed, siblings are new")
			continue
		}
		if slices.ContainsFunc(sibs, func(c *types.InterfaceRecord) bool { return c.TName != "" }) {
			ll.Debug("Multi-function sibling already named, skipping")
			continue
		}
		names := set.NewStrings()
		available := true
		for _, p := range prev {
			if !r.usable(p.TName) || names.Contains(p.TName) {
				available = false
				break
			}
			names.Add(p.TName)
		}
		if !available {
			ll.Debug("Multi-function device's previous names unavailable, skipping")
			continue
		}

		sortByMAC(prev)
		sortByMAC(sibs)
		for i := range sibs {
			if err := r.assign(sibs[i], prev[i].TName); err != nil {
				return err
			}
		}
	}
	return nil
}

// reorderMultinic hands the order hints of unnamed siblings on a
// multi-function device out in MAC order, so new names follow the MACs.
func (r *run) reorderMultinic(multinic []macpci.PCI) {
	for _, fn := range multinic {
		var sibs []*types.InterfaceRecord
		for _, c := range r.cur {
			if c.TName == "" && c.ID.PCI == fn {
				sibs = append(sibs, c)
			}
		}
		orders := make([]int, len(sibs))
		for i, s := range sibs {
			orders[i] = s.Order
		}
		slices.Sort(orders)
		sortByMAC(sibs)
		for i, s := range sibs {
			s.Order = orders[i]
		}
	}
}

// applyNew is pass 4: everything still unnamed gets either its own kernel
// name, if nobody else claims it, or the next unused eth<N>.
func (r *run) applyNew(static []*types.InterfaceRecord) error {
	highest := -1
	claimed := set.NewStrings()
	note := func(name string) {
		if n, ok := ethIndex(name); ok && n > highest {
			highest = n
		}
	}
	for _, s := range static {
		note(s.TName)
		claimed.Add(s.TName)
	}
	for _, l := range r.last {
		note(l.TName)
		claimed.Add(l.TName)
	}
	for _, c := range r.cur {
		note(c.KName)
		note(c.TName)
	}
	next := highest + 1

	var pending []*types.InterfaceRecord
	for _, c := range r.cur {
		if c.TName == "" {
			pending = append(pending, c)
		}
	}
	slices.SortStableFunc(pending, func(a, b *types.InterfaceRecord) int {
		return cmp.Compare(a.Order, b.Order)
	})

	for _, nic := range pending {
		if validEthName.MatchString(nic.KName) && !claimed.Contains(nic.KName) && r.isFree(nic.KName) {
			r.ll.WithField("interface", nic.KName).Debug("Keeping kernel name for new interface")
			nic.TName = nic.KName
			r.resolved.Add(nic.KName)
			claimed.Add(nic.KName)
			continue
		}
		name := "eth" + strconv.Itoa(next)
		for !r.isFree(name) || claimed.Contains(name) {
			next++
			name = "eth" + strconv.Itoa(next)
		}
		next++
		r.ll.WithFields(logrus.Fields{"interface": nic.KName, "target": name}).Info("Naming new interface")
		if err := r.assign(nic, name); err != nil {
			return err
		}
		claimed.Add(name)
	}
	return nil
}

func ethIndex(name string) (int, bool) {
	if !validEthName.MatchString(name) {
		return 0, false
	}
	n, err := strconv.Atoi(name[len("eth"):])
	if err != nil {
		return 0, false
	}
	return n, true
}

func findByID(recs []*types.InterfaceRecord, id macpci.MACPCI) *types.InterfaceRecord {
	for _, r := range recs {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func findByMAC(recs []*types.InterfaceRecord, mac macpci.MAC) *types.InterfaceRecord {
	for _, r := range recs {
		if r.ID.MAC == mac {
			return r
		}
	}
	return nil
}

func findByPCI(recs []*types.InterfaceRecord, pci macpci.PCI) *types.InterfaceRecord {
	for _, r := range recs {
		if r.ID.PCI == pci {
			return r
		}
	}
	return nil
}

func filterByPCI(recs []*types.InterfaceRecord, pci macpci.PCI) []*types.InterfaceRecord {
	var out []*types.InterfaceRecord
	for _, r := range recs {
		if r.ID.PCI == pci {
			out = append(out, r)
		}
	}
	return out
}

// dedupByID concatenates the collections, keeping the first record seen for
// each identity.
func dedupByID(collections ...[]*types.InterfaceRecord) []*types.InterfaceRecord {
	seen := make(map[macpci.MACPCI]struct{})
	var out []*types.InterfaceRecord
	for _, recs := range collections {
		for _, r := range recs {
			if _, ok := seen[r.ID]; ok {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

func sortByMAC(recs []*types.InterfaceRecord) {
	slices.SortStableFunc(recs, func(a, b *types.InterfaceRecord) int {
		return cmp.Compare(a.ID.MAC.Integer(), b.ID.MAC.Integer())
	})
}
