// Package rename is the adapter that drives a full interface rename: it
// discovers the interfaces, resolves their names against the static rules and
// the names from previous boots, renames the links and records the outcome.
package rename

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"

	"golang-ifrename/internal/pkg/config"
	"golang-ifrename/internal/pkg/ifrename"
	"golang-ifrename/internal/pkg/logging"
	"golang-ifrename/internal/pkg/rules"
	"golang-ifrename/internal/pkg/state"
	"golang-ifrename/internal/port"
	"golang-ifrename/internal/types"

	"github.com/sirupsen/logrus"
)

// Manager is the interface rename adapter that implements the InterfaceRenameManager port.
type Manager struct {
	rulesFile string
	stateFile string
	dryRun    bool

	inventory  port.InventorySource
	networkMgr port.NetworkManager
	fileMgr    port.FileManager

	engine    *ifrename.Engine
	generator *rules.Generator
}

// Ensure Manager implements the InterfaceRenameManager port
var _ port.InterfaceRenameManager = (*Manager)(nil)

// NewManager creates a rename adapter for the given configuration. Engine
// options are passed through to the reconciliation engine.
func NewManager(cfg *config.Config, inventory port.InventorySource, networkMgr port.NetworkManager, fileMgr port.FileManager, opts ...ifrename.OptionFunc) *Manager {
	logger := logging.WithComponent("engine")
	opts = append([]ifrename.OptionFunc{ifrename.WithLogger(logger)}, opts...)

	return &Manager{
		rulesFile:  cfg.RulesFile,
		stateFile:  cfg.StateFile,
		dryRun:     cfg.DryRun,
		inventory:  inventory,
		networkMgr: networkMgr,
		fileMgr:    fileMgr,
		engine:     ifrename.NewEngine(opts...),
		generator:  rules.NewGenerator(logging.WithComponent("rules")),
	}
}

// plan is everything computed before any link is touched.
type plan struct {
	snapshot state.Snapshot
	result   *ifrename.Result
}

// Plan computes the rename transactions without applying them.
func (m *Manager) Plan(ctx context.Context) ([]types.Transaction, error) {
	p, err := m.plan(ctx)
	if err != nil {
		return nil, err
	}
	return p.result.Transactions, nil
}

func (m *Manager) plan(ctx context.Context) (*plan, error) {
	logger := logging.WithComponent("rename")

	inventory, err := m.inventory.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to discover interfaces: %w", err)
	}

	staticRules, err := m.loadRules()
	if err != nil {
		return nil, err
	}
	static := m.generator.Generate(staticRules, inventory)

	snapshot, err := state.Load(m.fileMgr, m.stateFile, logging.WithComponent("state"))
	if err != nil {
		return nil, err
	}

	cur := make([]*types.InterfaceRecord, 0, len(inventory))
	for i := range inventory {
		nic := inventory[i]
		if !ifrename.IsValidCurrentName(nic.KName) && !ifrename.IsIBFTName(nic.KName) {
			logger.WithField("interface", nic.KName).Warn("Interface does not use eth naming, leaving it alone")
			continue
		}
		nic.TName = ""
		cur = append(cur, &nic)
	}

	logger.WithFields(logrus.Fields{
		"interfaces": len(cur),
		"rules":      len(static),
		"lastboot":   len(snapshot.LastBoot),
		"old":        len(snapshot.Old),
	}).Debug("Resolving interface names")

	result, err := m.engine.Rename(static, cur, snapshot.LastBoot, snapshot.Old)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve interface names: %w", err)
	}
	return &plan{snapshot: snapshot, result: result}, nil
}

// loadRules reads the static rule file. A missing file means no rules.
func (m *Manager) loadRules() ([]rules.Rule, error) {
	if !m.fileMgr.FileExists(m.rulesFile) {
		logging.WithComponent("rules").WithField("file", m.rulesFile).Debug("No static rules file")
		return nil, nil
	}
	data, err := m.fileMgr.ReadFile(m.rulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load static rules: %w", err)
	}
	return rules.ParseRuleFile(bytes.NewReader(data), logging.WithComponent("rules").WithField("file", m.rulesFile))
}

// Run computes the rename transactions, applies them and saves the resolved
// names for the next boot. In dry-run mode the transactions are only logged.
func (m *Manager) Run(ctx context.Context) error {
	logger := logging.WithComponent("rename")

	p, err := m.plan(ctx)
	if err != nil {
		return err
	}

	if len(p.result.Transactions) == 0 {
		logger.Info("All interfaces already have their target names")
	}

	if m.dryRun {
		for _, tx := range p.result.Transactions {
			logging.WithInterface(tx.From).WithField("to", tx.To).Info("Would rename interface")
		}
		return nil
	}

	applyErr := m.Apply(ctx, p.result.Transactions)

	next := state.Next(p.snapshot, p.result.State)
	if err := state.Save(m.fileMgr, m.stateFile, next); err != nil {
		return errors.Join(applyErr, err)
	}
	return applyErr
}

// Apply executes the transactions in order. Each rename takes the link down
// if it was up and brings it back up afterwards. A failed step is logged and
// the remaining steps are still attempted; all failures are returned joined.
func (m *Manager) Apply(ctx context.Context, txs []types.Transaction) error {
	logger := logging.WithComponent("rename")

	var errs []error
	for i, tx := range txs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("stopped before %s: %w", tx, err))
			break
		}

		ll := logger.WithFields(logrus.Fields{"step": i + 1, "from": tx.From, "to": tx.To})
		if err := m.applyOne(tx, ll); err != nil {
			ll.WithError(err).Error("Failed to rename interface")
			errs = append(errs, fmt.Errorf("%s: %w", tx, err))
			continue
		}
		ll.Info("Renamed interface")
	}
	return errors.Join(errs...)
}

func (m *Manager) applyOne(tx types.Transaction, ll *logrus.Entry) error {
	link, err := m.networkMgr.GetLinkByName(tx.From)
	if err != nil {
		return err
	}

	wasUp := link.Attrs().Flags&net.FlagUp != 0
	if wasUp {
		if err := m.networkMgr.SetLinkDown(link); err != nil {
			return err
		}
	}

	if err := m.networkMgr.SetLinkName(link, tx.To); err != nil {
		if wasUp {
			if upErr := m.networkMgr.SetLinkUp(link); upErr != nil {
				ll.WithError(upErr).Warn("Failed to restore link state")
			}
		}
		return err
	}

	if wasUp {
		if err := m.networkMgr.SetLinkUp(link); err != nil {
			return err
		}
	}
	return nil
}

// CurrentRules returns a static rule per eth-named interface pinning its
// current name with the given method. Interfaces the method cannot describe
// are skipped.
func (m *Manager) CurrentRules(ctx context.Context, method string) ([]rules.Rule, error) {
	inventory, err := m.inventory.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to discover interfaces: %w", err)
	}

	logger := logging.WithComponent("rules")
	var out []rules.Rule
	for _, nic := range inventory {
		if !ifrename.IsValidEthName(nic.KName) {
			continue
		}
		sel, err := selectorFor(method, nic, inventory)
		if err != nil {
			logger.WithError(err).WithField("interface", nic.KName).Warn("Unable to describe interface")
			continue
		}
		out = append(out, rules.Rule{Target: nic.KName, Selector: sel})
	}
	return out, nil
}

func selectorFor(method string, nic types.InterfaceRecord, inventory []types.InterfaceRecord) (rules.Selector, error) {
	switch method {
	case rules.MethodMAC:
		return rules.MACSelector{MAC: nic.ID.MAC}, nil
	case rules.MethodPCI:
		index := 0
		for _, other := range inventory {
			if other.ID.PCI == nic.ID.PCI && other.ID.MAC.Integer() < nic.ID.MAC.Integer() {
				index++
			}
		}
		return rules.PCISelector{PCI: nic.ID.PCI, Index: index}, nil
	case rules.MethodPPN:
		if nic.PPN == "" {
			return nil, fmt.Errorf("no physical port name")
		}
		return rules.PPNSelector{Name: nic.PPN}, nil
	case rules.MethodLabel:
		if nic.Label == "" {
			return nil, fmt.Errorf("no firmware label")
		}
		return rules.LabelSelector{Label: nic.Label}, nil
	default:
		return nil, fmt.Errorf("unknown method %q", method)
	}
}
