// Package inventory enumerates the physical network interfaces of the machine
// by combining netlink link attributes with the PCI topology exposed in sysfs.
package inventory

import (
	"cmp"
	"context"
	"fmt"
	"net"
	"path/filepath"
	"slices"
	"strings"

	"golang-ifrename/internal/pkg/logging"
	"golang-ifrename/internal/pkg/macpci"
	"golang-ifrename/internal/port"
	"golang-ifrename/internal/types"
)

// DefaultSysfsNet is where the kernel exposes network interfaces.
const DefaultSysfsNet = "/sys/class/net"

// Source is an adapter that implements the InventorySource port.
type Source struct {
	sysfsNet   string
	networkMgr port.NetworkManager
	fileMgr    port.FileManager
}

// Ensure Source implements the InventorySource port
var _ port.InventorySource = (*Source)(nil)

// NewSource creates an inventory source reading sysfs below sysfsNet.
func NewSource(sysfsNet string, networkMgr port.NetworkManager, fileMgr port.FileManager) *Source {
	if sysfsNet == "" {
		sysfsNet = DefaultSysfsNet
	}
	return &Source{
		sysfsNet:   sysfsNet,
		networkMgr: networkMgr,
		fileMgr:    fileMgr,
	}
}

// Discover returns one record per PCI network interface, ordered by PCI
// address then MAC. The order hint of each record is its position in that
// ordering.
func (s *Source) Discover(ctx context.Context) ([]types.InterfaceRecord, error) {
	logger := logging.WithComponent("inventory")

	links, err := s.networkMgr.ListLinks()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate interfaces: %w", err)
	}

	var out []types.InterfaceRecord
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attrs := link.Attrs()
		if link.Type() != "device" || attrs.Flags&net.FlagLoopback != 0 {
			continue
		}

		ll := logging.WithComponentAndInterface("inventory", attrs.Name)

		pci, ok := s.pciAddress(attrs.Name)
		if !ok {
			ll.Debug("Interface is not backed by a PCI device, ignoring it")
			continue
		}
		mac, err := macpci.ParseMAC(attrs.HardwareAddr.String())
		if err != nil {
			ll.WithError(err).Warn("Interface has an unusable MAC address, ignoring it")
			continue
		}

		out = append(out, types.InterfaceRecord{
			ID:    macpci.MACPCI{MAC: mac, PCI: pci},
			KName: attrs.Name,
			PPN:   s.readAttr(filepath.Join(s.sysfsNet, attrs.Name, "phys_port_name")),
			Label: s.readAttr(filepath.Join(s.sysfsNet, attrs.Name, "device", "label")),
		})
	}

	slices.SortStableFunc(out, func(a, b types.InterfaceRecord) int {
		if c := cmp.Compare(a.ID.PCI.Integer(), b.ID.PCI.Integer()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.MAC.Integer(), b.ID.MAC.Integer())
	})
	for i := range out {
		out[i].Order = i
	}

	logger.WithField("count", len(out)).Debug("Discovered interfaces")
	return out, nil
}

// pciAddress resolves the device symlink of an interface to its PCI address.
func (s *Source) pciAddress(name string) (macpci.PCI, bool) {
	target, err := s.fileMgr.ResolveLink(filepath.Join(s.sysfsNet, name, "device"))
	if err != nil {
		return macpci.PCI{}, false
	}
	pci, err := macpci.ParsePCI(filepath.Base(target))
	if err != nil {
		return macpci.PCI{}, false
	}
	return pci, true
}

// readAttr reads a single-line sysfs attribute. Unreadable attributes are
// empty; many drivers do not provide them.
func (s *Source) readAttr(path string) string {
	if !s.fileMgr.FileExists(path) {
		return ""
	}
	data, err := s.fileMgr.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
