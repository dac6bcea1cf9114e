// Package network provides network management adapter implementation.
package network

import (
	"fmt"

	"golang-ifrename/internal/port"

	"github.com/vishvananda/netlink"
)

// ManagerAdapter is an adapter that implements the NetworkManager port using vishvananda/netlink library.
type ManagerAdapter struct {
	handle *netlink.Handle
}

// Ensure ManagerAdapter implements the NetworkManager port
var _ port.NetworkManager = (*ManagerAdapter)(nil)

// NewManagerAdapter creates a new network manager adapter for the current network namespace.
func NewManagerAdapter() *ManagerAdapter {
	return &ManagerAdapter{handle: &netlink.Handle{}}
}

// NewManagerAdapterWithHandle creates a network manager adapter bound to handle,
// typically one opened inside another network namespace.
func NewManagerAdapterWithHandle(handle *netlink.Handle) *ManagerAdapter {
	return &ManagerAdapter{handle: handle}
}

// ListLinks returns every link known to the kernel.
func (n *ManagerAdapter) ListLinks() ([]netlink.Link, error) {
	links, err := n.handle.LinkList()
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

// GetLinkByName returns a network link by interface name.
func (n *ManagerAdapter) GetLinkByName(interfaceName string) (netlink.Link, error) {
	link, err := n.handle.LinkByName(interfaceName)
	if err != nil {
		return nil, fmt.Errorf("failed to get netlink interface %s: %w", interfaceName, err)
	}
	return link, nil
}

// SetLinkDown brings the interface down.
func (n *ManagerAdapter) SetLinkDown(link netlink.Link) error {
	if err := n.handle.LinkSetDown(link); err != nil {
		return fmt.Errorf("failed to set link %s down: %w", link.Attrs().Name, err)
	}
	return nil
}

// SetLinkUp brings the interface up.
func (n *ManagerAdapter) SetLinkUp(link netlink.Link) error {
	if err := n.handle.LinkSetUp(link); err != nil {
		return fmt.Errorf("failed to set link %s up: %w", link.Attrs().Name, err)
	}
	return nil
}

// SetLinkName renames the interface. The kernel refuses to rename a link that is up.
func (n *ManagerAdapter) SetLinkName(link netlink.Link, name string) error {
	if err := n.handle.LinkSetName(link, name); err != nil {
		return fmt.Errorf("failed to rename link %s to %s: %w", link.Attrs().Name, name, err)
	}
	return nil
}
