// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

//go:generate mockgen -source=infrastructure.go -destination=../mock/infrastructure.go -package=mock

import (
	"context"

	"golang-ifrename/internal/types"

	"github.com/vishvananda/netlink"
)

// NetworkManager is a port for network interface operations.
// This interface abstracts the netlink calls needed to enumerate and rename links.
type NetworkManager interface {
	// ListLinks returns every link known to the kernel
	ListLinks() ([]netlink.Link, error)

	// GetLinkByName returns a network link by interface name
	GetLinkByName(interfaceName string) (netlink.Link, error)

	// SetLinkDown brings the interface down
	SetLinkDown(link netlink.Link) error

	// SetLinkUp brings the interface up
	SetLinkUp(link netlink.Link) error

	// SetLinkName renames the interface
	SetLinkName(link netlink.Link, name string) error
}

// FileManager is a port for file system operations.
// This interface abstracts file read/write operations, including sysfs.
type FileManager interface {
	// ReadFile reads the contents of a file
	ReadFile(filename string) ([]byte, error)

	// WriteFile writes data to a file with specified permissions
	WriteFile(filename string, data []byte, perm int) error

	// FileExists checks if a file exists
	FileExists(filename string) bool

	// ResolveLink returns the path a symlink points to, with all links resolved
	ResolveLink(filename string) (string, error)
}

// InventorySource is a port for enumerating physical network interfaces.
type InventorySource interface {
	// Discover returns the physical interfaces with their kernel name,
	// identity, physical port name, label and order hint
	Discover(ctx context.Context) ([]types.InterfaceRecord, error)
}
