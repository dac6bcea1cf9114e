// Package macpci provides the hardware identity value types used to match
// network interfaces across boots: a MAC address, a PCI address, and the pair.
package macpci

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
)

// ErrInvalidFormat is returned when a MAC or PCI string cannot be parsed.
var ErrInvalidFormat = errors.New("invalid format")

// MAC is a six octet ethernet hardware address.
type MAC [6]byte

// ParseMAC parses colon, dash or dot-quad separated MAC addresses.
func ParseMAC(s string) (MAC, error) {
	var mac MAC
	hw, err := net.ParseMAC(s)
	if err != nil {
		return mac, fmt.Errorf("mac %q: %w", s, ErrInvalidFormat)
	}
	if len(hw) != len(mac) {
		return mac, fmt.Errorf("mac %q is not 6 octets: %w", s, ErrInvalidFormat)
	}
	copy(mac[:], hw)
	return mac, nil
}

// MustParseMAC is like ParseMAC but panics on error. Intended for tests and constants.
func MustParseMAC(s string) MAC {
	mac, err := ParseMAC(s)
	if err != nil {
		panic(err)
	}
	return mac
}

func (m MAC) String() string {
	return net.HardwareAddr(m[:]).String()
}

// Integer returns the address as a number, the ordering used when siblings
// on a multi-function card are sorted "by MAC".
func (m MAC) Integer() uint64 {
	var v uint64
	for _, b := range m {
		v = v<<8 | uint64(b)
	}
	return v
}

// IsZero reports whether the address is all zeroes.
func (m MAC) IsZero() bool {
	return m == MAC{}
}

var (
	sbdfRe  = regexp.MustCompile(`^(?:([0-9a-fA-F]{4}):)?([0-9a-fA-F]{2}):([01][0-9a-fA-F])\.([0-7])$`)
	sbdfiRe = regexp.MustCompile(`^((?:[0-9a-fA-F]{4}:)?[0-9a-fA-F]{2}:[01][0-9a-fA-F]\.[0-7])(?:\[([0-9]{1,2})\])?$`)
)

// PCI is a segment:bus:device.function address.
type PCI struct {
	Segment  uint16
	Bus      uint8
	Device   uint8
	Function uint8
}

// ParsePCI parses an SBDF string. The segment is optional and defaults to 0000.
func ParsePCI(s string) (PCI, error) {
	m := sbdfRe.FindStringSubmatch(s)
	if m == nil {
		return PCI{}, fmt.Errorf("pci %q: %w", s, ErrInvalidFormat)
	}
	var p PCI
	if m[1] != "" {
		seg, _ := strconv.ParseUint(m[1], 16, 16)
		p.Segment = uint16(seg)
	}
	bus, _ := strconv.ParseUint(m[2], 16, 8)
	dev, _ := strconv.ParseUint(m[3], 16, 8)
	fn, _ := strconv.ParseUint(m[4], 10, 8)
	p.Bus, p.Device, p.Function = uint8(bus), uint8(dev), uint8(fn)
	return p, nil
}

// ParseSBDFI parses an SBDF optionally followed by "[index]". The index is
// zero when absent.
func ParseSBDFI(s string) (PCI, int, error) {
	m := sbdfiRe.FindStringSubmatch(s)
	if m == nil {
		return PCI{}, 0, fmt.Errorf("pci %q: %w", s, ErrInvalidFormat)
	}
	p, err := ParsePCI(m[1])
	if err != nil {
		return PCI{}, 0, err
	}
	index := 0
	if m[2] != "" {
		index, _ = strconv.Atoi(m[2])
	}
	return p, index, nil
}

// MustParsePCI is like ParsePCI but panics on error.
func MustParsePCI(s string) PCI {
	p, err := ParsePCI(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p PCI) String() string {
	return fmt.Sprintf("%04x:%02x:%02x.%d", p.Segment, p.Bus, p.Device, p.Function)
}

// Integer packs the address into a single sortable value.
func (p PCI) Integer() uint64 {
	return uint64(p.Segment)<<16 | uint64(p.Bus)<<8 | uint64(p.Device)<<3 | uint64(p.Function)
}

// IsSBDF reports whether s looks like a PCI address, with or without index.
func IsSBDF(s string) bool {
	return sbdfiRe.MatchString(s)
}

// MACPCI is the hardware identity of a network interface. Two identities are
// equal iff both the MAC and the PCI address match, so the type can be used
// directly as a map key.
type MACPCI struct {
	MAC MAC
	PCI PCI
}

// NewMACPCI parses both halves of an identity.
func NewMACPCI(mac, pci string) (MACPCI, error) {
	m, err := ParseMAC(mac)
	if err != nil {
		return MACPCI{}, err
	}
	p, err := ParsePCI(pci)
	if err != nil {
		return MACPCI{}, err
	}
	return MACPCI{MAC: m, PCI: p}, nil
}

// MustMACPCI is like NewMACPCI but panics on error.
func MustMACPCI(mac, pci string) MACPCI {
	id, err := NewMACPCI(mac, pci)
	if err != nil {
		panic(err)
	}
	return id
}

// IsZero reports whether the identity was never set.
func (id MACPCI) IsZero() bool {
	return id == MACPCI{}
}

// Less orders identities by MAC, then PCI.
func (id MACPCI) Less(other MACPCI) bool {
	if a, b := id.MAC.Integer(), other.MAC.Integer(); a != b {
		return a < b
	}
	return id.PCI.Integer() < other.PCI.Integer()
}

func (id MACPCI) String() string {
	return id.MAC.String() + "+" + id.PCI.String()
}
