// Package rules turns user-authored static naming rules into concrete
// identity-based rules for the interfaces present on this machine.
package rules

import (
	"fmt"
	"regexp"
	"strconv"

	"golang-ifrename/internal/pkg/macpci"
)

// Method names as written in the static rules file.
const (
	MethodMAC   = "mac"
	MethodPPN   = "ppn"
	MethodPCI   = "pci"
	MethodLabel = "label"
)

var validPPN = regexp.MustCompile(`^(?:em[0-9]+|p(?:ci)?[0-9]+p[0-9]+)$`)

// Selector picks one interface out of an inventory. The set of selectors is
// closed: MACSelector, PPNSelector, PCISelector and LabelSelector.
type Selector interface {
	Method() string
	Value() string
	selector()
}

// MACSelector matches an interface by hardware address.
type MACSelector struct {
	MAC macpci.MAC
}

// PPNSelector matches an interface by physical port name.
type PPNSelector struct {
	Name string
}

// PCISelector matches the Index-th interface, by ascending MAC, on a PCI function.
type PCISelector struct {
	PCI   macpci.PCI
	Index int
}

// LabelSelector matches an interface by SMBIOS label.
type LabelSelector struct {
	Label string
}

func (MACSelector) selector()   {}
func (PPNSelector) selector()   {}
func (PCISelector) selector()   {}
func (LabelSelector) selector() {}

func (MACSelector) Method() string   { return MethodMAC }
func (PPNSelector) Method() string   { return MethodPPN }
func (PCISelector) Method() string   { return MethodPCI }
func (LabelSelector) Method() string { return MethodLabel }

func (s MACSelector) Value() string   { return s.MAC.String() }
func (s PPNSelector) Value() string   { return s.Name }
func (s LabelSelector) Value() string { return s.Label }

func (s PCISelector) Value() string {
	if s.Index == 0 {
		return s.PCI.String()
	}
	return s.PCI.String() + "[" + strconv.Itoa(s.Index) + "]"
}

// ParseSelector builds the selector for an explicit method.
func ParseSelector(method, value string) (Selector, error) {
	switch method {
	case MethodMAC:
		mac, err := macpci.ParseMAC(value)
		if err != nil {
			return nil, err
		}
		return MACSelector{MAC: mac}, nil
	case MethodPPN:
		if value == "" {
			return nil, fmt.Errorf("empty physical port name")
		}
		return PPNSelector{Name: value}, nil
	case MethodPCI:
		pci, index, err := macpci.ParseSBDFI(value)
		if err != nil {
			return nil, err
		}
		return PCISelector{PCI: pci, Index: index}, nil
	case MethodLabel:
		if value == "" {
			return nil, fmt.Errorf("empty label")
		}
		return LabelSelector{Label: value}, nil
	}
	return nil, fmt.Errorf("unknown method %q", method)
}

// GuessSelector infers the method from the shape of value: a MAC address, then
// a PCI address, then a physical port name, otherwise an SMBIOS label.
func GuessSelector(value string) (Selector, error) {
	if mac, err := macpci.ParseMAC(value); err == nil {
		return MACSelector{MAC: mac}, nil
	}
	if macpci.IsSBDF(value) {
		return ParseSelector(MethodPCI, value)
	}
	if validPPN.MatchString(value) {
		return PPNSelector{Name: value}, nil
	}
	return ParseSelector(MethodLabel, value)
}
