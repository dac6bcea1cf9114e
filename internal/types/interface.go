// Package types defines common types used across the application.
package types

import (
	"fmt"

	"golang-ifrename/internal/pkg/macpci"
)

// InterfaceRecord describes one network interface in one of the four roles
// used during renaming: static rule, current state, last-boot state or old state.
// An empty KName or TName means the name is unknown or not yet resolved.
type InterfaceRecord struct {
	ID    macpci.MACPCI // hardware identity, the join key between roles
	KName string        // name currently assigned by the kernel
	TName string        // stable target name
	Order int           // tie-break hint for brand-new interfaces
	PPN   string        // physical port name, rule generation only
	Label string        // SMBIOS label, rule generation only
}

// NewInterfaceRecord parses the identity and returns a record with the given names.
func NewInterfaceRecord(mac, pci, kname, tname string) (*InterfaceRecord, error) {
	id, err := macpci.NewMACPCI(mac, pci)
	if err != nil {
		return nil, err
	}
	return &InterfaceRecord{ID: id, KName: kname, TName: tname}, nil
}

func (r InterfaceRecord) String() string {
	kname, tname := r.KName, r.TName
	if kname == "" {
		kname = "-"
	}
	if tname == "" {
		tname = "-"
	}
	return fmt.Sprintf("MACPCI(%s, %s, kname=%s, tname=%s, order=%d)", r.ID.MAC, r.ID.PCI, kname, tname, r.Order)
}

// Transaction is a single rename step. Transactions must be applied in the
// order they were produced.
type Transaction struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

func (t Transaction) String() string {
	return t.From + " -> " + t.To
}
