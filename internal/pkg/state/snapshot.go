// Package state persists the names interfaces had at the last boot, and
// further back, so they can be kept stable across reboots.
//
// The on-disk form is
//
//	{"lastboot": [[mac, pci, tname], ...], "old": [[mac, pci, tname], ...]}
package state

import (
	"encoding/json"
	"fmt"

	"golang-ifrename/internal/pkg/ifrename"
	"golang-ifrename/internal/pkg/macpci"
	"golang-ifrename/internal/port"
	"golang-ifrename/internal/types"

	"github.com/juju/collections/set"
	"github.com/juju/naturalsort"
	"github.com/sirupsen/logrus"
)

// Snapshot holds the resolved names of a previous run.
type Snapshot struct {
	LastBoot []*types.InterfaceRecord
	Old      []*types.InterfaceRecord
}

type fileFormat struct {
	LastBoot []json.RawMessage `json:"lastboot"`
	Old      []json.RawMessage `json:"old"`
}

// Parse decodes a snapshot. Malformed entries are dropped with a warning and
// undecodable input yields an empty snapshot.
func Parse(data []byte, ll logrus.FieldLogger) Snapshot {
	if ll == nil {
		ll = logrus.StandardLogger()
	}
	var raw fileFormat
	if err := json.Unmarshal(data, &raw); err != nil {
		ll.WithError(err).Warn("Unable to decode interface state, ignoring it")
		return Snapshot{}
	}
	return Snapshot{
		LastBoot: parseEntries(raw.LastBoot, true, ll.WithField("section", "lastboot")),
		Old:      parseEntries(raw.Old, false, ll.WithField("section", "old")),
	}
}

// parseEntries decodes one section. Last boot entries describe a single boot,
// so names and identities must be unique there; the first entry wins.
func parseEntries(entries []json.RawMessage, unique bool, ll logrus.FieldLogger) []*types.InterfaceRecord {
	var out []*types.InterfaceRecord
	names := set.NewStrings()
	ids := make(map[macpci.MACPCI]struct{})
	for i, e := range entries {
		lll := ll.WithField("entry", i)

		var fields []string
		if err := json.Unmarshal(e, &fields); err != nil {
			lll.WithError(err).Warn("Skipping malformed state entry")
			continue
		}
		if len(fields) != 3 {
			lll.WithField("fields", len(fields)).Warn("Skipping state entry with wrong number of fields")
			continue
		}
		if !ifrename.IsValidEthName(fields[2]) {
			lll.WithField("tname", fields[2]).Warn("Skipping state entry with invalid name")
			continue
		}
		id, err := macpci.NewMACPCI(fields[0], fields[1])
		if err != nil {
			lll.WithError(err).Warn("Skipping state entry with invalid identity")
			continue
		}
		if unique {
			if names.Contains(fields[2]) {
				lll.WithField("tname", fields[2]).Warn("Skipping state entry with duplicate name")
				continue
			}
			if _, ok := ids[id]; ok {
				lll.WithField("identity", id.String()).Warn("Skipping state entry with duplicate identity")
				continue
			}
			names.Add(fields[2])
			ids[id] = struct{}{}
		}
		out = append(out, &types.InterfaceRecord{ID: id, TName: fields[2]})
	}
	return out
}

// Load reads a snapshot from path. A missing file is an empty snapshot; only
// failures to read an existing file are returned.
func Load(files port.FileManager, path string, ll logrus.FieldLogger) (Snapshot, error) {
	if !files.FileExists(path) {
		return Snapshot{}, nil
	}
	data, err := files.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load interface state: %w", err)
	}
	return Parse(data, ll), nil
}

// Next computes the snapshot to persist after a run: the resolved state
// becomes the last boot, and everything previously known about interfaces
// that are absent now is kept as old state.
func Next(prev Snapshot, resolved []types.InterfaceRecord) Snapshot {
	present := make(map[macpci.MACPCI]struct{}, len(resolved))
	var next Snapshot
	for _, r := range resolved {
		if r.TName == "" {
			continue
		}
		present[r.ID] = struct{}{}
		next.LastBoot = append(next.LastBoot, &types.InterfaceRecord{ID: r.ID, TName: r.TName})
	}

	seen := make(map[macpci.MACPCI]struct{})
	for _, recs := range [][]*types.InterfaceRecord{prev.LastBoot, prev.Old} {
		for _, r := range recs {
			if _, ok := present[r.ID]; ok {
				continue
			}
			if _, ok := seen[r.ID]; ok {
				continue
			}
			seen[r.ID] = struct{}{}
			next.Old = append(next.Old, &types.InterfaceRecord{ID: r.ID, TName: r.TName})
		}
	}
	return next
}

// Marshal encodes a snapshot with entries ordered by target name.
func Marshal(s Snapshot) ([]byte, error) {
	out := struct {
		LastBoot [][3]string `json:"lastboot"`
		Old      [][3]string `json:"old"`
	}{
		LastBoot: entries(s.LastBoot),
		Old:      entries(s.Old),
	}
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode interface state: %w", err)
	}
	return append(data, '\n'), nil
}

func entries(recs []*types.InterfaceRecord) [][3]string {
	byName := make(map[string][][3]string)
	var names []string
	for _, r := range recs {
		if _, ok := byName[r.TName]; !ok {
			names = append(names, r.TName)
		}
		byName[r.TName] = append(byName[r.TName], [3]string{r.ID.MAC.String(), r.ID.PCI.String(), r.TName})
	}
	naturalsort.Sort(names)

	out := make([][3]string, 0, len(recs))
	for _, n := range names {
		out = append(out, byName[n]...)
	}
	return out
}

// Save writes the snapshot to path.
func Save(files port.FileManager, path string, s Snapshot) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := files.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save interface state: %w", err)
	}
	return nil
}
