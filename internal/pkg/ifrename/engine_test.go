//go:build unit

package ifrename

import (
	"errors"
	"testing"

	"golang-ifrename/internal/pkg/macpci"
	"golang-ifrename/internal/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nic(mac, pci, kname, tname string) *types.InterfaceRecord {
	r, err := types.NewInterfaceRecord(mac, pci, kname, tname)
	if err != nil {
		panic(err)
	}
	return r
}

func withOrder(r *types.InterfaceRecord, order int) *types.InterfaceRecord {
	r.Order = order
	return r
}

// sequence returns a temp name source yielding the given numbers, then 9999.
func sequence(nums ...int) func() int {
	return func() int {
		if len(nums) == 0 {
			return 9999
		}
		n := nums[0]
		nums = nums[1:]
		return n
	}
}

func testEngine(nums ...int) *Engine {
	ll := logrus.New()
	ll.SetLevel(logrus.DebugLevel)
	return NewEngine(WithLogger(ll), WithTempNameSource(sequence(nums...)))
}

// assertReplay applies the transactions to the initial kernel names and
// checks every interface ends up with its resolved name, and that resolved
// names are unique.
func assertReplay(t *testing.T, cur []*types.InterfaceRecord, res *Result) {
	t.Helper()

	names := make(map[string]macpci.MACPCI)
	for _, c := range cur {
		if IsIBFTName(c.KName) {
			continue
		}
		names[c.KName] = c.ID
	}
	for _, tx := range res.Transactions {
		id, ok := names[tx.From]
		require.True(t, ok, "transaction %s renames a name nobody holds", tx)
		_, taken := names[tx.To]
		require.False(t, taken, "transaction %s renames onto a name in use", tx)
		delete(names, tx.From)
		names[tx.To] = id
	}

	seen := make(map[string]bool)
	for _, rec := range res.State {
		require.NotEmpty(t, rec.TName, "%s left unresolved", rec)
		assert.False(t, seen[rec.TName], "duplicate target name %s", rec.TName)
		seen[rec.TName] = true
		assert.Equal(t, rec.ID, names[rec.TName], "%s not named %s after replay", rec, rec.TName)
	}
}

func assertNames(t *testing.T, res *Result, want map[*types.InterfaceRecord]string) {
	t.Helper()
	for rec, name := range want {
		got, ok := res.Name(rec.ID)
		require.True(t, ok, "%s missing from result", rec)
		assert.Equal(t, name, got, "%s", rec)
	}
}

const (
	mac1 = "00:11:22:33:44:01"
	mac2 = "00:11:22:33:44:02"
	mac3 = "00:11:22:33:44:03"
	mac4 = "00:11:22:33:44:04"

	pci1 = "0000:01:00.0"
	pci2 = "0000:02:00.0"
	pci3 = "0000:03:00.0"
	pci4 = "0000:04:00.0"
)

func TestEngine_Rename_NoChangeBoot(t *testing.T) {
	a := nic(mac1, pci1, "eth0", "")
	b := nic(mac2, pci2, "eth1", "")
	cur := []*types.InterfaceRecord{a, b}
	last := []*types.InterfaceRecord{
		nic(mac1, pci1, "", "eth0"),
		nic(mac2, pci2, "", "eth1"),
	}

	res, err := testEngine().Rename(nil, cur, last, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Transactions)
	for _, rec := range res.State {
		assert.Equal(t, rec.KName, rec.TName)
	}
	assertReplay(t, cur, res)
}

func TestEngine_Rename_EmptyCurrentState(t *testing.T) {
	res, err := testEngine().Rename(
		[]*types.InterfaceRecord{nic(mac1, pci1, "", "eth0")},
		nil,
		[]*types.InterfaceRecord{nic(mac2, pci2, "", "eth1")},
		nil,
	)
	require.NoError(t, err)
	assert.Empty(t, res.Transactions)
	assert.Empty(t, res.State)
}

func TestEngine_Rename_StaticRulePrecedence(t *testing.T) {
	x := nic(mac1, pci1, "eth1", "")
	y := nic(mac2, pci2, "eth0", "")
	cur := []*types.InterfaceRecord{x, y}
	static := []*types.InterfaceRecord{nic(mac1, pci1, "", "eth0")}
	last := []*types.InterfaceRecord{
		nic(mac1, pci1, "", "eth1"),
		nic(mac2, pci2, "", "eth0"),
	}

	res, err := testEngine(42).Rename(static, cur, last, nil)
	require.NoError(t, err)

	assertNames(t, res, map[*types.InterfaceRecord]string{x: "eth0", y: "eth2"})
	assert.Equal(t, []types.Transaction{
		{From: "eth0", To: "side-42-eth0"},
		{From: "eth1", To: "eth0"},
		{From: "side-42-eth0", To: "eth2"},
	}, res.Transactions)
	assertReplay(t, cur, res)
}

func TestEngine_Rename_SwappedKernelNames(t *testing.T) {
	a := nic(mac1, pci1, "eth1", "")
	b := nic(mac2, pci2, "eth0", "")
	cur := []*types.InterfaceRecord{a, b}
	last := []*types.InterfaceRecord{
		nic(mac1, pci1, "", "eth0"),
		nic(mac2, pci2, "", "eth1"),
	}

	res, err := testEngine(7).Rename(nil, cur, last, nil)
	require.NoError(t, err)

	assertNames(t, res, map[*types.InterfaceRecord]string{a: "eth0", b: "eth1"})
	assert.Equal(t, []types.Transaction{
		{From: "eth0", To: "side-7-eth0"},
		{From: "eth1", To: "eth0"},
		{From: "side-7-eth0", To: "eth1"},
	}, res.Transactions)
	assertReplay(t, cur, res)
}

func TestEngine_Rename_MovedSlot(t *testing.T) {
	moved := nic(mac1, pci2, "eth3", "")
	cur := []*types.InterfaceRecord{moved}
	last := []*types.InterfaceRecord{nic(mac1, pci1, "", "eth0")}

	res, err := testEngine().Rename(nil, cur, last, nil)
	require.NoError(t, err)
	assertNames(t, res, map[*types.InterfaceRecord]string{moved: "eth0"})
	assert.Equal(t, []types.Transaction{{From: "eth3", To: "eth0"}}, res.Transactions)
	assertReplay(t, cur, res)
}

func TestEngine_Rename_SlotReplacement(t *testing.T) {
	t.Run("PredecessorGone", func(t *testing.T) {
		replacement := nic(mac2, pci1, "eth0", "")
		cur := []*types.InterfaceRecord{replacement}
		last := []*types.InterfaceRecord{nic(mac1, pci1, "", "eth0")}

		res, err := testEngine().Rename(nil, cur, last, nil)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{replacement: "eth0"})
		assert.Empty(t, res.Transactions)
	})

	t.Run("PredecessorMovedElsewhere", func(t *testing.T) {
		moved := nic(mac1, pci3, "eth0", "")
		stayed := nic(mac2, pci2, "eth1", "")
		newcomer := nic(mac3, pci1, "eth2", "")
		cur := []*types.InterfaceRecord{moved, newcomer, stayed}
		last := []*types.InterfaceRecord{
			nic(mac1, pci1, "", "eth0"),
			nic(mac2, pci2, "", "eth1"),
		}

		res, err := testEngine().Rename(nil, cur, last, nil)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{
			moved:    "eth0",
			stayed:   "eth1",
			newcomer: "eth2",
		})
		assert.Empty(t, res.Transactions)
		assertReplay(t, cur, res)
	})

	t.Run("PredecessorFromOldState", func(t *testing.T) {
		replacement := nic(mac2, pci1, "eth0", "")
		cur := []*types.InterfaceRecord{replacement}
		old := []*types.InterfaceRecord{nic(mac1, pci1, "", "eth4")}

		res, err := testEngine().Rename(nil, cur, nil, old)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{replacement: "eth4"})
		assert.Equal(t, []types.Transaction{{From: "eth0", To: "eth4"}}, res.Transactions)
	})
}

func TestEngine_Rename_OldState(t *testing.T) {
	t.Run("MACSeenBefore", func(t *testing.T) {
		returning := nic(mac1, pci1, "eth4", "")
		cur := []*types.InterfaceRecord{returning}
		old := []*types.InterfaceRecord{nic(mac1, pci4, "", "eth2")}

		res, err := testEngine().Rename(nil, cur, nil, old)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{returning: "eth2"})
		assert.Equal(t, []types.Transaction{{From: "eth4", To: "eth2"}}, res.Transactions)
	})

	t.Run("SameSlotSeenBefore", func(t *testing.T) {
		returning := nic(mac1, pci1, "eth0", "")
		cur := []*types.InterfaceRecord{returning}
		old := []*types.InterfaceRecord{nic(mac1, pci1, "", "eth2")}

		res, err := testEngine().Rename(nil, cur, nil, old)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{returning: "eth2"})
	})

	t.Run("OldNameTaken", func(t *testing.T) {
		holder := nic(mac2, pci2, "eth2", "")
		returning := nic(mac1, pci1, "eth0", "")
		cur := []*types.InterfaceRecord{holder, returning}
		last := []*types.InterfaceRecord{nic(mac2, pci2, "", "eth2")}
		old := []*types.InterfaceRecord{nic(mac1, pci4, "", "eth2")}

		res, err := testEngine().Rename(nil, cur, last, old)
		require.NoError(t, err)
		// eth0 is unclaimed, so the returning interface keeps its kernel name.
		assertNames(t, res, map[*types.InterfaceRecord]string{holder: "eth2", returning: "eth0"})
		assertReplay(t, cur, res)
	})
}

func TestEngine_Rename_BrandNewNumbering(t *testing.T) {
	n1 := withOrder(nic(mac1, pci1, "eth0", ""), 1)
	n2 := withOrder(nic(mac2, pci2, "eth1", ""), 0)
	cur := []*types.InterfaceRecord{n1, n2}
	static := []*types.InterfaceRecord{nic(mac4, pci4, "", "eth1")}
	last := []*types.InterfaceRecord{
		nic(mac3, pci3, "", "eth0"),
		nic("00:11:22:33:44:05", "0000:05:00.0", "", "eth7"),
	}

	res, err := testEngine().Rename(static, cur, last, nil)
	require.NoError(t, err)

	assertNames(t, res, map[*types.InterfaceRecord]string{n2: "eth8", n1: "eth9"})
	assert.Equal(t, []types.Transaction{
		{From: "eth1", To: "eth8"},
		{From: "eth0", To: "eth9"},
	}, res.Transactions)
	assertReplay(t, cur, res)
}

func TestEngine_Rename_BrandNewStartsAtZero(t *testing.T) {
	a := nic(mac1, pci1, "side-3-eth5", "")
	cur := []*types.InterfaceRecord{a}

	res, err := testEngine().Rename(nil, cur, nil, nil)
	require.NoError(t, err)
	assertNames(t, res, map[*types.InterfaceRecord]string{a: "eth0"})
	assert.Equal(t, []types.Transaction{{From: "side-3-eth5", To: "eth0"}}, res.Transactions)
}

func TestEngine_Rename_Multinic(t *testing.T) {
	const (
		macA = "00:aa:00:00:00:01"
		macB = "00:aa:00:00:00:02"
		macC = "00:bb:00:00:00:11"
		macD = "00:bb:00:00:00:10"
	)

	t.Run("ReplacedCardKeepsNamesByMAC", func(t *testing.T) {
		c := nic(macC, pci1, "eth0", "")
		d := nic(macD, pci1, "eth1", "")
		cur := []*types.InterfaceRecord{c, d}
		last := []*types.InterfaceRecord{
			nic(macA, pci1, "", "eth0"),
			nic(macB, pci1, "", "eth1"),
		}

		res, err := testEngine(11).Rename(nil, cur, last, nil)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{d: "eth0", c: "eth1"})
		assert.Equal(t, []types.Transaction{
			{From: "eth0", To: "side-11-eth0"},
			{From: "eth1", To: "eth0"},
			{From: "side-11-eth0", To: "eth1"},
		}, res.Transactions)
		assertReplay(t, cur, res)
	})

	t.Run("SiblingCountChanged", func(t *testing.T) {
		c := withOrder(nic(macC, pci1, "side-1-eth0", ""), 0)
		d := withOrder(nic(macD, pci1, "side-2-eth1", ""), 1)
		e := withOrder(nic(mac3, pci1, "side-3-eth2", ""), 2)
		cur := []*types.InterfaceRecord{c, d, e}
		last := []*types.InterfaceRecord{
			nic(macA, pci1, "", "eth0"),
			nic(macB, pci1, "", "eth1"),
		}

		res, err := testEngine().Rename(nil, cur, last, nil)
		require.NoError(t, err)
		// Treated as new: numbering continues after eth1 in MAC order.
		assertNames(t, res, map[*types.InterfaceRecord]string{e: "eth2", d: "eth3", c: "eth4"})
		assertReplay(t, cur, res)
	})

	t.Run("BrandNewCardOrderedByMAC", func(t *testing.T) {
		e := withOrder(nic("00:cc:00:00:00:22", pci2, "side-1-eth0", ""), 0)
		f := withOrder(nic("00:cc:00:00:00:21", pci2, "side-2-eth1", ""), 1)
		cur := []*types.InterfaceRecord{e, f}

		res, err := testEngine().Rename(nil, cur, nil, nil)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{f: "eth0", e: "eth1"})
		assert.Equal(t, []types.Transaction{
			{From: "side-2-eth1", To: "eth0"},
			{From: "side-1-eth0", To: "eth1"},
		}, res.Transactions)
		assertReplay(t, cur, res)
	})

	t.Run("SiblingNamedByStaticRule", func(t *testing.T) {
		c := nic(macC, pci1, "eth0", "")
		d := nic(macD, pci1, "eth1", "")
		cur := []*types.InterfaceRecord{c, d}
		static := []*types.InterfaceRecord{nic(macC, pci1, "", "eth5")}
		last := []*types.InterfaceRecord{
			nic(macA, pci1, "", "eth0"),
			nic(macB, pci1, "", "eth1"),
		}

		res, err := testEngine().Rename(static, cur, last, nil)
		require.NoError(t, err)
		// The remaining sibling is numbered after the highest known name.
		assertNames(t, res, map[*types.InterfaceRecord]string{c: "eth5", d: "eth6"})
		assert.Equal(t, []types.Transaction{
			{From: "eth0", To: "eth5"},
			{From: "eth1", To: "eth6"},
		}, res.Transactions)
		assertReplay(t, cur, res)
	})

	t.Run("PreviousNameTakenByStaticRule", func(t *testing.T) {
		c := withOrder(nic(macC, pci1, "eth0", ""), 0)
		d := withOrder(nic(macD, pci1, "eth1", ""), 1)
		x := withOrder(nic(mac3, pci3, "eth2", ""), 2)
		cur := []*types.InterfaceRecord{c, d, x}
		static := []*types.InterfaceRecord{nic(mac3, pci3, "", "eth0")}
		last := []*types.InterfaceRecord{
			nic(macA, pci1, "", "eth0"),
			nic(macB, pci1, "", "eth1"),
		}

		res, err := testEngine(7).Rename(static, cur, last, nil)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{x: "eth0", d: "eth3", c: "eth4"})
		assert.Equal(t, []types.Transaction{
			{From: "eth0", To: "side-7-eth0"},
			{From: "eth2", To: "eth0"},
			{From: "eth1", To: "eth3"},
			{From: "side-7-eth0", To: "eth4"},
		}, res.Transactions)
		assertReplay(t, cur, res)
	})

	t.Run("DuplicatePreviousNames", func(t *testing.T) {
		c := withOrder(nic(macC, pci1, "side-1-eth0", ""), 0)
		d := withOrder(nic(macD, pci1, "side-2-eth1", ""), 1)
		cur := []*types.InterfaceRecord{c, d}
		last := []*types.InterfaceRecord{nic(macA, pci1, "", "eth3")}
		old := []*types.InterfaceRecord{nic(macB, pci1, "", "eth3")}

		res, err := testEngine().Rename(nil, cur, last, old)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{d: "eth4", c: "eth5"})
		assert.Equal(t, []types.Transaction{
			{From: "side-2-eth1", To: "eth4"},
			{From: "side-1-eth0", To: "eth5"},
		}, res.Transactions)
		assertReplay(t, cur, res)
	})
}

func TestEngine_Rename_MalformedOldName(t *testing.T) {
	t.Run("SameMAC", func(t *testing.T) {
		a := nic(mac1, pci1, "eth0", "")
		cur := []*types.InterfaceRecord{a}
		old := []*types.InterfaceRecord{nic(mac1, pci2, "", "ethX")}

		res, err := testEngine().Rename(nil, cur, nil, old)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{a: "eth0"})
		assert.Empty(t, res.Transactions)
		assertReplay(t, cur, res)
	})

	t.Run("SlotPredecessor", func(t *testing.T) {
		a := nic(mac1, pci1, "eth0", "")
		b := nic(mac2, pci2, "side-4-eth1", "")
		cur := []*types.InterfaceRecord{a, b}
		old := []*types.InterfaceRecord{nic(mac3, pci2, "", "ethY")}

		res, err := testEngine().Rename(nil, cur, nil, old)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{a: "eth0", b: "eth1"})
		assert.Equal(t, []types.Transaction{{From: "side-4-eth1", To: "eth1"}}, res.Transactions)
		assertReplay(t, cur, res)
	})

	t.Run("MultinicSibling", func(t *testing.T) {
		c := withOrder(nic("00:aa:00:00:00:02", pci1, "side-1-eth0", ""), 0)
		d := withOrder(nic("00:aa:00:00:00:01", pci1, "side-2-eth1", ""), 1)
		cur := []*types.InterfaceRecord{c, d}
		old := []*types.InterfaceRecord{
			nic(mac1, pci1, "", "eth0"),
			nic(mac2, pci1, "", "eth"),
		}

		res, err := testEngine().Rename(nil, cur, nil, old)
		require.NoError(t, err)
		assertNames(t, res, map[*types.InterfaceRecord]string{d: "eth0", c: "eth1"})
		assertReplay(t, cur, res)
	})
}

func TestEngine_Rename_TempNameCollision(t *testing.T) {
	a := nic(mac1, pci1, "eth1", "")
	b := nic(mac2, pci2, "eth0", "")
	c := nic(mac3, pci3, "side-5-eth0", "")
	cur := []*types.InterfaceRecord{a, b, c}
	static := []*types.InterfaceRecord{nic(mac1, pci1, "", "eth0")}

	res, err := testEngine(5, 5, 6).Rename(static, cur, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Transactions)
	assert.Equal(t, types.Transaction{From: "eth0", To: "side-6-eth0"}, res.Transactions[0])
	assertReplay(t, cur, res)
}

func TestEngine_Rename_IgnoresIBFT(t *testing.T) {
	a := nic(mac1, pci1, "eth0", "")
	boot := nic(mac2, pci2, "ibft0", "")
	cur := []*types.InterfaceRecord{boot, a}

	res, err := testEngine().Rename(nil, cur, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Transactions)
	require.Len(t, res.State, 1)
	_, found := res.Name(boot.ID)
	assert.False(t, found)
}

func TestEngine_Rename_DoesNotMutateInput(t *testing.T) {
	a := nic(mac1, pci1, "eth1", "")
	b := nic(mac2, pci2, "eth0", "")
	cur := []*types.InterfaceRecord{a, b}
	last := []*types.InterfaceRecord{
		nic(mac1, pci1, "", "eth0"),
		nic(mac2, pci2, "", "eth1"),
	}

	_, err := testEngine().Rename(nil, cur, last, nil)
	require.NoError(t, err)
	assert.Equal(t, "eth1", a.KName)
	assert.Empty(t, a.TName)
	assert.Equal(t, "eth0", b.KName)
	assert.Empty(t, b.TName)
}

func TestEngine_Rename_Reusable(t *testing.T) {
	engine := testEngine()
	cur := []*types.InterfaceRecord{nic(mac1, pci1, "eth3", "")}

	first, err := engine.Rename(nil, cur, nil, nil)
	require.NoError(t, err)
	second, err := engine.Rename(nil, cur, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Transactions, second.Transactions)
	assert.Equal(t, first.State, second.State)
}

func TestEngine_Rename_ValidationErrors(t *testing.T) {
	t.Run("DuplicateStaticTarget", func(t *testing.T) {
		static := []*types.InterfaceRecord{
			nic(mac1, pci1, "", "eth0"),
			nic(mac2, pci2, "", "eth0"),
		}
		_, err := testEngine().Rename(static, []*types.InterfaceRecord{nic(mac1, pci1, "eth0", "")}, nil, nil)
		var target *StaticRuleError
		require.True(t, errors.As(err, &target))
		assert.Contains(t, err.Error(), "duplicate target name")
	})

	t.Run("CurrentStateAlreadyResolved", func(t *testing.T) {
		cur := []*types.InterfaceRecord{nic(mac1, pci1, "eth0", "eth0")}
		_, err := testEngine().Rename(nil, cur, nil, nil)
		var target *CurrentStateError
		require.True(t, errors.As(err, &target))
		assert.Contains(t, err.Error(), mac1)
	})

	t.Run("NilRecord", func(t *testing.T) {
		_, err := testEngine().Rename(nil, []*types.InterfaceRecord{nil}, nil, nil)
		var target *TypeError
		require.True(t, errors.As(err, &target))
	})
}

func TestRun_assign(t *testing.T) {
	newTestRun := func(cur ...*types.InterfaceRecord) *run {
		return newRun(testEngine(1), cur, nil, nil)
	}

	t.Run("InvalidName", func(t *testing.T) {
		r := newTestRun(nic(mac1, pci1, "eth0", ""))
		err := r.assign(r.cur[0], "wlan0")
		var target *LogicError
		require.True(t, errors.As(err, &target))
	})

	t.Run("NameTaken", func(t *testing.T) {
		r := newTestRun(nic(mac1, pci1, "eth0", ""), nic(mac2, pci2, "eth1", ""))
		require.NoError(t, r.assign(r.cur[0], "eth0"))
		err := r.assign(r.cur[1], "eth0")
		var target *LogicError
		require.True(t, errors.As(err, &target))
		assert.Contains(t, err.Error(), "already taken")
	})

	t.Run("AlreadyNamed", func(t *testing.T) {
		r := newTestRun(nic(mac1, pci1, "eth0", ""))
		require.NoError(t, r.assign(r.cur[0], "eth0"))
		assert.Empty(t, r.tx)
		assert.Equal(t, "eth0", r.cur[0].TName)
	})

	t.Run("Unaliased", func(t *testing.T) {
		r := newTestRun(nic(mac1, pci1, "eth0", ""))
		require.NoError(t, r.assign(r.cur[0], "eth5"))
		assert.Equal(t, []types.Transaction{{From: "eth0", To: "eth5"}}, r.tx)
	})

	t.Run("AliasedMovedAside", func(t *testing.T) {
		r := newTestRun(nic(mac1, pci1, "eth0", ""), nic(mac2, pci2, "eth1", ""))
		require.NoError(t, r.assign(r.cur[0], "eth1"))
		assert.Equal(t, []types.Transaction{
			{From: "eth1", To: "side-1-eth1"},
			{From: "eth0", To: "eth1"},
		}, r.tx)
		assert.Equal(t, "side-1-eth1", r.cur[1].KName)
		assert.Empty(t, r.cur[1].TName)
	})

	t.Run("TempNamesExhausted", func(t *testing.T) {
		r := newRun(NewEngine(WithTempNameSource(func() int { return 1 })), []*types.InterfaceRecord{
			nic(mac1, pci1, "eth0", ""),
			nic(mac2, pci2, "eth1", ""),
			nic(mac3, pci3, "side-1-eth1", ""),
		}, nil, nil)
		err := r.assign(r.cur[0], "eth1")
		var target *LogicError
		require.True(t, errors.As(err, &target))
	})
}
