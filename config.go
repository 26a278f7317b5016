package tsch

import "github.com/edi-riga/tsch-core/internal/tschconst"

// Config is the configuration record every component in this module
// reads from, passed explicitly rather than reached for as a global
// (design note §9: "pass the configuration as an explicit context into
// every component that reads it"). The file format that produces a Config
// is out of this module's scope (spec §1); callers build one directly.
type Config struct {
	// OrchestraRules names, in priority order, the rules a node installs.
	// Each name must be registered (see RegisterRule); an unresolved name
	// is logged and skipped (KindUnknownRule).
	OrchestraRules []string

	EBPeriod           uint16
	CommonSharedPeriod uint16
	UnicastPeriod      uint16
	RootPeriod         uint16

	// UnicastSenderBased selects the storing-mode unicast rule's
	// sender-based variant (spec §4.4 rule 4) instead of the default
	// receiver-based one.
	UnicastSenderBased bool

	// H1/H2 are the pluggable hash functions rules use to map identities
	// to timeslot/channel-offset coordinates (spec §9). Nil means use the
	// package defaults.
	H1 HashFunc
	H2 Hash2Func

	MaxHash uint32

	// CollisionFreeHash asserts H1 is injective over the active node set.
	// Combined with UnicastSenderBased and UnicastPeriod > MaxHash+1, Tx
	// cells are installed without the Shared option (spec §4.4).
	CollisionFreeHash bool

	EBChannelOffset            uint16
	DefaultCommonChannelOffset uint16
	UnicastMinChannelOffset    uint16
	UnicastMaxChannelOffset    uint16

	// unicastSlotSharedFlag and commonSharedType are derived once by
	// Initialize and then read-only for the lifetime of the Config (spec
	// §5, §9).
	unicastSlotSharedFlag CellOption
	commonSharedType      CellType
	initialized           bool
}

// DefaultConfig returns a Config carrying every documented default from
// spec §6, with default_common last (it is the fallback rule) and the
// rest in the order spec §6 lists them.
func DefaultConfig() *Config {
	return &Config{
		OrchestraRules: []string{
			tschconst.RuleEBPerTimeSource,
			tschconst.RuleUnicastStoring,
			tschconst.RuleSpecialForRoot,
			tschconst.RuleDefaultCommon,
		},
		EBPeriod:                   tschconst.EBPeriod,
		CommonSharedPeriod:         tschconst.CommonSharedPeriod,
		UnicastPeriod:              tschconst.UnicastPeriod,
		RootPeriod:                 tschconst.RootPeriod,
		UnicastSenderBased:         false,
		MaxHash:                    tschconst.MaxHash,
		CollisionFreeHash:          false,
		EBChannelOffset:            tschconst.EBChannelOffset,
		DefaultCommonChannelOffset: tschconst.DefaultCommonChannelOffset,
		UnicastMinChannelOffset:    tschconst.UnicastMinChannelOffset,
		UnicastMaxChannelOffset:    tschconst.UnicastMaxChannelOffset,
	}
}

// Initialize derives the two internal fields spec §9 calls out, and must
// be called once before the config is used to bring up a node. Calling it
// again is a no-op.
func (c *Config) Initialize() {
	if c.initialized {
		return
	}
	c.initialized = true

	if c.H1 == nil {
		c.H1 = DefaultH1
	}
	if c.H2 == nil {
		c.H2 = DefaultH2
	}

	// Collision-free addressing with a long enough unicast period lets a
	// sender-based Tx cell skip contention entirely; otherwise Tx cells
	// must carry Shared (spec §4.4).
	if c.CollisionFreeHash && c.UnicastSenderBased && uint32(c.UnicastPeriod) > c.MaxHash+1 {
		c.unicastSlotSharedFlag = 0
	} else {
		c.unicastSlotSharedFlag = OptionShared
	}

	if c.hasEBRule() {
		c.commonSharedType = CellNormal
	} else {
		c.commonSharedType = CellAdvertising
	}
}

func (c *Config) hasEBRule() bool {
	for _, name := range c.OrchestraRules {
		if name == tschconst.RuleEBPerTimeSource {
			return true
		}
	}
	return false
}

// UnicastSlotSharedFlag returns the derived Shared-option flag unicast Tx
// cells should carry. Initialize must have run first.
func (c *Config) UnicastSlotSharedFlag() CellOption { return c.unicastSlotSharedFlag }

// CommonSharedType returns the derived cell type for the default-common
// rule's single cell. Initialize must have run first.
func (c *Config) CommonSharedType() CellType { return c.commonSharedType }

// Co returns the unicast channel offset derived from addr:
// H1(addr) mod (max-min+1) + min.
func (c *Config) Co(addr Addr) uint16 {
	span := uint32(c.UnicastMaxChannelOffset-c.UnicastMinChannelOffset) + 1
	return uint16(c.H1(addr)%span) + c.UnicastMinChannelOffset
}
