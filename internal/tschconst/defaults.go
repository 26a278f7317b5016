// Package tschconst holds the documented default values for every
// configuration key the core consumes (see spec §6). Keeping them in one
// internal package mirrors how the teacher library keeps its protocol
// constants in a single internal package rather than scattering magic
// numbers across the files that use them.
package tschconst

const (
	// EBPeriod is the default period, in timeslots, of the EB-per-time-source
	// slotframe.
	EBPeriod = 397

	// CommonSharedPeriod is the default period of the default-common
	// slotframe.
	CommonSharedPeriod = 31

	// UnicastPeriod is the default period of the unicast slotframes (both
	// non-storing and storing/link-based rules).
	UnicastPeriod = 17

	// RootPeriod is the default period of the special-for-root slotframe.
	RootPeriod = 7

	// MaxHash bounds the hash space asserted by CollisionFreeHash.
	MaxHash = 0x7FFF

	// EBChannelOffset is the default channel offset used by EB cells.
	EBChannelOffset = 0

	// DefaultCommonChannelOffset is the default channel offset used by the
	// default-common cell.
	DefaultCommonChannelOffset = 1

	// UnicastMinChannelOffset is the default lower bound of the channel
	// offset range used by unicast cells.
	UnicastMinChannelOffset = 2

	// UnicastMaxChannelOffset is the default upper bound of the channel
	// offset range used by unicast cells.
	UnicastMaxChannelOffset = 255
)

// Rule names as they appear in Config.OrchestraRules and as registered in
// the core package's rule registry.
const (
	RuleDefaultCommon    = "default_common"
	RuleEBPerTimeSource  = "eb_per_time_source"
	RuleUnicastNS        = "unicast_ns"
	RuleUnicastStoring   = "unicast_storing"
	RuleLinkBased        = "link_based"
	RuleSpecialForRoot   = "special_for_root"
)

// Sentinel returned in place of a timeslot, channel offset, or slotframe
// handle when a packet matched no rule, or when a rule has no timeslot of
// its own to offer (e.g. EBPeriod == 0).
const Sentinel = 0xFFFFFFFF
