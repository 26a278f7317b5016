package tsch

import "github.com/josharian/native"

// Addr is a fixed 8-octet link-layer address (spec §3).
type Addr [8]byte

// Reserved 16-bit node ids (spec §3): EBID is the enhanced-beacon
// destination, BroadcastID is the broadcast address. Both are excluded
// from the id space a real node may be assigned.
const (
	EBID        uint16 = 0xFFFE
	BroadcastID uint16 = 0xFFFF
)

// idOffset is where the 16-bit id lives within the 8-octet address: the
// last two octets, in the host's native byte order, mirroring how the
// teacher's address codec reaches for byte-order-aware helpers instead of
// hard-coding an endianness.
var idOffset = 6

// AddrToID extracts the 16-bit node id from the last two octets of a.
func AddrToID(a Addr) uint16 {
	if native.IsBigEndian {
		return uint16(a[idOffset])<<8 | uint16(a[idOffset+1])
	}
	return uint16(a[idOffset+1])<<8 | uint16(a[idOffset])
}

// IDToAddr replicates id into each of the four 16-bit halves of an Addr,
// the inverse of AddrToID when id < EBID.
func IDToAddr(id uint16) Addr {
	var a Addr
	var half [2]byte
	if native.IsBigEndian {
		half[0] = byte(id >> 8)
		half[1] = byte(id)
	} else {
		half[0] = byte(id)
		half[1] = byte(id >> 8)
	}
	for i := 0; i < 4; i++ {
		a[2*i] = half[0]
		a[2*i+1] = half[1]
	}
	return a
}

// HashFunc maps one address to a small, rule-defined integer. The default
// is DefaultH1; pluggable so deployments using a collision-free hash can
// swap it in (spec §4.4, §9).
type HashFunc func(Addr) uint32

// Hash2Func maps an ordered pair of addresses to a small integer, used by
// the link-based rule to derive distinct Tx/Rx timeslots per direction.
type Hash2Func func(a, b Addr) uint32

// DefaultH1 is H1(addr) = addr.octets[7] (spec §4.4).
func DefaultH1(a Addr) uint32 { return uint32(a[7]) }

// defaultH2Multiplier is the constant spec §4.4 assigns H2's second term.
const defaultH2Multiplier = 264

// DefaultH2 is H2(a, b) = a.octets[7] + 264*b.octets[7] (spec §4.4).
func DefaultH2(a, b Addr) uint32 {
	return uint32(a[7]) + defaultH2Multiplier*uint32(b[7])
}
