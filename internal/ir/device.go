package ir

import "fmt"

// DeviceID is a vendor:product pair packed as vendor<<16 | product.
type DeviceID uint32

// NewDeviceID packs a vendor:product pair.
func NewDeviceID(vendor, product uint16) DeviceID {
	return DeviceID(uint32(vendor)<<16 | uint32(product))
}

// Vendor returns the vendor half of the id.
func (id DeviceID) Vendor() uint16 { return uint16(id >> 16) }

// Product returns the product half of the id.
func (id DeviceID) Product() uint16 { return uint16(id & 0xffff) }

func (id DeviceID) String() string {
	return fmt.Sprintf("%04x:%04x", id.Vendor(), id.Product())
}

// MatchResult classifies a device against a config's id lists.
type MatchResult int

const (
	// MatchNone: the config does not apply to the device.
	MatchNone MatchResult = iota
	// MatchWildcard: matched only via the wildcard flag.
	MatchWildcard
	// MatchExact: the device id is explicitly allow-listed.
	MatchExact
)

func (m MatchResult) String() string {
	switch m {
	case MatchWildcard:
		return "wildcard"
	case MatchExact:
		return "exact"
	default:
		return "none"
	}
}

// MatchDevice classifies a candidate device id. Precedence is fixed:
// an exact allow-list match dominates, then an exclude-list match forces
// MatchNone, then the wildcard flag decides.
func (c *Config) MatchDevice(id DeviceID) MatchResult {
	for _, allowed := range c.DeviceIDs {
		if allowed == id {
			return MatchExact
		}
	}

	for _, excluded := range c.ExcludedIDs {
		if excluded == id {
			return MatchNone
		}
	}

	if c.Wildcard {
		return MatchWildcard
	}
	return MatchNone
}
