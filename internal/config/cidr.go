package config

import (
	"encoding/binary"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Subnet holds the addresses derived from a gateway CIDR such as
// "10.2.0.1/16". The address component is the gateway for the subnet; the
// network base and the usable host range are computed from it.
type Subnet struct {
	// Start is the first usable host address (gateway + 1).
	Start string
	// End is the last usable host address, reserving the broadcast address.
	End string
	// Gateway is the address component exactly as given.
	Gateway string
	// Base is the network base address.
	Base string
	// Mask is the prefix length as a decimal string.
	Mask string
}

// CIDR returns the subnet in base/mask form, e.g. "10.2.0.0/16".
func (s Subnet) CIDR() string {
	return s.Base + "/" + s.Mask
}

// SplitCIDR derives the usable host range of an IPv4 gateway CIDR.
//
// The range reserves the network and broadcast addresses, so /31 and /32
// prefixes have no usable hosts and are rejected. Only IPv4 is supported.
// A string that does not parse as address/prefixlen fails with an error
// wrapping ErrInvalidInput.
func SplitCIDR(cidr string) (Subnet, error) {
	addr, maskStr, found := strings.Cut(cidr, "/")
	if !found {
		return Subnet{}, fmt.Errorf("%w: CIDR %q missing prefix length", ErrInvalidInput, cidr)
	}

	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return Subnet{}, fmt.Errorf("%w: %q is not a valid IPv4 address", ErrInvalidInput, addr)
	}

	maskLen, err := strconv.Atoi(maskStr)
	if err != nil || maskLen < 0 || maskLen > 30 {
		return Subnet{}, fmt.Errorf("%w: %q is not a usable prefix length (want 0-30)", ErrInvalidInput, maskStr)
	}

	// Host bits as a mask: for /16 this is 0x0000ffff.
	hostMask := uint32(uint64(1)<<(32-maskLen) - 1)

	gw := ipToUint32(ip)
	return Subnet{
		Start:   uint32ToIP(gw + 1).String(),
		End:     uint32ToIP((gw | hostMask) - 1).String(),
		Gateway: addr,
		Base:    uint32ToIP(gw &^ hostMask).String(),
		Mask:    maskStr,
	}, nil
}

func ipToUint32(ip net.IP) uint32 {
	return binary.BigEndian.Uint32(ip.To4())
}

func uint32ToIP(v uint32) net.IP {
	ip := make(net.IP, net.IPv4len)
	binary.BigEndian.PutUint32(ip, v)
	return ip
}
