package idgen

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/spaolacci/murmur3"
)

var errNoHardwareAddr = errors.New("no network interface with a hardware address")

// IdentityResolver supplies the worker ID of a generator.
type IdentityResolver interface {
	// ResolveWorkerID returns a value in [0, max].
	ResolveWorkerID(max int64) (int64, error)
}

// ResolverFunc adapts a plain function to IdentityResolver.
type ResolverFunc func(max int64) (int64, error)

func (f ResolverFunc) ResolveWorkerID(max int64) (int64, error) {
	return f(max)
}

// StaticIdentity is an explicitly configured worker ID.
type StaticIdentity struct {
	WorkerID int64
}

func (s StaticIdentity) ResolveWorkerID(max int64) (int64, error) {
	if s.WorkerID < 0 || s.WorkerID > max {
		return 0, &InvalidWorkerIDError{WorkerID: s.WorkerID, Max: max}
	}
	return s.WorkerID, nil
}

// HardwareIdentity derives the worker ID from the first non-loopback interface
// that has a hardware address, masked to the field width.
//
// In containers and VMs MAC addresses are often random per boot or shared
// between replicas, so two generators may end up with the same worker ID.
// Prefer an explicit override there.
type HardwareIdentity struct {
	// Interfaces lists candidate interfaces. Defaults to net.Interfaces.
	Interfaces func() ([]net.Interface, error)
	// Fallback resolves the worker ID when no interface has a hardware
	// address. Nil makes that case an error.
	Fallback IdentityResolver
}

func (h HardwareIdentity) ResolveWorkerID(max int64) (int64, error) {
	list := h.Interfaces
	if list == nil {
		list = net.Interfaces
	}

	ifaces, err := list()
	if err != nil {
		return 0, fmt.Errorf("failed to list interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
			continue
		}
		hw := iface.HardwareAddr
		if len(hw) > 2 {
			hw = hw[len(hw)-2:]
		}
		var v int64
		for _, b := range hw {
			v = v<<8 | int64(b)
		}
		return v % (max + 1), nil
	}

	if h.Fallback != nil {
		return h.Fallback.ResolveWorkerID(max)
	}
	return 0, errNoHardwareAddr
}

// HostnameIdentity hashes a stable host name into the worker range. It suits
// orchestrators that hand out ordinal names (idgen-0, idgen-1, ...) but gives
// no collision guarantee.
type HostnameIdentity struct {
	// Hostname defaults to os.Hostname.
	Hostname func() (string, error)
}

func (h HostnameIdentity) ResolveWorkerID(max int64) (int64, error) {
	hostname := h.Hostname
	if hostname == nil {
		hostname = os.Hostname
	}

	name, err := hostname()
	if err != nil {
		return 0, fmt.Errorf("failed to read hostname: %w", err)
	}
	if name == "" {
		return 0, errors.New("empty hostname")
	}

	return int64(murmur3.Sum32([]byte(name)) % uint32(max+1)), nil
}

// WithOverride returns a resolver that prefers override when it is set and
// otherwise delegates to fallback.
func WithOverride(override *int64, fallback IdentityResolver) IdentityResolver {
	if override != nil {
		return StaticIdentity{WorkerID: *override}
	}
	if fallback == nil {
		return HardwareIdentity{Fallback: HostnameIdentity{}}
	}
	return fallback
}
