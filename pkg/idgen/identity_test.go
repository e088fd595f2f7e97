package idgen

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticIdentity(t *testing.T) {
	id, err := StaticIdentity{WorkerID: 31}.ResolveWorkerID(MaxWorkerID)
	require.NoError(t, err)
	assert.Equal(t, int64(31), id)

	_, err = StaticIdentity{WorkerID: -1}.ResolveWorkerID(MaxWorkerID)
	assert.ErrorIs(t, err, ErrInvalidWorkerID)

	_, err = StaticIdentity{WorkerID: 32}.ResolveWorkerID(MaxWorkerID)
	var invalid *InvalidWorkerIDError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, int64(32), invalid.WorkerID)
	assert.Equal(t, int64(MaxWorkerID), invalid.Max)
}

func TestHardwareIdentity(t *testing.T) {
	h := HardwareIdentity{
		Interfaces: func() ([]net.Interface, error) {
			return []net.Interface{
				{Name: "lo", Flags: net.FlagLoopback, HardwareAddr: net.HardwareAddr{0, 0, 0, 0, 0, 1}},
				{Name: "tun0"},
				{Name: "eth0", HardwareAddr: net.HardwareAddr{0x02, 0x42, 0xac, 0x11, 0x00, 0x23}},
			}, nil
		},
	}

	id, err := h.ResolveWorkerID(MaxWorkerID)
	require.NoError(t, err)
	assert.Equal(t, int64(0x23&MaxWorkerID), id)
}

func TestHardwareIdentityNoInterface(t *testing.T) {
	h := HardwareIdentity{
		Interfaces: func() ([]net.Interface, error) {
			return []net.Interface{{Name: "lo", Flags: net.FlagLoopback}}, nil
		},
	}

	_, err := h.ResolveWorkerID(MaxWorkerID)
	assert.ErrorIs(t, err, errNoHardwareAddr)
}

func TestHardwareIdentityFallsBack(t *testing.T) {
	host := HostnameIdentity{Hostname: func() (string, error) { return "idgen-3", nil }}
	want, err := host.ResolveWorkerID(MaxWorkerID)
	require.NoError(t, err)

	h := HardwareIdentity{
		Interfaces: func() ([]net.Interface, error) {
			return []net.Interface{{Name: "lo", Flags: net.FlagLoopback, HardwareAddr: net.HardwareAddr{0, 0, 0, 0, 0, 1}}}, nil
		},
		Fallback: host,
	}
	id, err := h.ResolveWorkerID(MaxWorkerID)
	require.NoError(t, err)
	assert.Equal(t, want, id)

	// A usable interface wins over the fallback.
	h.Fallback = StaticIdentity{WorkerID: 99}
	h.Interfaces = func() ([]net.Interface, error) {
		return []net.Interface{{Name: "eth0", HardwareAddr: net.HardwareAddr{0x02, 0x42, 0xac, 0x11, 0x00, 0x05}}}, nil
	}
	id, err = h.ResolveWorkerID(MaxWorkerID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestHostnameIdentity(t *testing.T) {
	h := HostnameIdentity{Hostname: func() (string, error) { return "idgen-3", nil }}

	first, err := h.ResolveWorkerID(MaxWorkerID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, first, int64(0))
	assert.LessOrEqual(t, first, int64(MaxWorkerID))

	second, err := h.ResolveWorkerID(MaxWorkerID)
	require.NoError(t, err)
	assert.Equal(t, first, second, "hostname identity must be deterministic")

	_, err = HostnameIdentity{Hostname: func() (string, error) { return "", nil }}.ResolveWorkerID(MaxWorkerID)
	assert.Error(t, err)
}

func TestWithOverride(t *testing.T) {
	fallback := ResolverFunc(func(int64) (int64, error) { return 4, nil })

	override := int64(12)
	id, err := WithOverride(&override, fallback).ResolveWorkerID(MaxWorkerID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	id, err = WithOverride(nil, fallback).ResolveWorkerID(MaxWorkerID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)

	bad := int64(40)
	_, err = WithOverride(&bad, fallback).ResolveWorkerID(MaxWorkerID)
	assert.ErrorIs(t, err, ErrInvalidWorkerID)
}

func TestNewRejectsResolverOutOfRange(t *testing.T) {
	_, err := New(0, ResolverFunc(func(int64) (int64, error) { return 99, nil }), nil)
	assert.ErrorIs(t, err, ErrInvalidWorkerID)
}
