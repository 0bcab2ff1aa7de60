package connectivity

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"settlement-reconciler/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upInterfaces() ([]net.Interface, error) {
	return []net.Interface{
		{Name: "lo", Flags: net.FlagUp | net.FlagLoopback},
		{Name: "eth0", Flags: net.FlagUp},
	}, nil
}

func TestProbe_NoActiveInterface(t *testing.T) {
	p := NewProbe("", time.Second)
	p.interfaces = func() ([]net.Interface, error) {
		return []net.Interface{{Name: "lo", Flags: net.FlagUp | net.FlagLoopback}, {Name: "eth0"}}, nil
	}

	got, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Connected)
}

func TestProbe_InterfaceErrorTreatedAsConnected(t *testing.T) {
	p := NewProbe("", time.Second)
	p.interfaces = func() ([]net.Interface, error) { return nil, errors.New("netlink denied") }

	got, err := p.Check(context.Background())
	assert.Error(t, err)
	assert.True(t, got.Connected)
	assert.Equal(t, domain.ReachabilityUnknown, got.Reachability)
}

func TestProbe_NoAddrIsUnknown(t *testing.T) {
	p := NewProbe("", time.Second)
	p.interfaces = upInterfaces

	got, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Connected)
	assert.Equal(t, domain.ReachabilityUnknown, got.Reachability)
}

func TestProbe_Reachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			_ = c.Close()
		}
	}()

	p := NewProbe(ln.Addr().String(), time.Second)
	p.interfaces = upInterfaces

	got, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ReachabilityReachable, got.Reachability)
}

func TestProbe_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	p := NewProbe(addr, 500*time.Millisecond)
	p.interfaces = upInterfaces

	got, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Connected)
	assert.Equal(t, domain.ReachabilityUnreachable, got.Reachability)
}

func TestStatic(t *testing.T) {
	got, err := Static{Connected: true, Reachability: domain.ReachabilityReachable}.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Connectivity{Connected: true, Reachability: domain.ReachabilityReachable}, got)
}
