// Package connectivity answers "is this host online" for the transaction guard.
package connectivity

import (
	"context"
	"net"
	"time"

	"settlement-reconciler/internal/core/domain"
)

// Probe checks for an active non-loopback interface and, when an address is
// configured, dials it to decide reachability.
type Probe struct {
	addr       string
	timeout    time.Duration
	dialer     *net.Dialer
	interfaces func() ([]net.Interface, error)
}

// NewProbe creates a probe. An empty addr leaves reachability UNKNOWN.
func NewProbe(addr string, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Probe{
		addr:       addr,
		timeout:    timeout,
		dialer:     &net.Dialer{Timeout: timeout},
		interfaces: net.Interfaces,
	}
}

// Check implements ports.ConnectivityChecker.
func (p *Probe) Check(ctx context.Context) (domain.Connectivity, error) {
	up, err := p.hasActiveInterface()
	if err != nil {
		return domain.Connectivity{Connected: true, Reachability: domain.ReachabilityUnknown}, err
	}
	if !up {
		return domain.Connectivity{Connected: false, Reachability: domain.ReachabilityUnknown}, nil
	}
	if p.addr == "" {
		return domain.Connectivity{Connected: true, Reachability: domain.ReachabilityUnknown}, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dialer.DialContext(dialCtx, "tcp", p.addr)
	if err != nil {
		if ctx.Err() != nil {
			// Caller gave up; say nothing about reachability.
			return domain.Connectivity{Connected: true, Reachability: domain.ReachabilityUnknown}, ctx.Err()
		}
		return domain.Connectivity{Connected: true, Reachability: domain.ReachabilityUnreachable}, nil
	}
	_ = conn.Close()
	return domain.Connectivity{Connected: true, Reachability: domain.ReachabilityReachable}, nil
}

func (p *Probe) hasActiveInterface() (bool, error) {
	ifaces, err := p.interfaces()
	if err != nil {
		return false, err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp != 0 && iface.Flags&net.FlagLoopback == 0 {
			return true, nil
		}
	}
	return false, nil
}

// Static is a fixed connectivity state, used when probing is disabled.
type Static domain.Connectivity

// Check implements ports.ConnectivityChecker.
func (s Static) Check(context.Context) (domain.Connectivity, error) {
	return domain.Connectivity(s), nil
}
