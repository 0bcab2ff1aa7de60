package domain

// Reachability is whether the internet is reachable beyond the local link.
type Reachability string

const (
	ReachabilityUnknown     Reachability = "UNKNOWN"
	ReachabilityReachable   Reachability = "REACHABLE"
	ReachabilityUnreachable Reachability = "UNREACHABLE"
)

// Connectivity is a point-in-time network state.
type Connectivity struct {
	Connected    bool
	Reachability Reachability
}
