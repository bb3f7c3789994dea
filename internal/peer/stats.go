package peer

// Aggregate counts peers per status and computes remaining pool capacity.
// Available goes negative when the batch exceeds the pool — deliberate
// over-provisioning signal, not clamped.
func Aggregate(peers []Peer, rules Rules) Stats {
	stats := Stats{Total: len(peers)}
	for _, p := range peers {
		switch p.Status {
		case StatusActive:
			stats.Active++
		case StatusInactive:
			stats.Inactive++
		case StatusReserved:
			stats.Reserved++
		case StatusStatic:
			stats.Static++
		}
	}
	stats.Available = rules.PoolCapacity - stats.Total
	return stats
}
