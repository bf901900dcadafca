package fins

// NodeAddress identifies one FINS endpoint by its network, node and unit
// numbers (network 0-127, node/unit 0-254).
type NodeAddress struct {
	Network byte
	Node    byte
	Unit    byte
}
