package domain

import "time"

// DecodedID is the diagnostic view of an issued ID.
type DecodedID struct {
	ID          uint64    `json:"id,string"`
	Timestamp   int64     `json:"timestamp"`
	UnixMilli   int64     `json:"unix_ms"`
	Time        time.Time `json:"time"`
	PartitionID int64     `json:"partition_id"`
	WorkerID    int64     `json:"worker_id"`
	Sequence    int64     `json:"sequence"`
}

// Peer is another generator known through gossip.
type Peer struct {
	Name        string `json:"name"`
	Addr        string `json:"addr"`
	PartitionID int64  `json:"partition_id"`
	WorkerID    int64  `json:"worker_id"`
}

// GeneratorInfo describes the local generator.
type GeneratorInfo struct {
	Epoch       int64  `json:"epoch"`
	PartitionID int64  `json:"partition_id"`
	WorkerID    int64  `json:"worker_id"`
	Peers       []Peer `json:"peers,omitempty"`
	Conflicts   []Peer `json:"conflicts,omitempty"`
}

// Healthy reports whether no peer shares this generator's identity.
func (g GeneratorInfo) Healthy() bool {
	return len(g.Conflicts) == 0
}
