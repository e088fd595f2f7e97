package gossip

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/hashicorp/memberlist"
)

// Peer is a generator instance seen through gossip.
type Peer struct {
	Name        string `json:"name"`
	Addr        string `json:"addr"`
	PartitionID int64  `json:"partition_id"`
	WorkerID    int64  `json:"worker_id"`
}

func (p Peer) String() string {
	return fmt.Sprintf("%s@%s[p=%d w=%d]", p.Name, p.Addr, p.PartitionID, p.WorkerID)
}

// Identity is the (partition, worker) pair a generator advertises.
type Identity struct {
	PartitionID int64
	WorkerID    int64
}

// GossipAdapter advertises the local generator identity over memberlist and
// flags peers that claim the same (partition, worker) pair. It never assigns
// identities.
type GossipAdapter struct {
	list *memberlist.Memberlist
	conf *memberlist.Config

	nodeID   string
	rpcAddr  string
	identity Identity

	mu        sync.RWMutex
	peers     map[string]Peer
	conflicts map[string]Peer
}

// Ensure GossipAdapter implements Memberlist Delegate
var _ memberlist.Delegate = (*GossipAdapter)(nil)
var _ memberlist.EventDelegate = (*GossipAdapter)(nil)

// NewGossipAdapter creates a new membership adapter.
func NewGossipAdapter(nodeID string, bindAddr string, bindPort int, rpcAddr string, identity Identity) (*GossipAdapter, error) {
	config := memberlist.DefaultLANConfig()
	config.Name = nodeID
	config.BindAddr = bindAddr
	config.BindPort = bindPort
	config.AdvertisePort = bindPort

	// memberlist logs through the standard logger; our logs go through gosdk.
	config.LogOutput = io.Discard

	adapter := newAdapter(nodeID, rpcAddr, identity)
	adapter.conf = config

	config.Events = adapter   // Handle join/leave events
	config.Delegate = adapter // Handle metadata exchange

	list, err := memberlist.Create(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create memberlist: %w", err)
	}
	adapter.list = list

	return adapter, nil
}

func newAdapter(nodeID string, rpcAddr string, identity Identity) *GossipAdapter {
	return &GossipAdapter{
		nodeID:    nodeID,
		rpcAddr:   rpcAddr,
		identity:  identity,
		peers:     make(map[string]Peer),
		conflicts: make(map[string]Peer),
	}
}

// Join joins the cluster using seed nodes.
func (g *GossipAdapter) Join(seeds []string) error {
	if len(seeds) > 0 {
		_, err := g.list.Join(seeds)
		if err != nil {
			return fmt.Errorf("failed to join cluster: %w", err)
		}
	}
	return nil
}

// Leave leaves the cluster.
func (g *GossipAdapter) Leave() error {
	if err := g.list.Leave(time.Second * 5); err != nil {
		return err
	}
	return g.list.Shutdown()
}

// NodeMeta returns the local node metadata.
func (g *GossipAdapter) NodeMeta(limit int) []byte {
	data, err := json.Marshal(nodeMeta{
		PartitionID: g.identity.PartitionID,
		WorkerID:    g.identity.WorkerID,
		RPCAddr:     g.rpcAddr,
	})
	if err != nil {
		logger.Warnw("failed to marshal gossip node meta", "error", err.Error())
		return nil
	}
	if len(data) > limit && limit > 0 {
		logger.Warnw("gossip node meta exceeds limit", "size", len(data), "limit", limit)
		return nil
	}
	return data
}

// NotifyMsg, GetBroadcasts, LocalState, MergeRemoteState are not used here but required by Delegate
func (g *GossipAdapter) NotifyMsg([]byte)                           {}
func (g *GossipAdapter) GetBroadcasts(overhead, limit int) [][]byte { return nil }
func (g *GossipAdapter) LocalState(join bool) []byte                { return nil }
func (g *GossipAdapter) MergeRemoteState(buf []byte, join bool)     {}

// Members returns the known remote generators sorted by name.
func (g *GossipAdapter) Members() []Peer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedPeers(g.peers)
}

// Conflicts returns peers advertising the local (partition, worker) pair.
func (g *GossipAdapter) Conflicts() []Peer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedPeers(g.conflicts)
}

// LocalNode returns the local generator as a peer.
func (g *GossipAdapter) LocalNode() Peer {
	return Peer{
		Name:        g.nodeID,
		Addr:        g.rpcAddr,
		PartitionID: g.identity.PartitionID,
		WorkerID:    g.identity.WorkerID,
	}
}

// NotifyJoin is invoked when a node joins.
func (g *GossipAdapter) NotifyJoin(node *memberlist.Node) {
	if node.Name == g.nodeID {
		return
	}

	meta, ok := decodeMeta(node.Meta)
	if !ok {
		logger.Warnw("Ignoring peer without generator metadata", "id", node.Name)
		return
	}
	addr := meta.RPCAddr
	if addr == "" {
		addr = node.Address()
	}
	g.observe(Peer{
		Name:        node.Name,
		Addr:        addr,
		PartitionID: meta.PartitionID,
		WorkerID:    meta.WorkerID,
	})
}

// NotifyLeave is invoked when a node leaves.
func (g *GossipAdapter) NotifyLeave(node *memberlist.Node) {
	logger.Infow("Generator left", "id", node.Name)

	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.peers, node.Name)
	delete(g.conflicts, node.Name)
}

// NotifyUpdate is invoked when a node is updated.
func (g *GossipAdapter) NotifyUpdate(node *memberlist.Node) {
	g.NotifyJoin(node)
}

func (g *GossipAdapter) observe(p Peer) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.peers[p.Name] = p
	if p.PartitionID == g.identity.PartitionID && p.WorkerID == g.identity.WorkerID {
		if _, known := g.conflicts[p.Name]; !known {
			logger.Errorw("Worker identity collision, IDs from both generators may clash",
				"peer", p.Name,
				"addr", p.Addr,
				"partition_id", p.PartitionID,
				"worker_id", p.WorkerID)
		}
		g.conflicts[p.Name] = p
		return
	}

	delete(g.conflicts, p.Name)
	logger.Infow("Generator joined", "id", p.Name, "addr", p.Addr, "partition_id", p.PartitionID, "worker_id", p.WorkerID)
}

type nodeMeta struct {
	PartitionID int64  `json:"partition_id"`
	WorkerID    int64  `json:"worker_id"`
	RPCAddr     string `json:"rpc_addr"`
}

func decodeMeta(meta []byte) (nodeMeta, bool) {
	if len(meta) == 0 {
		return nodeMeta{}, false
	}
	var m nodeMeta
	if err := json.Unmarshal(meta, &m); err != nil {
		logger.Warnw("failed to decode node metadata", "error", err.Error())
		return nodeMeta{}, false
	}
	return m, true
}

func sortedPeers(m map[string]Peer) []Peer {
	peers := make([]Peer, 0, len(m))
	for _, p := range m {
		peers = append(peers, p)
	}
	sort.Slice(peers, func(i, j int) bool {
		return peers[i].Name < peers[j].Name
	})
	return peers
}
