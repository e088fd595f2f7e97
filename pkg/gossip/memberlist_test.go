package gossip

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/hashicorp/memberlist"
)

func TestDecodeMeta(t *testing.T) {
	meta := map[string]interface{}{
		"partition_id": 5,
		"worker_id":    3,
		"rpc_addr":     "10.0.0.7:9090",
	}
	data, _ := json.Marshal(meta)

	m, ok := decodeMeta(data)
	if !ok {
		t.Fatalf("expected metadata to decode")
	}
	if m.PartitionID != 5 {
		t.Errorf("expected partition 5, got %d", m.PartitionID)
	}
	if m.WorkerID != 3 {
		t.Errorf("expected worker 3, got %d", m.WorkerID)
	}
	if m.RPCAddr != "10.0.0.7:9090" {
		t.Errorf("expected 10.0.0.7:9090, got %s", m.RPCAddr)
	}

	if _, ok := decodeMeta(nil); ok {
		t.Errorf("expected empty metadata to be rejected")
	}
	if _, ok := decodeMeta([]byte("{")); ok {
		t.Errorf("expected malformed metadata to be rejected")
	}
}

func TestGossipAdapter_NodeMeta(t *testing.T) {
	g := newAdapter("idgen-0", "10.0.0.1:9090", Identity{PartitionID: 2, WorkerID: 9})

	data := g.NodeMeta(512)
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}

	if m["worker_id"].(float64) != 9 {
		t.Errorf("expected 9, got %v", m["worker_id"])
	}
	if m["rpc_addr"].(string) != "10.0.0.1:9090" {
		t.Errorf("expected 10.0.0.1:9090, got %v", m["rpc_addr"])
	}
}

func nodeWithMeta(t *testing.T, name string, meta nodeMeta) *memberlist.Node {
	t.Helper()
	data, err := json.Marshal(meta)
	if err != nil {
		t.Fatal(err)
	}
	return &memberlist.Node{Name: name, Addr: net.ParseIP("10.0.0.2"), Port: 7946, Meta: data}
}

func TestGossipAdapter_DetectsIdentityCollision(t *testing.T) {
	g := newAdapter("idgen-0", "10.0.0.1:9090", Identity{PartitionID: 5, WorkerID: 3})

	g.NotifyJoin(nodeWithMeta(t, "idgen-1", nodeMeta{PartitionID: 5, WorkerID: 4}))
	g.NotifyJoin(nodeWithMeta(t, "idgen-2", nodeMeta{PartitionID: 5, WorkerID: 3, RPCAddr: "10.0.0.2:9090"}))
	g.NotifyJoin(nodeWithMeta(t, "idgen-3", nodeMeta{PartitionID: 6, WorkerID: 3}))

	if got := len(g.Members()); got != 3 {
		t.Fatalf("expected 3 members, got %d", got)
	}

	conflicts := g.Conflicts()
	if len(conflicts) != 1 || conflicts[0].Name != "idgen-2" {
		t.Fatalf("expected idgen-2 to conflict, got %v", conflicts)
	}
	if conflicts[0].Addr != "10.0.0.2:9090" {
		t.Errorf("expected advertised rpc addr, got %s", conflicts[0].Addr)
	}

	// The peer is reconfigured to a free worker ID.
	g.NotifyUpdate(nodeWithMeta(t, "idgen-2", nodeMeta{PartitionID: 5, WorkerID: 8}))
	if got := len(g.Conflicts()); got != 0 {
		t.Fatalf("expected conflict to clear, got %d", got)
	}

	g.NotifyLeave(&memberlist.Node{Name: "idgen-1"})
	if got := len(g.Members()); got != 2 {
		t.Fatalf("expected 2 members after leave, got %d", got)
	}
}

func TestGossipAdapter_IgnoresSelf(t *testing.T) {
	g := newAdapter("idgen-0", "10.0.0.1:9090", Identity{PartitionID: 5, WorkerID: 3})

	g.NotifyJoin(nodeWithMeta(t, "idgen-0", nodeMeta{PartitionID: 5, WorkerID: 3}))

	if len(g.Members()) != 0 || len(g.Conflicts()) != 0 {
		t.Fatalf("local node must not be tracked as a peer")
	}
	if g.LocalNode().WorkerID != 3 {
		t.Errorf("expected local worker 3, got %d", g.LocalNode().WorkerID)
	}
}
