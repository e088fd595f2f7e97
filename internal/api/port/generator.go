package port

import (
	"context"

	"github.com/anthanhphan/go-idgen-service/pkg/gossip"
	"github.com/anthanhphan/go-idgen-service/pkg/idgen"
)

//go:generate mockgen -destination=../service/mocks/generator_mock.go -package=mocks -source=generator.go

// IDGenerator is the snowflake generator the service issues IDs from.
type IDGenerator interface {
	NextContext(ctx context.Context) (uint64, error)
	Decode(id uint64) idgen.Fields
	PartitionID() int64
	WorkerID() int64
	Epoch() int64
}

// PeerDirectory reports other generators seen through gossip.
type PeerDirectory interface {
	Members() []gossip.Peer
	Conflicts() []gossip.Peer
}
