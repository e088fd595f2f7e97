package idgen

import "time"

const (
	// Configuration for 64-bit ID:
	// 1 bit: Unused (sign bit)
	// 41 bits: Timestamp (milliseconds since Epoch) - gives ~69 years
	// 5 bits: Partition ID (datacenter / logical shard)
	// 5 bits: Worker ID - 32 generators per partition
	// 12 bits: Sequence - gives 4096 IDs per millisecond per worker

	TimestampBits = 41
	PartitionBits = 5
	WorkerBits    = 5
	SequenceBits  = 12

	MaxTimestamp   = -1 ^ (-1 << TimestampBits)
	MaxPartitionID = -1 ^ (-1 << PartitionBits)
	MaxWorkerID    = -1 ^ (-1 << WorkerBits)
	MaxSequence    = -1 ^ (-1 << SequenceBits)

	workerShift    = SequenceBits
	partitionShift = SequenceBits + WorkerBits
	timestampShift = SequenceBits + WorkerBits + PartitionBits

	// DefaultEpoch is 2023-04-06 21:25:25.195 UTC. It must never change for a
	// deployed partition.
	DefaultEpoch = 1680816325195
)

// Fields is the unpacked form of an ID.
type Fields struct {
	// Timestamp is milliseconds elapsed since the generator's epoch.
	Timestamp   int64 `json:"timestamp"`
	PartitionID int64 `json:"partition_id"`
	WorkerID    int64 `json:"worker_id"`
	Sequence    int64 `json:"sequence"`
}

// UnixMilli converts the timestamp field back to Unix milliseconds.
func (f Fields) UnixMilli(epoch int64) int64 {
	return f.Timestamp + epoch
}

// Time returns the wall-clock instant the ID was minted at.
func (f Fields) Time(epoch int64) time.Time {
	return time.UnixMilli(f.UnixMilli(epoch)).UTC()
}

// Encode packs f into the fixed 64-bit layout.
func Encode(f Fields) (uint64, error) {
	if err := checkField("timestamp", f.Timestamp, MaxTimestamp); err != nil {
		return 0, err
	}
	if err := checkField("partition_id", f.PartitionID, MaxPartitionID); err != nil {
		return 0, err
	}
	if err := checkField("worker_id", f.WorkerID, MaxWorkerID); err != nil {
		return 0, err
	}
	if err := checkField("sequence", f.Sequence, MaxSequence); err != nil {
		return 0, err
	}

	return uint64(f.Timestamp)<<timestampShift |
		uint64(f.PartitionID)<<partitionShift |
		uint64(f.WorkerID)<<workerShift |
		uint64(f.Sequence), nil
}

// Decode is the inverse of Encode. The sign bit is ignored.
func Decode(id uint64) Fields {
	return Fields{
		Timestamp:   int64(id>>timestampShift) & MaxTimestamp,
		PartitionID: int64(id>>partitionShift) & MaxPartitionID,
		WorkerID:    int64(id>>workerShift) & MaxWorkerID,
		Sequence:    int64(id) & MaxSequence,
	}
}

func checkField(name string, value, max int64) error {
	if value < 0 || value > max {
		return &FieldOverflowError{Field: name, Value: value, Max: max}
	}
	return nil
}
