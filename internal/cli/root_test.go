package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anthanhphan/go-idgen-service/internal/api/domain"
	"github.com/anthanhphan/go-idgen-service/internal/api/service/mocks"
	"github.com/anthanhphan/go-idgen-service/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func run(t *testing.T, node *mocks.MockIDNode, args ...string) (string, error) {
	t.Helper()
	root := NewRoot(node)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNextCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockIDNode(ctrl)
	node.EXPECT().Next(gomock.Any(), "10.0.0.1:9090").Return(uint64(4194971648), nil)

	out, err := run(t, node, "next", "--addr", "10.0.0.1:9090")
	require.NoError(t, err)
	assert.Equal(t, "4194971648\n", out)
}

func TestBatchCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockIDNode(ctrl)
	node.EXPECT().NextBatch(gomock.Any(), defaultAddr, 3).Return([]uint64{7, 8, 9}, nil)

	out, err := run(t, node, "batch", "--count", "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "8", "9"}, strings.Fields(out))
}

func TestDecodeCommand_Local(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockIDNode(ctrl)

	out, err := run(t, node, "decode", "4194971649", "--epoch", "0")
	require.NoError(t, err)

	var decoded domain.DecodedID
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, uint64(4194971649), decoded.ID)
	assert.Equal(t, int64(1000), decoded.Timestamp)
	assert.Equal(t, int64(5), decoded.PartitionID)
	assert.Equal(t, int64(3), decoded.WorkerID)
	assert.Equal(t, int64(1), decoded.Sequence)
	assert.True(t, decoded.Time.Equal(time.UnixMilli(1000)))
}

func TestDecodeCommand_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockIDNode(ctrl)

	_, err := run(t, node, "decode", "abc")
	assert.Error(t, err)

	_, err = run(t, node, "decode", "9223372036854775808")
	assert.ErrorContains(t, err, "sign bit")
}

func TestDecodeCommand_Remote(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockIDNode(ctrl)
	node.EXPECT().Decode(gomock.Any(), defaultAddr, uint64(42)).Return(&domain.DecodedID{ID: 42, Sequence: 42}, nil)

	out, err := run(t, node, "decode", "42", "--remote")
	require.NoError(t, err)
	assert.Contains(t, out, `"sequence": 42`)
}

func TestInfoCommand_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockIDNode(ctrl)
	clash := domain.Peer{Name: "idgen-2", PartitionID: 5, WorkerID: 3}
	node.EXPECT().Info(gomock.Any(), defaultAddr).Return(&domain.GeneratorInfo{
		PartitionID: 5,
		WorkerID:    3,
		Conflicts:   []domain.Peer{clash},
	}, nil)

	out, err := run(t, node, "info")
	assert.ErrorContains(t, err, "share partition 5 worker 3")
	assert.Contains(t, out, "idgen-2")
}

func TestBench_Unique(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockIDNode(ctrl)

	var next atomic.Uint64
	node.EXPECT().NextBatch(gomock.Any(), gomock.Any(), 5).DoAndReturn(func(ctx context.Context, addr string, count int) ([]uint64, error) {
		ids := make([]uint64, count)
		for i := range ids {
			ids[i] = next.Add(1)
		}
		return ids, nil
	}).Times(40)

	res, err := runBench(context.Background(), node, []string{"a:1", "b:1"}, 4, 40, 5, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 200, res.IDs)
	assert.Zero(t, res.Duplicates)
}

func TestBench_DetectsDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockIDNode(ctrl)
	node.EXPECT().Next(gomock.Any(), gomock.Any()).Return(uint64(1), nil).Times(10)

	out, err := run(t, node, "bench", "--workers", "2", "--requests", "10")
	assert.ErrorContains(t, err, "found 9 duplicate ids")
	assert.Contains(t, out, `"duplicates": 9`)
}

func TestBench_StopsOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockIDNode(ctrl)
	node.EXPECT().Next(gomock.Any(), gomock.Any()).Return(uint64(0), &idgen.ClockRegressionError{Last: 2, Now: 1}).MinTimes(1)

	_, err := runBench(context.Background(), node, []string{"a:1"}, 1, 100, 1, time.Second)
	assert.ErrorIs(t, err, idgen.ErrClockRegression)
}
