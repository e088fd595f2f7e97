package http_handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthanhphan/go-idgen-service/internal/api/config"
	"github.com/anthanhphan/go-idgen-service/internal/api/domain"
	"github.com/anthanhphan/go-idgen-service/internal/api/port"
	"github.com/anthanhphan/go-idgen-service/internal/api/service/mocks"
	"github.com/anthanhphan/go-idgen-service/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestServer(t *testing.T) (*Server, *mocks.MockIDService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockIDService(ctrl)
	return NewServer(config.DefaultConfig(), svc), svc
}

func do(t *testing.T, s *Server, method, target string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := s.app.Test(httptest.NewRequest(method, target, nil), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp, body
}

func TestServer_Next(t *testing.T) {
	s, svc := newTestServer(t)
	svc.EXPECT().Next(gomock.Any()).Return(uint64(9223372036854775807), nil)

	resp, body := do(t, s, http.MethodPost, "/ids")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	// Served as a string so JSON clients keep all 63 bits.
	assert.Equal(t, "9223372036854775807", body["id"])
}

func TestServer_NextClockRegression(t *testing.T) {
	s, svc := newTestServer(t)
	svc.EXPECT().Next(gomock.Any()).Return(uint64(0), &idgen.ClockRegressionError{Last: 5000, Now: 2500})

	resp, body := do(t, s, http.MethodPost, "/ids")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "3", resp.Header.Get("Retry-After"))
	assert.Contains(t, body["error"], "clock moved backwards")
}

func TestServer_Batch(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(svc *mocks.MockIDService)
		wantStatus int
		wantIDs    []any
	}{
		{
			name:   "Success",
			target: "/ids/batch?count=3",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextBatch(gomock.Any(), 3).Return([]uint64{1, 2, 3}, nil)
			},
			wantStatus: http.StatusCreated,
			wantIDs:    []any{"1", "2", "3"},
		},
		{
			name:   "DefaultCount",
			target: "/ids/batch",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextBatch(gomock.Any(), 1).Return([]uint64{42}, nil)
			},
			wantStatus: http.StatusCreated,
			wantIDs:    []any{"42"},
		},
		{
			name:       "NotANumber",
			target:     "/ids/batch?count=abc",
			setup:      func(svc *mocks.MockIDService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "TooLarge",
			target: "/ids/batch?count=5000",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextBatch(gomock.Any(), 5000).Return(nil, fmt.Errorf("%w: 5000 > 1000", port.ErrBatchTooLarge))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Canceled",
			target: "/ids/batch?count=2",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextBatch(gomock.Any(), 2).Return(nil, context.DeadlineExceeded)
			},
			wantStatus: http.StatusRequestTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, svc := newTestServer(t)
			tt.setup(svc)

			resp, body := do(t, s, http.MethodPost, tt.target)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantIDs != nil {
				assert.Equal(t, tt.wantIDs, body["ids"])
			}
		})
	}
}

func TestServer_Decode(t *testing.T) {
	s, svc := newTestServer(t)
	svc.EXPECT().Decode(gomock.Any(), uint64(4194971649)).Return(&domain.DecodedID{
		ID:          4194971649,
		Timestamp:   1000,
		UnixMilli:   1000,
		Time:        time.UnixMilli(1000).UTC(),
		PartitionID: 5,
		WorkerID:    3,
		Sequence:    1,
	}, nil)

	resp, body := do(t, s, http.MethodGet, "/ids/4194971649")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "4194971649", body["id"])
	assert.EqualValues(t, 5, body["partition_id"])
	assert.EqualValues(t, 3, body["worker_id"])
	assert.EqualValues(t, 1, body["sequence"])
}

func TestServer_DecodeInvalid(t *testing.T) {
	s, svc := newTestServer(t)

	resp, _ := do(t, s, http.MethodGet, "/ids/not-an-id")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	svc.EXPECT().Decode(gomock.Any(), uint64(1)<<63).Return(nil, fmt.Errorf("%w: sign bit set", port.ErrInvalidID))
	resp, _ = do(t, s, http.MethodGet, "/ids/9223372036854775808")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Health(t *testing.T) {
	s, svc := newTestServer(t)
	svc.EXPECT().Info(gomock.Any()).Return(&domain.GeneratorInfo{Epoch: idgen.DefaultEpoch, PartitionID: 5, WorkerID: 3}, nil)

	resp, body := do(t, s, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["worker_id"])

	clash := domain.Peer{Name: "idgen-2", PartitionID: 5, WorkerID: 3}
	svc.EXPECT().Info(gomock.Any()).Return(&domain.GeneratorInfo{
		PartitionID: 5,
		WorkerID:    3,
		Peers:       []domain.Peer{clash},
		Conflicts:   []domain.Peer{clash},
	}, nil)

	resp, _ = do(t, s, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
