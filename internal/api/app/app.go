package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"google.golang.org/grpc"

	httpHandler "github.com/anthanhphan/go-idgen-service/internal/api/adapter/inbound/http"
	grpcHandler "github.com/anthanhphan/go-idgen-service/internal/api/adapter/inbound/grpc"
	"github.com/anthanhphan/go-idgen-service/internal/api/config"
	"github.com/anthanhphan/go-idgen-service/internal/api/port"
	"github.com/anthanhphan/go-idgen-service/internal/api/service"
	"github.com/anthanhphan/go-idgen-service/pkg/gossip"
	"github.com/anthanhphan/go-idgen-service/pkg/idgen"
	"github.com/anthanhphan/go-idgen-service/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg        *config.Config
	httpServer *httpHandler.Server
	grpcServer *grpcHandler.Server
	gossip     *gossip.GossipAdapter
	redis      *redis.Client
	IDGen      *idgen.Generator
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Clock source
	clock, redisClient := newClock(cfg)

	// 4. Snowflake generator
	identity := newIdentity(cfg.IDGen)
	idGen, err := idgen.New(cfg.IDGen.PartitionID, identity, clock,
		idgen.WithEpoch(cfg.IDGen.Epoch),
		idgen.WithWaitInterval(time.Duration(cfg.IDGen.WaitIntervalUS)*time.Microsecond),
	)
	if err != nil {
		closeRedis(redisClient)
		return nil, fmt.Errorf("failed to init snowflake: %w", err)
	}

	// 5. Gossip (collision detection only)
	var (
		gossipAdapter *gossip.GossipAdapter
		peers         port.PeerDirectory
	)
	if cfg.Gossip.Enabled {
		nodeName := cfg.Gossip.NodeName
		if nodeName == "" {
			host, _ := os.Hostname()
			nodeName = fmt.Sprintf("%s-%d", host, cfg.Gossip.Port)
		}
		rpcAddr := net.JoinHostPort(cfg.Server.AdvertiseHost, fmt.Sprint(cfg.Server.GRPCPort))
		gossipAdapter, err = gossip.NewGossipAdapter(nodeName, cfg.Gossip.BindAddr, cfg.Gossip.Port, rpcAddr, gossip.Identity{
			PartitionID: idGen.PartitionID(),
			WorkerID:    idGen.WorkerID(),
		})
		if err != nil {
			closeRedis(redisClient)
			return nil, fmt.Errorf("failed to init gossip: %w", err)
		}
		peers = gossipAdapter
	}

	// 6. Service & inbound adapters
	svc := service.NewIDService(idGen, peers, cfg.IDGen.MaxBatch)

	a := &App{
		cfg:    cfg,
		gossip: gossipAdapter,
		redis:  redisClient,
		IDGen:  idGen,
	}
	if cfg.Server.HTTPAddr != "" {
		a.httpServer = httpHandler.NewServer(cfg, svc)
	}
	if cfg.Server.GRPCPort > 0 {
		a.grpcServer = grpcHandler.NewServer(svc)
	}

	return a, nil
}

// newClock returns the configured time source. The Redis client is returned
// so it can be closed on shutdown; it is nil for the system clock.
func newClock(cfg *config.Config) (idgen.Clock, *redis.Client) {
	if cfg.Clock.Source != config.ClockSourceRedis {
		return &idgen.SystemClock{}, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	clock := idgen.NewRedisClock(redisClient, idgen.RedisClockOptions{
		Timeout: time.Duration(cfg.Clock.TimeoutMS) * time.Millisecond,
		Breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:             "redis-clock",
			FailureThreshold: 3,
			SuccessThreshold: 1,
			OpenTimeout:      5 * time.Second,
			OnStateChange: func(name string, from, to resilience.CircuitBreakerState) {
				logger.Warnw("Clock source breaker changed state", "breaker", name, "from", string(from), "to", string(to))
			},
		}),
	})
	return clock, redisClient
}

func closeRedis(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.Warnw("Redis close failed", "error", err.Error())
	}
}

func newIdentity(cfg config.IDGenConfig) idgen.IdentityResolver {
	var strategy idgen.IdentityResolver = idgen.HardwareIdentity{Fallback: idgen.HostnameIdentity{}}
	if cfg.WorkerStrategy == config.WorkerStrategyHostname {
		strategy = idgen.HostnameIdentity{}
	}
	return idgen.WithOverride(cfg.WorkerID, strategy)
}

func (a *App) Run() error {
	a.joinCluster()

	logger.Infow("ID service starting",
		"http", a.cfg.Server.HTTPAddr,
		"grpc", a.cfg.Server.GRPCPort,
		"partition", a.IDGen.PartitionID(),
		"worker", a.IDGen.WorkerID(),
		"epoch", a.IDGen.Epoch(),
		"clock", a.cfg.Clock.Source)

	serverErrCh := make(chan error, 2)

	// Start gRPC
	if a.grpcServer != nil {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", a.cfg.Server.GRPCPort))
		if err != nil {
			err = fmt.Errorf("failed to listen on port %d: %w", a.cfg.Server.GRPCPort, err)
			logger.Errorw("ID server failed to start", "error", err.Error())
			return a.shutdown(err)
		}
		go func() {
			if err := a.grpcServer.Serve(listener); err != nil {
				serverErrCh <- fmt.Errorf("gRPC server failed: %w", err)
			}
		}()
	}

	// Start HTTP
	if a.httpServer != nil {
		go func() {
			if err := a.httpServer.Start(); err != nil {
				serverErrCh <- fmt.Errorf("http server failed: %w", err)
			}
		}()
	}

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		// Ignore expected stop errors.
		if !strings.Contains(err.Error(), "use of closed network connection") && !errors.Is(err, grpc.ErrServerStopped) {
			runErr = err
			logger.Errorw("ID server exited unexpectedly", "error", err.Error())
		}
	}

	return a.shutdown(runErr)
}

// shutdown leaves the cluster and releases every component, returning runErr
// or, failing that, the first shutdown error.
func (a *App) shutdown(runErr error) error {
	logger.Info("Shutting down ID services")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.gossip != nil {
		if err := a.gossip.Leave(); err != nil {
			logger.Warnw("Gossip leave failed", "error", err.Error())
		}
	}
	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			logger.Errorw("HTTP shutdown error", "error", err.Error())
			if runErr == nil {
				runErr = err
			}
		}
	}
	if a.grpcServer != nil {
		a.grpcServer.Stop(ctx)
	}
	closeRedis(a.redis)

	return runErr
}

func (a *App) joinCluster() {
	if a.gossip == nil {
		return
	}

	seeds := make([]string, 0, len(a.cfg.Gossip.Seeds))
	for _, seed := range a.cfg.Gossip.Seeds {
		if seed != "" {
			seeds = append(seeds, seed)
		}
	}
	if len(seeds) == 0 {
		return
	}

	var joinErr error
	for i := 0; i < 5; i++ {
		joinErr = a.gossip.Join(seeds)
		if joinErr == nil {
			break
		}
		logger.Warnw("Failed to join cluster, retrying...", "attempt", i+1, "error", joinErr.Error())
		time.Sleep(2 * time.Second)
	}
	if joinErr != nil {
		// Collision detection is advisory; keep serving.
		logger.Errorw("Failed to join cluster after retries", "error", joinErr.Error())
	}
}
