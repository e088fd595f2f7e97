package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anthanhphan/go-idgen-service/internal/api/adapter/outbound/idclient"
	"github.com/anthanhphan/go-idgen-service/internal/cli"
	"github.com/anthanhphan/gosdk/logger"
)

func main() {
	logger.InitLogger(&logger.Config{
		LogLevel:    logger.LevelInfo,
		LogEncoding: logger.EncodingJSON,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	node := idclient.NewGrpcAdapter()
	defer node.Close()

	if err := cli.NewRoot(node).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "idctl:", err)
		node.Close()
		stop()
		os.Exit(1)
	}
}
