// Package cli holds the idctl commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/anthanhphan/go-idgen-service/internal/api/domain"
	"github.com/anthanhphan/go-idgen-service/internal/api/port"
	"github.com/anthanhphan/go-idgen-service/pkg/idgen"
	"github.com/spf13/cobra"
)

const defaultAddr = "127.0.0.1:9090"

// NewRoot constructs the idctl command tree on top of node.
func NewRoot(node port.IDNode) *cobra.Command {
	root := &cobra.Command{
		Use:           "idctl",
		Short:         "Snowflake ID service client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("addr", defaultAddr, "gRPC address of the ID server")
	root.PersistentFlags().Duration("timeout", 5*time.Second, "per-call timeout")

	root.AddCommand(newNextCommand(node))
	root.AddCommand(newBatchCommand(node))
	root.AddCommand(newDecodeCommand(node))
	root.AddCommand(newInfoCommand(node))
	root.AddCommand(newBenchCommand(node))
	return root
}

func newNextCommand(node port.IDNode) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Issue one ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			ctx, cancel := callContext(cmd)
			defer cancel()

			id, err := node.Next(ctx, addr)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
}

func newBatchCommand(node port.IDNode) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Issue a batch of IDs, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			count, _ := cmd.Flags().GetInt("count")
			ctx, cancel := callContext(cmd)
			defer cancel()

			ids, err := node.NextBatch(ctx, addr, count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range ids {
				if _, err := fmt.Fprintln(out, id); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Int("count", 10, "number of IDs")
	return cmd
}

func newDecodeCommand(node port.IDNode) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <id>",
		Short: "Split an ID into timestamp, partition, worker and sequence",
		Long:  "Decodes locally with --epoch unless --remote is set, in which case the server at --addr decodes with its own epoch.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}

			remote, _ := cmd.Flags().GetBool("remote")
			if remote {
				addr, _ := cmd.Flags().GetString("addr")
				ctx, cancel := callContext(cmd)
				defer cancel()

				decoded, err := node.Decode(ctx, addr, id)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), decoded)
			}

			if id>>63 != 0 {
				return fmt.Errorf("invalid id %d: sign bit set", id)
			}
			epoch, _ := cmd.Flags().GetInt64("epoch")
			return writeJSON(cmd.OutOrStdout(), decodeLocal(id, epoch))
		},
	}
	cmd.Flags().Int64("epoch", idgen.DefaultEpoch, "epoch in Unix milliseconds")
	cmd.Flags().Bool("remote", false, "ask the server instead of decoding locally")
	return cmd
}

func newInfoCommand(node port.IDNode) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the server's identity and known peers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			ctx, cancel := callContext(cmd)
			defer cancel()

			info, err := node.Info(ctx, addr)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), info); err != nil {
				return err
			}
			if !info.Healthy() {
				return fmt.Errorf("%d peer(s) share partition %d worker %d", len(info.Conflicts), info.PartitionID, info.WorkerID)
			}
			return nil
		},
	}
}

func decodeLocal(id uint64, epoch int64) *domain.DecodedID {
	f := idgen.Decode(id)
	return &domain.DecodedID{
		ID:          id,
		Timestamp:   f.Timestamp,
		UnixMilli:   f.UnixMilli(epoch),
		Time:        f.Time(epoch),
		PartitionID: f.PartitionID,
		WorkerID:    f.WorkerID,
		Sequence:    f.Sequence,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
