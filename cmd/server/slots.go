package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wellcampus/internal/config"
	"github.com/wellcampus/internal/store"
)

func newSlotsCommand() *cobra.Command {
	slotsCmd := &cobra.Command{
		Use:   "slots",
		Short: "查看或重置持久化槽位",
	}

	slotsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "列出已写入的槽位",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend()
			if err != nil {
				return err
			}
			keys, err := backend.Keys(cmd.Context())
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	})

	slotsCmd.AddCommand(&cobra.Command{
		Use:   "show <key>",
		Short: "输出槽位的 JSON 内容",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend()
			if err != nil {
				return err
			}
			raw, ok, err := backend.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("slot %s not found", args[0])
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, raw, "", "  "); err != nil {
				pretty.Reset()
				pretty.Write(raw)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	})

	slotsCmd.AddCommand(&cobra.Command{
		Use:   "reset <key>",
		Short: "删除槽位，下次启动时恢复默认值",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !store.IsKnownSlot(args[0]) {
				return fmt.Errorf("unknown slot %s", args[0])
			}
			backend, err := openBackend()
			if err != nil {
				return err
			}
			if err := backend.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "slot %s reset\n", args[0])
			return nil
		},
	})

	return slotsCmd
}

func openBackend() (store.Backend, error) {
	_, gdb, err := openDatabase(config.Load())
	if err != nil {
		return nil, err
	}
	return store.NewGormBackend(gdb), nil
}
