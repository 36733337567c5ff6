package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version 在构建时通过 -ldflags "-X main.version=..." 注入
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "wellcampus",
		Short: "WellCampus 健康面板服务",
		Long:  "WellCampus 为学生与管理员提供健康指标、活动报名、餐食记录、社区动态与内容管理的 JSON API。",
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newSlotsCommand())
	rootCmd.AddCommand(newAdminCommand())
	rootCmd.AddCommand(newVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command failed: %v\n", err)
		os.Exit(1)
	}
}
