package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wellcampus/internal/config"
	"github.com/wellcampus/internal/db"
)

func newAdminCommand() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "管理员账号",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "创建管理员账号，已存在时不做修改",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if email == "" || password == "" {
				return errors.New("email and password are required")
			}

			_, gdb, err := openDatabase(config.Load())
			if err != nil {
				return err
			}
			if err := db.EnsureAdmin(gdb, email, password); err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "管理员账号已就绪: %s\n", email)
			return nil
		},
	}
	addCmd.Flags().String("email", "", "管理员邮箱")
	addCmd.Flags().String("password", "", "管理员密码")
	adminCmd.AddCommand(addCmd)

	return adminCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "输出版本号",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
