// Command printpayctl holds operator helpers for the payment callback service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"printpay/config"
	"printpay/internal/auth"
	"printpay/internal/domain"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "printpayctl",
		Short: "Operator tools for the payment callback service",
	}
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(statusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func tokenCmd() *cobra.Command {
	var scopes []string
	cmd := &cobra.Command{
		Use:   "token [operator-id]",
		Short: "Mint an ADMIN bearer token for the /api/v1/admin endpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			token, err := auth.NewSigner(&cfg.JWT).Issue(args[0], domain.RoleAdmin, scopes...)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&scopes, "scope", []string{auth.ScopeAll},
		"scopes to grant ("+domain.ScopePaymentsRead+", "+domain.ScopeUnmatchedRead+" or "+auth.ScopeAll+")")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [gateway-status]",
		Short: "Show how a gateway status code maps onto order and admin status",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			canonical := domain.NormalizeStatus(args[0])
			order := canonical.OrderStatus()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "canonical: %s\n", canonical)
			if !canonical.Settled() {
				fmt.Fprintln(out, "order:     unchanged (payment not settled)")
				return
			}
			fmt.Fprintf(out, "order:     %s\nadmin:     %s\n", order, order.AdminStatus())
		},
	}
}
