package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fdledger-cli",
		Short: "Branch ledger CLI tool",
		Long:  `A command line interface for triggering accrual jobs and checking the ledger.`,
	}

	root.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Accrual job triggers",
	}
	jobsCmd.AddCommand(
		runJobCmd("fd-interest", "Credit monthly interest on active fixed deposits"),
		runJobCmd("fd-maturity", "Mature fixed deposits past their maturity date"),
		runJobCmd("savings-interest", "Credit monthly savings interest"),
	)

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Ledger reconciliation checks",
	}
	reconcileCmd.AddCommand(reconcileReportCmd(), reconcileAccountCmd())

	root.AddCommand(jobsCmd, reconcileCmd, accountCmd())

	return root
}

func runJobCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/jobs/"+name, http.StatusOK)
		},
	}
}

func reconcileReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Replay every account against its entry chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/reconciliation/report", http.StatusOK)
		},
	}
}

func reconcileAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account <id>",
		Short: "Replay a single account against its entry chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/reconciliation/accounts/"+args[0], http.StatusOK)
		},
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account lookups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Fetch an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/accounts/"+args[0], http.StatusOK)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "transactions <id>",
		Short: "List an account's ledger entries, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/accounts/"+args[0]+"/transactions", http.StatusOK)
		},
	})

	return cmd
}

func request(method, path string, wantStatus int) error {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	printJSONBytes(body)
	return nil
}

func printJSONBytes(body []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
