package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/app"
)

var version = "dev"

var opts app.Options

var rootCmd = &cobra.Command{
	Use:   "syshealth",
	Short: "System health reporting for Linux servers",
	Long: `syshealth runs a fixed battery of host checks (cpu, memory, disk,
network, services, security, logs, hardware), prints the results and
writes a timestamped report. Run it from cron or a systemd timer.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.CheckPrivilege(os.Geteuid()); err != nil {
			return err
		}
		opts.ConfigRequired = cmd.Flags().Changed("config")
		opts.Version = version
		return app.Run(cmd.Context(), opts)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("syshealth %s\n", version)
	},
}

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the report sections in run order",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range app.CheckerNames() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "/etc/syshealth.conf", "config file")
	rootCmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "report directory (overrides config)")
	rootCmd.Flags().BoolVar(&opts.ForceEmail, "email", false, "mail the report even when disabled in config")
	rootCmd.Flags().BoolVar(&opts.HTML, "html", false, "also write an HTML report")
	rootCmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd, checksCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
