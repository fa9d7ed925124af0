package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/user/qrisk-adk/pkg/logging"
	"github.com/user/qrisk-adk/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engines as a JSON HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		inventoryPath, _ := cmd.Flags().GetString("inventory")
		addr, _ := cmd.Flags().GetString("addr")
		if !cmd.Flags().Changed("addr") {
			if env := os.Getenv("QRISK_ADDR"); env != "" {
				addr = env
			}
		}

		profile, err := loadProfile(cmd)
		if err != nil {
			fmt.Printf("Error loading profile: %v\n", err)
			return
		}
		inv, err := loadInventory(inventoryPath)
		if err != nil {
			fmt.Printf("Error loading inventory: %v\n", err)
			return
		}

		if !DebugMode {
			gin.SetMode(gin.ReleaseMode)
		}
		logging.SetJSON()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logging.Infof("Serving %s (%s) with %d assets", profile.BankName, profile.BankSize, len(inv.Assets))
		if err := server.New(profile, inv).Run(ctx, addr); err != nil {
			fmt.Printf("Error running server: %v\n", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringP("inventory", "i", "", "YAML inventory file (defaults to the sample bank)")
	serveCmd.Flags().String("addr", ":8080", "Listen address (or QRISK_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
