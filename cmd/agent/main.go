package main

import (
	"fmt"
	"os"

	"github.com/luvnft/memeo/cmd/agent/commands"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "memeo",
	Short: "Meme token agent",
	Long:  `Autonomous agent that engages on X and manages meme tokens through a multisig safe.`,
}

func init() {
	rootCmd.AddCommand(commands.RunCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
