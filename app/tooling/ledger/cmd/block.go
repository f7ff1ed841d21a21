package cmd

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var blockNumber string

// blockCmd represents the block command
var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Print the block stored at the given number",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(fmt.Sprintf("%s/v1/ledger/block/%s", url, blockNumber))
		if err != nil {
			log.Fatal(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(string(body))
	},
}

func init() {
	rootCmd.AddCommand(blockCmd)
	blockCmd.Flags().StringVarP(&blockNumber, "number", "n", "", "Block number to retrieve.")
	blockCmd.MarkFlagRequired("number")
}
