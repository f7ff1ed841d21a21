package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var genesisData string

// genesisCmd represents the genesis command
var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Root a new ledger with the given payload",
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := json.Marshal(struct {
			Data string `json:"data"`
		}{
			Data: genesisData,
		})
		if err != nil {
			log.Fatal(err)
		}

		resp, err := http.Post(fmt.Sprintf("%s/v1/ledger/genesis", url), "application/json", bytes.NewBuffer(doc))
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
	rootCmd.AddCommand(genesisCmd)
	genesisCmd.Flags().StringVarP(&genesisData, "data", "d", "genesis", "Payload for the genesis block.")
}
