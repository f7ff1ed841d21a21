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

var appendData string

// appendCmd represents the append command
var appendCmd = &cobra.Command{
	Use:   "append",
	Short: "Append a block carrying the given payload",
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := json.Marshal(struct {
			Data string `json:"data"`
		}{
			Data: appendData,
		})
		if err != nil {
			log.Fatal(err)
		}

		resp, err := http.Post(fmt.Sprintf("%s/v1/ledger/append", url), "application/json", bytes.NewBuffer(doc))
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
	rootCmd.AddCommand(appendCmd)
	appendCmd.Flags().StringVarP(&appendData, "data", "d", "", "Payload to append.")
	appendCmd.MarkFlagRequired("data")
}
