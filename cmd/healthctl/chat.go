package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/vitaltrack/backend/internal/chat"
)

var (
	chatURL   string
	chatToken string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the health assistant of a running API",
	Long:  "Reads one question per line from stdin and streams each answer as it arrives. Send an empty line or EOF to quit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := chatToken
		if token == "" {
			token = os.Getenv("VITALTRACK_TOKEN")
		}
		if token == "" {
			return fmt.Errorf("a token is required (--token or VITALTRACK_TOKEN)")
		}

		client := chat.NewClient(chatURL, token)
		transcript := chat.NewTranscript("")
		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return scanner.Err()
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				return nil
			}

			printed := 0
			_, err := client.Ask(cmd.Context(), transcript, question, func(full string) {
				fmt.Fprint(out, full[printed:])
				printed = len(full)
			})
			fmt.Fprintln(out)
			if err != nil {
				return err
			}
			transcript.Commit(strconv.Itoa(transcript.Len()))
		}
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatURL, "url", "http://localhost:8080", "Base URL of the API")
	chatCmd.Flags().StringVar(&chatToken, "token", "", "Bearer token from /auth/login")
}
