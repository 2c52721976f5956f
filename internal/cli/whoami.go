package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	sess := store.Snapshot()
	if !store.Authenticated() {
		printer.Println("Not logged in.")
		return nil
	}

	printer.Printf("User:  %s\n", sess.User)
	printer.Printf("Role:  %s\n", sess.Role)

	claims, err := store.Claims()
	if err != nil {
		// Opaque tokens are fine; there is just nothing more to show.
		return nil
	}
	if !claims.ExpiresAt.IsZero() {
		printer.Printf("Token: expires %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
		if claims.Expired(time.Now()) {
			printer.Warn("The stored token has expired; the next request will end the session.")
		}
	}
	return nil
}
