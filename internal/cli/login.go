package cli

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/internal/routes"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as a doctor or patient",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear stored credentials",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().String("role", "", "account role: doctor or patient")
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")
	_ = loginCmd.MarkFlagRequired("role")
	_ = loginCmd.MarkFlagRequired("email")
}

func runLogin(cmd *cobra.Command, args []string) error {
	// The login screen is public: an authenticated user is sent to their
	// dashboard instead of seeing it again.
	screen, err := resolveScreen(routes.PathLogin)
	if err != nil {
		return err
	}
	if screen != routes.PathLogin {
		sess := store.Snapshot()
		printer.Warn("Already logged in as %s (%s). Run 'clinic logout' first.", sess.User, sess.Role)
		return nil
	}

	role, _ := cmd.Flags().GetString("role")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password, err = promptPassword()
		if err != nil {
			return err
		}
	}

	sess, err := store.Login(cmd.Context(), api.Role(strings.ToUpper(role)), api.Credentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		printer.Error("%s", api.UserMessage(err))
		return err
	}

	printer.Success("Logged in as %s (%s).", sess.User, sess.Role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if !store.Authenticated() {
		printer.Println("Not logged in.")
		return nil
	}
	store.Logout()
	printer.Success("Logged out.")
	return nil
}

func promptPassword() (string, error) {
	printer.Printf("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.New("could not read password")
	}
	return strings.TrimSpace(line), nil
}
