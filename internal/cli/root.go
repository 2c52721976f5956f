// Package cli contains the clinic CLI commands. Each command corresponds to
// one screen of the clinic client; route guards decide whether the screen
// renders, redirects, or shows the forbidden view.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/internal/config"
	"github.com/smartclinic/clinic-client/internal/output"
	"github.com/smartclinic/clinic-client/internal/session"
	"github.com/smartclinic/clinic-client/pkg/logging"
)

var (
	cfg     *config.Config
	logger  *logging.Logger
	client  *api.Client
	store   *session.Store
	printer *output.Printer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clinic",
	Short: "Smart Clinic command-line client",
	Long: `clinic is the command-line client for the Smart Clinic service.

Log in as a doctor or patient, browse your dashboard, book appointments,
and issue prescriptions.

Example usage:
  clinic login --role patient --email ann@example.com --password secret
  clinic dashboard                   # Role-specific dashboard
  clinic availability --doctor 7 --date 2026-09-03
  clinic book --doctor 7 --date 2026-09-03 --slot 10:00
  clinic logout`,
	Version:       "dev",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initApp()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	rootCmd.Version = v
}

// initApp wires the client stack: config, logger, API client, session store.
// The session initializes synchronously from its persisted blob, and the
// store's Logout is registered as the client's unauthorized handler, so any
// 401/403 under a held token ends the session exactly once.
func initApp() {
	if store != nil {
		return
	}
	cfg = config.LoadDotenv()
	logger = logging.New(cfg.LogLevel)
	printer = output.NewPrinter()

	client = api.New(cfg.APIBaseURL, cfg.HTTPTimeout, logger)
	store = session.NewStore(cfg.SessionFile, client, &cliNavigator{}, logger)
	client.OnUnauthorized(store.Logout)
	store.Initialize()
}

// cliNavigator is the CLI's stand-in for SPA navigation: a forced redirect
// becomes a hint about which command to run next.
type cliNavigator struct{}

func (n *cliNavigator) Replace(path string) {
	if printer != nil && path == "/login" {
		printer.Warn("Session ended. Run 'clinic login' to sign in again.")
	}
}
