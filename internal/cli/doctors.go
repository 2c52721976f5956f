package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/internal/output"
	"github.com/smartclinic/clinic-client/internal/routes"
)

var doctorsCmd = &cobra.Command{
	Use:   "doctors",
	Short: "List doctors available for booking",
	RunE:  runDoctors,
}

func init() {
	rootCmd.AddCommand(doctorsCmd)
}

func runDoctors(cmd *cobra.Command, args []string) error {
	if _, err := resolveScreen(routes.PathDashboard); err != nil {
		return err
	}

	doctors, err := client.Doctors(cmd.Context())
	if err != nil {
		printer.Error("%s", api.UserMessage(err))
		return err
	}
	if len(doctors) == 0 {
		printer.Println("No doctors registered yet.")
		return nil
	}

	table := output.NewTable(printer.Out(), []string{"ID", "Name", "Speciality", "Email"})
	for _, doc := range doctors {
		table.AddRow(strconv.FormatInt(doc.ID, 10), doc.Name, doc.Speciality, doc.Email)
	}
	table.Render()
	return nil
}
