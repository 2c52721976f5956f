package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/internal/routes"
)

var prescribeCmd = &cobra.Command{
	Use:   "prescribe",
	Short: "Issue a prescription for a completed appointment (doctors)",
	RunE:  runPrescribe,
}

func init() {
	rootCmd.AddCommand(prescribeCmd)

	prescribeCmd.Flags().Int64("appointment", 0, "completed appointment id")
	prescribeCmd.Flags().String("notes", "", "therapy notes")
	_ = prescribeCmd.MarkFlagRequired("appointment")
	_ = prescribeCmd.MarkFlagRequired("notes")
}

func runPrescribe(cmd *cobra.Command, args []string) error {
	if err := guardRole(routes.PathDoctorDashboard); err != nil {
		return err
	}

	appointmentID, _ := cmd.Flags().GetInt64("appointment")
	notes, _ := cmd.Flags().GetString("notes")
	ctx := cmd.Context()

	d := newDoctorDashboard()
	d.Load(ctx, time.Now().Format("2006-01-02"))

	created, err := d.Prescribe(ctx, appointmentID, notes)
	if err != nil {
		printer.Error("%s", api.UserMessage(err))
		return err
	}

	printer.Success("Prescription #%d issued for appointment #%d.", created.ID, created.AppointmentID)
	renderListsState(d.Appointments(), d.Prescriptions())
	return nil
}
