package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/internal/routes"
)

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "List a doctor's free slots for a date",
	RunE:  runAvailability,
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book an appointment slot (patients)",
	RunE:  runBook,
}

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark an appointment completed (doctors)",
	RunE:  runComplete,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel an appointment (doctors)",
	RunE:  runCancel,
}

func init() {
	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(cancelCmd)

	availabilityCmd.Flags().Int64("doctor", 0, "doctor id")
	availabilityCmd.Flags().String("date", "", "date as YYYY-MM-DD (default today)")
	_ = availabilityCmd.MarkFlagRequired("doctor")

	bookCmd.Flags().Int64("doctor", 0, "doctor id")
	bookCmd.Flags().String("date", "", "date as YYYY-MM-DD")
	bookCmd.Flags().String("slot", "", "slot as HH:MM, as listed by availability")
	_ = bookCmd.MarkFlagRequired("doctor")
	_ = bookCmd.MarkFlagRequired("date")
	_ = bookCmd.MarkFlagRequired("slot")

	completeCmd.Flags().Int64("id", 0, "appointment id")
	_ = completeCmd.MarkFlagRequired("id")

	cancelCmd.Flags().Int64("id", 0, "appointment id")
	_ = cancelCmd.MarkFlagRequired("id")
}

func runAvailability(cmd *cobra.Command, args []string) error {
	// Any authenticated role may look up availability.
	if _, err := resolveScreen(routes.PathDashboard); err != nil {
		return err
	}

	doctorID, _ := cmd.Flags().GetInt64("doctor")
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	slots, err := client.DoctorAvailability(cmd.Context(), doctorID, date)
	if err != nil {
		printer.Error("%s", api.UserMessage(err))
		return err
	}
	if len(slots) == 0 {
		printer.Println("All slots are booked for " + date + ".")
		return nil
	}
	printer.Println(strings.Join(slots, "  "))
	return nil
}

func runBook(cmd *cobra.Command, args []string) error {
	if err := guardRole(routes.PathPatientDashboard); err != nil {
		return err
	}

	doctorID, _ := cmd.Flags().GetInt64("doctor")
	date, _ := cmd.Flags().GetString("date")
	slot, _ := cmd.Flags().GetString("slot")

	ctx := cmd.Context()
	p := newPatientDashboard()
	p.Select(ctx, doctorID, date)
	booked, err := p.Book(ctx, slot)
	if err != nil {
		printer.Error("%s", api.UserMessage(err))
		return err
	}

	printer.Success("Appointment booked successfully.")
	printer.Printf("Appointment #%d at %s\n", booked.ID, booked.AppointmentTime)
	return nil
}

func runComplete(cmd *cobra.Command, args []string) error {
	return runAppointmentAction(cmd, "complete", "completed")
}

func runCancel(cmd *cobra.Command, args []string) error {
	return runAppointmentAction(cmd, "cancel", "cancelled")
}

// runAppointmentAction drives a doctor mutation through the dashboard so the
// appointments and prescriptions panels refresh together, then shows them.
func runAppointmentAction(cmd *cobra.Command, action, past string) error {
	if err := guardRole(routes.PathDoctorDashboard); err != nil {
		return err
	}

	id, _ := cmd.Flags().GetInt64("id")
	ctx := cmd.Context()

	d := newDoctorDashboard()
	d.Load(ctx, time.Now().Format("2006-01-02"))

	var err error
	if action == "complete" {
		err = d.Complete(ctx, id)
	} else {
		err = d.Cancel(ctx, id)
	}
	if err != nil {
		printer.Error("%s", api.UserMessage(err))
		return err
	}

	printer.Success("Appointment #%d %s.", id, past)
	renderListsState(d.Appointments(), d.Prescriptions())
	return nil
}
