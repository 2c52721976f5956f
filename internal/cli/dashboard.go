package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/internal/dashboard"
	"github.com/smartclinic/clinic-client/internal/output"
	"github.com/smartclinic/clinic-client/internal/resource"
	"github.com/smartclinic/clinic-client/internal/routes"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your role's dashboard",
	Long: `Display the dashboard for the logged-in role.

Doctors see their profile, free slots for a date, appointments and issued
prescriptions. Patients see their profile, the doctor directory, their
appointments with status counts, and their prescriptions.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().String("date", "", "availability date as YYYY-MM-DD (default today)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	screen, err := resolveScreen(routes.PathDashboard)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	switch screen {
	case routes.PathDoctorDashboard:
		d := newDoctorDashboard()
		d.Load(ctx, date)
		renderDoctorDashboard(d, date)
	case routes.PathPatientDashboard:
		p := newPatientDashboard()
		p.Load(ctx)
		renderPatientDashboard(p)
	}
	return nil
}

func newDoctorDashboard() *dashboard.Doctor {
	return dashboard.NewDoctor(client, store.Authenticated, logger)
}

func newPatientDashboard() *dashboard.Patient {
	return dashboard.NewPatient(client, store.Authenticated, logger)
}

func renderDoctorDashboard(d *dashboard.Doctor, date string) {
	output.Banner(printer.Out(), "Doctor")

	if profile := d.Profile(); panelUsable(profile.Err, profile.HasData) {
		if profile.HasData && profile.Data != nil {
			printer.Heading("Profile")
			printer.Printf("%s  <%s>  %s\n\n", profile.Data.Name, profile.Data.Email, profile.Data.Speciality)
		}
	}

	printer.Heading("Availability " + date)
	if avail := d.Availability(); panelUsable(avail.Err, avail.HasData) {
		if len(avail.Data) == 0 {
			printer.Println("All slots are booked for " + date + ".")
		} else {
			printer.Println(strings.Join(avail.Data, "  "))
		}
	}
	printer.Println()

	printer.Heading("Appointments")
	if appts := d.Appointments(); panelUsable(appts.Err, appts.HasData) {
		renderAppointments(appts.Data)
	}
	printer.Println()

	printer.Heading("Prescriptions")
	if pres := d.Prescriptions(); panelUsable(pres.Err, pres.HasData) {
		renderPrescriptions(pres.Data)
	}
}

func renderPatientDashboard(p *dashboard.Patient) {
	output.Banner(printer.Out(), "Patient")

	if profile := p.Profile(); panelUsable(profile.Err, profile.HasData) {
		if profile.HasData && profile.Data != nil {
			printer.Heading("Profile")
			printer.Printf("%s  <%s>  %s\n\n", profile.Data.Name, profile.Data.Email, profile.Data.Phone)
		}
	}

	stats := p.Stats()
	printer.Heading("Appointments")
	printer.Printf("total %d  booked %d  completed %d  cancelled %d\n", stats.Total, stats.Booked, stats.Completed, stats.Cancelled)
	if appts := p.Appointments(); panelUsable(appts.Err, appts.HasData) {
		renderAppointments(appts.Data)
	}
	printer.Println()

	printer.Heading("Doctors")
	if docs := p.Doctors(); panelUsable(docs.Err, docs.HasData) {
		table := output.NewTable(printer.Out(), []string{"ID", "Name", "Speciality"})
		for _, doc := range docs.Data {
			table.AddRow(strconv.FormatInt(doc.ID, 10), doc.Name, doc.Speciality)
		}
		table.Render()
	}
	printer.Println()

	printer.Heading("Prescriptions")
	if pres := p.Prescriptions(); panelUsable(pres.Err, pres.HasData) {
		renderPrescriptions(pres.Data)
	}
}

// panelUsable prints a panel's inline error banner, if any, and reports
// whether anything is displayable. Stale data behind an error is still
// shown; the banner makes the failure visible.
func panelUsable(err error, hasData bool) bool {
	if err != nil {
		printer.Error("! %s", api.UserMessage(err))
	}
	return err == nil || hasData
}

func renderAppointments(appts []api.Appointment) {
	if len(appts) == 0 {
		printer.Println("No appointments yet.")
		return
	}
	table := output.NewTable(printer.Out(), []string{"ID", "Time", "Doctor", "Status"})
	for _, appt := range appts {
		doctor := ""
		if appt.Doctor != nil {
			doctor = appt.Doctor.Name
		}
		table.AddRow(strconv.FormatInt(appt.ID, 10), appt.AppointmentTime, doctor, appt.Status)
	}
	table.Render()
}

func renderPrescriptions(pres []api.Prescription) {
	if len(pres) == 0 {
		printer.Println("No prescriptions yet.")
		return
	}
	table := output.NewTable(printer.Out(), []string{"ID", "Appointment", "Notes"})
	for _, p := range pres {
		table.AddRow(strconv.FormatInt(p.ID, 10), strconv.FormatInt(p.AppointmentID, 10), p.Notes)
	}
	table.Render()
}

// renderListsState is shared by mutation commands to show the refreshed
// lists after an action.
func renderListsState(appts resource.State[[]api.Appointment], pres resource.State[[]api.Prescription]) {
	printer.Heading("Appointments")
	if panelUsable(appts.Err, appts.HasData) {
		renderAppointments(appts.Data)
	}
	printer.Println()
	printer.Heading("Prescriptions")
	if panelUsable(pres.Err, pres.HasData) {
		renderPrescriptions(pres.Data)
	}
}
