// Package dashboard composes resource fetchers over the clinic API into the
// two role dashboards. Each panel loads independently: one panel failing
// leaves the others usable.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/internal/resource"
	"github.com/smartclinic/clinic-client/pkg/logging"
)

// ErrPrescriptionNotAllowed is returned by Prescribe when the referenced
// appointment is not completed or the notes are empty.
var ErrPrescriptionNotAllowed = errors.New("Select a completed appointment and include therapy notes.")

// DoctorService is the slice of the API client the doctor dashboard uses.
type DoctorService interface {
	DoctorProfile(ctx context.Context) (*api.Doctor, error)
	DoctorAvailability(ctx context.Context, doctorID int64, date string) ([]string, error)
	DoctorAppointments(ctx context.Context) ([]api.Appointment, error)
	DoctorPrescriptions(ctx context.Context) ([]api.Prescription, error)
	CompleteAppointment(ctx context.Context, appointmentID int64) (*api.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID int64) (*api.Appointment, error)
	CreatePrescription(ctx context.Context, req api.PrescriptionRequest) (*api.Prescription, error)
}

// Doctor is the doctor dashboard: profile, availability for a selected date,
// appointments, and issued prescriptions, plus the complete/cancel/prescribe
// actions.
type Doctor struct {
	svc    DoctorService
	logger *logging.Logger

	profile       *resource.Fetcher[*api.Doctor]
	availability  *resource.Fetcher[[]string]
	appointments  *resource.Fetcher[[]api.Appointment]
	prescriptions *resource.Fetcher[[]api.Prescription]

	mu       sync.Mutex
	doctorID int64
	date     string
}

// NewDoctor wires the dashboard's fetchers. authed gates every panel on the
// session, so a logout clears all panels at once.
func NewDoctor(svc DoctorService, authed func() bool, logger *logging.Logger) *Doctor {
	if logger == nil {
		logger = logging.Default()
	}
	d := &Doctor{svc: svc, logger: logger}

	d.profile = resource.New(svc.DoctorProfile, resource.Options{
		RequireAuth: true,
		AuthFunc:    authed,
	})
	d.availability = resource.New(func(ctx context.Context) ([]string, error) {
		doctorID, date := d.selection()
		return svc.DoctorAvailability(ctx, doctorID, date)
	}, resource.Options{
		RequireAuth: true,
		AuthFunc:    authed,
	})
	d.appointments = resource.New(svc.DoctorAppointments, resource.Options{
		RequireAuth: true,
		AuthFunc:    authed,
	})
	d.prescriptions = resource.New(svc.DoctorPrescriptions, resource.Options{
		RequireAuth: true,
		AuthFunc:    authed,
	})
	return d
}

// Load runs every panel and waits for each to settle. The availability panel
// depends on the doctor id from the loaded profile, so it starts after the
// profile settles.
func (d *Doctor) Load(ctx context.Context, date string) {
	d.profile.Sync(ctx)
	d.appointments.Sync(ctx)
	d.prescriptions.Sync(ctx)
	d.profile.Wait()

	var doctorID int64
	if snap := d.profile.Snapshot(); snap.HasData && snap.Data != nil {
		doctorID = snap.Data.ID
	}
	d.mu.Lock()
	d.doctorID = doctorID
	d.date = date
	d.mu.Unlock()

	d.availability.SetDeps(ctx, doctorID, date)
	d.appointments.Wait()
	d.prescriptions.Wait()
	d.availability.Wait()
}

// SetDate re-keys the availability panel to another date; the other panels
// are untouched.
func (d *Doctor) SetDate(ctx context.Context, date string) {
	d.mu.Lock()
	d.date = date
	doctorID := d.doctorID
	d.mu.Unlock()
	d.availability.SetDeps(ctx, doctorID, date)
	d.availability.Wait()
}

func (d *Doctor) selection() (int64, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doctorID, d.date
}

// Complete marks an appointment completed and refreshes both the
// appointments and prescriptions panels.
func (d *Doctor) Complete(ctx context.Context, appointmentID int64) error {
	if _, err := d.svc.CompleteAppointment(ctx, appointmentID); err != nil {
		return err
	}
	d.refreshLists(ctx)
	return nil
}

// Cancel cancels an appointment and refreshes both list panels.
func (d *Doctor) Cancel(ctx context.Context, appointmentID int64) error {
	if _, err := d.svc.CancelAppointment(ctx, appointmentID); err != nil {
		return err
	}
	d.refreshLists(ctx)
	return nil
}

// Prescribe issues a prescription against a completed appointment from the
// loaded appointments panel, then refreshes both list panels.
func (d *Doctor) Prescribe(ctx context.Context, appointmentID int64, notes string) (*api.Prescription, error) {
	if notes == "" || !d.canPrescribe(appointmentID) {
		return nil, ErrPrescriptionNotAllowed
	}
	created, err := d.svc.CreatePrescription(ctx, api.PrescriptionRequest{
		AppointmentID: appointmentID,
		Notes:         notes,
	})
	if err != nil {
		return nil, err
	}
	d.refreshLists(ctx)
	return created, nil
}

// canPrescribe checks the loaded appointments for a completed one with the
// given id.
func (d *Doctor) canPrescribe(appointmentID int64) bool {
	snap := d.appointments.Snapshot()
	if !snap.HasData {
		return false
	}
	for _, appt := range snap.Data {
		if appt.ID == appointmentID && appt.Status == api.AppointmentCompleted {
			return true
		}
	}
	return false
}

// refreshLists replays the appointments and prescriptions cycles after a
// mutation. Refresh failures land in the panel states; already-loaded data
// stays visible.
func (d *Doctor) refreshLists(ctx context.Context) {
	if _, err := d.appointments.Refresh(ctx); err != nil {
		d.logger.Warn("appointments refresh failed", "error", err)
	}
	if _, err := d.prescriptions.Refresh(ctx); err != nil {
		d.logger.Warn("prescriptions refresh failed", "error", err)
	}
}

// Panel snapshots.

func (d *Doctor) Profile() resource.State[*api.Doctor]            { return d.profile.Snapshot() }
func (d *Doctor) Availability() resource.State[[]string]          { return d.availability.Snapshot() }
func (d *Doctor) Appointments() resource.State[[]api.Appointment] { return d.appointments.Snapshot() }
func (d *Doctor) Prescriptions() resource.State[[]api.Prescription] {
	return d.prescriptions.Snapshot()
}
