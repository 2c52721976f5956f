package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/internal/resource"
	"github.com/smartclinic/clinic-client/pkg/logging"
)

// ErrNoSlotSelected is returned by Book before any request when the booking
// selection is incomplete.
var ErrNoSlotSelected = errors.New("Choose a doctor, a date, and a free slot first.")

// PatientService is the slice of the API client the patient dashboard uses.
type PatientService interface {
	PatientProfile(ctx context.Context) (*api.Patient, error)
	Doctors(ctx context.Context) ([]api.Doctor, error)
	DoctorAvailability(ctx context.Context, doctorID int64, date string) ([]string, error)
	PatientAppointments(ctx context.Context) ([]api.Appointment, error)
	PatientPrescriptions(ctx context.Context) ([]api.Prescription, error)
	BookAppointment(ctx context.Context, req api.BookAppointmentRequest) (*api.Appointment, error)
}

// AppointmentStats summarizes the patient's appointment list by status.
type AppointmentStats struct {
	Total     int
	Booked    int
	Completed int
	Cancelled int
}

// Patient is the patient dashboard: profile, the doctor directory,
// availability for a selected doctor and date, the patient's appointments
// and prescriptions, and the booking action.
type Patient struct {
	svc    PatientService
	logger *logging.Logger

	profile       *resource.Fetcher[*api.Patient]
	doctors       *resource.Fetcher[[]api.Doctor]
	availability  *resource.Fetcher[[]string]
	appointments  *resource.Fetcher[[]api.Appointment]
	prescriptions *resource.Fetcher[[]api.Prescription]

	mu       sync.Mutex
	doctorID int64
	date     string
}

// NewPatient wires the dashboard's fetchers. The availability panel starts
// disabled: it only activates once a doctor and a date are selected.
func NewPatient(svc PatientService, authed func() bool, logger *logging.Logger) *Patient {
	if logger == nil {
		logger = logging.Default()
	}
	p := &Patient{svc: svc, logger: logger}

	p.profile = resource.New(svc.PatientProfile, resource.Options{
		RequireAuth: true,
		AuthFunc:    authed,
	})
	p.doctors = resource.New(svc.Doctors, resource.Options{
		RequireAuth: true,
		AuthFunc:    authed,
	})
	p.availability = resource.New(func(ctx context.Context) ([]string, error) {
		doctorID, date := p.selection()
		return svc.DoctorAvailability(ctx, doctorID, date)
	}, resource.Options{
		Disabled:    true,
		RequireAuth: true,
		AuthFunc:    authed,
	})
	p.appointments = resource.New(svc.PatientAppointments, resource.Options{
		RequireAuth: true,
		AuthFunc:    authed,
	})
	p.prescriptions = resource.New(svc.PatientPrescriptions, resource.Options{
		RequireAuth: true,
		AuthFunc:    authed,
	})
	return p
}

// Load runs every always-on panel and waits for them to settle.
func (p *Patient) Load(ctx context.Context) {
	p.profile.Sync(ctx)
	p.doctors.Sync(ctx)
	p.appointments.Sync(ctx)
	p.prescriptions.Sync(ctx)

	p.profile.Wait()
	p.doctors.Wait()
	p.appointments.Wait()
	p.prescriptions.Wait()
}

// Select re-keys the availability panel to a doctor and date. The panel is
// only active while both are chosen.
func (p *Patient) Select(ctx context.Context, doctorID int64, date string) {
	p.mu.Lock()
	p.doctorID = doctorID
	p.date = date
	p.mu.Unlock()

	// Deps are set while the panel is off (and the gate opened last) so a
	// selection change produces exactly one cycle.
	if doctorID != 0 && date != "" {
		p.availability.SetDeps(ctx, doctorID, date)
		p.availability.SetEnabled(ctx, true)
	} else {
		p.availability.SetEnabled(ctx, false)
		p.availability.SetDeps(ctx, doctorID, date)
	}
	p.availability.Wait()
}

func (p *Patient) selection() (int64, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doctorID, p.date
}

// Book books the given slot ("10:00") for the current doctor/date selection
// and, on success, refreshes the appointments and availability panels.
func (p *Patient) Book(ctx context.Context, slot string) (*api.Appointment, error) {
	doctorID, date := p.selection()
	if doctorID == 0 || date == "" || slot == "" {
		return nil, ErrNoSlotSelected
	}

	booked, err := p.svc.BookAppointment(ctx, api.BookAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentTime: date + "T" + slot + ":00",
	})
	if err != nil {
		return nil, err
	}

	if _, err := p.appointments.Refresh(ctx); err != nil {
		p.logger.Warn("appointments refresh failed", "error", err)
	}
	if _, err := p.availability.Refresh(ctx); err != nil && !errors.Is(err, resource.ErrInactive) {
		p.logger.Warn("availability refresh failed", "error", err)
	}
	return booked, nil
}

// Stats tallies the loaded appointments by status.
func (p *Patient) Stats() AppointmentStats {
	snap := p.appointments.Snapshot()
	stats := AppointmentStats{}
	if !snap.HasData {
		return stats
	}
	for _, appt := range snap.Data {
		stats.Total++
		switch appt.Status {
		case api.AppointmentBooked:
			stats.Booked++
		case api.AppointmentCompleted:
			stats.Completed++
		case api.AppointmentCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// Panel snapshots.

func (p *Patient) Profile() resource.State[*api.Patient]           { return p.profile.Snapshot() }
func (p *Patient) Doctors() resource.State[[]api.Doctor]           { return p.doctors.Snapshot() }
func (p *Patient) Availability() resource.State[[]string]          { return p.availability.Snapshot() }
func (p *Patient) Appointments() resource.State[[]api.Appointment] { return p.appointments.Snapshot() }
func (p *Patient) Prescriptions() resource.State[[]api.Prescription] {
	return p.prescriptions.Snapshot()
}
