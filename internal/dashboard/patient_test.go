package dashboard

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/pkg/logging"
)

type stubPatientService struct {
	profile       *api.Patient
	doctors       []api.Doctor
	appointments  []api.Appointment
	prescriptions []api.Prescription
	slots         []string
	bookErr       error

	apptLoads  int32
	availCalls int32
	bookCalls  int32

	gotBooking api.BookAppointmentRequest
}

func (s *stubPatientService) PatientProfile(context.Context) (*api.Patient, error) {
	return s.profile, nil
}

func (s *stubPatientService) Doctors(context.Context) ([]api.Doctor, error) {
	return s.doctors, nil
}

func (s *stubPatientService) DoctorAvailability(_ context.Context, doctorID int64, date string) ([]string, error) {
	atomic.AddInt32(&s.availCalls, 1)
	return s.slots, nil
}

func (s *stubPatientService) PatientAppointments(context.Context) ([]api.Appointment, error) {
	atomic.AddInt32(&s.apptLoads, 1)
	return s.appointments, nil
}

func (s *stubPatientService) PatientPrescriptions(context.Context) ([]api.Prescription, error) {
	return s.prescriptions, nil
}

func (s *stubPatientService) BookAppointment(_ context.Context, req api.BookAppointmentRequest) (*api.Appointment, error) {
	atomic.AddInt32(&s.bookCalls, 1)
	s.gotBooking = req
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return &api.Appointment{ID: 42, Status: api.AppointmentBooked, AppointmentTime: req.AppointmentTime}, nil
}

func TestPatientLoad_PopulatesPanelsButNotAvailability(t *testing.T) {
	svc := &stubPatientService{
		profile:      &api.Patient{ID: 3, Name: "Ann"},
		doctors:      []api.Doctor{{ID: 7, Name: "Dr. Chen"}},
		appointments: []api.Appointment{{ID: 1, Status: api.AppointmentBooked}},
	}
	p := NewPatient(svc, alwaysAuthed, logging.Discard())

	p.Load(context.Background())

	assert.Equal(t, "Ann", p.Profile().Data.Name)
	assert.Len(t, p.Doctors().Data, 1)
	assert.Len(t, p.Appointments().Data, 1)
	assert.Zero(t, atomic.LoadInt32(&svc.availCalls), "availability waits for a doctor/date selection")
}

func TestPatientSelect_ActivatesAvailability(t *testing.T) {
	svc := &stubPatientService{slots: []string{"10:00", "14:30"}}
	p := NewPatient(svc, alwaysAuthed, logging.Discard())
	p.Load(context.Background())

	// Partial selection keeps the panel off.
	p.Select(context.Background(), 7, "")
	assert.Zero(t, atomic.LoadInt32(&svc.availCalls))
	assert.False(t, p.Availability().HasData)

	p.Select(context.Background(), 7, "2026-09-01")
	assert.EqualValues(t, 1, atomic.LoadInt32(&svc.availCalls))
	assert.Equal(t, []string{"10:00", "14:30"}, p.Availability().Data)

	// Deselecting clears the slots.
	p.Select(context.Background(), 0, "2026-09-01")
	assert.False(t, p.Availability().HasData)
}

func TestPatientBook_RequiresFullSelection(t *testing.T) {
	svc := &stubPatientService{}
	p := NewPatient(svc, alwaysAuthed, logging.Discard())
	p.Load(context.Background())

	_, err := p.Book(context.Background(), "10:00")
	require.ErrorIs(t, err, ErrNoSlotSelected)
	assert.Zero(t, atomic.LoadInt32(&svc.bookCalls))
}

func TestPatientBook_SendsSlotAndRefreshes(t *testing.T) {
	svc := &stubPatientService{slots: []string{"10:00"}}
	p := NewPatient(svc, alwaysAuthed, logging.Discard())
	p.Load(context.Background())
	p.Select(context.Background(), 7, "2026-09-01")

	apptLoadsBefore := atomic.LoadInt32(&svc.apptLoads)
	availBefore := atomic.LoadInt32(&svc.availCalls)

	booked, err := p.Book(context.Background(), "10:00")
	require.NoError(t, err)
	assert.EqualValues(t, 42, booked.ID)
	assert.EqualValues(t, 7, svc.gotBooking.DoctorID)
	assert.Equal(t, "2026-09-01T10:00:00", svc.gotBooking.AppointmentTime)

	assert.Equal(t, apptLoadsBefore+1, atomic.LoadInt32(&svc.apptLoads), "appointments refresh after booking")
	assert.Equal(t, availBefore+1, atomic.LoadInt32(&svc.availCalls), "availability refreshes after booking")
}

func TestPatientStats_TalliesByStatus(t *testing.T) {
	svc := &stubPatientService{
		appointments: []api.Appointment{
			{ID: 1, Status: api.AppointmentBooked},
			{ID: 2, Status: api.AppointmentBooked},
			{ID: 3, Status: api.AppointmentCompleted},
			{ID: 4, Status: api.AppointmentCancelled},
		},
	}
	p := NewPatient(svc, alwaysAuthed, logging.Discard())
	p.Load(context.Background())

	stats := p.Stats()
	assert.Equal(t, AppointmentStats{Total: 4, Booked: 2, Completed: 1, Cancelled: 1}, stats)
}
