package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/pkg/logging"
)

type stubDoctorService struct {
	profile       *api.Doctor
	profileErr    error
	appointments  []api.Appointment
	apptErr       error
	prescriptions []api.Prescription
	presErr       error
	slots         []string

	apptLoads     int32
	presLoads     int32
	availCalls    int32
	completeCalls int32
	cancelCalls   int32
	createCalls   int32

	gotAvailDoctor int64
	gotAvailDate   string
}

func (s *stubDoctorService) DoctorProfile(context.Context) (*api.Doctor, error) {
	return s.profile, s.profileErr
}

func (s *stubDoctorService) DoctorAvailability(_ context.Context, doctorID int64, date string) ([]string, error) {
	atomic.AddInt32(&s.availCalls, 1)
	s.gotAvailDoctor = doctorID
	s.gotAvailDate = date
	return s.slots, nil
}

func (s *stubDoctorService) DoctorAppointments(context.Context) ([]api.Appointment, error) {
	atomic.AddInt32(&s.apptLoads, 1)
	return s.appointments, s.apptErr
}

func (s *stubDoctorService) DoctorPrescriptions(context.Context) ([]api.Prescription, error) {
	atomic.AddInt32(&s.presLoads, 1)
	return s.prescriptions, s.presErr
}

func (s *stubDoctorService) CompleteAppointment(_ context.Context, id int64) (*api.Appointment, error) {
	atomic.AddInt32(&s.completeCalls, 1)
	return &api.Appointment{ID: id, Status: api.AppointmentCompleted}, nil
}

func (s *stubDoctorService) CancelAppointment(_ context.Context, id int64) (*api.Appointment, error) {
	atomic.AddInt32(&s.cancelCalls, 1)
	return &api.Appointment{ID: id, Status: api.AppointmentCancelled}, nil
}

func (s *stubDoctorService) CreatePrescription(_ context.Context, req api.PrescriptionRequest) (*api.Prescription, error) {
	atomic.AddInt32(&s.createCalls, 1)
	return &api.Prescription{ID: 9, Notes: req.Notes, AppointmentID: req.AppointmentID}, nil
}

func alwaysAuthed() bool { return true }

func TestDoctorLoad_PopulatesAllPanels(t *testing.T) {
	svc := &stubDoctorService{
		profile:       &api.Doctor{ID: 7, Name: "Dr. Chen", Speciality: "Dermatology"},
		appointments:  []api.Appointment{{ID: 42, Status: api.AppointmentBooked}},
		prescriptions: []api.Prescription{{ID: 1, AppointmentID: 41}},
		slots:         []string{"10:00", "10:30"},
	}
	d := NewDoctor(svc, alwaysAuthed, logging.Discard())

	d.Load(context.Background(), "2026-09-01")

	require.True(t, d.Profile().HasData)
	assert.Equal(t, "Dr. Chen", d.Profile().Data.Name)
	assert.Equal(t, []string{"10:00", "10:30"}, d.Availability().Data)
	assert.EqualValues(t, 7, svc.gotAvailDoctor, "availability keyed by the loaded profile's id")
	assert.Equal(t, "2026-09-01", svc.gotAvailDate)
	assert.Len(t, d.Appointments().Data, 1)
	assert.Len(t, d.Prescriptions().Data, 1)
}

func TestDoctorComplete_RefreshesBothLists(t *testing.T) {
	svc := &stubDoctorService{
		profile:      &api.Doctor{ID: 7},
		appointments: []api.Appointment{{ID: 42, Status: api.AppointmentBooked}},
	}
	d := NewDoctor(svc, alwaysAuthed, logging.Discard())
	d.Load(context.Background(), "2026-09-01")

	apptLoadsBefore := atomic.LoadInt32(&svc.apptLoads)
	presLoadsBefore := atomic.LoadInt32(&svc.presLoads)

	require.NoError(t, d.Complete(context.Background(), 42))

	assert.EqualValues(t, 1, svc.completeCalls)
	assert.Equal(t, apptLoadsBefore+1, atomic.LoadInt32(&svc.apptLoads), "appointments must refresh after completing")
	assert.Equal(t, presLoadsBefore+1, atomic.LoadInt32(&svc.presLoads), "prescriptions must refresh after completing")
}

func TestDoctorPrescribe_RequiresCompletedAppointment(t *testing.T) {
	svc := &stubDoctorService{
		profile: &api.Doctor{ID: 7},
		appointments: []api.Appointment{
			{ID: 42, Status: api.AppointmentBooked},
			{ID: 43, Status: api.AppointmentCompleted},
		},
	}
	d := NewDoctor(svc, alwaysAuthed, logging.Discard())
	d.Load(context.Background(), "2026-09-01")

	// Booked appointment: rejected before any request.
	_, err := d.Prescribe(context.Background(), 42, "rest and fluids")
	require.ErrorIs(t, err, ErrPrescriptionNotAllowed)
	assert.Zero(t, atomic.LoadInt32(&svc.createCalls))

	// Empty notes: rejected too.
	_, err = d.Prescribe(context.Background(), 43, "")
	require.ErrorIs(t, err, ErrPrescriptionNotAllowed)

	// Completed appointment with notes: issued and lists refreshed.
	presLoadsBefore := atomic.LoadInt32(&svc.presLoads)
	created, err := d.Prescribe(context.Background(), 43, "rest and fluids")
	require.NoError(t, err)
	assert.EqualValues(t, 43, created.AppointmentID)
	assert.Equal(t, presLoadsBefore+1, atomic.LoadInt32(&svc.presLoads))
}

func TestDoctorPanels_FailIndependently(t *testing.T) {
	loadErr := errors.New("api: status 500: Unable to load prescriptions.")
	svc := &stubDoctorService{
		profile:      &api.Doctor{ID: 7},
		appointments: []api.Appointment{{ID: 42, Status: api.AppointmentBooked}},
		presErr:      loadErr,
	}
	d := NewDoctor(svc, alwaysAuthed, logging.Discard())
	d.Load(context.Background(), "2026-09-01")

	assert.True(t, d.Appointments().HasData, "healthy panel keeps its data")
	assert.NoError(t, d.Appointments().Err)
	assert.ErrorIs(t, d.Prescriptions().Err, loadErr)
	assert.False(t, d.Prescriptions().HasData)
}

func TestDoctorSetDate_OnlyAvailabilityReloads(t *testing.T) {
	svc := &stubDoctorService{profile: &api.Doctor{ID: 7}, slots: []string{"11:00"}}
	d := NewDoctor(svc, alwaysAuthed, logging.Discard())
	d.Load(context.Background(), "2026-09-01")

	apptLoadsBefore := atomic.LoadInt32(&svc.apptLoads)
	availBefore := atomic.LoadInt32(&svc.availCalls)

	d.SetDate(context.Background(), "2026-09-02")

	assert.Equal(t, "2026-09-02", svc.gotAvailDate)
	assert.Equal(t, availBefore+1, atomic.LoadInt32(&svc.availCalls))
	assert.Equal(t, apptLoadsBefore, atomic.LoadInt32(&svc.apptLoads), "other panels untouched")
}
