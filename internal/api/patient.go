package api

import (
	"context"
	"net/http"
)

// Doctors lists all doctors available for booking.
func (c *Client) Doctors(ctx context.Context) ([]Doctor, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/doctors", nil, nil, "Unable to load doctors.")
	if err != nil {
		return nil, err
	}
	return decodeList[Doctor](raw), nil
}

// PatientProfile fetches the authenticated patient's own profile.
func (c *Client) PatientProfile(ctx context.Context) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodGet, "/patient/profile", nil, nil, &out, "Unable to load patient profile."); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatientAppointments lists the authenticated patient's appointments.
func (c *Client) PatientAppointments(ctx context.Context) ([]Appointment, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/patient/appointments", nil, nil, "Unable to load appointments.")
	if err != nil {
		return nil, err
	}
	return decodeList[Appointment](raw), nil
}

// PatientPrescriptions lists prescriptions issued to the patient.
func (c *Client) PatientPrescriptions(ctx context.Context) ([]Prescription, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/prescriptions/patient", nil, nil, "Unable to load prescriptions.")
	if err != nil {
		return nil, err
	}
	return decodeList[Prescription](raw), nil
}

// BookAppointment books a slot with a doctor. The nested doctor reference is
// filled from DoctorID when present.
func (c *Client) BookAppointment(ctx context.Context, req BookAppointmentRequest) (*Appointment, error) {
	if req.DoctorID != 0 && req.Doctor == nil {
		req.Doctor = &DoctorRef{ID: req.DoctorID}
	}
	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, req, &out, "Unable to book appointment."); err != nil {
		return nil, err
	}
	return &out, nil
}
