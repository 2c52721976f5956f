package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DoctorProfile fetches the authenticated doctor's own profile.
func (c *Client) DoctorProfile(ctx context.Context) (*Doctor, error) {
	var out Doctor
	if err := c.do(ctx, http.MethodGet, "/doctors/me", nil, nil, &out, "Unable to load doctor profile."); err != nil {
		return nil, err
	}
	return &out, nil
}

// DoctorAppointments lists the authenticated doctor's appointments.
func (c *Client) DoctorAppointments(ctx context.Context) ([]Appointment, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/appointments/doctor", nil, nil, "Unable to load appointments.")
	if err != nil {
		return nil, err
	}
	return decodeList[Appointment](raw), nil
}

// DoctorPrescriptions lists prescriptions the authenticated doctor issued.
func (c *Client) DoctorPrescriptions(ctx context.Context) ([]Prescription, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/prescriptions/doctor", nil, nil, "Unable to load prescriptions.")
	if err != nil {
		return nil, err
	}
	return decodeList[Prescription](raw), nil
}

// DoctorAvailability lists a doctor's free slots ("10:00", ...) on a date
// given as YYYY-MM-DD. A missing doctor or date short-circuits to an empty
// list without a request, matching how dashboards probe availability before
// both inputs are chosen.
func (c *Client) DoctorAvailability(ctx context.Context, doctorID int64, date string) ([]string, error) {
	if doctorID == 0 || date == "" {
		return []string{}, nil
	}
	query := url.Values{}
	query.Set("date", date)
	path := fmt.Sprintf("/doctors/%d/availability", doctorID)
	raw, err := c.doRaw(ctx, http.MethodGet, path, query, nil, "Unable to load availability.")
	if err != nil {
		return nil, err
	}
	return decodeList[string](raw), nil
}

// CompleteAppointment marks an appointment completed.
func (c *Client) CompleteAppointment(ctx context.Context, appointmentID int64) (*Appointment, error) {
	var out Appointment
	path := fmt.Sprintf("/appointments/%d/complete", appointmentID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &out, "Unable to complete appointment."); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelAppointment cancels an appointment.
func (c *Client) CancelAppointment(ctx context.Context, appointmentID int64) (*Appointment, error) {
	var out Appointment
	path := fmt.Sprintf("/appointments/%d/cancel", appointmentID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &out, "Unable to cancel appointment."); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePrescription issues a prescription against a completed appointment.
func (c *Client) CreatePrescription(ctx context.Context, req PrescriptionRequest) (*Prescription, error) {
	var out Prescription
	if err := c.do(ctx, http.MethodPost, "/prescriptions", nil, req, &out, "Unable to create prescription."); err != nil {
		return nil, err
	}
	return &out, nil
}
