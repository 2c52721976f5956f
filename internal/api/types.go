package api

import "time"

// Role identifies the authenticated account kind issued by the service.
type Role string

const (
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

// Valid reports whether the role is one the service issues.
func (r Role) Valid() bool {
	return r == RoleDoctor || r == RolePatient
}

// Credentials carries a login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the service reply to a successful login.
type AuthResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Email string `json:"email,omitempty"`
}

// Doctor mirrors the service's doctor payload.
type Doctor struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Speciality string `json:"speciality"`
}

// Patient mirrors the service's patient payload.
type Patient struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Appointment statuses as issued by the service.
const (
	AppointmentBooked    = "BOOKED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
)

// Appointment mirrors the service's appointment payload. The service
// serializes appointment times without a zone offset, so the raw string is
// kept and parsed on demand.
type Appointment struct {
	ID              int64   `json:"id"`
	AppointmentTime string  `json:"appointmentTime"`
	Doctor          *Doctor `json:"doctor,omitempty"`
	PatientID       int64   `json:"patientId"`
	Status          string  `json:"status"`
}

const appointmentTimeLayout = "2006-01-02T15:04:05"

// Time parses the appointment time. The zero time is returned for
// unparseable values.
func (a Appointment) Time() time.Time {
	t, err := time.Parse(appointmentTimeLayout, a.AppointmentTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Prescription mirrors the service's prescription payload.
type Prescription struct {
	ID            int64  `json:"id"`
	Notes         string `json:"notes"`
	AppointmentID int64  `json:"appointmentId"`
}

// BookAppointmentRequest is the booking payload. The service accepts either
// a flat doctorId or a nested doctor reference; both are sent.
type BookAppointmentRequest struct {
	DoctorID        int64      `json:"doctorId"`
	AppointmentTime string     `json:"appointmentTime"`
	Doctor          *DoctorRef `json:"doctor,omitempty"`
}

// DoctorRef is a minimal doctor reference used inside booking payloads.
type DoctorRef struct {
	ID int64 `json:"id"`
}

// PrescriptionRequest is the prescription creation payload.
type PrescriptionRequest struct {
	AppointmentID int64  `json:"appointmentId"`
	Notes         string `json:"notes"`
}

// DoctorRegistration is the doctor sign-up payload.
type DoctorRegistration struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Speciality string `json:"speciality"`
}

// PatientRegistration is the patient sign-up payload.
type PatientRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}
