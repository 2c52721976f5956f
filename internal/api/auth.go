package api

import (
	"context"
	"net/http"
)

const loginFallback = "Login failed. Please try again."

// DoctorLogin authenticates a doctor account.
func (c *Client) DoctorLogin(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/doctor/login", nil, creds, &out, loginFallback); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatientLogin authenticates a patient account.
func (c *Client) PatientLogin(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/patient/login", nil, creds, &out, loginFallback); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterDoctor creates a doctor account and returns the created profile.
func (c *Client) RegisterDoctor(ctx context.Context, reg DoctorRegistration) (*Doctor, error) {
	var out Doctor
	if err := c.do(ctx, http.MethodPost, "/doctor/register", nil, reg, &out, "Registration failed. Please try again."); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterPatient creates a patient account and returns the created profile.
func (c *Client) RegisterPatient(ctx context.Context, reg PatientRegistration) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodPost, "/patient/register", nil, reg, &out, "Registration failed. Please try again."); err != nil {
		return nil, err
	}
	return &out, nil
}
