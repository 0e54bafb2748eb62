package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientInputString(t *testing.T) {
	var input PatientInput
	require.NoError(t, json.Unmarshal([]byte(`"Ravi Kumar"`), &input))

	assert.Equal(t, "Ravi Kumar", input.Name)
	assert.Equal(t, NotProvided, input.Email)
	assert.Equal(t, NotProvided, input.Phone)
	assert.False(t, input.HasEmail())
}

func TestPatientInputObject(t *testing.T) {
	var input PatientInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ravi Kumar","email":"ravi@example.com","phone":"9876543210"}`), &input))

	assert.Equal(t, "Ravi Kumar", input.Name)
	assert.Equal(t, "ravi@example.com", input.Email)
	assert.True(t, input.HasEmail())
}

func TestPatientInputObjectDefaults(t *testing.T) {
	var input PatientInput
	require.NoError(t, json.Unmarshal([]byte(`{"email":"ravi@example.com"}`), &input))

	assert.Equal(t, "Guest User", input.Name)
	assert.Equal(t, NotProvided, input.Phone)

	require.NoError(t, json.Unmarshal([]byte(`{}`), &input))
	assert.Equal(t, "Guest User", input.Name)
	assert.False(t, input.HasEmail())
}

func TestPatientInputZeroValueContact(t *testing.T) {
	// The "patient" key missing from a request body never reaches
	// UnmarshalJSON, so the zero value must resolve the same way.
	var input PatientInput
	contact := input.Contact()

	assert.Equal(t, "Guest User", contact.Name)
	assert.Equal(t, NotProvided, contact.Email)
	assert.Equal(t, NotProvided, contact.Phone)
	assert.False(t, contact.HasEmail())
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
