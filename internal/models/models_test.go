package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("  Client ")
	assert.True(t, ok)
	assert.Equal(t, RoleClient, role)

	_, ok = ParseRole("admin")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestJobStatusTransitions(t *testing.T) {
	assert.True(t, JobStatusOpen.CanTransition(JobStatusInProgress))
	assert.True(t, JobStatusOpen.CanTransition(JobStatusCancelled))
	assert.True(t, JobStatusInProgress.CanTransition(JobStatusCompleted))

	assert.False(t, JobStatusOpen.CanTransition(JobStatusCompleted))
	assert.False(t, JobStatusInProgress.CanTransition(JobStatusCancelled))
	assert.False(t, JobStatusCompleted.CanTransition(JobStatusOpen))
	assert.False(t, JobStatusCancelled.CanTransition(JobStatusOpen))
}

func TestParseProposalStatus(t *testing.T) {
	status, ok := ParseProposalStatus("ACCEPTED")
	assert.True(t, ok)
	assert.Equal(t, ProposalStatusAccepted, status)

	_, ok = ParseProposalStatus("withdrawn")
	assert.False(t, ok)
}

func TestParseBudgetType(t *testing.T) {
	bt, ok := ParseBudgetType("hourly")
	assert.True(t, ok)
	assert.Equal(t, BudgetHourly, bt)

	_, ok = ParseBudgetType("weekly")
	assert.False(t, ok)
}
