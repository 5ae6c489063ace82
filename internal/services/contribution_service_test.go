package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildStatusReady(t *testing.T) {
	status := BuildStatus(2, 3, []string{})

	assert.True(t, status.Ready)
	assert.Equal(t, 2, status.CycleNumber)
	assert.Equal(t, 3, status.Contributors)
	assert.Equal(t, 3, status.MemberCount)
	assert.Empty(t, status.MissingMembers)
	assert.Equal(t, "all members have contributed, draw is possible", status.Message)
}

func TestBuildStatusMissingMembers(t *testing.T) {
	status := BuildStatus(1, 3, []string{"Charlie"})

	assert.False(t, status.Ready)
	assert.Equal(t, 2, status.Contributors)
	assert.Equal(t, []string{"Charlie"}, status.MissingMembers)
	assert.Equal(t, "1 member(s) have not yet contributed", status.Message)
}

func TestBuildStatusNoMembersIsNeverReady(t *testing.T) {
	status := BuildStatus(1, 0, []string{})

	assert.False(t, status.Ready)
	assert.Equal(t, 0, status.Contributors)
	assert.Equal(t, "tontine has no members", status.Message)
}
