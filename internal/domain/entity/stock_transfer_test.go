package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

func TestCanTransition_TablaCompleta(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{entity.TransferPending, entity.TransferInTransit, true},
		{entity.TransferPending, entity.TransferCancelled, true},
		{entity.TransferInTransit, entity.TransferCompleted, true},
		{entity.TransferInTransit, entity.TransferCancelled, true},

		{entity.TransferPending, entity.TransferCompleted, false},
		{entity.TransferCompleted, entity.TransferCancelled, false},
		{entity.TransferCompleted, entity.TransferInTransit, false},
		{entity.TransferCancelled, entity.TransferPending, false},
		{entity.TransferCancelled, entity.TransferInTransit, false},
		{entity.TransferInTransit, entity.TransferPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, entity.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminalTransferStatus(t *testing.T) {
	assert.True(t, entity.IsTerminalTransferStatus(entity.TransferCompleted))
	assert.True(t, entity.IsTerminalTransferStatus(entity.TransferCancelled))
	assert.False(t, entity.IsTerminalTransferStatus(entity.TransferPending))
	assert.False(t, entity.IsTerminalTransferStatus(entity.TransferInTransit))
}
