package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Defaults(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		leaveType  LeaveType
		allocation int
		depth      int
	}{
		{LeaveTypeAnnual, 12, 2},
		{LeaveTypeSick, 12, 0},
		{LeaveTypeMaternity, 90, 0},
		{LeaveTypeExtended, 90, 0},
		{LeaveTypeSpecialReason, 60, 0},
		{LeaveTypeUnpaid, 365, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.leaveType), func(t *testing.T) {
			assert.True(t, catalog.Valid(tt.leaveType))

			allocation, err := catalog.DefaultAllocation(tt.leaveType)
			require.NoError(t, err)
			assert.Equal(t, tt.allocation, allocation)

			depth, err := catalog.CarryOverDepth(tt.leaveType)
			require.NoError(t, err)
			assert.Equal(t, tt.depth, depth)
		})
	}
}

func TestCatalog_UnknownType(t *testing.T) {
	catalog := NewCatalog()

	assert.False(t, catalog.Valid("sabbatical"))

	_, err := catalog.DefaultAllocation("sabbatical")
	assert.ErrorIs(t, err, ErrUnknownLeaveType)

	_, err = catalog.CarryOverDepth("sabbatical")
	assert.ErrorIs(t, err, ErrUnknownLeaveType)
}

func TestCatalog_Overrides(t *testing.T) {
	catalog := NewCatalogWithOverrides(map[LeaveType]int{
		LeaveTypeAnnual: 14,
		"sabbatical":    30, // unknown, ignored
		LeaveTypeSick:   0,  // non-positive, ignored
	})

	allocation, err := catalog.DefaultAllocation(LeaveTypeAnnual)
	require.NoError(t, err)
	assert.Equal(t, 14, allocation)

	allocation, err = catalog.DefaultAllocation(LeaveTypeSick)
	require.NoError(t, err)
	assert.Equal(t, 12, allocation)

	assert.False(t, catalog.Valid("sabbatical"))
}

func TestCatalog_TypesOrder(t *testing.T) {
	catalog := NewCatalog()

	assert.Equal(t, []LeaveType{
		LeaveTypeAnnual,
		LeaveTypeSick,
		LeaveTypeMaternity,
		LeaveTypeExtended,
		LeaveTypeSpecialReason,
		LeaveTypeUnpaid,
	}, catalog.Types())
}
