package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrLeaveRequestDecided  = errors.New("Leave request already decided")
	ErrBalanceNotFound      = errors.New("Leave balance not found")
	ErrInsufficientBalance  = errors.New("Insufficient leave balance")
	ErrUnknownLeaveType     = errors.New("Unknown leave type")
)
