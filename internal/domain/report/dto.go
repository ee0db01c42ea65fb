package report

// LeaveSummary aggregates the request store for the admin dashboard.
type LeaveSummary struct {
	TotalRequests    int64 `json:"total_requests"`
	PendingRequests  int64 `json:"pending_requests"`
	ApprovedRequests int64 `json:"approved_requests"`
	RejectedRequests int64 `json:"rejected_requests"`
	ApprovedDays     int64 `json:"approved_days"`
}

// TypeUsage reports company-wide consumption for one leave type.
type TypeUsage struct {
	LeaveType string `json:"leave_type"`
	TotalDays int64  `json:"total_days"`
	UsedDays  int64  `json:"used_days"`
}
