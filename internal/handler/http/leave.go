package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cutikita/leave-backend-go/internal/domain/leave"
	"github.com/cutikita/leave-backend-go/internal/handler/http/response"
	leaveService "github.com/cutikita/leave-backend-go/internal/service/leave"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	AmendNote(w http.ResponseWriter, r *http.Request)
	TriggerRollover(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	requestService *leaveService.RequestService
	balanceService *leaveService.BalanceService
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequestRequest

	// Employee identity comes from the token, not the body.
	employeeID, ok := claimEmployeeID(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	created, err := l.requestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", leave.NewLeaveRequestResponse(created))
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveRequestFilter{}

	if v := r.URL.Query().Get("status"); v != "" {
		status := leave.LeaveRequestStatus(v)
		filter.Status = &status
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}

	requests, err := l.requestService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponses(requests))
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := claimEmployeeID(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	filter := leave.LeaveRequestFilter{EmployeeID: &employeeID}
	if v := r.URL.Query().Get("status"); v != "" {
		status := leave.LeaveRequestStatus(v)
		filter.Status = &status
	}

	requests, err := l.requestService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponses(requests))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := l.requestService.Get(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponse(request))
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	l.decideRequest(w, r, leave.LeaveRequestStatusApproved, "Leave request approved successfully")
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	l.decideRequest(w, r, leave.LeaveRequestStatusRejected, "Leave request rejected successfully")
}

func (l *LeaveHandlerImpl) decideRequest(w http.ResponseWriter, r *http.Request, outcome leave.LeaveRequestStatus, message string) {
	actorID, ok := claimEmployeeID(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req leave.DecideLeaveRequestRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("decideRequest decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.RequestID = chi.URLParam(r, "id")
	req.Outcome = outcome
	req.ActorID = actorID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	decided, err := l.requestService.Decide(r.Context(), req.RequestID, req.Outcome, req.Note, req.ActorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, leave.NewLeaveRequestResponse(decided))
}

// AmendNote implements LeaveHandler.
func (l *LeaveHandlerImpl) AmendNote(w http.ResponseWriter, r *http.Request) {
	var req leave.AmendNoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AmendNote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := l.requestService.AmendNote(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Admin note updated successfully", nil)
}

// TriggerRollover implements LeaveHandler.
func (l *LeaveHandlerImpl) TriggerRollover(w http.ResponseWriter, r *http.Request) {
	if err := l.balanceService.RolloverAll(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Balance rollover completed successfully", nil)
}

func claimEmployeeID(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", false
	}
	return employeeID, true
}

func NewLeaveHandler(requestService *leaveService.RequestService, balanceService *leaveService.BalanceService) LeaveHandler {
	return &LeaveHandlerImpl{
		requestService: requestService,
		balanceService: balanceService,
	}
}
