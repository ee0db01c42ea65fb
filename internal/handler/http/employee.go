package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cutikita/leave-backend-go/internal/domain/employee"
	"github.com/cutikita/leave-backend-go/internal/domain/leave"
	"github.com/cutikita/leave-backend-go/internal/handler/http/response"
	employeeService "github.com/cutikita/leave-backend-go/internal/service/employee"
	leaveService "github.com/cutikita/leave-backend-go/internal/service/leave"
	reportService "github.com/cutikita/leave-backend-go/internal/service/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
	GetLeaveCard(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService *employeeService.EmployeeService
	balanceService  *leaveService.BalanceService
	reportService   *reportService.ReportService
}

type leaveCardResponse struct {
	Employee employee.EmployeeResponse    `json:"employee"`
	Balances []leave.LeaveBalanceResponse `json:"balances"`
	History  []leave.LeaveRequestResponse `json:"history"`
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", employee.NewEmployeeResponse(created))
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if !canAccessEmployee(r, employeeID) {
		response.Forbidden(w, "Access to this employee is not allowed")
		return
	}

	found, err := h.employeeService.Get(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.NewEmployeeResponse(found))
}

// GetBalances implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if !canAccessEmployee(r, employeeID) {
		response.Forbidden(w, "Access to this employee is not allowed")
		return
	}

	balances, err := h.balanceService.GetEmployeeBalances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveBalanceResponses(balances))
}

// GetLeaveCard implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetLeaveCard(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if !canAccessEmployee(r, employeeID) {
		response.Forbidden(w, "Access to this employee is not allowed")
		return
	}

	card, err := h.reportService.GetLeaveCard(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveCardResponse{
		Employee: employee.NewEmployeeResponse(card.Employee),
		Balances: leave.NewLeaveBalanceResponses(card.Balances),
		History:  leave.NewLeaveRequestResponses(card.History),
	})
}

// canAccessEmployee allows admins, or the employee looking at themselves.
func canAccessEmployee(r *http.Request, employeeID string) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return false
	}
	if admin, ok := claims["is_admin"].(bool); ok && admin {
		return true
	}
	tokenEmployeeID, ok := claims["employee_id"].(string)
	return ok && tokenEmployeeID == employeeID
}

func NewEmployeeHandler(employeeService *employeeService.EmployeeService, balanceService *leaveService.BalanceService, reportService *reportService.ReportService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
		balanceService:  balanceService,
		reportService:   reportService,
	}
}
