package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"paie/internal/domain/payroll"
	"paie/internal/platform/format"
	"paie/internal/requestctx"
	"paie/internal/transport/http/api"
	"paie/internal/transport/http/middleware"
	"paie/internal/transport/http/shared"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Service *payroll.Service
	Logger  *slog.Logger
	// MaxMessageBytes caps websocket messages; request bodies are capped by
	// the BodyLimit middleware.
	MaxMessageBytes int64
	Sessions        SessionTracker
}

// SessionTracker observes live websocket sessions; *metrics.Collector
// satisfies it.
type SessionTracker interface {
	LiveSessionOpened() func()
}

func NewHandler(service *payroll.Service, logger *slog.Logger, maxMessageBytes int64, sessions SessionTracker) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Service: service, Logger: logger, MaxMessageBytes: maxMessageBytes, Sessions: sessions}
}

type computeRequest struct {
	Inputs            *payroll.PayrollInputs `json:"inputs"`
	EmployeeOverrides payroll.Overrides      `json:"employeeOverrides"`
	EmployerOverrides payroll.Overrides      `json:"employerOverrides"`
}

type displayFigures struct {
	GrossPay          string `json:"grossPay"`
	CsgCrdsBase       string `json:"csgCrdsBase"`
	TotalEmployee     string `json:"totalEmployee"`
	TotalEmployer     string `json:"totalEmployer"`
	NetBeforeTax      string `json:"netBeforeTax"`
	IncomeTax         string `json:"incomeTax"`
	NetPay            string `json:"netPay"`
	TotalEmployerCost string `json:"totalEmployerCost"`
}

type computeResponse struct {
	Summary payroll.PayrollSummary `json:"summary"`
	Display displayFigures         `json:"display"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/schedule", h.handleSchedule)
		r.Get("/defaults", h.handleDefaults)
		r.Post("/compute", h.handleCompute)
		r.Post("/explain", h.handleExplain)
		r.Post("/export", h.handleExport)
		r.Post("/payslip", h.handlePayslip)
		r.Get("/live", h.handleLive)
	})
}

func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Schedule(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	api.Success(w, payroll.DefaultInputs(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	_, summary, ok := h.compute(w, r)
	if !ok {
		return
	}
	api.Success(w, newComputeResponse(summary), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExplain(w http.ResponseWriter, r *http.Request) {
	in, summary, ok := h.compute(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, h.Service.Explain(in, summary)); err != nil {
		requestctx.Logger(r.Context(), h.Logger).Warn("write explanation failed", "err", err)
	}
}

// handleExport writes the contribution lines as CSV, or as an .xlsx workbook
// with ?format=xlsx.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	exportFormat := r.URL.Query().Get("format")
	if exportFormat != "" && exportFormat != "csv" && exportFormat != "xlsx" {
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be csv or xlsx", middleware.GetRequestID(r.Context()))
		return
	}
	in, summary, ok := h.compute(w, r)
	if !ok {
		return
	}
	logger := requestctx.Logger(r.Context(), h.Logger)

	if exportFormat == "xlsx" {
		data, err := h.Service.RenderWorkbook(in, summary)
		if err != nil {
			logger.Error("workbook render failed", "err", err)
			api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render workbook", middleware.GetRequestID(r.Context()))
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", "attachment; filename=cotisations.xlsx")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		if _, err := w.Write(data); err != nil {
			logger.Warn("write workbook failed", "err", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=cotisations.csv")
	if err := h.Service.WriteCSV(w, summary); err != nil {
		logger.Warn("write csv failed", "err", err)
	}
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	in, summary, ok := h.compute(w, r)
	if !ok {
		return
	}
	pdf, err := h.Service.RenderPayslip(in, summary)
	if err != nil {
		requestctx.Logger(r.Context(), h.Logger).Error("payslip render failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=bulletin-%s.pdf", uuid.NewString()))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	if _, err := w.Write(pdf); err != nil {
		requestctx.Logger(r.Context(), h.Logger).Warn("write payslip failed", "err", err)
	}
}

// compute decodes, validates and runs a compute request, writing the error
// response itself when it returns false.
func (h *Handler) compute(w http.ResponseWriter, r *http.Request) (payroll.PayrollInputs, payroll.PayrollSummary, bool) {
	requestID := middleware.GetRequestID(r.Context())

	var req computeRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
			return payroll.PayrollInputs{}, payroll.PayrollSummary{}, false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return payroll.PayrollInputs{}, payroll.PayrollSummary{}, false
	}

	v := h.validate(req)
	if v.Reject(w, requestID) {
		return payroll.PayrollInputs{}, payroll.PayrollSummary{}, false
	}

	summary, err := h.Service.Compute(*req.Inputs, req.EmployeeOverrides, req.EmployerOverrides)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, computeErrorCode(err), err.Error(), requestID)
		return payroll.PayrollInputs{}, payroll.PayrollSummary{}, false
	}
	return *req.Inputs, summary, true
}

func computeErrorCode(err error) string {
	if errors.Is(err, payroll.ErrConflictingOverride) {
		return "conflicting_overrides"
	}
	return "compute_failed"
}

// validate is the trust boundary: the calculator itself accepts any number.
func (h *Handler) validate(req computeRequest) *shared.Validator {
	v := shared.NewValidator()
	if req.Inputs == nil {
		v.Add("inputs", "is required")
		return v
	}
	in := req.Inputs
	v.Amount("inputs.hoursWorked", in.HoursWorked)
	v.Amount("inputs.hourlyRate", in.HourlyRate)
	v.Amount("inputs.overtime25h", in.Overtime25h)
	v.Amount("inputs.overtime50h", in.Overtime50h)
	v.Amount("inputs.benefitsInKind", in.BenefitsInKind)
	v.Amount("inputs.bonuses", in.Bonuses)
	v.Amount("inputs.taxableIncome", in.TaxableIncome)
	v.Amount("inputs.pmssCeiling", in.PMSSCeiling)
	if v.Amount("inputs.taxRatePercent", in.TaxRatePercent); in.TaxRatePercent > 100 {
		v.Add("inputs.taxRatePercent", "must not exceed 100")
	}

	schedule := h.Service.Schedule()
	checkOverrides := func(field, group string, overrides payroll.Overrides) {
		for key, override := range overrides {
			prefix := field + "." + key
			if _, err := schedule.Lookup(group, key); err != nil {
				v.Add(prefix, "unknown contribution")
				continue
			}
			if override.Base != nil {
				v.Amount(prefix+".base", *override.Base)
			}
			if override.Rate != nil {
				v.Rate(prefix+".rate", *override.Rate)
			}
		}
	}
	checkOverrides("employeeOverrides", payroll.GroupEmployee, req.EmployeeOverrides)
	checkOverrides("employerOverrides", payroll.GroupEmployer, req.EmployerOverrides)
	return v
}

func decodeJSON(body io.Reader, dst any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

func newComputeResponse(s payroll.PayrollSummary) computeResponse {
	return computeResponse{
		Summary: s,
		Display: displayFigures{
			GrossPay:          format.Euro(s.GrossPay),
			CsgCrdsBase:       format.Euro(s.CsgCrdsBase),
			TotalEmployee:     format.Euro(s.TotalEmployee),
			TotalEmployer:     format.Euro(s.TotalEmployer),
			NetBeforeTax:      format.Euro(s.NetBeforeTax),
			IncomeTax:         format.Euro(s.IncomeTax),
			NetPay:            format.Euro(s.NetPay),
			TotalEmployerCost: format.Euro(s.TotalEmployerCost),
		},
	}
}
