package handler

import (
	"context"
	"net/http"

	"github.com/corebank/fdledger/internal/adapter/http/dto"
	"github.com/corebank/fdledger/internal/usecase"
)

// AccrualService defines the behavior needed by JobsHandler.
type AccrualService interface {
	RunFDInterestJob(ctx context.Context) (*usecase.RunReport, error)
	RunMaturityJob(ctx context.Context) (*usecase.RunReport, error)
	RunSavingsInterestJob(ctx context.Context) (*usecase.RunReport, error)
}

// JobsHandler triggers the accrual batch jobs on demand. The jobs gate
// themselves, so a manual trigger alongside the scheduler is safe.
type JobsHandler struct {
	accrualUC AccrualService
}

// NewJobsHandler creates a new JobsHandler.
func NewJobsHandler(accrualUC AccrualService) *JobsHandler {
	return &JobsHandler{accrualUC: accrualUC}
}

// RunFDInterest triggers the fixed deposit interest job.
func (h *JobsHandler) RunFDInterest(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.accrualUC.RunFDInterestJob)
}

// RunMaturity triggers the maturity job.
func (h *JobsHandler) RunMaturity(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.accrualUC.RunMaturityJob)
}

// RunSavingsInterest triggers the savings interest job.
func (h *JobsHandler) RunSavingsInterest(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.accrualUC.RunSavingsInterestJob)
}

func (h *JobsHandler) run(w http.ResponseWriter, r *http.Request, job func(context.Context) (*usecase.RunReport, error)) {
	report, err := job(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "job failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RunReportFromUseCase(report))
}
