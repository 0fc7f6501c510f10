package run_retention

import (
	"net/http"

	"github.com/m04kA/SMC-PetSittingService/internal/api/handlers"
	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	retentionCleanup "github.com/m04kA/SMC-PetSittingService/internal/usecase/retention_cleanup"
)

// RetentionRunResponse количество удаленных строк
type RetentionRunResponse struct {
	Cutoff                  string `json:"cutoff"`
	DeletedItems            int64  `json:"deletedItems"`
	DeletedBookings         int64  `json:"deletedBookings"`
	DeletedCustomers        int64  `json:"deletedCustomers"`
	DeletedUnavailabilities int64  `json:"deletedUnavailabilities"`
	DeletedRecurringRules   int64  `json:"deletedRecurringRules"`
}

func fromResult(res *retentionCleanup.Result) RetentionRunResponse {
	return RetentionRunResponse{
		Cutoff:                  domain.FormatDateTime(res.Cutoff),
		DeletedItems:            res.DeletedItems,
		DeletedBookings:         res.DeletedBookings,
		DeletedCustomers:        res.DeletedCustomers,
		DeletedUnavailabilities: res.DeletedUnavailabilities,
		DeletedRecurringRules:   res.DeletedRecurringRules,
	}
}

type Handler struct {
	useCase RetentionUseCase
	logger  Logger
}

func NewHandler(useCase RetentionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/retention/run
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/retention/run - Retention sweep failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/retention/run - Retention sweep completed: bookings=%d, customers=%d",
		result.DeletedBookings, result.DeletedCustomers)
	handlers.RespondJSON(w, http.StatusOK, fromResult(result))
}
