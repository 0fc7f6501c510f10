package retention_stats

import (
	"net/http"

	"github.com/m04kA/SMC-PetSittingService/internal/api/handlers"
	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// StatsResponse что удалит следующий запуск очистки и размеры таблиц
type StatsResponse struct {
	Cutoff                string `json:"cutoff"`
	OldBookings           int64  `json:"oldBookings"`
	OrphanedCustomers     int64  `json:"orphanedCustomers"`
	OldUnavailabilities   int64  `json:"oldUnavailabilities"`
	TotalBookings         int64  `json:"totalBookings"`
	TotalCustomers        int64  `json:"totalCustomers"`
	TotalUnavailabilities int64  `json:"totalUnavailabilities"`
}

type Handler struct {
	stats  RetentionStats
	logger Logger
}

func NewHandler(stats RetentionStats, logger Logger) *Handler {
	return &Handler{
		stats:  stats,
		logger: logger,
	}
}

// Handle GET /api/v1/admin/retention/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/retention/stats - Failed to collect stats: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/retention/stats - Stats collected: old_bookings=%d, orphaned_customers=%d",
		stats.OldBookings, stats.OrphanedCustomers)
	handlers.RespondJSON(w, http.StatusOK, StatsResponse{
		Cutoff:                domain.FormatDateTime(stats.Cutoff),
		OldBookings:           stats.OldBookings,
		OrphanedCustomers:     stats.OrphanedCustomers,
		OldUnavailabilities:   stats.OldUnavailabilities,
		TotalBookings:         stats.TotalBookings,
		TotalCustomers:        stats.TotalCustomers,
		TotalUnavailabilities: stats.TotalUnavailabilities,
	})
}
