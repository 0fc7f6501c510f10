package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	"github.com/m04kA/SMC-PetSittingService/pkg/types"
)

// candidate интервал-кандидат до проверки доступности
type candidate struct {
	start time.Time
	end   time.Time
	label string
}

// fullDayCandidate единственный кандидат для посуточной услуги: [00:00, 23:59:59]
func fullDayCandidate(date time.Time) candidate {
	start := domain.StartOfDay(date)
	return candidate{
		start: start,
		end:   domain.NextDay(start).Add(-time.Second),
		label: domain.TitleFullDay,
	}
}

// generateCandidates перебирает окна длиной lengthMinutes с шагом stepMinutes
// от начала до конца рабочего окна. Окно, выходящее за конец, отбрасывается.
func generateCandidates(date time.Time, lengthMinutes, stepMinutes int) []candidate {
	if lengthMinutes <= 0 || stepMinutes <= 0 {
		return []candidate{}
	}

	dayStart := types.TimeString(domain.OperatingDayStart).On(date)
	dayEnd := types.TimeString(domain.OperatingDayEnd).On(date)
	length := time.Duration(lengthMinutes) * time.Minute
	step := time.Duration(stepMinutes) * time.Minute

	result := make([]candidate, 0)
	for current := dayStart; current.Before(dayEnd); current = current.Add(step) {
		end := current.Add(length)
		if end.After(dayEnd) {
			break
		}

		result = append(result, candidate{
			start: current,
			end:   end,
			label: current.Format(domain.TimeFormat) + " - " + end.Format(domain.TimeFormat),
		})
	}

	return result
}
