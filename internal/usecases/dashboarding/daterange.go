package dashboarding

import "time"

// Presets de período aceitos pelo resolvedor de datas. Qualquer outro valor
// cai no tratamento de datas customizadas.
const (
	PresetToday       = "today"
	PresetThisWeek    = "this_week"
	PresetThisMonth   = "this_month"
	PresetLastMonth   = "last_month"
	PresetThisQuarter = "this_quarter"
)

// ResolveDateRange converte um preset (ou datas customizadas) em um intervalo
// inclusivo [start, end] relativo ao dia informado. Datas customizadas
// inválidas ou ausentes caem silenciosamente em (hoje, hoje); datas invertidas
// são trocadas. Nunca retorna erro.
func ResolveDateRange(preset, fromStr, toStr string, today time.Time) (time.Time, time.Time) {
	today = truncateToDay(today)

	switch preset {
	case PresetToday:
		return today, today

	case PresetThisWeek:
		// Semana começa na segunda-feira
		start := today.AddDate(0, 0, -weekdayIndex(today))
		return start, start.AddDate(0, 0, 6)

	case PresetThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(0, 1, 0).AddDate(0, 0, -1)

	case PresetLastMonth:
		firstOfThisMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end := firstOfThisMonth.AddDate(0, 0, -1)
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, today.Location())
		return start, end

	case PresetThisQuarter:
		quarter := (int(today.Month()) - 1) / 3
		startMonth := time.Month(3*quarter + 1)
		start := time.Date(today.Year(), startMonth, 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(0, 3, 0).AddDate(0, 0, -1)
	}

	if fromStr != "" && toStr != "" {
		from, errFrom := time.ParseInLocation(time.DateOnly, fromStr, today.Location())
		to, errTo := time.ParseInLocation(time.DateOnly, toStr, today.Location())
		if errFrom == nil && errTo == nil {
			if to.Before(from) {
				from, to = to, from
			}
			return from, to
		}
	}

	return today, today
}

// DaysBetween retorna o número de dias de calendário do intervalo inclusivo
// [start, end], sempre >= 1 para intervalos válidos
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// weekdayIndex retorna o índice do dia da semana com a segunda-feira como zero
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
