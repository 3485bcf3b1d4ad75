package utils

import "time"

// ParseDate converte uma string "yyyy-mm-dd" em *time.Time.
// String vazia retorna a data zero, sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// ParseVendorDateTime converte data e hora separadas ("yyyy-mm-dd", "hh:mm:ss")
// no formato usado pelo Bling. A hora é opcional.
func ParseVendorDateTime(dateStr, timeStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}

	if timeStr != "" {
		if t, err := time.Parse("2006-01-02 15:04:05", dateStr+" "+timeStr); err == nil {
			return t, true
		}
	}

	t, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// DayKey normaliza um timestamp para a meia-noite do dia correspondente
func DayKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
