package pkg

import "time"

// ParseReportDate parses a "YYYY-MM-DD" report date. An empty string means
// today. The returned range is [start, end) of that local calendar day.
func ParseReportDate(dateStr string) (day string, start, end time.Time, err error) {
	var t time.Time
	if dateStr == "" {
		t = time.Now()
	} else {
		t, err = time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			return "", time.Time{}, time.Time{}, err
		}
	}

	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	end = start.AddDate(0, 0, 1)
	return start.Format("2006-01-02"), start, end, nil
}
