package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// StartOfDay zera o horário mantendo o fuso da data
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// LookbackWindow retorna [until-days, until], com until no início do dia
func LookbackWindow(until time.Time, days int) (time.Time, time.Time) {
	end := StartOfDay(until)
	return end.AddDate(0, 0, -days), end
}
