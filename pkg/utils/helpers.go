package utils

import (
	"database/sql"
	"time"
)

const DateLayout = "2006-01-02"

func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func NullTimeToEmptyString(nt sql.NullTime) string {
	if nt.Valid {
		return nt.Time.Local().Format("2006-01-02 15:04:05")
	}
	return ""
}

// NullTimeToDateString отдает дату в формате YYYY-MM-DD, как ожидает фронтенд.
func NullTimeToDateString(nt sql.NullTime) string {
	if nt.Valid {
		return nt.Time.Format(DateLayout)
	}
	return ""
}

func TimePtrToDateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

func StringPtr(s string) *string { return &s }
