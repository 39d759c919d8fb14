package request

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidBirthdayDate = errors.New("birthday_date must be YYYY-MM-DD")
)

// PhaseCompleteRequest is optional; only the configuration phase reads it.
type PhaseCompleteRequest struct {
	BirthdayDate string `json:"birthday_date"`
}

func (r PhaseCompleteRequest) ResolveBirthday() (*time.Time, error) {
	v := strings.TrimSpace(r.BirthdayDate)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, ErrInvalidBirthdayDate
	}
	return &d, nil
}
