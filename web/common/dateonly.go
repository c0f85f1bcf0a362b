package common

import (
	"encoding/json"
	"fmt"
	"time"

	"neemba.com/sepkpi/utils"
)

// DateOnly marshals as "yyyy-MM-dd" and accepts the same flexible formats
// as the spreadsheet loaders on input.
type DateOnly struct {
	time.Time
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := utils.ParseDate(s)
	if err != nil {
		return fmt.Errorf("invalid date format: %v", err)
	}

	d.Time = t
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(utils.DateLayout))
}
