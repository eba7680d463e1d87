package domain

import "time"

// Dataset is one uploaded workbook registered for analysis.
type Dataset struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"-"`
	Size       int64     `json:"size"`
	SheetNames []string  `json:"sheetNames"`
	UploadedAt time.Time `json:"uploadedAt"`
}
