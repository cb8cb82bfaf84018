package dto

import "time"

type UpdateProfileRequest struct {
	Name      *string    `json:"name" validate:"omitempty,max=100"`
	Bio       *string    `json:"bio" validate:"omitempty,max=2000"`
	BirthDate *time.Time `json:"birthDate"`
	Photos    []string   `json:"photos" validate:"omitempty,max=9,dive,url"`
}

type SubmitAppealRequest struct {
	AppealMessage string `json:"appealMessage" validate:"required,min=30,max=4000"`
}

type ReviewAppealRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note" validate:"max=1000"`
}
