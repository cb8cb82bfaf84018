package dto

import "github.com/google/uuid"

// VerificationCallback is the face-match provider's webhook payload.
type VerificationCallback struct {
	VerificationID uuid.UUID `json:"verification_id" validate:"required"`
	Status         string    `json:"status" validate:"required,oneof=processing approved failed"`
	Progress       int       `json:"progress" validate:"min=0,max=100"`
	FailureReason  string    `json:"failure_reason" validate:"max=500"`
}
