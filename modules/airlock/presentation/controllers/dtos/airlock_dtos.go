package dtos

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateAirlockRequestDTO is the payload for opening a new draft request.
type CreateAirlockRequestDTO struct {
	Type                  string `json:"type" validate:"required,oneof=import export"`
	Title                 string `json:"title" validate:"required,max=120"`
	BusinessJustification string `json:"businessJustification" validate:"required,max=2000"`
}

func (d *CreateAirlockRequestDTO) Ok() error {
	return validate.Struct(d)
}

// ReviewDecisionDTO is the payload for recording a review verdict.
type ReviewDecisionDTO struct {
	Decision            string `json:"reviewDecision" validate:"required,oneof=approved rejected"`
	DecisionExplanation string `json:"decisionExplanation" validate:"required,max=2000"`
}

func (d *ReviewDecisionDTO) Ok() error {
	return validate.Struct(d)
}
