package dtos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/presentation/controllers/dtos"
)

func TestCreateAirlockRequestDTO_Ok(t *testing.T) {
	valid := dtos.CreateAirlockRequestDTO{
		Type:                  "export",
		Title:                 "results export",
		BusinessJustification: "publishing study results",
	}
	assert.NoError(t, valid.Ok())

	tests := []struct {
		name   string
		mutate func(*dtos.CreateAirlockRequestDTO)
	}{
		{"missing type", func(d *dtos.CreateAirlockRequestDTO) { d.Type = "" }},
		{"unknown type", func(d *dtos.CreateAirlockRequestDTO) { d.Type = "sideways" }},
		{"missing title", func(d *dtos.CreateAirlockRequestDTO) { d.Title = "" }},
		{"missing justification", func(d *dtos.CreateAirlockRequestDTO) { d.BusinessJustification = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := valid
			tt.mutate(&dto)
			assert.Error(t, dto.Ok())
		})
	}
}

func TestReviewDecisionDTO_Ok(t *testing.T) {
	valid := dtos.ReviewDecisionDTO{
		Decision:            "approved",
		DecisionExplanation: "payload verified",
	}
	assert.NoError(t, valid.Ok())

	invalid := valid
	invalid.Decision = "maybe"
	assert.Error(t, invalid.Ok())

	invalid = valid
	invalid.DecisionExplanation = ""
	assert.Error(t, invalid.Ok())
}
