package dto

import "esn-planner/modules/consultant/entity"

// AddConsultantRequest creates a roster member.
type AddConsultantRequest struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required"`
}

// ConsultantResponse for a single roster member.
type ConsultantResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// ReplaceRosterRequest replaces the whole roster.
type ReplaceRosterRequest struct {
	Consultants []ConsultantResponse `json:"consultants"`
}

func ToConsultantResponse(c *entity.Consultant) *ConsultantResponse {
	return &ConsultantResponse{
		ID:   c.ID,
		Name: c.Name,
		Role: c.Role,
	}
}
