package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type DispatchRequest struct {
	ProviderID string `json:"provider_id"`
}

func (r DispatchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProviderID, validation.Required, validation.Length(1, 64)),
	)
}

type DispatchResponse struct {
	Provider ProviderResponse `json:"provider"`
}
