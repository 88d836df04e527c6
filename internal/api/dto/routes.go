package dto

import "hvac-dispatch-service/internal/domain"

type ListRoutesResponse struct {
	Date   string                  `json:"date"`
	Routes []domain.OptimizedRoute `json:"routes"`
}
