package api

import "github.com/rpgo/portfolio-simulator/internal/domain"

// SimulationRequest is the body of POST /api/v1/simulations. Omitted parameters
// keep the values served by GET /api/v1/defaults.
type SimulationRequest struct {
	domain.SimulationParameters
	IncludePaths bool `json:"include_paths,omitempty"`
}

// DefaultsResponse is the body of GET /api/v1/defaults.
type DefaultsResponse struct {
	Parameters     domain.SimulationParameters `json:"parameters"`
	CrashPreset    domain.CrashConfig          `json:"crash_preset"`
	MaxSimulations int                         `json:"max_simulations"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned in ErrorDetail.Code.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeCancelled        = "REQUEST_CANCELLED"
	CodeInternal         = "INTERNAL_ERROR"
	CodeNotFound         = "NOT_FOUND"
)
