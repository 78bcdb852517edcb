package api

import (
	"ecpass/internal/quality"
)

// GenerateRequest asks for one password. Length and Formula fall back to
// the configured defaults when omitted.
type GenerateRequest struct {
	Memorable string `json:"memorable" binding:"required"`
	Length    *int   `json:"length,omitempty"`
	Formula   string `json:"formula,omitempty"`
}

// GenerateResponse carries the generated password
type GenerateResponse struct {
	Password    string `json:"password"`
	Length      int    `json:"length"`
	Formula     string `json:"formula"`
	Fingerprint string `json:"fingerprint"`
}

// QualityResponse carries a quality report; the password is omitted
type QualityResponse struct {
	Length      int            `json:"length"`
	Formula     string         `json:"formula"`
	Fingerprint string         `json:"fingerprint"`
	Report      quality.Report `json:"report"`
}

// BatchRequest asks for several passwords generated with one formula
type BatchRequest struct {
	Formula string            `json:"formula,omitempty"`
	Items   []GenerateRequest `json:"items" binding:"required"`
}

// BatchItem is one entry of a batch response; exactly one of Password and Error is set
type BatchItem struct {
	Index       int    `json:"index"`
	Password    string `json:"password,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Error       string `json:"error,omitempty"`
	Code        string `json:"code,omitempty"`
}

// BatchResponse lists results in request order
type BatchResponse struct {
	Formula string      `json:"formula"`
	Items   []BatchItem `json:"items"`
}

// FormulaInfo describes one registered formula
type FormulaInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}
