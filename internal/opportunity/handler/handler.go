package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"p2parb/internal/fx"
	"p2parb/internal/opportunity"
)

type Validator interface {
	ValidateCode(code string) error
	SupportedCodes() []string
	ParseParams(mode, capital, topK string) (opportunity.Params, error)
}

type Service interface {
	Opportunities(ctx context.Context, params opportunity.Params) (opportunity.Result, error)
	Quotes(ctx context.Context) (opportunity.Snapshot, error)
	Rates() *fx.Snapshot
}

type Handler struct {
	validator Validator
	service   Service
}

func NewHandler(validator Validator, service Service) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
