package dto

import "fieldpro.app/relay/internal/model"

type MeResponse struct {
	User          *model.User          `json:"user"`
	Organizations []model.Organization `json:"organizations"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
