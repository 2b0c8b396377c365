package dto

type AskRequest struct {
	Message string `json:"message" form:"message"`
}

type AskResponse struct {
	Reply string `json:"reply"`
}
