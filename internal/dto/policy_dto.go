package dto

type PolicyRequest struct {
	Title      string `json:"title"`
	PolicyText string `json:"policy_text"`
}
