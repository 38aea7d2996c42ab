package dto

type BoardGroupResponse struct {
	JobDescription string              `json:"job_description"`
	Candidates     []CandidateResponse `json:"candidates"`
}

type BoardRoundResponse struct {
	Status string               `json:"status"`
	Label  string               `json:"label"`
	Groups []BoardGroupResponse `json:"groups"`
}
