package protocol

type QARequest struct {
	Question string `json:"question"`
}

type QAResponse struct {
	Answer string `json:"answer"`
}
