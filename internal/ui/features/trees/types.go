package trees

// ProcessRequest is the JSON body accepted by /process-numbers-json.
type ProcessRequest struct {
	Numbers  *string `json:"numbers"`
	Balanced bool    `json:"balanced"`
}

// LastInput is the most recent submission remembered for a browser session.
type LastInput struct {
	Numbers  string `json:"numbers"`
	Balanced bool   `json:"balanced"`
}

// HistorySignals are the datastar signals patched on history changes.
type HistorySignals struct {
	HistoryCount int    `json:"historyCount"`
	LatestID     string `json:"latestId"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
