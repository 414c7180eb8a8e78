package domain

type SessionStatus struct {
	Authenticated bool   `json:"authenticated"`
	Account       string `json:"account,omitempty"`
}

type LoginResult struct {
	Success bool   `json:"success"`
	Account string `json:"account,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type LogoutResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}
