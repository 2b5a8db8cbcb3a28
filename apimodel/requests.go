package apimodel

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// GoogleCodeLoginRequest carries the server auth code from the Google
// mobile SDK.
type GoogleCodeLoginRequest struct {
	Code string `json:"code"`
}

// DevLoginRequest selects the user to impersonate. An empty email selects
// the owner of the LMS service token.
type DevLoginRequest struct {
	Email string `json:"email,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SubmitAssignmentRequest struct {
	Text string `json:"text"`
}

type ReplyRequest struct {
	Message string `json:"message"`
}
