package handler

// messageResponse is the envelope used for plain informational replies and,
// through the error handler, for every 4xx/5xx response.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

// credentialsRequest is shared by register and login. Older clients send the
// external id under "rut"; both names are accepted.
type credentialsRequest struct {
	ExternalID string `json:"externalId"`
	Rut        string `json:"rut,omitempty"`
	Password   string `json:"password"`
}

func (r credentialsRequest) externalID() string {
	if r.ExternalID != "" {
		return r.ExternalID
	}
	return r.Rut
}

type registerRequest struct {
	credentialsRequest
	Role string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// --- Scores ---

type scoreResponse struct {
	Score   int    `json:"score"`
	Message string `json:"message,omitempty"`
}

type scoreItem struct {
	Code  string `json:"code"`
	Value int    `json:"value"`
}

// seedRequest binds value to *int so that a missing value is distinguishable
// from zero and a non-integer value fails binding.
type seedRequest struct {
	Code  string `json:"code"  validate:"required"`
	Value *int   `json:"value" validate:"required,min=0,max=100"`
}

type seedResponse struct {
	Message string    `json:"message"`
	Score   scoreItem `json:"score"`
}

// --- Admin ---

type adminDataResponse struct {
	Message string `json:"message"`
	Claims  any    `json:"claims"`
}
