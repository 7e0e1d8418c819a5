package httpapi

import "github.com/artintellm/mockauth"

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
}

type emailVerificationRequest struct {
	Token string `json:"token"`
}

type resendVerificationRequest struct {
	Email string `json:"email"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordReset struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// profileUpdate uses pointer fields so that absent keys survive decoding as
// nil and are left untouched by the engine merge.
type profileUpdate struct {
	FullName     *string        `json:"full_name"`
	Bio          *string        `json:"bio"`
	Organization *string        `json:"organization"`
	Preferences  map[string]any `json:"preferences"`
}

func (p profileUpdate) toEngine() mockauth.ProfileUpdate {
	return mockauth.ProfileUpdate{
		FullName:     p.FullName,
		Bio:          p.Bio,
		Organization: p.Organization,
		Preferences:  p.Preferences,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
