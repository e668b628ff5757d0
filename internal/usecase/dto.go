package usecase

type SubmitLeadInput struct {
	Kind         string `json:"kind"` // join | contact
	CaptchaToken string `json:"captcha_token"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	// Join variant
	Role          string   `json:"role"` // student | teacher
	Grade         string   `json:"grade"`
	Board         string   `json:"board"`
	Subjects      []string `json:"subjects"`
	Qualification string   `json:"qualification"`
	Experience    string   `json:"experience"`

	// Contact variant
	Subject string `json:"subject"`
	Message string `json:"message"`

	// Free-form extras land in Lead.Meta, never as arbitrary top-level fields.
	Meta map[string]string `json:"meta,omitempty"`

	// Filled by the handler, not the client.
	ClientIP string `json:"-"`
}

type SubmitLeadOutput struct {
	ID         string `json:"id"`
	TrackingID string `json:"tracking_id"`
	Status     string `json:"status"`
	Msg        string `json:"msg"`
}
