package captcha

// siteverify response shape. Only Success matters to us; error codes go to
// the log.
type verifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}
