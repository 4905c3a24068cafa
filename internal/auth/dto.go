package auth

// RegisterDTO is the transport shape for new account registration.
type RegisterDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordDTO carries the replacement password for the forgot-password flow.
type ResetPasswordDTO struct {
	Password string `json:"password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d RegisterDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	if len(d.Password) < 8 {
		return ValidationError{Msg: "password must be at least 8 characters long"}
	}
	if d.Role == "" {
		return ValidationError{Msg: "role is required"}
	}
	if d.Department == "" {
		return ValidationError{Msg: "department is required"}
	}
	return nil
}

func (d LoginDTO) Validate() error {
	if d.Email == "" || d.Password == "" {
		return ValidationError{Msg: "email and password are required"}
	}
	return nil
}

func (d ResetPasswordDTO) Validate() error {
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}
