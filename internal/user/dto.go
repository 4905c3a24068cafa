package user

// UpdateProfileDTO carries the mutable profile fields. Zero-value fields are
// left untouched.
type UpdateProfileDTO struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
}

func (d UpdateProfileDTO) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if d.Name != nil {
		fields["name"] = *d.Name
	}
	if d.Department != nil {
		fields["department"] = *d.Department
	}
	return fields
}
