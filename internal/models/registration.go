package models

import "time"

// Registration is one visitor's signup. It is created once and never mutated.
type Registration struct {
	ID        string            `json:"id"`
	FullName  string            `json:"fullName"`
	Title     string            `json:"title"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	FormData  map[string]string `json:"formData"` // every submitted field, keyed by FormField.ID
	Timestamp time.Time         `json:"timestamp"`
}

// Clone returns a copy with its own FormData map.
func (r Registration) Clone() Registration {
	out := r
	if r.FormData != nil {
		out.FormData = make(map[string]string, len(r.FormData))
		for k, v := range r.FormData {
			out.FormData[k] = v
		}
	}
	return out
}
