package models

// Doctor is one entry of the doctor directory. Relevant is derived per-request
// during referral matching and is never persisted.
type Doctor struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Contact   string `json:"contact"`
	Location  string `json:"location,omitempty"`
	Relevant  *bool  `json:"relevant,omitempty"`
}

// DoctorDirectory is the fixed wrapper shape the directory prompt declares.
type DoctorDirectory struct {
	Doctors []Doctor `json:"doctors"`
}
