package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MedicalAdvice is the schema-constrained reply for the medical-query domain.
// Field shapes coming back from the model are not trusted: list fields may
// arrive as bare strings and referrals as a string, a single object, or a
// mixed array, so decoding normalizes everything into one canonical shape.
type MedicalAdvice struct {
	Answer             string       `json:"answer"`
	PossibleConditions StringList   `json:"possible_conditions"`
	Recommendations    StringList   `json:"recommendations"`
	DoctorReferrals    ReferralList `json:"doctor_referrals"`
	Precautions        StringList   `json:"precautions"`
	Disclaimer         string       `json:"disclaimer"`
}

// StringList accepts a JSON string or an array and normalizes to a slice.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*s = nil
		} else {
			*s = StringList{one}
		}
		return nil
	}

	var many []any
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	out := make(StringList, 0, len(many))
	for _, v := range many {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		default:
			b, _ := json.Marshal(v)
			out = append(out, string(b))
		}
	}
	*s = out
	return nil
}

// Referral is one specialist referral suggested by the model.
type Referral struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Contact   string `json:"contact"`
	Location  string `json:"location,omitempty"`
}

// ReferralList decodes the shape-varying doctor_referrals field into a list of
// Referral objects. A bare string (or a string element) becomes a generic
// referral carrying the string as the specialty.
type ReferralList []Referral

func referralFromSpecialty(s string) Referral {
	return Referral{
		Name:      "Healthcare Provider",
		Specialty: s,
		Contact:   "Consult local directory",
	}
}

func (r *ReferralList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = nil
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*r = nil
			return nil
		}
		*r = ReferralList{referralFromSpecialty(s)}
		return nil
	case '{':
		var one Referral
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*r = ReferralList{one}
		return nil
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return err
		}
		out := make(ReferralList, 0, len(elems))
		for _, e := range elems {
			e = bytes.TrimSpace(e)
			if len(e) == 0 {
				continue
			}
			if e[0] == '"' {
				var s string
				if err := json.Unmarshal(e, &s); err != nil {
					return err
				}
				if s != "" {
					out = append(out, referralFromSpecialty(s))
				}
				continue
			}
			var one Referral
			if err := json.Unmarshal(e, &one); err != nil {
				return err
			}
			out = append(out, one)
		}
		*r = out
		return nil
	default:
		return fmt.Errorf("doctor_referrals: unsupported JSON shape")
	}
}

// Specialties returns the lowercased specialty names for directory matching.
func (r ReferralList) Specialties() []string {
	out := make([]string, 0, len(r))
	for _, ref := range r {
		if s := strings.ToLower(strings.TrimSpace(ref.Specialty)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
