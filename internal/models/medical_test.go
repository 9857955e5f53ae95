package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestReferralListDecodesVariedShapes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want ReferralList
	}{
		{
			name: "bare string",
			in:   `"Cardiologist"`,
			want: ReferralList{referralFromSpecialty("Cardiologist")},
		},
		{
			name: "single object",
			in:   `{"name": "Dr. A", "specialty": "Neurologist", "contact": "555-1"}`,
			want: ReferralList{{Name: "Dr. A", Specialty: "Neurologist", Contact: "555-1"}},
		},
		{
			name: "mixed array",
			in:   `["Dermatologist", {"name": "Dr. B", "specialty": "Oncologist", "contact": "555-2"}]`,
			want: ReferralList{
				referralFromSpecialty("Dermatologist"),
				{Name: "Dr. B", Specialty: "Oncologist", Contact: "555-2"},
			},
		},
		{
			name: "null",
			in:   `null`,
			want: nil,
		},
		{
			name: "empty string",
			in:   `""`,
			want: nil,
		},
		{
			name: "array drops empty strings",
			in:   `["", "Psychiatrist"]`,
			want: ReferralList{referralFromSpecialty("Psychiatrist")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ReferralList
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestReferralListRejectsNumbers(t *testing.T) {
	var got ReferralList
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Error("numeric doctor_referrals accepted")
	}
}

func TestStringListDecodesStringAndArray(t *testing.T) {
	var one StringList
	if err := json.Unmarshal([]byte(`"rest"`), &one); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(one, StringList{"rest"}) {
		t.Errorf("bare string = %v", one)
	}

	var many StringList
	if err := json.Unmarshal([]byte(`["rest", {"note": "hydrate"}]`), &many); err != nil {
		t.Fatal(err)
	}
	if len(many) != 2 || many[0] != "rest" || many[1] != `{"note":"hydrate"}` {
		t.Errorf("mixed array = %v", many)
	}
}

func TestSpecialtiesLowercasesAndSkipsEmpty(t *testing.T) {
	refs := ReferralList{
		{Specialty: "  Cardiologist "},
		{Specialty: ""},
		{Specialty: "NEUROLOGIST"},
	}
	got := refs.Specialties()
	want := []string{"cardiologist", "neurologist"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("specialties = %v, want %v", got, want)
	}
}

func TestMedicalAdviceDecodesFullReply(t *testing.T) {
	reply := `{
		"answer": "Rest and monitor.",
		"possible_conditions": "viral infection",
		"recommendations": ["fluids", "rest"],
		"doctor_referrals": "General Practitioner",
		"precautions": [],
		"disclaimer": "See a professional."
	}`
	var advice MedicalAdvice
	if err := json.Unmarshal([]byte(reply), &advice); err != nil {
		t.Fatal(err)
	}
	if advice.Answer != "Rest and monitor." {
		t.Errorf("answer = %q", advice.Answer)
	}
	if !reflect.DeepEqual(advice.PossibleConditions, StringList{"viral infection"}) {
		t.Errorf("conditions = %v", advice.PossibleConditions)
	}
	if len(advice.DoctorReferrals) != 1 || advice.DoctorReferrals[0].Name != "Healthcare Provider" {
		t.Errorf("referrals = %+v", advice.DoctorReferrals)
	}
}
