package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/healthsync/healthsync/internal/logger"
	"github.com/healthsync/healthsync/internal/providers/llm"
)

const directoryReply = `{"doctors": [
	{"name": "Dr. Maya Lin", "specialty": "Cardiologist", "contact": "555-2200", "location": "Riverside Clinic"},
	{"name": "Dr. Omar Reyes", "specialty": "Dermatologist", "contact": "555-2201", "location": "Riverside Clinic"}
]}`

func TestGetDoctorListParsesWrappedReply(t *testing.T) {
	gen := &llm.Mock{Reply: json.RawMessage(directoryReply)}
	dir := NewDoctorDirectory(gen, nil, logger.New())

	doctors, err := dir.GetDoctorList(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(doctors) != 2 || doctors[0].Name != "Dr. Maya Lin" {
		t.Fatalf("doctors = %+v", doctors)
	}
}

func TestGetDoctorListFallsBackOnGenerationError(t *testing.T) {
	gen := &llm.Mock{Err: errStoreDown}
	dir := NewDoctorDirectory(gen, nil, logger.New())

	doctors, err := dir.GetDoctorList(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(doctors) != 3 {
		t.Fatalf("fallback directory has %d entries, want 3", len(doctors))
	}
	if doctors[0].Name != "Dr. Jane Smith" {
		t.Errorf("fallback[0] = %+v", doctors[0])
	}
}

func TestGetDoctorListFallsBackOnEmptyReply(t *testing.T) {
	for _, reply := range []string{`{}`, `{"doctors": []}`, `{"specialists": [{}]}`} {
		gen := &llm.Mock{Reply: json.RawMessage(reply)}
		dir := NewDoctorDirectory(gen, nil, logger.New())

		doctors, err := dir.GetDoctorList(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(doctors) != 3 {
			t.Errorf("reply %s: got %d doctors, want fallback trio", reply, len(doctors))
		}
	}
}

func TestGetDoctorListCacheReadThrough(t *testing.T) {
	gen := &llm.Mock{Reply: json.RawMessage(directoryReply)}
	c := newFakeCache()
	dir := NewDoctorDirectory(gen, c, logger.New())

	first, err := dir.GetDoctorList(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := dir.GetDoctorList(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(gen.Calls) != 1 {
		t.Fatalf("generator called %d times, want 1 (second read from cache)", len(gen.Calls))
	}
	if len(first) != len(second) || first[0].Name != second[0].Name {
		t.Errorf("cache served a different list: %+v vs %+v", first, second)
	}
}

func TestGetDoctorListCacheFailureIsNonFatal(t *testing.T) {
	gen := &llm.Mock{Reply: json.RawMessage(directoryReply)}
	c := newFakeCache()
	c.getErr = errStoreDown
	dir := NewDoctorDirectory(gen, c, logger.New())

	doctors, err := dir.GetDoctorList(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(doctors) != 2 {
		t.Fatalf("cache failure must fall through to generation, got %d doctors", len(doctors))
	}
}
