package quantity

import (
	"errors"
	"reflect"
	"testing"
)

func TestStoreGet(t *testing.T) {
	s := Store{"position": 1.5, "velocity": -2.0}

	v, err := s.Get("position")
	if err != nil {
		t.Fatalf("Get(position) returned error: %v", err)
	}
	if v != 1.5 {
		t.Errorf("Get(position) = %v, want 1.5", v)
	}

	_, err = s.Get("mass")
	if err == nil {
		t.Fatal("Get(mass) should fail for an undefined quantity")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Get(mass) error should be *NotFoundError, got %T", err)
	}
	if nf.Name != "mass" {
		t.Errorf("NotFoundError.Name = %q, want %q", nf.Name, "mass")
	}
}

func TestStoreAddAccumulates(t *testing.T) {
	s := NewStore()
	s.Add("TTc", 0.5)
	s.Add("TTc", 0.25)

	if s["TTc"] != 0.75 {
		t.Errorf("Add should accumulate: got %v, want 0.75", s["TTc"])
	}
}

func TestStoreSelect(t *testing.T) {
	s := Store{"position": 0, "velocity": 1, "mass": 10, "spring_constant": 0.1}

	in, err := s.Select("position", "velocity", "mass")
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	want := Store{"position": 0, "velocity": 1, "mass": 10}
	if !reflect.DeepEqual(in, want) {
		t.Errorf("Select = %v, want %v", in, want)
	}

	if _, err := s.Select("position", "tbase"); err == nil {
		t.Error("Select should fail when a name is undefined")
	}
}

func TestStoreKeysSorted(t *testing.T) {
	s := Store{"velocity": 1, "mass": 10, "position": 0}

	got := s.Keys()
	want := []string{"mass", "position", "velocity"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
}

func TestStoreCloneIsIndependent(t *testing.T) {
	s := Store{"position": 1}
	c := s.Clone()
	c["position"] = 2

	if s["position"] != 1 {
		t.Error("mutating a clone should not affect the original")
	}
}
