package quantity

import (
	"errors"
	"reflect"
	"testing"
)

func TestFrameDurationAndColumns(t *testing.T) {
	f := Frame{
		"temp":         {5, 8, 10},
		"elapsed_time": {0, 1, 2},
	}

	if got := f.Duration(); got != 3 {
		t.Errorf("Duration = %d, want 3", got)
	}
	want := []string{"elapsed_time", "temp"}
	if got := f.Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Columns = %v, want %v", got, want)
	}
	if got := (Frame{}).Duration(); got != 0 {
		t.Errorf("empty frame Duration = %d, want 0", got)
	}
}

func TestFrameRows(t *testing.T) {
	f := Frame{
		"temp":         {5, 8, 10},
		"elapsed_time": {0, 1, 2},
	}

	got := f.Row(1)
	want := Store{"temp": 8, "elapsed_time": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Row(1) = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(f.InitialRow(), f.Row(0)) {
		t.Error("InitialRow should equal Row(0)")
	}
	if !reflect.DeepEqual(f.FinalRow(), f.Row(2)) {
		t.Error("FinalRow should equal the last row")
	}

	got["temp"] = 99
	if f["temp"][1] != 8 {
		t.Error("Row should copy values, not alias the column")
	}
}

func TestFrameValidate(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  error
	}{
		{"valid", Frame{"a": {1, 2}, "b": {3, 4}}, nil},
		{"empty", Frame{}, ErrNoColumns},
		{"ragged", Frame{"a": {1, 2}, "b": {3}}, ErrRaggedFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frame.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFrameCloneIsIndependent(t *testing.T) {
	f := Frame{"temp": {5, 8}}
	c := f.Clone()
	c["temp"][0] = 99

	if f["temp"][0] != 5 {
		t.Error("mutating a clone should not affect the original")
	}
}
