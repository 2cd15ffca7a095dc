package textutil

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"NP VP", []string{"NP", "VP"}},
		{"  NP   VP  ", []string{"NP", "VP"}},
		{"(D the) N", []string{"(D the)", "N"}},
		{"x(a b)y z", []string{"x(a b)y", "z"}},
		{"(a b)(c d)", []string{"(a b)(c d)"}},
		{"", nil},
		{"a-b c.d", []string{"a-b", "c.d"}},
	}
	for _, tt := range tests {
		got := Tokenize(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsToken(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"S", true},
		{"(NP x)", true},
		{"NP(a b)", true},
		{"NP VP", false},
		{"", false},
		{" S", false},
	}
	for _, tt := range tests {
		if got := IsToken(tt.input); got != tt.want {
			t.Errorf("IsToken(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"3 | S | A | 1.0", []string{"3", "S", "A", "1.0"}},
		{"3|S|A B|1 0", []string{"3", "S", "A B", "1 0"}},
		{"1 | S | A |", []string{"1", "S", "A", ""}},
		{"1 | S", []string{"1", "S"}},
	}
	for _, tt := range tests {
		got := SplitFields(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitFields(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsSkippable(t *testing.T) {
	for _, line := range []string{"", "# comment", "#"} {
		if !IsSkippable(line) {
			t.Errorf("IsSkippable(%q) = false, want true", line)
		}
	}
	if IsSkippable("1 | S | A | 1") {
		t.Error("record line should not be skippable")
	}
}
