package array

import (
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Auto, "auto"},
		{Uint8, "uint8"},
		{Uint16, "uint16"},
		{Int32, "int32"},
		{Float64, "float64"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"uint8", Uint8, false},
		{"Uint16", Uint16, false},
		{"int32", Int32, false},
		{"float64", Float64, false},
		{"", Auto, false},
		{"auto", Auto, false},
		{"complex128", Auto, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKindByteWidth(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Uint8, 1},
		{Uint16, 2},
		{Int32, 4},
		{Float64, 8},
	}

	for _, tt := range tests {
		if got := tt.kind.ByteWidth(); got != tt.want {
			t.Errorf("%s.ByteWidth() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	a := New(Uint8, 4, 5, 3)

	if a.Rank() != 3 {
		t.Errorf("Rank() = %d, want 3", a.Rank())
	}
	if a.Len() != 60 {
		t.Errorf("Len() = %d, want 60", a.Len())
	}
	if a.Channels() != 3 {
		t.Errorf("Channels() = %d, want 3", a.Channels())
	}
}

func TestChannels_2D(t *testing.T) {
	a := New(Uint8, 4, 5)
	if a.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1 for 2-D array", a.Channels())
	}
}

func TestFromValues(t *testing.T) {
	a, err := FromValues(Uint8, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("FromValues failed: %v", err)
	}
	if a.At(1, 2) != 6 {
		t.Errorf("At(1,2) = %g, want 6", a.At(1, 2))
	}
	if a.At(0, 1) != 2 {
		t.Errorf("At(0,1) = %g, want 2", a.At(0, 1))
	}
}

func TestFromValues_CountMismatch(t *testing.T) {
	if _, err := FromValues(Uint8, []int{2, 3}, []float64{1, 2}); err == nil {
		t.Error("FromValues should fail when value count does not match shape")
	}
}

func TestSetAt(t *testing.T) {
	a := New(Uint16, 3, 4, 3)
	a.Set(1234, 2, 3, 1)

	if a.At(2, 3, 1) != 1234 {
		t.Errorf("At(2,3,1) = %g, want 1234", a.At(2, 3, 1))
	}
	// Row-major layout: offset = (2*4+3)*3 + 1
	if a.Data[34] != 1234 {
		t.Errorf("Data[34] = %g, want 1234", a.Data[34])
	}
}

func TestSqueezeTrailing(t *testing.T) {
	tests := []struct {
		name  string
		shape []int
		want  []int
	}{
		{"no trailing ones", []int{4, 5}, []int{4, 5}},
		{"single trailing one", []int{4, 5, 1}, []int{4, 5}},
		{"column vector", []int{4, 1}, []int{4}},
		{"keeps at least one dim", []int{1, 1}, []int{1}},
		{"interior one preserved", []int{4, 1, 3}, []int{4, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(Uint8, tt.shape...)
			got := a.SqueezeTrailing()
			if len(got.Shape) != len(tt.want) {
				t.Fatalf("shape = %v, want %v", got.Shape, tt.want)
			}
			for i := range tt.want {
				if got.Shape[i] != tt.want[i] {
					t.Fatalf("shape = %v, want %v", got.Shape, tt.want)
				}
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	a, err := FromValues(Int32, []int{2, 2}, []float64{-5, 0, 300, 7})
	if err != nil {
		t.Fatalf("FromValues failed: %v", err)
	}

	if a.Min() != -5 {
		t.Errorf("Min() = %g, want -5", a.Min())
	}
	if a.Max() != 300 {
		t.Errorf("Max() = %g, want 300", a.Max())
	}
}

func TestMinMax_Empty(t *testing.T) {
	a := New(Uint8, 0, 4)
	if a.Min() != 0 || a.Max() != 0 {
		t.Errorf("empty array Min/Max = %g/%g, want 0/0", a.Min(), a.Max())
	}
}

func TestEqual(t *testing.T) {
	base, _ := FromValues(Uint8, []int{2, 2}, []float64{1, 2, 3, 4})

	same, _ := FromValues(Uint8, []int{2, 2}, []float64{1, 2, 3, 4})
	if !base.Equal(same) {
		t.Error("identical arrays should compare equal")
	}

	otherKind, _ := FromValues(Uint16, []int{2, 2}, []float64{1, 2, 3, 4})
	if base.Equal(otherKind) {
		t.Error("arrays of different kinds should not compare equal")
	}

	otherShape, _ := FromValues(Uint8, []int{4, 1}, []float64{1, 2, 3, 4})
	if base.Equal(otherShape) {
		t.Error("arrays of different shapes should not compare equal")
	}

	otherValues, _ := FromValues(Uint8, []int{2, 2}, []float64{1, 2, 3, 5})
	if base.Equal(otherValues) {
		t.Error("arrays of different values should not compare equal")
	}
}

func TestClone_Independent(t *testing.T) {
	a, _ := FromValues(Uint8, []int{2, 2}, []float64{1, 2, 3, 4})
	c := a.Clone()
	c.Data[0] = 99

	if a.Data[0] != 1 {
		t.Error("mutating a clone should not affect the original")
	}
}
