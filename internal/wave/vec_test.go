package wave

import "testing"

func TestCross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", Vec3{X: 1}, Vec3{Y: 1}, Vec3{Z: 1}},
		{"y cross z", Vec3{Y: 1}, Vec3{Z: 1}, Vec3{X: 1}},
		{"z cross x", Vec3{Z: 1}, Vec3{X: 1}, Vec3{Y: 1}},
		{"parallel", Vec3{1, 2, 3}, Vec3{2, 4, 6}, Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cross(tt.a, tt.b); got != tt.want {
				t.Errorf("Cross(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(Vec3{3, 0, 4})
	if !nearlyEqual(got.X, 0.6, 1e-6) || got.Y != 0 || !nearlyEqual(got.Z, 0.8, 1e-6) {
		t.Errorf("Normalize(3,0,4) = %v, want (0.6,0,0.8)", got)
	}
	if got := Normalize(Vec3{}); got != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
	if got := Dot(Vec3{1, 2, 3}, Vec3{4, -5, 6}); got != 12 {
		t.Errorf("Dot = %v, want 12", got)
	}
	if got := Sub(Add(Vec3{1, 2, 3}, Vec3{1, 1, 1}), Scale(Vec3{1, 1, 1}, 2)); got != (Vec3{0, 1, 2}) {
		t.Errorf("Add/Sub/Scale = %v, want (0,1,2)", got)
	}
}
