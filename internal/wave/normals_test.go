package wave

import "testing"

func TestNormalsUnitLength(t *testing.T) {
	s := newTestSim(t, 16, 16)
	if err := s.Disturb(7, 8, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.Disturb(3, 3, -1); err != nil {
		t.Fatal(err)
	}
	for frame := 0; frame < 50; frame++ {
		if err := s.Update(testDt * 1.3); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < s.VertexCount(); i++ {
			if l := Length(s.Normal(i)); !nearlyEqual(l, 1, 1e-5) {
				t.Fatalf("frame %d: |Normal(%d)| = %v, want 1", frame, i, l)
			}
			if l := Length(s.TangentX(i)); !nearlyEqual(l, 1, 1e-5) {
				t.Fatalf("frame %d: |TangentX(%d)| = %v, want 1", frame, i, l)
			}
			if d := Dot(s.Normal(i), s.TangentX(i)); !nearlyEqual(d, 0, 1e-5) {
				t.Fatalf("frame %d: Normal(%d).TangentX = %v, want 0", frame, i, d)
			}
			if s.Normal(i).Y <= 0 {
				t.Fatalf("frame %d: Normal(%d) = %v points down", frame, i, s.Normal(i))
			}
		}
	}
}

func TestNormalsFollowSlope(t *testing.T) {
	s := newTestSim(t, 9, 9)
	if err := s.Disturb(4, 4, 1); err != nil {
		t.Fatal(err)
	}
	// Update(0) runs no step but still refreshes the disturbed surface.
	if err := s.Update(0); err != nil {
		t.Fatal(err)
	}
	if s.Steps() != 0 {
		t.Fatalf("Steps() = %d, want 0", s.Steps())
	}
	// Left of the bump the surface rises toward +x, so the normal leans to -x.
	if n := s.Normal(s.Index(4, 3)); n.X >= 0 {
		t.Errorf("Normal left of bump = %v, want negative X", n)
	}
	if n := s.Normal(s.Index(4, 5)); n.X <= 0 {
		t.Errorf("Normal right of bump = %v, want positive X", n)
	}
	if n := s.Normal(s.Index(3, 4)); n.Z >= 0 {
		t.Errorf("Normal before bump along z = %v, want negative Z", n)
	}
	if n := s.Normal(s.Index(5, 4)); n.Z <= 0 {
		t.Errorf("Normal after bump along z = %v, want positive Z", n)
	}
	if tx := s.TangentX(s.Index(4, 3)); tx.Y <= 0 {
		t.Errorf("TangentX left of bump = %v, want rising", tx)
	}
}

func TestBorderNormalsCopyInterior(t *testing.T) {
	s := newTestSim(t, 8, 8)
	if err := s.Disturb(1, 2, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(testDt); err != nil {
		t.Fatal(err)
	}
	if got, want := s.Normal(s.Index(0, 2)), s.Normal(s.Index(1, 2)); got != want {
		t.Errorf("border normal = %v, want nearest interior %v", got, want)
	}
	if got, want := s.Normal(s.Index(0, 0)), s.Normal(s.Index(1, 1)); got != want {
		t.Errorf("corner normal = %v, want nearest interior %v", got, want)
	}
	if got, want := s.TangentX(s.Index(7, 7)), s.TangentX(s.Index(6, 6)); got != want {
		t.Errorf("corner tangent = %v, want nearest interior %v", got, want)
	}
}
