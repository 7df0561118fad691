package wide

import "testing"

func TestSplatU16(t *testing.T) {
	for _, n := range []uint16{0, 1, 128, 255} {
		for i, v := range SplatU16(n) {
			if v != n {
				t.Errorf("SplatU16(%d)[%d] = %d", n, i, v)
			}
		}
	}
}

func TestU16x16_Div255(t *testing.T) {
	var v U16x16
	for i := range v {
		v[i] = uint16(i * 17 * 255)
	}
	got := v.Div255()
	for i := range got {
		if want := uint16(i * 17); got[i] != want {
			t.Errorf("lane %d = %d, want %d", i, got[i], want)
		}
	}
}

func TestU16x16_Div255MatchesDivision(t *testing.T) {
	for x := 0; x <= 255*255; x += 13 {
		got := SplatU16(uint16(x)).Div255()[0]
		want := x / 255
		if d := int(got) - want; d < 0 || d > 1 {
			t.Fatalf("Div255(%d) = %d, want %d or %d", x, got, want, want+1)
		}
	}
}

func TestU16x16_Over(t *testing.T) {
	tests := []struct {
		name     string
		src, dst uint16
		alpha    uint16
		want     uint16
	}{
		{"transparent keeps dst", 200, 37, 0, 37},
		{"opaque takes src", 200, 37, 255, 200},
		{"white over black half", 255, 0, 128, 128},
		{"black over white half", 0, 255, 128, 127},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplatU16(tt.src).Over(SplatU16(tt.dst), SplatU16(tt.alpha))
			if got != SplatU16(tt.want) {
				t.Errorf("Over = %v, want all %d", got, tt.want)
			}
		})
	}
}

func TestPixels16LoadStore(t *testing.T) {
	buf := make([]byte, 4*Lanes)
	for i := range buf {
		buf[i] = byte(i * 3)
	}
	var p Pixels16
	p.Load(buf)
	if p.R[1] != 12 || p.G[1] != 15 || p.B[1] != 18 || p.A[1] != 21 {
		t.Errorf("pixel 1 = %d %d %d %d, want 12 15 18 21", p.R[1], p.G[1], p.B[1], p.A[1])
	}
	out := make([]byte, 4*Lanes)
	p.Store(out)
	if string(out) != string(buf) {
		t.Errorf("Store(Load(b)) != b")
	}
}
