package contracts

import "testing"

func TestOctaveFromNote(t *testing.T) {
	cases := []struct {
		note byte
		want byte
	}{
		{0, 0},
		{11, 0},
		{12, 1},
		{60, 5},
		{127, 10},
	}

	for _, tc := range cases {
		if got := OctaveFromNote(tc.note); got != tc.want {
			t.Errorf("OctaveFromNote(%d) = %d, want %d", tc.note, got, tc.want)
		}
	}
}

func TestToneFromNote(t *testing.T) {
	cases := []struct {
		note byte
		want Tone
	}{
		{0, C},
		{1, CSharp},
		{60, C},
		{61, CSharp},
		{127, G},
	}

	for _, tc := range cases {
		if got := ToneFromNote(tc.note); got != tc.want {
			t.Errorf("ToneFromNote(%d) = %d, want %d", tc.note, got, tc.want)
		}
	}
}
