package main

import "testing"

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in   string
		want uiMode
		err  bool
	}{
		{"", uiAuto, false},
		{"AUTO", uiAuto, false},
		{" on ", uiOn, false},
		{"false", uiOff, false},
		{"sometimes", uiAuto, true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("readUIMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestWantsTUI(t *testing.T) {
	tests := []struct {
		mode  uiMode
		files int
		tty   bool
		want  bool
	}{
		{uiAuto, 1, true, false},
		{uiAuto, 2, true, true},
		{uiAuto, 2, false, false},
		{uiOn, 1, false, true},
		{uiOn, 0, true, false},
		{uiOff, 5, true, false},
	}
	for _, tt := range tests {
		if got := wantsTUI(tt.mode, tt.files, tt.tty); got != tt.want {
			t.Errorf("wantsTUI(%v, %d, %v) = %v, want %v", tt.mode, tt.files, tt.tty, got, tt.want)
		}
	}
}
