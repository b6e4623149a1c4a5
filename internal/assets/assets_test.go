package assets

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestLoadEmbeddedSheet(t *testing.T) {
	sheet, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	for i, d := range sheet.Digits {
		if d.Empty() {
			t.Errorf("digit %d is empty", i)
		}
	}
	if !sheet.TopPipe.Tile || !sheet.Ground.Tile {
		t.Error("pipes and ground should tile")
	}
	if sheet.TopPipe.Color != core.ColorBrightGreen {
		t.Errorf("top pipe color = %d, expected bright green", sheet.TopPipe.Color)
	}

	anim, err := sheet.BirdAnimation()
	if err != nil {
		t.Fatalf("BirdAnimation() failed: %v", err)
	}
	if len(anim.Frames) != 4 || anim.FPS != 12 {
		t.Errorf("bird animation = %d frames at %g fps, expected 4 at 12", len(anim.Frames), anim.FPS)
	}
}

func TestBirdAnimationsAreIndependent(t *testing.T) {
	sheet, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	a, _ := sheet.BirdAnimation()
	b, _ := sheet.BirdAnimation()
	a.Advance(0.1)
	if b.Frame() != 0 {
		t.Error("advancing one animation should not affect another")
	}
}

const validSheet = `
sprites:
  background: {rows: ["."]}
  toppipe: {rows: ["#"], tile: true}
  bottompipe: {rows: ["#"], tile: true}
  ground: {rows: ["="], tile: true}
  digit_0: {rows: ["0"]}
  digit_1: {rows: ["1"]}
  digit_2: {rows: ["2"]}
  digit_3: {rows: ["3"]}
  digit_4: {rows: ["4"]}
  digit_5: {rows: ["5"]}
  digit_6: {rows: ["6"]}
  digit_7: {rows: ["7"]}
  digit_8: {rows: ["8"]}
  digit_9: {rows: ["9"]}
animations:
  bird: {fps: 12, frames: [[">"]]}
`

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"valid", validSheet, ""},
		{"malformed yaml", "sprites: [", "cannot parse"},
		{"missing digit", strings.Replace(validSheet, `digit_7: {rows: ["7"]}`, "", 1), `"digit_7"`},
		{"ragged rows", strings.Replace(validSheet, `ground: {rows: ["="]`, `ground: {rows: ["==", "="]`, 1), "row 1"},
		{"empty rows", strings.Replace(validSheet, `toppipe: {rows: ["#"]`, `toppipe: {rows: []`, 1), "no rows"},
		{"unknown color", strings.Replace(validSheet, `background: {rows: ["."]}`, `background: {rows: ["."], color: puce}`, 1), "unknown color"},
		{"zero fps", strings.Replace(validSheet, "fps: 12", "fps: 0", 1), "fps"},
		{"no frames", strings.Replace(validSheet, `frames: [[">"]]`, "frames: []", 1), "no frames"},
		{"missing animation", strings.Replace(validSheet, `bird: {fps: 12, frames: [[">"]]}`, "", 1), "missing animation"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.data))
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Decode() failed: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Decode() error = %v, expected it to mention %q", err, tc.wantErr)
			}
		})
	}
}
