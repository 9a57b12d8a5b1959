package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		scenario string
		mode     string
		want     string
	}{
		{"rect", "auto", "mask=None"},
		{"rrect", "auto", "mask=None"},
		{"holes", "auto", "mask=Alpha"},
		{"holes", "software", "mask=Alpha"},
		{"holes", "stencil", "mask=Stencil"},
		{"star", "auto", "mask=Alpha"},
		{"xor", "auto", "mask=Stencil"},
		{"empty", "auto", "clip is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.scenario+"/"+tt.mode, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.png")
			var buf bytes.Buffer
			cfg := config{
				scenario:  tt.scenario,
				device:    "soft",
				mode:      tt.mode,
				width:     70,
				height:    50,
				threshold: 4,
				output:    out,
				trace:     true,
				pipelines: true,
			}
			if err := run(cfg, &buf); err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, want := range []string{tt.want, "device commands", "pipelines"} {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q does not contain %q", buf.String(), want)
				}
			}
			f, err := os.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 70 || b.Dy() != 50 {
				t.Errorf("image size %v", b)
			}
		})
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	base := config{scenario: "rect", device: "soft", mode: "auto", width: 8, height: 8, threshold: 4,
		output: filepath.Join(t.TempDir(), "x.png")}
	tests := []struct {
		name   string
		mutate func(*config)
	}{
		{"scenario", func(c *config) { c.scenario = "nope" }},
		{"mode", func(c *config) { c.mode = "nope" }},
		{"device", func(c *config) { c.device = "nope" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := run(cfg, &bytes.Buffer{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}
