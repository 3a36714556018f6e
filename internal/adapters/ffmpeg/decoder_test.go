package ffmpeg

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const probeSample = `Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'talk.mp4':
  Duration: 00:01:02.03, start: 0.000000, bitrate: 1205 kb/s
    Stream #0:0(und): Video: h264 (High) (avc1 / 0x31637661), yuv420p, 1920x1080, 1071 kb/s, 29.97 fps, 29.97 tbr, 30k tbn, 59.94 tbc (default)
    Stream #0:1(und): Audio: aac (LC) (mp4a / 0x6134706D), 48000 Hz, stereo, fltp, 128 kb/s (default)
At least one output file must be specified`

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   float64
		wantOK bool
	}{
		{"typical ffmpeg output", probeSample, 29.97, true},
		{"integer rate", "Video: vp9, 1280x720, 25 tbr, 1k tbn", 25, true},
		{"no marker", "Stream #0:0: Audio: mp3, 44100 Hz, stereo", 0, false},
		{"garbled number", "Video: h264, 1.2.3 tbr", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFrameRate(tt.output)
			if ok != tt.wantOK {
				t.Fatalf("ParseFrameRate() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseFrameRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReEncodeArgs(t *testing.T) {
	args := strings.Join(reEncodeArgs("in.mp4", "/tmp/w/constantVid.mp4", 30, false), " ")

	for _, want := range []string{"-i in.mp4", "-filter:v fps=fps=30", "/tmp/w/constantVid.mp4", "-hide_banner", "-loglevel 0", "-y"} {
		if !strings.Contains(args, want) {
			t.Errorf("args %q missing %q", args, want)
		}
	}
}

func TestReEncodeArgs_Debug(t *testing.T) {
	args := strings.Join(reEncodeArgs("in.mp4", "out.mp4", 30, true), " ")
	if strings.Contains(args, "-nostats") {
		t.Errorf("debug args should keep ffmpeg progress output: %q", args)
	}
}

func TestConcatArgs(t *testing.T) {
	args := strings.Join(concatArgs("list.txt", "combined.mp4"), " ")

	for _, want := range []string{"-f concat", "-safe 0", "-i list.txt", "-c copy", "combined.mp4"} {
		if !strings.Contains(args, want) {
			t.Errorf("args %q missing %q", args, want)
		}
	}
}

func TestManifestLine(t *testing.T) {
	if got := manifestLine("/v/a.mp4"); got != "file '/v/a.mp4'\n" {
		t.Errorf("manifestLine() = %q", got)
	}
	if got := manifestLine("/v/it's.mp4"); got != `file '/v/it'\''s.mp4'`+"\n" {
		t.Errorf("manifestLine() with quote = %q", got)
	}
}

func TestConcat_RemovesManifestOnFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	d := NewDecoder("/nonexistent/ffmpeg-binary", false, false, fs)

	err := d.Concat(context.Background(), []string{"/v/a.mp4", "/v/b.mp4"}, "/out/combined.mp4")
	if err == nil {
		t.Fatal("expected error from missing binary")
	}

	if exists, _ := afero.Exists(fs, "/out/combine_files.txt"); exists {
		t.Error("manifest should be removed after concat")
	}
}

func TestProbe_MissingBinary(t *testing.T) {
	d := NewDecoder("/nonexistent/ffmpeg-binary", false, false, afero.NewMemMapFs())
	if _, err := d.Probe(context.Background(), "talk.mp4"); err == nil {
		t.Error("expected error when decoder cannot start")
	}
}

func TestIsBinaryEntry(t *testing.T) {
	tests := []struct {
		entry string
		want  bool
	}{
		{"ffmpeg-7.0-essentials_build/bin/ffmpeg.exe", true},
		{`ffmpeg-7.0-essentials_build\bin\ffmpeg.exe`, true},
		{"ffmpeg-7.0-essentials_build/bin/ffprobe.exe", false},
		{"ffmpeg-7.0-essentials_build/doc/ffmpeg.exe.html", false},
	}
	for _, tt := range tests {
		if got := isBinaryEntry(tt.entry, "ffmpeg.exe"); got != tt.want {
			t.Errorf("isBinaryEntry(%q) = %v, want %v", tt.entry, got, tt.want)
		}
	}
}

func TestLocate_Configured(t *testing.T) {
	loc := Locate("/opt/ffmpeg/bin/ffmpeg", false)
	if loc.Path != "/opt/ffmpeg/bin/ffmpeg" || !loc.Bundled {
		t.Errorf("Locate() = %+v, want configured path marked bundled", loc)
	}
}
