package application

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/devbush/autoedit/internal/domain"
	"github.com/devbush/autoedit/internal/logging"
)

func newTestResolver(fs afero.Fs) (*Resolver, *fakeDownloader, *fakeDecoder) {
	dl := &fakeDownloader{fs: fs, dir: "/dl"}
	dec := newFakeDecoder(fs)
	return NewResolver(fs, dl, dec, logging.Discard(), "/work/combined.mp4"), dl, dec
}

func paths(queue []domain.ResolvedInput) []string {
	out := make([]string, len(queue))
	for i, in := range queue {
		out[i] = in.Path
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResolver_Resolve(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/media/talk.mp4", "/clips/b.mp4", "/clips/a.wav", "/clips/c.mov")
	_ = fs.MkdirAll("/clips/nested", 0755)
	_ = fs.MkdirAll("/empty", 0755)

	tests := []struct {
		name    string
		refs    []string
		want    []string
		wantErr error
	}{
		{"single file", []string{"/media/talk.mp4"}, []string{"/media/talk.mp4"}, nil},
		{"directory sorted by name", []string{"/clips"}, []string{"/clips/a.wav", "/clips/b.mp4", "/clips/c.mov"}, nil},
		{"reference order kept", []string{"/media/talk.mp4", "/clips"}, []string{"/media/talk.mp4", "/clips/a.wav", "/clips/b.mp4", "/clips/c.mov"}, nil},
		{"missing path", []string{"/media/talk.mp4", "/nope.mp4"}, nil, domain.ErrInvalidInput},
		{"empty directory", []string{"/empty"}, nil, domain.ErrInvalidInput},
		{"no references", nil, nil, domain.ErrNoInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestResolver(fs)
			got, err := r.Resolve(context.Background(), tt.refs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !equal(paths(got), tt.want) {
				t.Errorf("Resolve() = %v, want %v", paths(got), tt.want)
			}
		})
	}
}

func TestResolver_ClassifiesEntries(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/in/voice.m4a", "/in/screen.mkv")
	r, _, _ := newTestResolver(fs)

	got, err := r.Resolve(context.Background(), []string{"/in"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got[0].Class != domain.ClassVideo || got[1].Class != domain.ClassAudio {
		t.Errorf("classes = %v, %v; want video, audio", got[0].Class, got[1].Class)
	}
}

func TestResolver_DownloadsURL(t *testing.T) {
	fs := afero.NewMemMapFs()
	r, dl, _ := newTestResolver(fs)

	got, err := r.Resolve(context.Background(), []string{"https://www.youtube.com/watch?v=abc"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(dl.urls) != 1 {
		t.Fatalf("downloader called %d times, want 1", len(dl.urls))
	}
	want := "/dl/https-www-youtube-com-watch-v-abc.mp4"
	if got[0].Path != want {
		t.Errorf("path = %s, want %s", got[0].Path, want)
	}
}

func TestResolver_FailedDownloadStillQueued(t *testing.T) {
	fs := afero.NewMemMapFs()
	r, dl, _ := newTestResolver(fs)
	dl.err = errors.New("yt-dlp exited with status 1")

	got, err := r.Resolve(context.Background(), []string{"http://example.com/v"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("queue = %v, want the expected download path", paths(got))
	}
	if exists, _ := afero.Exists(fs, got[0].Path); exists {
		t.Error("download should not have produced a file")
	}
}

func TestResolver_Combine(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/v/1.mp4", "/v/2.mp4")
	r, _, dec := newTestResolver(fs)

	queue, _ := r.Resolve(context.Background(), []string{"/v"})
	combined, err := r.Combine(context.Background(), queue)
	if err != nil {
		t.Fatalf("Combine() error = %v", err)
	}

	if !equal(dec.concatIn, []string{"/v/1.mp4", "/v/2.mp4"}) {
		t.Errorf("concat inputs = %v", dec.concatIn)
	}
	if len(combined) != 1 || combined[0].Path != "/work/combined.mp4" {
		t.Errorf("Combine() = %v, want single /work/combined.mp4", paths(combined))
	}
}

func TestResolver_CombineFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	r, _, dec := newTestResolver(fs)
	dec.concatErr = errors.New("concat failed")

	if _, err := r.Combine(context.Background(), []domain.ResolvedInput{domain.NewResolvedInput("/a.mp4")}); err == nil {
		t.Error("Combine() expected error")
	}
}
