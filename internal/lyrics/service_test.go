package lyrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bogem/id3v2"
	"github.com/rs/zerolog"

	"github.com/reindex-ot/AccordLegacy/internal/audio"
	apphttp "github.com/reindex-ot/AccordLegacy/internal/http"
	"github.com/reindex-ot/AccordLegacy/internal/model"
)

func newTestService(opts Options) *Service {
	return NewService(opts, audio.NewTagger(nil), apphttp.NewClient(time.Second), zerolog.Nop())
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// fakeMP3 creates an untagged audio file and applies add to a fresh tag.
func fakeMP3(t *testing.T, dir string, add func(tag *id3v2.Tag)) string {
	t.Helper()
	path := filepath.Join(dir, "song.mp3")
	writeFile(t, path, []byte("not really mpeg audio"))

	if add == nil {
		return path
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()
	add(tag)
	if err := tag.Save(); err != nil {
		t.Fatal(err)
	}
	return path
}

func contents(lines []model.LyricLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Content
	}
	return out
}

func TestService_FromText(t *testing.T) {
	svc := newTestService(Options{Trim: true})

	lines := svc.FromText("[00:02.00]b\n[00:01.00] a ")
	if got := contents(lines); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FromText contents = %q, want [a b]", got)
	}

	if lines := svc.FromText(" \n\t"); lines != nil {
		t.Errorf("FromText(blank) = %+v, want nil", lines)
	}
}

func TestService_FromTextLines(t *testing.T) {
	svc := newTestService(Options{Trim: true})

	lines := svc.FromTextLines([]string{"[00:01.00]a", "[00:01.00]A"})
	if len(lines) != 1 || lines[0].Translation != "A" {
		t.Errorf("FromTextLines = %+v, want one line translated to A", lines)
	}
}

func TestService_FromFrame(t *testing.T) {
	svc := newTestService(Options{Trim: true})

	body := append([]byte{3, 'e', 'n', 'g', 0}, []byte("[00:01.00]hi")...)
	if got := contents(svc.FromFrame(body)); len(got) != 1 || got[0] != "hi" {
		t.Errorf("FromFrame contents = %q, want [hi]", got)
	}

	if lines := svc.FromFrame([]byte{3, 'e'}); lines != nil {
		t.Errorf("FromFrame(short) = %+v, want nil", lines)
	}
}

func TestService_FromSidecar(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(Options{Trim: true})
	track := model.NewTrack(filepath.Join(dir, "song.mp3"), &model.TrackConfig{
		LyricExtensions: []string{".lrc", ".txt"},
	})

	if lines := svc.FromSidecar(context.Background(), track); lines != nil {
		t.Fatalf("FromSidecar without files = %+v, want nil", lines)
	}

	// UTF-16LE with byte order mark: "[00:01.00]hi"
	data := []byte{0xff, 0xfe}
	for _, r := range "[00:01.00]hi" {
		data = append(data, byte(r), 0)
	}
	writeFile(t, filepath.Join(dir, "song.txt"), data)

	if got := contents(svc.FromSidecar(context.Background(), track)); len(got) != 1 || got[0] != "hi" {
		t.Errorf("FromSidecar contents = %q, want [hi]", got)
	}

	writeFile(t, filepath.Join(dir, "song.lrc"), []byte("[00:01.00]from lrc"))
	if got := contents(svc.FromSidecar(context.Background(), track)); len(got) != 1 || got[0] != "from lrc" {
		t.Errorf("FromSidecar contents = %q, want [from lrc]", got)
	}
}

func TestService_FromEmbedded(t *testing.T) {
	sylt := append([]byte{3, 'e', 'n', 'g', 0}, []byte("[00:01.00]synced")...)

	tests := []struct {
		name string
		add  func(tag *id3v2.Tag)
		want []string
	}{
		{
			name: "no tag",
			want: nil,
		},
		{
			name: "unsynced lyrics frame wins",
			add: func(tag *id3v2.Tag) {
				tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
					Encoding:    id3v2.EncodingUTF8,
					Description: "LYRICS",
					Value:       "[00:01.00]user text",
				})
				tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
					Encoding: id3v2.EncodingUTF8,
					Language: "eng",
					Lyrics:   "[00:01.00]uslt",
				})
			},
			want: []string{"uslt"},
		},
		{
			name: "synced lyrics frame",
			add: func(tag *id3v2.Tag) {
				tag.AddFrame(audio.FrameSyncedLyrics, id3v2.UnknownFrame{Body: sylt})
			},
			want: []string{"synced"},
		},
		{
			name: "user text lines",
			add: func(tag *id3v2.Tag) {
				tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
					Encoding:    id3v2.EncodingUTF8,
					Description: "UNSYNCEDLYRICS",
					Value:       "[00:02.00]two\x00[00:01.00]one",
				})
			},
			want: []string{"one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := fakeMP3(t, t.TempDir(), tt.add)
			lines := newTestService(Options{Trim: true}).FromEmbedded(path)

			got := contents(lines)
			if len(got) != len(tt.want) {
				t.Fatalf("FromEmbedded contents = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FromEmbedded contents = %q, want %q", got, tt.want)
				}
			}
		})
	}
}

func TestService_FromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/song.lrc" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("\xef\xbb\xbf[00:01.00]remote"))
	}))
	defer srv.Close()

	svc := newTestService(Options{Trim: true})
	ctx := context.Background()

	if got := contents(svc.FromURL(ctx, srv.URL+"/song.lrc")); len(got) != 1 || got[0] != "remote" {
		t.Errorf("FromURL contents = %q, want [remote]", got)
	}
	if lines := svc.FromURL(ctx, srv.URL+"/missing.lrc"); lines != nil {
		t.Errorf("FromURL(missing) = %+v, want nil", lines)
	}

	noClient := NewService(Options{}, nil, nil, zerolog.Nop())
	if lines := noClient.FromURL(ctx, srv.URL+"/song.lrc"); lines != nil {
		t.Errorf("FromURL without client = %+v, want nil", lines)
	}
}

func TestService_Load(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	audioPath := fakeMP3(t, dir, func(tag *id3v2.Tag) {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: "eng",
			Lyrics:   "[00:01.00]embedded",
		})
	})
	writeFile(t, filepath.Join(dir, "song.lrc"), []byte("[00:01.00]sidecar"))
	writeFile(t, filepath.Join(dir, "other.lrc"), []byte("[00:01.00]text"))

	tests := []struct {
		name           string
		input          string
		preferEmbedded bool
		want           string
		wantSource     Source
	}{
		{"sidecar first", audioPath, false, "sidecar", SourceSidecar},
		{"embedded first", audioPath, true, "embedded", SourceEmbedded},
		{"lyric file", filepath.Join(dir, "other.lrc"), false, "text", SourceText},
		{"missing file", filepath.Join(dir, "missing.lrc"), false, "", SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(Options{Trim: true, PreferEmbedded: tt.preferEmbedded})
			lines, source := svc.Load(ctx, tt.input)

			if source != tt.wantSource {
				t.Errorf("Load source = %v, want %v", source, tt.wantSource)
			}
			if tt.want == "" {
				if lines != nil {
					t.Errorf("Load = %+v, want nil", lines)
				}
				return
			}
			if got := contents(lines); len(got) != 1 || got[0] != tt.want {
				t.Errorf("Load contents = %q, want [%s]", got, tt.want)
			}
		})
	}
}

func TestService_LoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[00:01.00]remote"))
	}))
	defer srv.Close()

	lines, source := newTestService(Options{Trim: true}).Load(context.Background(), srv.URL)
	if source != SourceURL || len(lines) != 1 {
		t.Errorf("Load = %+v, %v, want one line from url", lines, source)
	}
}

func TestService_Embed(t *testing.T) {
	path := fakeMP3(t, t.TempDir(), nil)
	svc := newTestService(Options{Trim: true})

	lines := svc.FromText("[00:01.00]v1: hello <00:01.50>world\n[00:01.00]translated\n[bg: echo]")
	if err := svc.Embed(path, lines); err != nil {
		t.Fatalf("Embed: %v", err)
	}

	back := svc.FromEmbedded(path)
	if len(back) != len(lines) {
		t.Fatalf("FromEmbedded = %+v, want %+v", back, lines)
	}
	if back[0].Label != model.LabelVoice1 || back[0].Translation != "translated" || !back[0].HasWords() {
		t.Errorf("FromEmbedded[0] = %+v", back[0])
	}
	if back[1].Label != model.LabelBackground {
		t.Errorf("FromEmbedded[1].Label = %v, want background", back[1].Label)
	}

	if err := svc.Embed(path, nil); !errors.Is(err, ErrNoLyrics) {
		t.Errorf("Embed(nil) error = %v, want ErrNoLyrics", err)
	}
}

func TestService_IsAudio(t *testing.T) {
	svc := newTestService(Options{AudioExtensions: []string{".mp3", "flac"}})

	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"SONG.MP3", true},
		{"song.flac", true},
		{"song.lrc", false},
		{"song", false},
	}

	for _, tt := range tests {
		if got := svc.IsAudio(tt.path); got != tt.want {
			t.Errorf("IsAudio(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSource_String(t *testing.T) {
	if got := SourceEmbedded.String(); got != "embedded" {
		t.Errorf("String = %q, want %q", got, "embedded")
	}
	if got := Source(42).String(); got != "none" {
		t.Errorf("String = %q, want %q", got, "none")
	}
}
