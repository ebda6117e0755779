package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trailhead/pkg/config"
	apperrors "trailhead/pkg/errors"
	"trailhead/pkg/logger"
)

func testService(t *testing.T) Service {
	t.Helper()
	return NewService(&config.Config{
		MediaDir:     t.TempDir(),
		MediaBaseURL: "/media",
		MaxUploadMB:  1,
		Log: logger.New(logger.Config{
			Level:     "info",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	})
}

func TestStore(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(&config.Config{
		MediaDir:     dir,
		MediaBaseURL: "/media",
		MaxUploadMB:  1,
		Log: logger.New(logger.Config{
			Level:   "info",
			Format:  logger.JSON,
			Service: "test",
		}),
	})

	stored, err := svc.Store(context.Background(), "hero photo.JPG", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(stored.URL, "/media/") {
		t.Errorf("URL = %q", stored.URL)
	}
	if !strings.HasSuffix(stored.Filename, ".jpg") {
		t.Errorf("extension not lowercased: %q", stored.Filename)
	}
	if strings.Contains(stored.Filename, "hero") {
		t.Errorf("original name leaked into stored filename: %q", stored.Filename)
	}

	data, err := os.ReadFile(filepath.Join(dir, stored.Filename))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestStore_RejectsUnsupportedType(t *testing.T) {
	svc := testService(t)

	_, err := svc.Store(context.Background(), "payload.exe", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("code = %s", apperrors.AsAppError(err).Code)
	}
}

func TestStore_RejectsOversizedUpload(t *testing.T) {
	svc := testService(t)

	big := strings.NewReader(strings.Repeat("a", 1<<20+1))
	_, err := svc.Store(context.Background(), "big.png", big)
	if err == nil {
		t.Fatal("expected error for oversized upload")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("code = %s", apperrors.AsAppError(err).Code)
	}
}

func TestStore_UniqueFilenames(t *testing.T) {
	svc := testService(t)

	a, err := svc.Store(context.Background(), "img.png", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := svc.Store(context.Background(), "img.png", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Filename == b.Filename {
		t.Errorf("same filename for two uploads: %q", a.Filename)
	}
}
