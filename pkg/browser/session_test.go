package browser_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/autodemo/pkg/browser"
	"github.com/entrhq/autodemo/pkg/browser/browsertest"
	"github.com/entrhq/autodemo/pkg/logging"
)

func TestResolveViewport(t *testing.T) {
	tests := []struct {
		name string
		want browser.Viewport
	}{
		{name: "big", want: browser.Viewport{Width: 1920, Height: 1080}},
		{name: "BIG", want: browser.Viewport{Width: 1920, Height: 1080}},
		{name: "small", want: browser.Viewport{Width: 1280, Height: 720}},
		{name: "", want: browser.Viewport{Width: 1280, Height: 800}},
		{name: "huge", want: browser.Viewport{Width: 1280, Height: 800}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, browser.ResolveViewport(tt.name))
		})
	}
}

func TestOpen_Defaults(t *testing.T) {
	driver := browsertest.New()

	session, err := browser.Open(driver, browser.Options{
		Headless:   true,
		SlowMotion: 50 * time.Millisecond,
	}, logging.Nop())
	require.NoError(t, err)
	defer session.Close()

	require.Len(t, driver.Launches(), 1)
	assert.Equal(t, browser.LaunchOptions{Headless: true, SlowMotion: 50 * time.Millisecond}, driver.Launches()[0])

	require.Len(t, driver.Contexts(), 1)
	ctxOpts := driver.Contexts()[0]
	assert.Equal(t, browser.Viewport{Width: 1280, Height: 800}, ctxOpts.Viewport)
	assert.Equal(t, "zh-CN", ctxOpts.Locale)
	assert.Equal(t, "Asia/Shanghai", ctxOpts.Timezone)
	assert.Empty(t, ctxOpts.RecordVideoDir)
	assert.Nil(t, ctxOpts.RecordVideoSize)

	assert.Same(t, driver.Page, session.Page())
	assert.Equal(t, 30*time.Second, driver.Page.DefaultTimeout())
	assert.False(t, session.Recording.Active)
}

func TestOpen_Recording(t *testing.T) {
	driver := browsertest.New()
	root := t.TempDir()
	stamp := time.Date(2025, 3, 9, 14, 5, 7, 0, time.UTC)

	session, err := browser.Open(driver, browser.Options{
		Viewport:      "big",
		Locale:        "en-US",
		Timezone:      "UTC",
		Record:        true,
		RecordingsDir: root,
		Now:           func() time.Time { return stamp },
	}, logging.Nop())
	require.NoError(t, err)

	wantDir := filepath.Join(root, "demo_20250309_140507")
	assert.Equal(t, browser.Recording{Active: true, Dir: wantDir}, session.Recording)
	assert.DirExists(t, wantDir)

	ctxOpts := driver.Contexts()[0]
	assert.Equal(t, wantDir, ctxOpts.RecordVideoDir)
	require.NotNil(t, ctxOpts.RecordVideoSize)
	assert.Equal(t, browser.Viewport{Width: 1920, Height: 1080}, *ctxOpts.RecordVideoSize)
	assert.Equal(t, *ctxOpts.RecordVideoSize, ctxOpts.Viewport)
	assert.Equal(t, "en-US", ctxOpts.Locale)
	assert.Equal(t, "UTC", ctxOpts.Timezone)

	session.Close()

	older := filepath.Join(wantDir, "a.webm")
	newer := filepath.Join(wantDir, "b.webm")
	require.NoError(t, os.WriteFile(newer, []byte("x"), 0600))
	require.NoError(t, os.WriteFile(older, []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(wantDir, "notes.txt"), []byte("x"), 0600))
	require.NoError(t, os.Chtimes(older, stamp, stamp))
	require.NoError(t, os.Chtimes(newer, stamp.Add(time.Minute), stamp.Add(time.Minute)))

	videos, err := session.Videos()
	require.NoError(t, err)
	assert.Equal(t, []string{older, newer}, videos)
}

func TestOpen_Failures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name       string
		setup      func(d *browsertest.Driver)
		wantStage  browser.Stage
		wantClosed []string
	}{
		{
			name:       "launch",
			setup:      func(d *browsertest.Driver) { d.LaunchErr = boom },
			wantStage:  browser.StageLaunch,
			wantClosed: nil,
		},
		{
			name:       "context",
			setup:      func(d *browsertest.Driver) { d.ContextErr = boom },
			wantStage:  browser.StageContext,
			wantClosed: []string{"browser"},
		},
		{
			name:       "page",
			setup:      func(d *browsertest.Driver) { d.PageErr = boom },
			wantStage:  browser.StagePage,
			wantClosed: []string{"context", "browser"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := browsertest.New()
			tt.setup(driver)

			session, err := browser.Open(driver, browser.Options{}, logging.Nop())
			require.Error(t, err)
			assert.Nil(t, session)

			var se *browser.SessionError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.wantStage, se.Stage)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, tt.wantClosed, driver.Closed())
		})
	}
}

func TestOpen_RecordingDirFailure(t *testing.T) {
	driver := browsertest.New()
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := browser.Open(driver, browser.Options{Record: true, RecordingsDir: blocker}, logging.Nop())
	var se *browser.SessionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, browser.StageRecording, se.Stage)
	assert.Equal(t, []string{"browser"}, driver.Closed())
	assert.Empty(t, driver.Contexts())
}

func TestSessionClose_OrderAndOnce(t *testing.T) {
	driver := browsertest.New()
	session, err := browser.Open(driver, browser.Options{}, logging.Nop())
	require.NoError(t, err)

	session.Close()
	session.Close()

	assert.Equal(t, []string{"page", "context", "browser"}, driver.Closed())
}

func TestSessionClose_ErrorsAreLogged(t *testing.T) {
	driver := browsertest.New()
	driver.Page.CloseErr = errors.New("page gone")
	driver.ContextCloseErr = errors.New("context gone")

	var buf bytes.Buffer
	session, err := browser.Open(driver, browser.Options{}, logging.New("session", &buf))
	require.NoError(t, err)

	session.Close()

	assert.Equal(t, []string{"page", "context", "browser"}, driver.Closed())
	assert.Contains(t, buf.String(), "close page failed: page gone")
	assert.Contains(t, buf.String(), "close context failed: context gone")
}

func TestVideos_NotRecording(t *testing.T) {
	session, err := browser.Open(browsertest.New(), browser.Options{}, nil)
	require.NoError(t, err)
	defer session.Close()

	videos, err := session.Videos()
	require.NoError(t, err)
	assert.Nil(t, videos)
}
