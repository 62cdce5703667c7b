// Package download fetches model assets over HTTP into a local cache directory.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

const defaultUserAgent = "model-viewer/1.0 (+https://github.com/)"

// Progress reports bytes received so far. Total is -1 when the server did not
// send a Content-Length.
type Progress struct {
	Loaded int64
	Total  int64
}

// Fraction returns Loaded/Total in [0,1], or -1 when Total is unknown.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return -1
	}
	f := float64(p.Loaded) / float64(p.Total)
	if f > 1 {
		f = 1
	}
	return f
}

// Fetcher downloads URLs into a directory.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	// Reuse returns an existing non-empty file instead of downloading again,
	// when the file name can be derived from the URL alone.
	Reuse bool
	// OnProgress is called from the downloading goroutine as bytes arrive.
	OnProgress func(Progress)
}

// Download fetches rawURL into destDir with a default Fetcher.
func Download(ctx context.Context, rawURL, destDir string) (string, error) {
	return (&Fetcher{}).Fetch(ctx, rawURL, destDir)
}

// Fetch saves rawURL under destDir. Filename is derived from the URL path or
// Content-Disposition; extension from the URL or Content-Type. The body is
// written to a .part file and renamed when complete. destDir is created if needed.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, destDir string) (savedPath string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if f.Reuse {
		if ext := extensionFromURL(u); ext != "" {
			cached := filepath.Join(destDir, sanitizeFilename(filenameFromURL(u))+ext)
			if st, err := os.Stat(cached); err == nil && st.Size() > 0 {
				f.report(Progress{Loaded: st.Size(), Total: st.Size()})
				return cached, nil
			}
		}
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	ua := f.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}

	ext := extensionFromURL(u)
	if ext == "" {
		ext = extensionFromContentType(resp.Header.Get("Content-Type"))
	}
	if ext == "" {
		ext = ".bin"
	}
	name := filenameFromContentDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = filenameFromURL(u)
	}
	name = sanitizeFilename(name)
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name = name + ext
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	savedPath = filepath.Join(destDir, name)
	partPath := savedPath + ".part"
	out, err := os.Create(partPath)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	pw := &progressWriter{total: resp.ContentLength, report: f.report}
	if pw.total < 0 {
		pw.total = -1
	}
	_, err = io.Copy(out, io.TeeReader(resp.Body, pw))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(partPath)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := os.Rename(partPath, savedPath); err != nil {
		_ = os.Remove(partPath)
		return "", fmt.Errorf("download: %w", err)
	}
	return savedPath, nil
}

func (f *Fetcher) report(p Progress) {
	if f.OnProgress != nil {
		f.OnProgress(p)
	}
}

type progressWriter struct {
	loaded int64
	total  int64
	report func(Progress)
}

func (w *progressWriter) Write(b []byte) (int, error) {
	w.loaded += int64(len(b))
	w.report(Progress{Loaded: w.loaded, Total: w.total})
	return len(b), nil
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	// filename="..."; or filename*=UTF-8''...
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		s = strings.Trim(s, "\"")
		if dec, err := url.PathUnescape(s); err == nil {
			s = dec
		}
		return strings.TrimSuffix(s, path.Ext(s))
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		s = strings.Trim(s, "\" ")
		return strings.TrimSuffix(s, path.Ext(s))
	}
	return ""
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "gltf-binary"):
		return ".glb"
	case strings.Contains(ct, "gltf+json"):
		return ".gltf"
	case strings.Contains(ct, "zip"):
		return ".zip"
	}
	return ""
}

func extensionFromURL(u *url.URL) string {
	ext := strings.ToLower(path.Ext(u.Path))
	switch ext {
	case ".glb", ".gltf", ".zip":
		return ext
	}
	return ""
}

// filenameFromURL returns the unescaped base name of the URL path without its extension.
func filenameFromURL(u *url.URL) string {
	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" {
		return "download"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
