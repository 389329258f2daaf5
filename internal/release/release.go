// Package release builds a distributable BirthdayPlayer archive for one
// platform: the binary (or macOS app bundle), config, background and README.
package release

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/minicodemonkey/birthday/embed"
	"github.com/minicodemonkey/birthday/internal/logger"
	"github.com/minicodemonkey/birthday/internal/paths"
)

const (
	// AppName is the product name used for binaries, bundles and archives.
	AppName = "BirthdayPlayer"
	// BundleID is the macOS CFBundleIdentifier.
	BundleID = "com.birthday.player"
	// DefaultPackage is the main package built into the release.
	DefaultPackage = "./cmd/birthday"
)

// BuildFunc compiles pkg into out for goos/goarch.
type BuildFunc func(ctx context.Context, goos, goarch, out, pkg string) error

// Options configures a release build.
type Options struct {
	SourceDir string // directory holding config.yaml and wallpaper_basic.png
	OutputDir string // where the zip is written (default: SourceDir)
	GOOS      string // default: runtime.GOOS
	GOARCH    string // default: runtime.GOARCH
	Package   string // default: DefaultPackage
	Now       func() time.Time
	Build     BuildFunc // default: GoBuild
}

// OSName returns the display name used in archive names and the README.
func OSName(goos string) string {
	switch goos {
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	default:
		return goos
	}
}

// BuildArgs returns the `go build` arguments for goos. Windows binaries are
// linked as GUI programs so no console window opens.
func BuildArgs(goos, out, pkg string) []string {
	ldflags := "-s -w"
	if goos == "windows" {
		ldflags += " -H=windowsgui"
	}
	return []string{"build", "-trimpath", "-ldflags", ldflags, "-o", out, pkg}
}

// GoBuild runs the go toolchain.
func GoBuild(ctx context.Context, goos, goarch, out, pkg string) error {
	cmd := exec.CommandContext(ctx, "go", BuildArgs(goos, out, pkg)...)
	cmd.Env = append(os.Environ(), "GOOS="+goos, "GOARCH="+goarch)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build failed: %w", err)
	}
	return nil
}

// BinaryPath returns where the executable lives inside the staging directory.
func BinaryPath(stage, goos string) string {
	switch goos {
	case "darwin":
		return filepath.Join(stage, AppName+".app", "Contents", "MacOS", AppName)
	case "windows":
		return filepath.Join(stage, AppName+".exe")
	default:
		return filepath.Join(stage, AppName)
	}
}

// InfoPlist returns the app bundle's Info.plist.
func InfoPlist() string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleExecutable</key>
	<string>` + AppName + `</string>
	<key>CFBundleIdentifier</key>
	<string>` + BundleID + `</string>
	<key>CFBundleName</key>
	<string>` + AppName + `</string>
	<key>CFBundlePackageType</key>
	<string>APPL</string>
	<key>CFBundleShortVersionString</key>
	<string>1.0</string>
	<key>LSUIElement</key>
	<true/>
</dict>
</plist>
`
}

// ArchiveName returns BirthdayPlayer_<OS>_<timestamp>.zip
func ArchiveName(goos string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.zip", AppName, OSName(goos), now.Format("20060102_150405"))
}

// Pack builds the binary, stages the release layout, zips it and removes
// the staging directory. Returns the archive path.
func Pack(ctx context.Context, opts Options) (string, error) {
	if opts.SourceDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		opts.SourceDir = cwd
	}
	if opts.OutputDir == "" {
		opts.OutputDir = opts.SourceDir
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.GOARCH == "" {
		opts.GOARCH = runtime.GOARCH
	}
	if opts.Package == "" {
		opts.Package = DefaultPackage
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Build == nil {
		opts.Build = GoBuild
	}

	now := opts.Now()
	stage := filepath.Join(opts.OutputDir, "release_"+now.Format("20060102_150405"))
	if err := os.RemoveAll(stage); err != nil {
		return "", fmt.Errorf("failed to clear staging directory: %w", err)
	}
	if err := os.MkdirAll(stage, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stage)

	if err := Stage(ctx, stage, opts); err != nil {
		return "", err
	}

	archive := filepath.Join(opts.OutputDir, ArchiveName(opts.GOOS, now))
	if err := Zip(stage, archive); err != nil {
		return "", err
	}
	logger.Info("release packed", logger.String("archive", archive), logger.String("os", opts.GOOS))
	return archive, nil
}

// Stage lays out the release files in dir.
func Stage(ctx context.Context, dir string, opts Options) error {
	bin := BinaryPath(dir, opts.GOOS)
	if err := os.MkdirAll(filepath.Dir(bin), 0755); err != nil {
		return fmt.Errorf("failed to create binary directory: %w", err)
	}
	if err := opts.Build(ctx, opts.GOOS, opts.GOARCH, bin, opts.Package); err != nil {
		return err
	}

	if opts.GOOS == "darwin" {
		plist := filepath.Join(dir, AppName+".app", "Contents", "Info.plist")
		if err := os.WriteFile(plist, []byte(InfoPlist()), 0644); err != nil {
			return fmt.Errorf("failed to write Info.plist: %w", err)
		}
	}

	// Config and background are optional; the program falls back without them.
	if cfg, ok := paths.FirstExisting(paths.ConfigCandidates(opts.SourceDir)[:len(paths.ConfigNames)]); ok {
		if err := copyFile(cfg, filepath.Join(dir, filepath.Base(cfg))); err != nil {
			return err
		}
	} else {
		logger.Warn("no config file to ship", logger.String("dir", opts.SourceDir))
	}
	bg := filepath.Join(opts.SourceDir, paths.BackgroundName)
	if _, err := os.Stat(bg); err == nil {
		if err := copyFile(bg, filepath.Join(dir, paths.BackgroundName)); err != nil {
			return err
		}
	}

	readme := filepath.Join(dir, "README.txt")
	if err := os.WriteFile(readme, []byte(embed.GetReadme(OSName(opts.GOOS))), 0644); err != nil {
		return fmt.Errorf("failed to write README: %w", err)
	}
	return nil
}

// Zip archives the contents of src into dst with paths relative to src.
func Zip(src, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	walkErr := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil || rel == "." {
			return err
		}

		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			hdr.Name += "/"
			_, err = zw.CreateHeader(hdr)
			return err
		}
		hdr.Method = zip.Deflate

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(w, in)
		return err
	})
	if walkErr != nil {
		zw.Close()
		return fmt.Errorf("failed to write archive: %w", walkErr)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return f.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(src), err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(dst), err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}

// Entries lists the file names inside an archive, for reporting.
func Entries(archive string) ([]string, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, "/") {
			names = append(names, f.Name)
		}
	}
	return names, nil
}
