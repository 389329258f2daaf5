//go:build !windows

package wallpaper

import "errors"

var errNotWindows = errors.New("not supported on this platform")

func systemParametersWallpaper(string) error { return errNotWindows }

func registryWallpaper(string) error { return errNotWindows }
