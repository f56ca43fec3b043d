package browser

import (
	"path/filepath"
	"slices"

	"github.com/fwojciec/resworb"
)

// DefaultLibrary returns where browser name keeps its profile data for a
// user with the given home directory on operating system goos.
func DefaultLibrary(name, goos, home string) (string, error) {
	var elem []string
	switch name + "/" + goos {
	case Chrome + "/windows":
		elem = []string{"AppData", "Local", "Google", "Chrome", "User Data", "Default"}
	case Chrome + "/darwin":
		elem = []string{"Library", "Application Support", "Google", "Chrome", "Default"}
	case Chrome + "/linux":
		elem = []string{".config", "google-chrome", "Default"}
	case Firefox + "/windows":
		elem = []string{"AppData", "Roaming", "Mozilla", "Firefox", "Profiles"}
	case Firefox + "/darwin":
		elem = []string{"Library", "Application Support", "Firefox"}
	case Firefox + "/linux":
		elem = []string{".mozilla", "firefox"}
	case Safari + "/darwin":
		elem = []string{"Library", "Safari"}
	default:
		if !slices.Contains(Names(), name) {
			return "", resworb.Errorf(resworb.EINVALID, "unsupported browser: %q", name)
		}
		return "", resworb.Errorf(resworb.EINVALID, "unsupported platform for %s: %s", name, goos)
	}
	if home == "" {
		return "", resworb.Errorf(resworb.EINVALID, "home directory is not set")
	}
	return filepath.Join(append([]string{home}, elem...)...), nil
}
