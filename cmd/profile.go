package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/profile"
)

var (
	profileMode string
	profilePath string
	profiler    interface{ Stop() }
)

var profileModes = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// ProfileModes lists the accepted --profile values.
func ProfileModes() []string {
	var out []string
	for m := range profileModes {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func startProfile(mode, path string) error {
	if mode == "" || profiler != nil {
		return nil
	}

	fn, ok := profileModes[mode]
	if !ok {
		return fmt.Errorf("unknown profile mode %q, expected one of: %s", mode, strings.Join(ProfileModes(), ", "))
	}

	opts := []func(*profile.Profile){fn, profile.Quiet, profile.NoShutdownHook}
	if path != "" {
		opts = append(opts, profile.ProfilePath(path))
	}
	profiler = profile.Start(opts...)
	return nil
}

func stopProfile() {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profileMode, "profile", "", "write a profile of the given mode: "+strings.Join(ProfileModes(), ", "))
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile-path", "", "directory profiles are written to, defaults to a temporary directory")
}
