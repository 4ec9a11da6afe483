// File: classify/classify.go
// Package classify maps worker thread names onto scheduling roles.
// License: Apache-2.0
//
// Classification is a pure string match: the name is lower-cased and tested
// against keyword groups in fixed precedence order. Keyword sets overlap
// ("io" is a substring of "audio"), so the order below is part of the
// contract and must not be rearranged.

package classify

import (
	"strings"

	"github.com/emucore/hostsched/api"
)

// Keyword groups, checked in precedence order. A name matching several
// groups takes the first one.
var (
	renderKeywords = []string{"render", "gxm", "graphics", "gpu", "opengl", "vulkan", "draw", "display"}
	audioKeywords  = []string{"audio", "sound", "music", "atrac", "snd", "pcm"}
	inputKeywords  = []string{"input", "ctrl", "pad", "touch", "controller", "button"}
	netKeywords    = []string{"net", "io", "file", "fios", "socket", "http", "download"}
)

// Classify derives the Role for a thread name. An empty name yields
// RoleUnknown, which the scheduler never acts on. Identical input always
// yields identical output; no state is consulted.
func Classify(name string) api.Role {
	if name == "" {
		return api.RoleUnknown
	}
	lower := strings.ToLower(name)

	if matchesAny(lower, renderKeywords) {
		return api.RoleMainRender
	}
	if matchesAny(lower, audioKeywords) {
		return api.RoleAudio
	}
	if matchesAny(lower, inputKeywords) {
		return api.RoleInput
	}
	if matchesAny(lower, netKeywords) {
		return api.RoleNetwork
	}
	return api.RoleBackground
}

func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
