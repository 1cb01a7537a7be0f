// Package ready decides whether a Claude Code process has finished starting
// up, based on a captured snapshot of its tmux pane.
package ready

import "strings"

// MarkerRule defines a single readiness marker matched against pane content.
type MarkerRule struct {
	Contains     string // Required substring
	AlsoContains string // Optional: content must also contain this
	Desc         string // Short human-readable label for reporting
}

// matches reports whether the rule is satisfied by the given content.
func (r MarkerRule) matches(content string) bool {
	if !strings.Contains(content, r.Contains) {
		return false
	}
	if r.AlsoContains != "" && !strings.Contains(content, r.AlsoContains) {
		return false
	}
	return true
}

// DefaultMarkers are the startup markers Claude Code is known to render once
// its UI is ready for input. The set spans several UI versions; any single
// match means ready. New UI versions get new entries appended — old entries
// stay so that older Claude Code installs keep working.
var DefaultMarkers = []MarkerRule{
	{Contains: "Welcome to Claude Code!", Desc: "welcome banner"},
	// Personalized banner; the suffix after "back" is the user's name.
	{Contains: "Welcome back", Desc: "welcome-back banner"},
	{Contains: "│ > Try", Desc: "boxed prompt"},
	// Substring of the boxed prompt above, so both match on the old UI.
	// Kept anyway: on the new UI only this one fires.
	{Contains: "> Try", Desc: "prompt"},
	{Contains: "? for shortcuts", Desc: "shortcuts hint"},
	// Shown when started with --dangerously-skip-permissions.
	{Contains: "bypass permissions", Desc: "bypass-permissions hint"},
	{Contains: "╭─", AlsoContains: "│ >", Desc: "input box with prompt"},
	{Contains: `Try "`, Desc: "suggestion hint"},
	{Contains: "cwd:", AlsoContains: "Welcome to Claude Code!", Desc: "cwd with welcome banner"},
	{Contains: "Bypassing Permissions", AlsoContains: ">", Desc: "bypassing-permissions status"},
	{Contains: ">", AlsoContains: "─╯", Desc: "prompt with box bottom"},
	{Contains: "Claude Code v", Desc: "version header"},
}

// IsReady reports whether the pane content shows Claude Code ready for input.
// It is a pure function: no state, no side effects, never fails. Absence of
// every marker simply means not ready yet.
//
// The marker set is intentionally over-inclusive. A false negative stalls the
// polling harness until its attempt limit, while a false positive only risks
// sending input slightly early, so overlapping markers are kept rather than
// pruned.
func IsReady(content string) bool {
	_, ok := MatchMarker(content)
	return ok
}

// MatchMarker returns the first marker in DefaultMarkers satisfied by the
// pane content, for callers that want to report what matched.
func MatchMarker(content string) (MarkerRule, bool) {
	for _, rule := range DefaultMarkers {
		if rule.matches(content) {
			return rule, true
		}
	}
	return MarkerRule{}, false
}
