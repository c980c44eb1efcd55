package cmd

import "testing"

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"serve", "screen", "click", "tap", "swipe", "key", "screenshot"}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestServeFlagDefaults(t *testing.T) {
	transport, err := serveCmd.Flags().GetString("transport")
	if err != nil || transport != "http" {
		t.Errorf("expected default transport http, got %q (%v)", transport, err)
	}
	if f := swipeCmd.Flags().Lookup("dur"); f == nil || f.DefValue != "300" {
		t.Error("expected swipe --dur default of 300")
	}
}
