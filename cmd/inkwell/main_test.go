package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectEditArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"no args", []string{"inkwell"}, []string{"inkwell"}},
		{"file", []string{"inkwell", "notes.md"}, []string{"inkwell", "edit", "notes.md"}},
		{"flags first", []string{"inkwell", "--config-dir", "/tmp/x", "notes.html"}, []string{"inkwell", "--config-dir", "/tmp/x", "edit", "notes.html"}},
		{"flag equals", []string{"inkwell", "--format=yaml", "a.md"}, []string{"inkwell", "--format=yaml", "edit", "a.md"}},
		{"subcommand", []string{"inkwell", "links", "check", "x"}, []string{"inkwell", "links", "check", "x"}},
		{"edit already", []string{"inkwell", "edit", "a.md"}, []string{"inkwell", "edit", "a.md"}},
		{"only flags", []string{"inkwell", "--pretty"}, []string{"inkwell", "--pretty"}},
		{"double dash", []string{"inkwell", "--", "a.md"}, []string{"inkwell", "--", "a.md"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rewriteDirectEditArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
