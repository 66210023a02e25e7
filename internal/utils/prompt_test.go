package utils

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestPromptInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("my-project\n"))

	got, err := PromptInput(reader, &out, "Enter a name", "")
	if err != nil {
		t.Fatalf("PromptInput failed: %v", err)
	}
	if got != "my-project" {
		t.Errorf("Expected my-project, got: %s", got)
	}
	if !strings.Contains(out.String(), "Enter a name") {
		t.Errorf("Prompt was not written: %s", out.String())
	}
}

func TestPromptInput_DefaultOnEmpty(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("\n"))

	got, err := PromptInput(reader, &out, "Source directory", ".")
	if err != nil {
		t.Fatalf("PromptInput failed: %v", err)
	}
	if got != "." {
		t.Errorf("Expected default, got: %s", got)
	}
	if !strings.Contains(out.String(), "[.]") {
		t.Errorf("Default was not shown in the prompt: %s", out.String())
	}
}

func TestPromptConfirm(t *testing.T) {
	cases := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{"y\n", false, true},
		{"Yes\n", false, true},
		{"n\n", true, false},
		{"anything else\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
	}

	for _, c := range cases {
		var out bytes.Buffer
		reader := bufio.NewReader(strings.NewReader(c.input))

		got, err := PromptConfirm(reader, &out, "Proceed?", c.defaultYes)
		if err != nil {
			t.Fatalf("PromptConfirm(%q) failed: %v", c.input, err)
		}
		if got != c.want {
			t.Errorf("PromptConfirm(%q, default=%v): expected %v, got %v", c.input, c.defaultYes, c.want, got)
		}
	}
}

func TestPromptSelect(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("2\n"))

	got, err := PromptSelect(reader, &out, "Choose", []string{"alpha", "beta", "gamma"})
	if err != nil {
		t.Fatalf("PromptSelect failed: %v", err)
	}
	if got != "beta" {
		t.Errorf("Expected beta, got: %s", got)
	}
	if !strings.Contains(out.String(), "1. alpha") || !strings.Contains(out.String(), "3. gamma") {
		t.Errorf("Options were not listed: %s", out.String())
	}
}

func TestPromptSelect_RepromptsOnBadInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("0\nnope\n7\n3\n"))

	got, err := PromptSelect(reader, &out, "Choose", []string{"alpha", "beta", "gamma"})
	if err != nil {
		t.Fatalf("PromptSelect failed: %v", err)
	}
	if got != "gamma" {
		t.Errorf("Expected gamma, got: %s", got)
	}
	if strings.Count(out.String(), "Invalid choice") != 3 {
		t.Errorf("Expected 3 re-prompts, got: %s", out.String())
	}
}

func TestPromptSelect_NoOptions(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("1\n"))

	if _, err := PromptSelect(reader, &out, "Choose", nil); err == nil {
		t.Error("Expected an error for an empty option list")
	}
}
