package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"palchi-cli/internal/model"
)

func TestConfirmDefaultsToNo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		yes   bool
		want  bool
	}{
		{name: "empty answer declines", input: "\n"},
		{name: "no input declines"},
		{name: "explicit no", input: "n\n"},
		{name: "anything else declines", input: "boh\n"},
		{name: "s accepts", input: "s\n", want: true},
		{name: "sì accepts", input: "sì\n", want: true},
		{name: "yes accepts", input: "YES\n", want: true},
		{name: "--yes skips the prompt", yes: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.SetIn(strings.NewReader(tt.input))
			cmd.SetOut(&bytes.Buffer{})
			if got := confirm(cmd, "Eliminare?", tt.yes); got != tt.want {
				t.Fatalf("confirm = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID(" 42 ", "evento"); err != nil || id != 42 {
		t.Fatalf("parseID = %d, %v", id, err)
	}
	for _, bad := range []string{"", "x", "0", "-3"} {
		if _, err := parseID(bad, "evento"); err == nil {
			t.Fatalf("parseID(%q) accepted", bad)
		}
	}
}

func TestStatusFlag(t *testing.T) {
	cmd := &cobra.Command{}

	st, err := statusFlag(cmd, "")
	if err != nil || st != nil {
		t.Fatalf("empty = %v, %v", st, err)
	}

	st, err = statusFlag(cmd, "completed")
	if err != nil || st == nil || *st != model.StatusCompleted {
		t.Fatalf("completed = %v, %v", st, err)
	}

	if _, err := statusFlag(cmd, "annullato"); err == nil {
		t.Fatal("unknown status accepted")
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("PALCHI_TEST_ENVOR", "")
	if got := envOr("PALCHI_TEST_ENVOR", "fallback"); got != "fallback" {
		t.Fatalf("envOr = %q", got)
	}
	t.Setenv("PALCHI_TEST_ENVOR", "set")
	if got := envOr("PALCHI_TEST_ENVOR", "fallback"); got != "set" {
		t.Fatalf("envOr = %q", got)
	}
}

func TestDocsCommandListsTopics(t *testing.T) {
	app := &App{Format: "json"}
	cmd := newDocsCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("docs: %v", err)
	}

	var payload struct {
		Data struct {
			Topics []string `json:"topics"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]bool{"primi-passi": false, "eventi": false, "ruoli": false, "riepilogo": false}
	for _, topic := range payload.Data.Topics {
		if _, ok := want[topic]; ok {
			want[topic] = true
		}
	}
	for topic, seen := range want {
		if !seen {
			t.Fatalf("topic %q missing from %v", topic, payload.Data.Topics)
		}
	}
}

func TestDocsCommandRawTopic(t *testing.T) {
	app := &App{Format: "json"}
	cmd := newDocsCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"ruoli", "--raw"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("docs ruoli: %v", err)
	}
	if !strings.Contains(out.String(), "Riepilogo") {
		t.Fatalf("raw body = %q", out.String())
	}

	cmd = newDocsCmd(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"inesistente"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("unknown topic accepted")
	}
}
