package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/unisearch/internal/domain/content"
	"github.com/kailas-cloud/unisearch/internal/domain/score"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/unisearch/internal/usecase/search"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	want := map[string]bool{"serve": false, "diagnose": false, "migrate": false, "version": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "unisearch dev") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestDiagnoseCmd_RejectsBadSortBeforeConnecting(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"diagnose", "spawn", "--sort", "oldest", "--config", "/nonexistent.yaml"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown sort mode") {
		t.Fatalf("expected sort error, got %v", err)
	}
}

func TestPrintDiagnosis(t *testing.T) {
	e, err := content.New(content.Fields{
		ID:        "c-1",
		Ref:       content.ServerRef{ServerID: "s-1"},
		Title:     "야생 서버 코리아 공식 디스코드와 함께하는 생존 서버",
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("content.New: %v", err)
	}
	d := searchuc.Diagnosis{
		Response: result.Response{
			Intent:      intent.Intent{Category: intent.Server, SubCategory: "SURVIVAL", Explanation: "server hunt"},
			Results:     []result.Scored{result.New(result.NewCandidate(e, 0.9), result.Breakdown{Base: 180, IntentBonus: 200, FuzzyBonus: 270})},
			SearchTerms: []string{"야생", "서버"},
			Sort:        mode.Relevance,
		},
		Components:     []score.Components{{Trust: 80, Relevance: 60, Accuracy: 40}},
		RankingVersion: "2024-builtin",
		Elapsed:        12 * time.Millisecond,
	}

	var out bytes.Buffer
	if err := printDiagnosis(&out, d); err != nil {
		t.Fatalf("printDiagnosis: %v", err)
	}
	s := out.String()
	for _, want := range []string{"SERVER / SURVIVAL", "야생, 서버", "RELEVANCE", "2024-builtin", "650", "270", "0.90"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestPrintDiagnosis_NoResults(t *testing.T) {
	var out bytes.Buffer
	d := searchuc.Diagnosis{Response: result.Response{Intent: intent.Fallback(), Sort: mode.Latest}}
	if err := printDiagnosis(&out, d); err != nil {
		t.Fatalf("printDiagnosis: %v", err)
	}
	if !strings.Contains(out.String(), "No results.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestClip(t *testing.T) {
	if got := clip("short", 10); got != "short" {
		t.Errorf("clip(short) = %q", got)
	}
	if got := clip("가나다라마바", 4); got != "가나다…" {
		t.Errorf("clip = %q", got)
	}
}
