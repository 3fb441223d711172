package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/grpc"

	"github.com/heyeunseok/scripture-kiosk/internal/kiosk"
	"github.com/heyeunseok/scripture-kiosk/internal/server"
	"github.com/heyeunseok/scripture-kiosk/internal/voice"
)

func writeCorpus(t *testing.T) string {
	t.Helper()
	books := []map[string]any{
		{"abbrev": "gn", "chapters": [][]string{{"태초에 하나님이 천지를 창조하시니라", "땅이 혼돈하고 공허하며"}}},
		{"abbrev": "ex", "chapters": [][]string{{"이스라엘의 아들들의 이름은 이러하니"}}},
	}
	data, err := json.Marshal(books)
	if err != nil {
		t.Fatalf("marshal corpus: %v", err)
	}
	path := filepath.Join(t.TempDir(), "bible.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "parse", "창세기", "일장", "일절에서", "삼절")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if strings.TrimSpace(out) != "창세기 1:1-3" {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := run(t, "parse", "아무", "말"); err == nil || !strings.Contains(err.Error(), "다시 한번 말씀해") {
		t.Fatalf("expected fallback error, got %v", err)
	}
}

func TestParseCommandMaskBookNames(t *testing.T) {
	out, err := run(t, "parse", "이사야 1장 1절")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if strings.TrimSpace(out) != "이사야 24:1-1" {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = run(t, "parse", "--mask-book-names", "이사야 1장 1절")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if strings.TrimSpace(out) != "이사야 1:1" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestLookupCommand(t *testing.T) {
	path := writeCorpus(t)
	out, err := run(t, "lookup", "--bible", path, "창세기 1장 2절")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if !strings.Contains(out, "2절. 땅이 혼돈하고 공허하며") {
		t.Fatalf("unexpected output %q", out)
	}

	_, err = run(t, "lookup", "--bible", path, "창세기 3장 1절")
	if err == nil || !strings.Contains(err.Error(), "창세기에는 3장이 없습니다") {
		t.Fatalf("expected chapter error, got %v", err)
	}
}

func TestExportSQLiteCommand(t *testing.T) {
	path := writeCorpus(t)
	dbPath := filepath.Join(t.TempDir(), "bible.db")
	out, err := run(t, "export-sqlite", "--bible", path, "--out", dbPath)
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if !strings.Contains(out, "exported 2 books") {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = run(t, "lookup", "--bible", dbPath, "출애굽기 1장 1절")
	if err != nil {
		t.Fatalf("lookup from sqlite error: %v", err)
	}
	if !strings.Contains(out, "이스라엘의 아들들") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := run(t, "export-sqlite", "--bible", path); err == nil {
		t.Fatalf("expected missing --out error")
	}
}

func TestInfoCommandWithoutCorpus(t *testing.T) {
	out, err := run(t, "info", "--bible", filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("info error: %v", err)
	}
	var info map[string]any
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("info output is not JSON: %v (%q)", err, out)
	}
	if info["loaded"] != false {
		t.Fatalf("unexpected info %v", info)
	}
}

func startKiosk(t *testing.T, synth voice.Synthesizer) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := kiosk.New(kiosk.Options{Synthesizer: synth, Logger: logger})

	grpcServer := grpc.NewServer()
	t.Cleanup(grpcServer.Stop)
	server.RegisterKioskServer(grpcServer, server.New(svc, logger))
	go func() {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			t.Errorf("Serve() error: %v", err)
		}
	}()
	return lis.Addr().String()
}

func TestSayCommand(t *testing.T) {
	addr := startKiosk(t, voice.NewStubSynthesizer(slog.New(slog.NewTextHandler(io.Discard, nil))))
	audioPath := filepath.Join(t.TempDir(), "say.wav")

	out, err := run(t, "say", "--addr", addr, "--out", audioPath, "안녕하세요")
	if err != nil {
		t.Fatalf("say error: %v", err)
	}
	if !strings.Contains(out, "audio: 17 bytes") {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(audioPath)
	if err != nil {
		t.Fatalf("read audio: %v", err)
	}
	if string(data) != "[stub:ko] 5 runes" {
		t.Fatalf("audio = %q", data)
	}
}

func TestSayCommandReportsSynthesisFailure(t *testing.T) {
	addr := startKiosk(t, voice.SilentSynthesizer{})
	_, err := run(t, "say", "--addr", addr, "안녕하세요")
	if err == nil || !strings.Contains(err.Error(), kiosk.SynthesisFailedText) {
		t.Fatalf("expected %q error, got %v", kiosk.SynthesisFailedText, err)
	}
}
