package ipc

import (
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "aria.sock")

	srv, err := Serve(sock, func(req Request) Response {
		if req.Cmd == "say" {
			return Response{OK: true, Text: "echo: " + req.Text}
		}
		return Response{OK: false, Text: "unknown command"}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	resp, err := Send(sock, Request{Cmd: "say", Text: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.OK || resp.Text != "echo: hello" {
		t.Fatalf("got %+v", resp)
	}

	resp, err = Send(sock, Request{Cmd: "bogus"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.OK {
		t.Fatalf("expected not-ok, got %+v", resp)
	}
}

func TestSendNoServer(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "missing.sock")
	if _, err := Send(sock, Request{Cmd: "status"}); err == nil {
		t.Fatal("expected dial error")
	}
}
