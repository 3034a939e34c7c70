package main

import (
	"fmt"
	"os"
	"strings"

	cli "github.com/spf13/pflag"

	"aria/internal/ipc"
)

func main() {
	socket := cli.StringP("socket", "s", "/tmp/aria.sock", "Daemon socket path")
	cli.Parse()

	args := cli.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: aria-ctl [--socket PATH] trigger|say <text>|reset|status")
		os.Exit(2)
	}

	req := ipc.Request{Cmd: args[0]}
	if req.Cmd == "say" {
		req.Text = strings.Join(args[1:], " ")
	}

	resp, err := ipc.Send(*socket, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "aria-daemon not running:", err)
		os.Exit(1)
	}

	if resp.Text != "" {
		fmt.Println(resp.Text)
	}
	if !resp.OK {
		os.Exit(1)
	}
}
