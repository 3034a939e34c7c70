package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"aria/internal/assistant"
	"aria/internal/audio"
	"aria/internal/config"
	"aria/internal/events"
	"aria/internal/ipc"
	"aria/internal/llm"
	_ "aria/internal/llm/providers"
	"aria/internal/notify"
	"aria/internal/setup"
	"aria/internal/tts"
	"aria/pkg/stt"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

type daemon struct {
	cfg       *config.Config
	assistant *assistant.Assistant
	hub       *events.Hub
	recorder  *audio.Recorder
	whisper   *stt.Transcriber
	ducker    *audio.Ducker
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	client, err := llm.New(cfg)
	if err != nil {
		log.Error("Failed to build LLM client", "err", err)
		os.Exit(1)
	}
	log.Info("LLM client ready", "provider", client.Name())

	ctx := context.Background()
	mods := setup.Modules(ctx, cfg)

	d := &daemon{
		cfg:       cfg,
		assistant: assistant.New(client, cfg.Location(), mods...),
		hub:       events.NewHub(),
		ducker:    audio.NewDucker([]string{"aria"}, 20),
	}

	d.recorder = audio.NewRecorder(0, 0, 0)
	if err := d.recorder.Init(); err != nil {
		log.Error("Failed to init audio", "err", err)
		os.Exit(1)
	}
	defer d.recorder.Close()

	d.whisper, err = stt.NewTranscriber(cfg.WhisperModel)
	if err != nil {
		log.Error("Failed to load whisper model", "path", cfg.WhisperModel, "err", err)
		os.Exit(1)
	}
	defer d.whisper.Close()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/events", d.hub.Handler())
		log.Info("Event stream listening", "addr", cfg.EventsAddr)
		if err := http.ListenAndServe(cfg.EventsAddr, mux); err != nil {
			log.Error("Event server stopped", "err", err)
		}
	}()

	srv, err := ipc.Serve(cfg.SocketPath, d.handle)
	if err != nil {
		log.Error("Failed to start ipc server", "err", err)
		os.Exit(1)
	}
	defer srv.Close()

	log.Info("Boot up - successful", "socket", cfg.SocketPath, "actions", len(d.assistant.Actions()))
	select {}
}

func (d *daemon) handle(req ipc.Request) ipc.Response {
	switch req.Cmd {
	case "trigger":
		go d.handleTrigger()
		return ipc.Response{OK: true, Text: "listening"}
	case "say":
		if strings.TrimSpace(req.Text) == "" {
			return ipc.Response{OK: false, Text: "nothing to say"}
		}
		reply := d.process(assistant.Utterance{Text: req.Text, Source: assistant.SourceText})
		return ipc.Response{OK: true, Text: reply}
	case "reset":
		d.assistant.Reset()
		return ipc.Response{OK: true, Text: "history cleared"}
	case "status":
		return ipc.Response{OK: true, Text: fmt.Sprintf(
			"turns=%d actions=%d subscribers=%d",
			d.assistant.HistoryLen(), len(d.assistant.Actions()), d.hub.Subscribers())}
	default:
		log.Warn("Unknown command", "cmd", req.Cmd)
		return ipc.Response{OK: false, Text: "unknown command: " + req.Cmd}
	}
}

// handleTrigger runs one voice interaction: duck other audio, chime,
// record, transcribe, process and speak the reply.
func (d *daemon) handleTrigger() {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	if err := d.ducker.Duck(ctx, 0.3, 200*time.Millisecond); err != nil {
		log.Debug("Failed to duck playback", "err", err)
	}
	defer func() {
		if err := d.ducker.Unduck(ctx, 200*time.Millisecond); err != nil {
			log.Debug("Failed to restore playback", "err", err)
		}
	}()

	if d.cfg.ChimePath != "" {
		if err := notify.Chime(d.cfg.ChimePath); err != nil {
			log.Warn("Failed to play chime", "err", err)
		}
	}

	d.hub.Publish(events.New(events.KindListening, "voice", ""))
	log.Info("Listening")

	pcm, err := d.recorder.RecordUtterance()
	if err != nil {
		log.Error("Failed to record", "err", err)
		d.hub.Publish(events.New(events.KindError, "voice", err.Error()))
		return
	}
	log.Info("Recorded", "samples", len(pcm))

	if d.cfg.DumpDir != "" {
		if path, err := audio.DumpWAV(d.cfg.DumpDir, pcm); err != nil {
			log.Warn("Failed to dump recording", "err", err)
		} else {
			log.Debug("Recording dumped", "path", path)
		}
	}

	res, err := d.whisper.TranscribePCM(ctx, pcm, stt.Options{Language: "auto"})
	if err != nil {
		log.Error("Failed to transcribe", "err", err)
		d.hub.Publish(events.New(events.KindError, "voice", err.Error()))
		return
	}
	log.Info("Transcribed", "text", res.Text, "lang", res.Language)

	reply := d.process(assistant.Utterance{Text: res.Text, Source: assistant.SourceVoice})

	if err := tts.Speak(reply, d.cfg.Voice); err != nil {
		log.Error("Failed to speak reply", "err", err)
	}
}

func (d *daemon) process(u assistant.Utterance) string {
	d.hub.Publish(events.New(events.KindUtterance, string(u.Source), u.Text))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	reply := d.assistant.Process(ctx, u)
	d.hub.Publish(events.New(events.KindReply, string(u.Source), reply))
	return reply
}
