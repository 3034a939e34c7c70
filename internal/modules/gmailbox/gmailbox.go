// Package gmailbox manages the user's Gmail mailbox through the official
// API client. Deleting moves messages to the trash rather than wiping them.
package gmailbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"aria/internal/modules"
)

const (
	defaultListResults = 5
	// Cap for bulk operations and "all results" listings.
	maxListResults = 500
)

type Module struct {
	svc *gmail.Service
}

// New builds the module on top of an authorized HTTP client from googleauth.
func New(ctx context.Context, opts ...option.ClientOption) (*Module, error) {
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail service: %w", err)
	}
	return &Module{svc: svc}, nil
}

func (m *Module) Name() string { return "gmail" }

func (m *Module) Description() string {
	return "manage emails in Gmail (list, send, read, mark as read, delete)"
}

func (m *Module) Actions() []modules.Action {
	return []modules.Action{
		{
			Name:        "list_emails",
			Description: "Lists emails from a label (e.g. 'INBOX', 'SENT'), optionally filtered by sender, date period, and unread status. Use 'all_results': true if the user asks for all emails.",
			Example:     `{"action":"list_emails","label":"INBOX","sender":"john.doe@example.com","date_period":"2026-08-28","max_results":5,"is_unread":true}`,
			Handler:     m.listEmails,
		},
		{
			Name:        "send_email",
			Description: "Sends an email to a recipient with a subject and body.",
			Example:     `{"action":"send_email","to":"recipient@example.com","subject":"Meeting Reminder","body":"Don't forget our meeting tomorrow."}`,
			Handler:     m.sendEmail,
		},
		{
			Name:        "read_email",
			Description: "Reads the content of a specific email by its ID.",
			Example:     `{"action":"read_email","email_id":"<email_id>"}`,
			Handler:     m.readEmail,
		},
		{
			Name:        "mark_email_as_read",
			Description: "Marks one or more emails as read by their IDs or by criteria (sender, date period, unread status).",
			Example:     `{"action":"mark_email_as_read","email_ids":["<id_1>","<id_2>"],"sender":"john.doe@example.com","date_period":"2026-08-28","is_unread":true}`,
			Handler:     m.markAsRead,
		},
		{
			Name:        "delete_email",
			Description: "Deletes one or more emails by their IDs or by criteria (sender, date period, unread status).",
			Example:     `{"action":"delete_email","email_ids":["<id_1>","<id_2>"],"sender":"old.spam@example.com","date_period":"2026-01-01/2026-01-31"}`,
			Handler:     m.deleteEmails,
		},
	}
}

func (m *Module) listEmails(ctx context.Context, args modules.Args) (string, error) {
	label := strings.ToUpper(args.StringOr("label", "INBOX"))
	limit := int64(args.IntOr("max_results", defaultListResults))
	if args.Bool("all_results") {
		limit = maxListResults
	}

	query, err := buildQuery(args.StringOr("sender", ""), args.StringOr("date_period", ""), args.Bool("is_unread"))
	if err != nil {
		return "", err
	}

	call := m.svc.Users.Messages.List("me").LabelIds(label).MaxResults(limit).Context(ctx)
	if query != "" {
		call = call.Q(query)
	}
	res, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}
	if len(res.Messages) == 0 {
		return "No emails found.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d email(s):\n", len(res.Messages))
	for _, msg := range res.Messages {
		full, err := m.svc.Users.Messages.Get("me", msg.Id).
			Format("metadata").
			MetadataHeaders("From", "Subject", "Date").
			Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("get message %s: %w", msg.Id, err)
		}
		from, subject, date := headerValues(full)
		fmt.Fprintf(&b, "- [%s] %s | %s (%s)\n", msg.Id, from, subject, date)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (m *Module) sendEmail(ctx context.Context, args modules.Args) (string, error) {
	to, err := args.String("to")
	if err != nil {
		return "", err
	}
	subject, err := args.String("subject")
	if err != nil {
		return "", err
	}
	body := args.StringOr("body", "")

	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s", to, subject, body)
	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString([]byte(raw))}

	if _, err := m.svc.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return fmt.Sprintf("Email sent to %s with subject %q.", to, subject), nil
}

func (m *Module) readEmail(ctx context.Context, args modules.Args) (string, error) {
	id, err := args.String("email_id")
	if err != nil {
		return "", err
	}
	msg, err := m.svc.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get message %s: %w", id, err)
	}

	from, subject, date := headerValues(msg)
	body := plainTextBody(msg.Payload)
	if body == "" {
		body = msg.Snippet
	}
	return fmt.Sprintf("From: %s\nDate: %s\nSubject: %s\n---\n%s", from, date, subject, body), nil
}

func (m *Module) markAsRead(ctx context.Context, args modules.Args) (string, error) {
	ids, err := m.resolveIDs(ctx, args)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "No matching emails found.", nil
	}

	mod := &gmail.ModifyMessageRequest{RemoveLabelIds: []string{"UNREAD"}}
	for _, id := range ids {
		if _, err := m.svc.Users.Messages.Modify("me", id, mod).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("mark %s as read: %w", id, err)
		}
	}
	return fmt.Sprintf("Marked %d email(s) as read.", len(ids)), nil
}

func (m *Module) deleteEmails(ctx context.Context, args modules.Args) (string, error) {
	ids, err := m.resolveIDs(ctx, args)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "No matching emails found.", nil
	}

	for _, id := range ids {
		if _, err := m.svc.Users.Messages.Trash("me", id).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("trash %s: %w", id, err)
		}
	}
	return fmt.Sprintf("Moved %d email(s) to trash.", len(ids)), nil
}

// resolveIDs prefers explicit email_ids and otherwise searches by criteria.
func (m *Module) resolveIDs(ctx context.Context, args modules.Args) ([]string, error) {
	if ids := args.Strings("email_ids"); len(ids) > 0 {
		return ids, nil
	}

	query, err := buildQuery(args.StringOr("sender", ""), args.StringOr("date_period", ""), args.Bool("is_unread"))
	if err != nil {
		return nil, err
	}
	if query == "" {
		return nil, fmt.Errorf("%w: need email_ids or search criteria", modules.ErrBadArgs)
	}

	label := strings.ToUpper(args.StringOr("label", "INBOX"))
	res, err := m.svc.Users.Messages.List("me").LabelIds(label).MaxResults(maxListResults).Q(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search messages: %w", err)
	}

	ids := make([]string, 0, len(res.Messages))
	for _, msg := range res.Messages {
		ids = append(ids, msg.Id)
	}
	return ids, nil
}

func headerValues(msg *gmail.Message) (from, subject, date string) {
	if msg.Payload == nil {
		return
	}
	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "From":
			from = h.Value
		case "Subject":
			subject = h.Value
		case "Date":
			date = h.Value
		}
	}
	return
}

// plainTextBody walks the MIME tree for the first text/plain part.
func plainTextBody(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}
	if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
		data, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(part.Body.Data, "="))
		if err != nil {
			return ""
		}
		return string(data)
	}
	for _, p := range part.Parts {
		if body := plainTextBody(p); body != "" {
			return body
		}
	}
	return ""
}
