package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/studiowebux/restcommander/internal/config"
	"github.com/studiowebux/restcommander/internal/filter"
	"github.com/studiowebux/restcommander/internal/logging"
	"github.com/studiowebux/restcommander/internal/session"
	"github.com/studiowebux/restcommander/internal/types"
)

var (
	// ErrRequestFailed is returned by Send when the response is not ok.
	// The response has already been written.
	ErrRequestFailed = errors.New("request failed")

	// ErrNotFound is returned when a reference matches no saved request
	ErrNotFound = errors.New("no saved request matches")
)

// ListOptions contains options for listing saved requests
type ListOptions struct {
	OutputFormat string // text, json, yaml
}

// List writes the saved requests
func List(ctrl *session.Controller, opts ListOptions, w io.Writer) error {
	out, err := FormatRequests(ctrl.Requests(), opts.OutputFormat)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// AddOptions contains the fields of a request created from the command line
type AddOptions struct {
	Title  string
	Method string
	URL    string
}

// Add creates and persists a request. Empty options keep the defaults.
func Add(ctx context.Context, ctrl *session.Controller, opts AddOptions) (types.Request, error) {
	method := types.DefaultMethod
	if opts.Method != "" {
		m, err := types.ParseMethod(opts.Method)
		if err != nil {
			return types.Request{}, err
		}
		method = m
	}

	req, err := ctrl.NewRequest(ctx)
	if err != nil {
		return req, fmt.Errorf("failed to save request: %w", err)
	}
	index := ctrl.CurrentIndex()

	if opts.Title != "" {
		if err := ctrl.BeginEdit(index); err != nil {
			return req, err
		}
		if err := ctrl.SetTitle(index, opts.Title); err != nil {
			return req, err
		}
		if err := ctrl.CommitTitle(ctx, index); err != nil {
			return req, fmt.Errorf("failed to save title: %w", err)
		}
	}
	if method != req.Type {
		if err := ctrl.SetMethod(ctx, method); err != nil {
			return req, fmt.Errorf("failed to save method: %w", err)
		}
	}
	if opts.URL != "" {
		if err := ctrl.SetURL(ctx, opts.URL); err != nil {
			return req, fmt.Errorf("failed to save URL: %w", err)
		}
	}

	req, _ = ctrl.Current()
	logging.For("cli").WithField("id", req.ID).Info("request added")
	return req, nil
}

// SendOptions contains options for sending a saved request in CLI mode
type SendOptions struct {
	Ref          string // id, title or fuzzy title; empty prompts when interactive
	OutputFormat string // text, json, yaml, body
	Body         string // overrides the default body text
	Headers      string // overrides the default headers text
	Filter       string // JMESPath filter over the response body
	ShowFull     bool
	SavePath     string
}

// Send resolves a saved request, sends it and writes the response.
// It returns ErrRequestFailed when the response is not ok.
func Send(ctx context.Context, ctrl *session.Controller, opts SendOptions, w io.Writer) error {
	index, err := resolveOrPick(ctrl, opts.Ref)
	if err != nil {
		return err
	}
	if err := ctrl.Select(index); err != nil {
		return err
	}

	if opts.Body != "" {
		ctrl.SetBodyText(opts.Body)
	}
	if opts.Headers != "" {
		ctrl.SetHeadersText(opts.Headers)
	}

	// Cancel the request on Ctrl+C
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	resp, err := ctrl.Send(ctx)
	if err != nil {
		return err
	}

	if opts.Filter != "" && resp.OK {
		filtered, err := filter.Apply(resp.Body, opts.Filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: filter error: %v\n", err)
		} else {
			resp.Body = filtered
		}
	}

	out, err := FormatResponse(resp, opts.OutputFormat, opts.ShowFull)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return err
	}

	if opts.SavePath != "" {
		if err := os.WriteFile(opts.SavePath, []byte(resp.Body), config.FilePermissions); err != nil {
			return fmt.Errorf("failed to save response: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Response saved to %s\n", opts.SavePath)
	}

	if !resp.OK {
		return ErrRequestFailed
	}
	return nil
}

// Resolve finds a saved request by exact id, then by case-insensitive
// title, then by the best fuzzy title match
func Resolve(ctrl *session.Controller, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, ErrNotFound
	}

	if index := ctrl.IndexOf(ref); index >= 0 {
		return index, nil
	}
	for i, req := range ctrl.Requests() {
		if strings.EqualFold(req.Title, ref) {
			return i, nil
		}
	}
	if index, ok := ctrl.Find(ref); ok {
		return index, nil
	}

	return -1, fmt.Errorf("%w %q", ErrNotFound, ref)
}

func resolveOrPick(ctrl *session.Controller, ref string) (int, error) {
	if ref != "" {
		return Resolve(ctrl, ref)
	}
	if ctrl.Len() == 0 {
		return -1, errors.New("no saved requests")
	}
	if !isInteractive() {
		return -1, errors.New("a request id or title is required when stdin is not a terminal")
	}
	return promptForRequest(ctrl.Requests())
}

// isInteractive checks if stdin is a terminal (not piped)
func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
