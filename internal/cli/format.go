package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/studiowebux/restcommander/internal/executor"
	"github.com/studiowebux/restcommander/internal/types"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatBody = "body"
)

// FormatRequests renders the saved request list
func FormatRequests(reqs []types.Request, format string) (string, error) {
	if reqs == nil {
		reqs = []types.Request{}
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(reqs, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case FormatYAML:
		data, err := yaml.Marshal(reqs)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatText, "":
		var sb strings.Builder
		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tMETHOD\tTITLE\tURL")
		for _, req := range reqs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", req.ID, req.Type, req.Title, req.URL)
		}
		if err := tw.Flush(); err != nil {
			return "", err
		}
		return sb.String(), nil
	}

	return "", fmt.Errorf("unknown output format %q", format)
}

// FormatResponse renders a response in the given format
func FormatResponse(resp types.Response, format string, showFull bool) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case FormatYAML:
		data, err := yaml.Marshal(resp)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatBody:
		return resp.Body + "\n", nil

	case FormatText, "":
		var sb strings.Builder

		statusColor := getStatusColor(resp.Code)
		sb.WriteString(fmt.Sprintf("%s%d%s", statusColor, resp.Code, colorReset))
		if resp.Time != nil {
			sb.WriteString(fmt.Sprintf(" | Duration: %s", executor.FormatDuration(*resp.Time)))
		}
		sb.WriteString("\n")

		if showFull && resp.Headers != "" {
			sb.WriteString("\nHeaders:\n")
			sb.WriteString(resp.Headers)
			sb.WriteString("\n")
		}

		if resp.Body != "" {
			if showFull {
				sb.WriteString("\nBody:\n")
			} else {
				sb.WriteString("\n")
			}
			sb.WriteString(resp.Body)
			sb.WriteString("\n")
		}

		return sb.String(), nil
	}

	return "", fmt.Errorf("unknown output format %q", format)
}

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)

func getStatusColor(status int) string {
	if status >= 200 && status < 300 {
		return colorGreen
	} else if status >= 400 {
		return colorRed
	}
	return colorYellow
}
