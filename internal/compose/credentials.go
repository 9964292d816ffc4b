package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/kameshsampath/polaris-spark-devbox/pkg/logging"
)

// Credential is a (client id, client secret) pair. The root credential is
// recovered from the container's startup logs; the principal credential is
// minted by the management API.
type Credential struct {
	ClientID     string
	ClientSecret string
}

var (
	// ErrNoCredentials indicates the container logs carry no root
	// principal credentials line.
	ErrNoCredentials = errors.New("no root principal credentials found in container logs")
	// ErrMalformedCredentials indicates a credentials line was found but
	// its body could not be split into an id and a secret.
	ErrMalformedCredentials = errors.New("malformed root principal credentials line")
)

const credentialMarker = "root principal credentials"

// Everything after the marker's colon, up to end of line.
var credentialPattern = regexp.MustCompile(`(?i)root principal credentials\s*:(.*)`)

// Docker log timestamps are RFC3339Nano with nanosecond precision; the
// prefix is truncated to microseconds (26 characters) before parsing, and
// the parse is strict.
const (
	logTimestampWidth  = 26
	logTimestampLayout = "2006-01-02T15:04:05.000000Z"
)

// RootCredentials reads the container's full timestamped log stream and
// returns the root principal credential from the most recent credentials
// line. Polaris prints its bootstrap identity once per container lifetime,
// but restarts within the same log buffer can leave several lines; the
// newest by parsed timestamp wins, since log order is not guaranteed
// chronological across buffered writers.
func RootCredentials(ctx context.Context, api ContainerAPI, containerID string) (Credential, error) {
	reader, err := api.ContainerLogs(ctx, containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
	})
	if err != nil {
		return Credential{}, fmt.Errorf("reading container logs: %w", err)
	}
	defer reader.Close()

	logs, err := decodeLogStream(reader)
	if err != nil {
		return Credential{}, fmt.Errorf("decoding container logs: %w", err)
	}

	lines := credentialLines(logs)
	if len(lines) == 0 {
		return Credential{}, ErrNoCredentials
	}
	return parseCredentialLine(lines[0])
}

// decodeLogStream demultiplexes the stdout/stderr framing the daemon uses
// for non-TTY containers into one combined text stream. Containers started
// with a TTY produce a raw stream instead, so that is the fallback.
func decodeLogStream(reader io.Reader) (string, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	var combined bytes.Buffer
	if _, err := stdcopy.StdCopy(&combined, &combined, bytes.NewReader(raw)); err != nil {
		return string(raw), nil
	}
	return combined.String(), nil
}

// credentialLines returns the log lines containing the credential marker,
// newest first by parsed timestamp.
func credentialLines(logs string) []string {
	var matches []string
	for _, line := range strings.Split(logs, "\n") {
		if strings.Contains(strings.ToLower(line), credentialMarker) {
			matches = append(matches, line)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return extractTimestamp(matches[i]).After(extractTimestamp(matches[j]))
	})
	return matches
}

// extractTimestamp parses the fixed-width timestamp prefix of a log line.
// Lines whose prefix does not parse sort as the zero time, i.e. strictly
// older than any line with a valid timestamp.
func extractTimestamp(line string) time.Time {
	if len(line) < logTimestampWidth {
		return time.Time{}
	}
	ts, err := time.Parse(logTimestampLayout, line[:logTimestampWidth]+"Z")
	if err != nil {
		logging.Error("credentials", err, "Error parsing timestamp from line: %s", line)
		return time.Time{}
	}
	return ts
}

// parseCredentialLine splits the text after the marker on the first colon
// into (id, secret).
func parseCredentialLine(line string) (Credential, error) {
	match := credentialPattern.FindStringSubmatch(line)
	if match == nil {
		return Credential{}, ErrMalformedCredentials
	}
	id, secret, found := strings.Cut(strings.TrimSpace(match[1]), ":")
	if !found {
		return Credential{}, ErrMalformedCredentials
	}
	return Credential{ClientID: id, ClientSecret: secret}, nil
}
