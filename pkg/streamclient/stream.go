package streamclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

// DefaultRetry mirrors the fixed reconnect delay browsers use for
// EventSource. A server-sent "retry:" line overrides it.
const DefaultRetry = 3 * time.Second

// Stream is the transport half of the consumer: it holds one HTTP
// connection to an SSE endpoint open, parses data frames, and reconnects
// after a fixed delay when the connection drops. There is no backoff;
// reconnect semantics intentionally match the browser's native behavior.
type Stream struct {
	URL    string
	Client *http.Client
	Retry  time.Duration

	// OnOpen and OnError report transport state transitions. Either may be nil.
	OnOpen  func()
	OnError func(error)
}

// Run consumes the stream until ctx is cancelled, invoking handle once per
// received data payload. Each dropped connection is retried after the
// current retry delay.
func (s *Stream) Run(ctx context.Context, handle func([]byte)) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	retry := s.Retry
	if retry <= 0 {
		retry = DefaultRetry
	}

	for {
		if ctx.Err() != nil {
			return
		}
		err := s.consumeOnce(ctx, client, handle, &retry)
		if err != nil && !errors.Is(err, context.Canceled) {
			if s.OnError != nil {
				s.OnError(err)
			}
			log.Logger.Debug().Err(err).Str("url", s.URL).Msg("notification stream dropped")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retry):
		}
	}
}

func (s *Stream) consumeOnce(ctx context.Context, client *http.Client, handle func([]byte), retry *time.Duration) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream endpoint returned %s", resp.Status)
	}
	if s.OnOpen != nil {
		s.OnOpen()
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if data.Len() > 0 {
				handle([]byte(data.String()))
				data.Reset()
			}
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		case strings.HasPrefix(line, "retry:"):
			if ms, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "retry:"))); err == nil && ms > 0 {
				*retry = time.Duration(ms) * time.Millisecond
			}
		default:
			// event:/id:/comment lines carry nothing we consume
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return errors.New("stream closed by server")
}
