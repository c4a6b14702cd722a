// Package share produces a sharable payload for the current article and
// hands it to whatever the host can offer: a user-configured share command,
// or the system clipboard as a fallback.
//
// Nothing in this package returns an error to the UI. Failures are logged
// through pkg/debug and collapsed into an Outcome the caller turns into a
// toast message.
package share

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/fennwick/longread/pkg/debug"
)

// Data is the transient share payload, built at share time and never stored.
type Data struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// Outcome classifies how a share or copy attempt ended.
type Outcome int

const (
	// OutcomeShared means the configured share command accepted the payload.
	OutcomeShared Outcome = iota
	// OutcomeCopied means the URL landed on the clipboard.
	OutcomeCopied
	// OutcomeFailed means both paths failed; the error was logged.
	OutcomeFailed
)

// DefaultCommandTimeout bounds the external share command.
const DefaultCommandTimeout = 30 * time.Second

// Sharer is the native share capability. It may be absent on a host.
type Sharer interface {
	Available() bool
	Share(ctx context.Context, d Data) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	Write(text string) error
}

// Service arbitrates between the share command and the clipboard. Share and
// Copy are single-flight: a call arriving while one is outstanding joins the
// in-flight attempt instead of racing it.
type Service struct {
	sharer Sharer
	clip   Clipboard
	group  singleflight.Group
}

// NewService builds a Service. Either collaborator may be nil, which is
// treated as the capability being absent.
func NewService(sharer Sharer, clip Clipboard) *Service {
	return &Service{sharer: sharer, clip: clip}
}

// Share attempts the native share command and falls back to copying the URL.
func (s *Service) Share(ctx context.Context, d Data) Outcome {
	v, _, _ := s.group.Do("share", func() (any, error) {
		return s.shareOnce(ctx, d), nil
	})
	return v.(Outcome)
}

func (s *Service) shareOnce(ctx context.Context, d Data) Outcome {
	if s.sharer != nil && s.sharer.Available() {
		if err := s.sharer.Share(ctx, d); err != nil {
			debug.Log("share command failed: %v", err)
			return OutcomeFailed
		}
		return OutcomeShared
	}
	if s.clip == nil {
		debug.Log("share: no share command and no clipboard")
		return OutcomeFailed
	}
	if err := s.clip.Write(d.URL); err != nil {
		debug.Log("share fallback copy failed: %v", err)
		return OutcomeFailed
	}
	return OutcomeCopied
}

// Copy puts the article URL on the clipboard.
func (s *Service) Copy(ctx context.Context, url string) Outcome {
	v, _, _ := s.group.Do("copy", func() (any, error) {
		return s.copyOnce(url), nil
	})
	return v.(Outcome)
}

func (s *Service) copyOnce(url string) Outcome {
	if s.clip == nil {
		debug.Log("copy: no clipboard available")
		return OutcomeFailed
	}
	if err := s.clip.Write(url); err != nil {
		debug.Log("copy failed: %v", err)
		return OutcomeFailed
	}
	return OutcomeCopied
}

// CommandSharer runs a user-configured shell command with the JSON-encoded
// payload on stdin. The payload fields are also exposed as LR_SHARE_* env
// vars for commands that prefer not to parse JSON.
type CommandSharer struct {
	Command string
	Timeout time.Duration
}

// NewCommandSharer wraps command; an empty command means the capability is
// absent.
func NewCommandSharer(command string) *CommandSharer {
	return &CommandSharer{Command: command, Timeout: DefaultCommandTimeout}
}

// Available reports whether a share command is configured.
func (c *CommandSharer) Available() bool {
	return c != nil && c.Command != ""
}

// Share pipes the payload into the command.
func (c *CommandSharer) Share(ctx context.Context, d Data) error {
	if !c.Available() {
		return fmt.Errorf("no share command configured")
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode share payload: %w", err)
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", c.Command)
	cmd.Env = append(os.Environ(),
		"LR_SHARE_TITLE="+d.Title,
		"LR_SHARE_TEXT="+d.Text,
		"LR_SHARE_URL="+d.URL,
	)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	if _, err := stdin.Write(payload); err != nil {
		stdin.Close()
		_ = cmd.Wait()
		return err
	}
	stdin.Close()
	return cmd.Wait()
}
