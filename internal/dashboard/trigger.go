package dashboard

import (
	"context"
	"os/exec"
	"time"
)

// Trigger regenerates the Markdown report and returns what the generator printed.
type Trigger interface {
	Generate(ctx context.Context) (string, error)
}

// CommandTrigger runs report generation as a separate process.
type CommandTrigger struct {
	Path    string
	Args    []string
	Timeout time.Duration
}

// NewCommandTrigger runs "<executable> report --config <configFile>".
func NewCommandTrigger(executable, configFile string) *CommandTrigger {
	args := []string{"report"}
	if configFile != "" {
		args = append(args, "--config", configFile)
	}
	return &CommandTrigger{Path: executable, Args: args, Timeout: 5 * time.Minute}
}

// Generate runs the command and returns its combined output.
func (c *CommandTrigger) Generate(ctx context.Context) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	out, err := exec.CommandContext(ctx, c.Path, c.Args...).CombinedOutput()
	return string(out), err
}
