//go:build !unix

package ffprobe

import "os/exec"

func configureProcessGroup(cmd *exec.Cmd) {}
