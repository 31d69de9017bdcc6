package replay

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ScpCopier stages remote files with the system scp binary. When wsl is set
// the copy runs inside the default WSL distribution, for hosts that are
// only reachable from the Linux side of a Windows machine.
type ScpCopier struct{}

func (ScpCopier) Copy(ctx context.Context, host, username, remotePath, localDest string, wsl bool) error {
	src := host + ":" + remotePath
	if username != "" {
		src = username + "@" + src
	}
	name := "scp"
	args := []string{src, localDest}
	if wsl {
		name = "wsl"
		args = append([]string{"scp"}, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("scp %s: %w: %s", src, err, bytes.TrimSpace(out))
	}
	return nil
}

// wslMountPath rewrites a Windows path to its WSL mount point
// (C:\Users\ana -> /mnt/c/Users/ana) so a copy running inside WSL can write
// to the host-side staging directory. Non-drive paths pass through with
// slashes normalized.
func wslMountPath(p string) string {
	if len(p) < 2 || p[1] != ':' {
		return filepath.ToSlash(p)
	}
	drive := strings.ToLower(p[:1])
	return "/mnt/" + drive + strings.ReplaceAll(p[2:], `\`, "/")
}
