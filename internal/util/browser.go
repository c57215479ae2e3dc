package util

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"runtime"
)

// ErrNotLocalURL 只允许打开本机上的报告页面
var ErrNotLocalURL = errors.New("not a local http url")

// launcher 启动外部进程，不等待退出
type launcher func(name string, args ...string) error

func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenReportPage 用系统浏览器打开本机服务的页面
// 依次尝试候选命令，全部失败时返回合并后的错误
func OpenReportPage(pageURL string) error {
	return openWith(runtime.GOOS, os.Getenv("BROWSER"), pageURL, startDetached)
}

func openWith(goos, browserEnv, pageURL string, launch launcher) error {
	if !isLocalURL(pageURL) {
		return fmt.Errorf("%w: %s", ErrNotLocalURL, pageURL)
	}

	var errs []error
	for _, argv := range browserCommands(goos, browserEnv, pageURL) {
		err := launch(argv[0], argv[1:]...)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", argv[0], err))
	}
	return errors.Join(errs...)
}

// browserCommands 按平台给出候选命令；$BROWSER 优先（Windows 除外）
func browserCommands(goos, browserEnv, pageURL string) [][]string {
	var cmds [][]string
	if browserEnv != "" && goos != "windows" {
		cmds = append(cmds, []string{browserEnv, pageURL})
	}

	switch goos {
	case "windows":
		// rundll32 在 Windows 7 上比 cmd /c start 稳定
		cmds = append(cmds,
			[]string{"rundll32", "url.dll,FileProtocolHandler", pageURL},
			[]string{"explorer", pageURL})
	case "darwin":
		cmds = append(cmds, []string{"open", pageURL})
	default:
		cmds = append(cmds, []string{"xdg-open", pageURL})
		for _, b := range []string{"sensible-browser", "google-chrome", "firefox", "chromium-browser"} {
			cmds = append(cmds, []string{b, pageURL})
		}
	}
	return cmds
}

func isLocalURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
