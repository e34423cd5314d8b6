// ymaze-watch prints live zone counts from a running ymaze dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-ymaze/internal/config"
	"github.com/teslashibe/go-ymaze/pkg/web"
)

func main() {
	addr := flag.String("addr", "localhost:"+config.DashboardPort("8090"), "Dashboard address (host:port)")
	every := flag.Int("every", 30, "Print every Nth frame (1 prints all)")
	flag.Parse()

	if *every < 1 {
		*every = 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	url := web.StatusURL(*addr)
	fmt.Printf("📡 Watching %s\n", url)

	err := web.Watch(ctx, url, func(u web.Update) bool {
		switch {
		case u.Summary != nil:
			fmt.Printf("🏁 %s tracker, %d frames (%d failed)\n", u.Summary.Tracker, u.Summary.Frames, u.Summary.Failed)
			fmt.Printf("Result: %s\n", u.Summary.Result)
			return false
		case u.Status.Phase == web.PhaseWaiting:
			fmt.Println("⏳ Waiting for calibration...")
		case u.Status.Frame == 0:
			fmt.Printf("🎯 %s tracker on %s\n", u.Status.Tracker, u.Status.Video)
		case u.Status.Frame%*every == 0:
			arm := u.Status.Zone
			if !u.Status.Tracked {
				arm = "lost"
			}
			c := u.Status.Counts
			fmt.Printf("Frame:%d, Arm:%s  center:%d, a:%d, b:%d, c:%d\n",
				u.Status.Frame, arm, c["center"], c["a"], c["b"], c["c"])
		}
		return true
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
