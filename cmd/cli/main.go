package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"entity-journal-cli/internal/bootstrap"
	"entity-journal-cli/internal/cli"
	"entity-journal-cli/internal/config"
	"entity-journal-cli/pkg/events"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Unable to initialize client: %v", err)
	}
	defer container.Close()

	// 3. Start Signal Listeners
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	registerSignalListeners(ctx, container)

	// 4. Hydrate Session from the stored credential, if any
	if err := container.Auth.Hydrate(ctx); err != nil {
		log.Printf("Session hydration error: %v", err)
	}

	// 5. Dispatch
	if err := cli.New(container).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// registerSignalListeners subscribes the terminal UI to the gateway's
// failure broadcasts. Listeners only print; the failed call itself is
// reported through the normal error path.
func registerSignalListeners(ctx context.Context, container *bootstrap.Container) {
	mustListen(container, ctx, events.TopicSessionExpired, func(events.Envelope) {
		color.Yellow("Your session has expired. Run 'journal login' to sign in again.")
	})
	mustListen(container, ctx, events.TopicForbidden, func(events.Envelope) {
		color.Yellow("You don't have access to that resource.")
	})
	mustListen(container, ctx, events.TopicServerFault, func(env events.Envelope) {
		status := env.Data["status"]
		color.Red("The server hit an internal error (%v). Please try again later.", status)
	})
}

func mustListen(container *bootstrap.Container, ctx context.Context, topic string, handler func(events.Envelope)) {
	if err := container.Bus.Listen(ctx, topic, handler); err != nil {
		log.Fatalf("Unable to subscribe to %s: %v", topic, err)
	}
}
