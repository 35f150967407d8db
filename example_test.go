/*
Copyright © 2026 Rezzed AI.

Released under MIT license.
*/

package rategate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/acronis/go-appkit/config"
)

func Example() {
	// Admit at most 2 events per client within any 1-minute window.
	gate := New(&Config{
		Limit:    2,
		Window:   config.TimeDuration(time.Minute),
		Category: "api-requests",
	})
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		err := gate.Hit(ctx, "client-42")
		var rlErr *RateLimitError
		switch {
		case errors.As(err, &rlErr):
			fmt.Printf("event %d denied, retry in %ds\n", i, rlErr.ResetIn)
		case err != nil:
			fmt.Printf("backend failure: %v\n", err)
		default:
			fmt.Printf("event %d admitted\n", i)
		}
	}

	remaining, _ := gate.Remaining(ctx, "client-42")
	fmt.Println("remaining:", remaining)

	// Output:
	// event 1 admitted
	// event 2 admitted
	// event 3 denied, retry in 60s
	// remaining: 0
}
