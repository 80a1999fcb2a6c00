// utils/username.go
package utils

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// usernameFallback is used when the first name has fewer than three letters.
const usernameFallback = "usr"

// UsernameExists reports whether a candidate username is already taken. The
// auth controller wires this to probe both the tempusers and users
// collections.
type UsernameExists func(ctx context.Context, username string) (bool, error)

// GenerateUsername mints a candidate username from the first three letters of
// the first name plus the last two digits of the mobile number plus one
// random digit, retrying up to ten times on collision. The existence probe
// only minimizes collisions; the unique index on the collection is the real
// guarantee, so the epoch-millis fallback after ten collisions is acceptable.
func GenerateUsername(ctx context.Context, firstName, mobileNumber string, exists UsernameExists) (string, error) {
	base := usernameBase(firstName)
	lastTwo := mobileNumber
	if len(lastTwo) > 2 {
		lastTwo = lastTwo[len(lastTwo)-2:]
	}

	for i := 0; i < 10; i++ {
		candidate := fmt.Sprintf("%s%s%d", base, lastTwo, rand.Intn(10))
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	return base + lastTwo + millis[len(millis)-4:], nil
}

func usernameBase(firstName string) string {
	name := strings.ToLower(strings.TrimSpace(firstName))
	if len(name) < 3 {
		return usernameFallback
	}
	return name[:3]
}
