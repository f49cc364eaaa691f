package cache

import (
	"fmt"
	"time"
)

const (
	AdTTL   = 10 * time.Minute
	UserTTL = 5 * time.Minute
)

func AdKey(adID uint) string {
	return fmt.Sprintf("ad:%d", adID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}
