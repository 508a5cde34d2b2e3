package payments

import (
	"fmt"
	"time"
)

func NewOrderID(courseID string, now time.Time) string {
	return fmt.Sprintf("order_%s_%d", courseID, now.UnixMilli())
}
