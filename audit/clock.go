package audit

import "time"

func wallClockMS() int64 {
	return time.Now().UTC().UnixMilli()
}
