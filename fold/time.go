package fold

import "github.com/orbops/cmdstate/xtime"

func mustSecs(date string) float64 {
	return xtime.MustParse(date).Secs()
}

func secsToDate(secs float64) string {
	return xtime.FromSecs(secs).Date()
}
