package service

import (
	"time"

	"github.com/dustin/go-humanize"
)

var indonesianMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "baru saja", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 menit %s", DivBy: 1},
	{D: time.Hour, Format: "%d menit %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 jam %s", DivBy: 1},
	{D: humanize.Day, Format: "%d jam %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 hari %s", DivBy: 1},
	{D: humanize.Week, Format: "%d hari %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "1 minggu %s", DivBy: 1},
	{D: humanize.Month, Format: "%d minggu %s", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "1 bulan %s", DivBy: 1},
	{D: humanize.Year, Format: "%d bulan %s", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "1 tahun %s", DivBy: 1},
	{D: humanize.LongTime, Format: "%d tahun %s", DivBy: humanize.Year},
}

// TimeAgo: "5 menit yang lalu", "2 hari yang lalu". Zero time menghasilkan "".
func TimeAgo(published, now time.Time) string {
	if published.IsZero() {
		return ""
	}
	return humanize.CustomRelTime(published, now, "yang lalu", "lagi", indonesianMagnitudes)
}
