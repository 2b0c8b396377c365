// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"sync"
	"time"

	"tvdigital_backend/internals/configs"
)

const (
	// LayoutTanggal: DD-MM-YYYY
	LayoutTanggal = "02-01-2006"
	// LayoutJam: HH:MM:SS diikuti singkatan zona, misal "14:05:09 WIB"
	LayoutJam = "15:04:05 MST"
)

var (
	locOnce sync.Once
	appLoc  *time.Location
)

// AppLocation mengembalikan zona waktu aplikasi, dibaca sekali dari config
// (default Asia/Jakarta, fallback UTC+7 bernama WIB).
func AppLocation() *time.Location {
	locOnce.Do(func() {
		appLoc = configs.Location()
	})
	return appLoc
}

// NowInApp: sekarang di zona waktu aplikasi.
func NowInApp() time.Time {
	return time.Now().In(AppLocation())
}

// FormatTanggal memformat t sebagai DD-MM-YYYY di loc.
func FormatTanggal(t time.Time, loc *time.Location) string {
	return t.In(orDefault(loc)).Format(LayoutTanggal)
}

// FormatJam memformat t sebagai "HH:MM:SS <zona>" di loc.
func FormatJam(t time.Time, loc *time.Location) string {
	return t.In(orDefault(loc)).Format(LayoutJam)
}

func orDefault(loc *time.Location) *time.Location {
	if loc == nil {
		return AppLocation()
	}
	return loc
}
